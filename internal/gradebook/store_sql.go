package gradebook

import (
	"context"
	"database/sql"
	"time"
)

// SQLLogStore keeps one row per quiz in gradebook_sync_log. Every mark is an
// upsert so an outcome still lands even when the pending mark never did.
type SQLLogStore struct{ db *sql.DB }

func NewSQLLogStore(db *sql.DB) *SQLLogStore { return &SQLLogStore{db: db} }

func (s *SQLLogStore) MarkPending(ctx context.Context, quizID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO gradebook_sync_log (quiz_id, status, last_error, retries, updated_at)
		 VALUES ($1, 'pending', '', 0, $2)
		 ON CONFLICT (quiz_id) DO UPDATE SET status='pending', updated_at=EXCLUDED.updated_at`,
		quizID, time.Now().Unix())
	return err
}

func (s *SQLLogStore) MarkOK(ctx context.Context, quizID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO gradebook_sync_log (quiz_id, status, last_error, retries, updated_at)
		 VALUES ($1, 'ok', '', 0, $2)
		 ON CONFLICT (quiz_id) DO UPDATE SET status='ok', last_error='', updated_at=EXCLUDED.updated_at`,
		quizID, time.Now().Unix())
	return err
}

func (s *SQLLogStore) MarkFailed(ctx context.Context, quizID, lastErr string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO gradebook_sync_log (quiz_id, status, last_error, retries, updated_at)
		 VALUES ($1, 'failed', $2, 1, $3)
		 ON CONFLICT (quiz_id) DO UPDATE SET status='failed', last_error=EXCLUDED.last_error,
		   retries=gradebook_sync_log.retries+1, updated_at=EXCLUDED.updated_at`,
		quizID, lastErr, time.Now().Unix())
	return err
}
