package quiz

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adesua/portal/internal/portalerr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM quizzes WHERE id=$1`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, portalerr.NotFound("quiz " + id)
		}
		return Quiz{}, portalerr.Transient(err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.qtype, q.points, o.id, o.is_correct
		 FROM quiz_questions q
		 LEFT JOIN quiz_options o ON o.question_id = q.id
		 WHERE q.quiz_id = $1
		 ORDER BY q.position, q.id, o.id`, id)
	if err != nil {
		return Quiz{}, portalerr.Transient(err)
	}
	defer rows.Close()

	qz := Quiz{ID: id}
	idx := map[string]int{}
	for rows.Next() {
		var qid, qtype string
		var points float64
		var optID sql.NullString
		var correct sql.NullBool
		if err := rows.Scan(&qid, &qtype, &points, &optID, &correct); err != nil {
			return Quiz{}, portalerr.Transient(err)
		}
		i, ok := idx[qid]
		if !ok {
			qz.Questions = append(qz.Questions, Question{ID: qid, Type: qtype, Points: points})
			i = len(qz.Questions) - 1
			idx[qid] = i
		}
		if optID.Valid {
			qz.Questions[i].Options = append(qz.Questions[i].Options,
				Option{ID: optID.String, Correct: correct.Valid && correct.Bool})
		}
	}
	if err := rows.Err(); err != nil {
		return Quiz{}, portalerr.Transient(err)
	}
	return qz, nil
}

func (s *SQLStore) GetAttempt(ctx context.Context, id string) (Attempt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, student_id, quiz_id, status, score, COALESCE(end_time, 0)
		 FROM quiz_attempts WHERE id=$1`, id)
	var a Attempt
	if err := row.Scan(&a.ID, &a.StudentID, &a.QuizID, &a.Status, &a.Score, &a.EndTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, portalerr.NotFound("attempt " + id)
		}
		return Attempt{}, portalerr.Transient(err)
	}
	return a, nil
}

// SaveSubmission runs the delete-then-insert answer replacement and the
// attempt update inside one transaction. The UPDATE on the attempt row makes
// concurrent submissions for the same attempt serialize at the store.
func (s *SQLStore) SaveSubmission(ctx context.Context, sub Submission) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return portalerr.Transient(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE quiz_attempts SET score=$1, status=$2, end_time=$3 WHERE id=$4`,
		sub.Score, sub.Status, sub.EndTime, sub.AttemptID)
	if err != nil {
		return portalerr.Integrity(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return portalerr.NotFound("attempt " + sub.AttemptID)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM quiz_answers WHERE attempt_id=$1`, sub.AttemptID); err != nil {
		return portalerr.Integrity(err)
	}
	for _, a := range sub.Answers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO quiz_answers (id, attempt_id, question_id, selected_option_id, answer_text, is_correct, points_awarded)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			a.ID, a.AttemptID, a.QuestionID, a.SelectedOptionID, a.Text, a.Correct, a.PointsAwarded); err != nil {
			return portalerr.Integrity(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return portalerr.Integrity(err)
	}
	return nil
}
