package scores

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/adesua/portal/internal/portalerr"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) ReadScores(ctx context.Context, studentIDs []string, termID string) ([]Row, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	var rows *sql.Rows
	var err error
	q := `SELECT sc.student_id, sc.subject_id, sub.name, sc.class_score, sc.exam_score, sc.total
	      FROM scores sc JOIN subjects sub ON sub.id = sc.subject_id
	      WHERE sc.term_id = $1 AND sc.student_id `
	if s.driver == "postgres" {
		rows, err = s.db.QueryContext(ctx, q+`= ANY($2)`, termID, pq.Array(studentIDs))
	} else {
		// sqlite has no array binds; expand placeholders
		ph := make([]string, len(studentIDs))
		args := make([]interface{}, 0, len(studentIDs)+1)
		args = append(args, termID)
		for i, id := range studentIDs {
			ph[i] = fmt.Sprintf("$%d", i+2)
			args = append(args, id)
		}
		rows, err = s.db.QueryContext(ctx, q+`IN (`+strings.Join(ph, ",")+`)`, args...)
	}
	if err != nil {
		return nil, portalerr.Transient(err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var classScore, examScore, total sql.NullFloat64
		if err := rows.Scan(&r.StudentID, &r.SubjectID, &r.SubjectName, &classScore, &examScore, &total); err != nil {
			return nil, portalerr.Transient(err)
		}
		r.Total = resolveTotal(classScore, examScore, total)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, portalerr.Transient(err)
	}
	return out, nil
}

func (s *SQLStore) ReadRoster(ctx context.Context, classID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT student_id FROM class_students WHERE class_id = $1 AND active = TRUE ORDER BY student_id`,
		classID)
	if err != nil {
		return nil, portalerr.Transient(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, portalerr.Transient(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, portalerr.Transient(err)
	}
	return ids, nil
}

// resolveTotal: a directly stored total is authoritative; otherwise the total
// is the sum of whichever of class and exam score are present.
func resolveTotal(classScore, examScore, total sql.NullFloat64) float64 {
	if total.Valid {
		return total.Float64
	}
	var t float64
	if classScore.Valid {
		t += classScore.Float64
	}
	if examScore.Valid {
		t += examScore.Float64
	}
	return t
}
