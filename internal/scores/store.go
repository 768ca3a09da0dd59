// Package scores is the read-only boundary to the score records that teacher
// workflows maintain. Rows are mapped to typed values here, in one pass, so
// ranking and aggregate code never sees raw store shapes.
package scores

import "context"

// Row is one subject total for one student in one term.
type Row struct {
	StudentID   string
	SubjectID   string
	SubjectName string
	Total       float64
}

// Store reads score and roster data. Implementations must return all rows
// for a request from a single consistent snapshot: one ranking pass must not
// mix rows read at different times.
type Store interface {
	// ReadScores returns the score rows for the given students in one term.
	ReadScores(ctx context.Context, studentIDs []string, termID string) ([]Row, error)
	// ReadRoster returns the ids of active students in a class.
	ReadRoster(ctx context.Context, classID string) ([]string, error)
}
