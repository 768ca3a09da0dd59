package grading

import (
	"context"

	"github.com/adesua/portal/internal/portalerr"
	"github.com/adesua/portal/internal/scores"
)

// StudentTermAggregate is the API-facing view of one student's composite for
// one term. Computed on demand; never persisted.
type StudentTermAggregate struct {
	StudentID       string   `json:"student_id"`
	TermID          string   `json:"term_id"`
	CoreGradeSum    int      `json:"core_grade_sum"`
	BestElectiveSum int      `json:"best_elective_sum"`
	Aggregate       int      `json:"aggregate"`
	MissingCores    []string `json:"missing_cores,omitempty"`
}

// Service computes term aggregates from the score store. The term id is
// always an explicit argument; there is no ambient "current term".
type Service struct {
	Scores scores.Store
}

func NewService(st scores.Store) *Service { return &Service{Scores: st} }

func (s *Service) TermAggregate(ctx context.Context, studentID, termID string, opts ...AggregateOption) (StudentTermAggregate, error) {
	if studentID == "" || termID == "" {
		return StudentTermAggregate{}, portalerr.Validation("studentId and termId required")
	}
	rows, err := s.Scores.ReadScores(ctx, []string{studentID}, termID)
	if err != nil {
		return StudentTermAggregate{}, err
	}
	subj := make([]SubjectScore, 0, len(rows))
	for _, r := range rows {
		subj = append(subj, SubjectScore{Subject: r.SubjectName, Total: r.Total})
	}
	agg, err := ComputeAggregate(subj, opts...)
	if err != nil {
		return StudentTermAggregate{}, err
	}
	return StudentTermAggregate{
		StudentID:       studentID,
		TermID:          termID,
		CoreGradeSum:    agg.CoreSum,
		BestElectiveSum: agg.BestElectiveSum,
		Aggregate:       agg.Aggregate,
		MissingCores:    agg.MissingCores,
	}, nil
}
