package ranking

import (
	"context"

	"github.com/adesua/portal/internal/portalerr"
	"github.com/adesua/portal/internal/scores"
)

// Service reads the roster and score rows for a (class, term) pair and ranks
// them. Both reads are single queries so one ranking pass sees one snapshot.
type Service struct {
	Scores scores.Store
}

func NewService(st scores.Store) *Service { return &Service{Scores: st} }

func (s *Service) ClassRanking(ctx context.Context, classID, termID string) (Result, error) {
	if classID == "" || termID == "" {
		return Result{}, portalerr.Validation("classId and termId required")
	}
	roster, err := s.Scores.ReadRoster(ctx, classID)
	if err != nil {
		return Result{}, err
	}
	if len(roster) == 0 {
		return Result{Entries: []Entry{}}, nil
	}
	rows, err := s.Scores.ReadScores(ctx, roster, termID)
	if err != nil {
		return Result{}, err
	}
	return Rank(roster, rows), nil
}
