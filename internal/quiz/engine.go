package quiz

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/adesua/portal/internal/gradebook"
	"github.com/adesua/portal/internal/portalerr"
)

// Engine grades attempt submissions. It never trusts client grading input:
// the quiz id comes from the stored attempt and the question set, point
// values and correct options come from the store.
type Engine struct {
	store  Store
	syncer gradebook.Syncer
	now    func() time.Time
	newID  func() string
}

type EngineOption func(*Engine)

// WithClock overrides the end-time clock (tests).
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func NewEngine(store Store, syncer gradebook.Syncer, opts ...EngineOption) *Engine {
	e := &Engine{
		store:  store,
		syncer: syncer,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

type SubmitRequest struct {
	AttemptID string
	// StudentID is the authenticated caller. When non-empty it must match the
	// attempt's owner.
	StudentID string
	Answers   []StudentAnswer
}

type SubmitResult struct {
	Status string
	Score  float64
}

// Submit grades an attempt from the authoritative question set and atomically
// replaces its answer rows. Resubmission is idempotent: the latest completed
// submission fully supersedes any earlier one.
func (e *Engine) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	if req.AttemptID == "" {
		return SubmitResult{}, portalerr.Validation("attemptId required")
	}

	attempt, err := e.store.GetAttempt(ctx, req.AttemptID)
	if err != nil {
		return SubmitResult{}, err
	}
	if req.StudentID != "" && attempt.StudentID != req.StudentID {
		return SubmitResult{}, portalerr.Auth("attempt belongs to another student")
	}

	qz, err := e.store.GetQuiz(ctx, attempt.QuizID)
	if err != nil {
		return SubmitResult{}, err
	}

	// Last answer per question wins; answers for unknown question ids are
	// dropped rather than graded.
	byQuestion := make(map[string]StudentAnswer, len(req.Answers))
	for _, sa := range req.Answers {
		byQuestion[sa.QuestionID] = sa
	}

	var total float64
	needsManual := false
	answers := make([]Answer, 0, len(qz.Questions))
	for _, q := range qz.Questions {
		if q.Type == TypeShortAnswer {
			needsManual = true
		}
		row := e.gradeQuestion(q, byQuestion[q.ID])
		row.AttemptID = attempt.ID
		total += row.PointsAwarded
		answers = append(answers, row)
	}

	status := StatusGraded
	if needsManual {
		status = StatusSubmitted
	}
	sub := Submission{
		AttemptID: attempt.ID,
		Answers:   answers,
		Score:     total,
		Status:    status,
		EndTime:   e.now().Unix(),
	}
	if err := e.save(ctx, sub); err != nil {
		return SubmitResult{}, err
	}

	if status == StatusGraded && e.syncer != nil {
		if err := e.syncer.Sync(ctx, attempt.QuizID); err != nil {
			// Best-effort: the grading transaction is committed; never roll
			// back because the gradebook is unreachable.
			log.Printf("gradebook sync failed: quiz=%s attempt=%s err=%v", attempt.QuizID, attempt.ID, err)
		}
	}
	return SubmitResult{Status: status, Score: total}, nil
}

// save retries once when the store reports a retryable failure; a half-done
// replacement is never left behind because SaveSubmission is all-or-nothing.
func (e *Engine) save(ctx context.Context, sub Submission) error {
	err := e.store.SaveSubmission(ctx, sub)
	if err == nil {
		return nil
	}
	if portalerr.IsKind(err, portalerr.KindTransient) || portalerr.IsKind(err, portalerr.KindIntegrity) {
		log.Printf("submission save retry: attempt=%s err=%v", sub.AttemptID, err)
		return e.store.SaveSubmission(ctx, sub)
	}
	return err
}

func (e *Engine) gradeQuestion(q Question, sa StudentAnswer) Answer {
	row := Answer{ID: e.newID(), QuestionID: q.ID}
	switch q.Type {
	case TypeMultipleChoice, TypeTrueFalse:
		row.SelectedOptionID = sa.OptionID
		for _, opt := range q.Options {
			if opt.ID == sa.OptionID && opt.Correct {
				row.Correct = true
				row.PointsAwarded = q.Points
				break
			}
		}
	case TypeShortAnswer:
		// Always deferred to manual grading.
		row.Text = sa.Text
	}
	return row
}
