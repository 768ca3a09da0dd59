package quiz

import (
	"context"
	"sync"

	"github.com/adesua/portal/internal/portalerr"
)

// Submission is the complete outcome of grading one attempt, persisted as a
// single unit.
type Submission struct {
	AttemptID string
	Answers   []Answer
	Score     float64
	Status    string
	EndTime   int64
}

// Store is the attempt/quiz persistence boundary.
type Store interface {
	// GetQuiz returns the full question set including correct options.
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	GetAttempt(ctx context.Context, id string) (Attempt, error)
	// SaveSubmission atomically replaces the attempt's answer rows and
	// updates its score, status and end time. Concurrent submissions for the
	// same attempt serialize; the last completed one wins. A failure leaves
	// the previous answer set intact.
	SaveSubmission(ctx context.Context, sub Submission) error
}

// MemoryStore is an in-memory Store for offline use and tests.
type MemoryStore struct {
	mu       sync.Mutex
	quizzes  map[string]Quiz
	attempts map[string]Attempt
	answers  map[string][]Answer // attemptID -> rows
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		quizzes:  map[string]Quiz{},
		attempts: map[string]Attempt{},
		answers:  map[string][]Answer{},
	}
}

func (m *MemoryStore) PutQuiz(q Quiz) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[q.ID] = q
}

func (m *MemoryStore) PutAttempt(a Attempt) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[a.ID] = a
}

func (m *MemoryStore) GetQuiz(_ context.Context, id string) (Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, portalerr.NotFound("quiz " + id)
	}
	return q, nil
}

func (m *MemoryStore) GetAttempt(_ context.Context, id string) (Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[id]
	if !ok {
		return Attempt{}, portalerr.NotFound("attempt " + id)
	}
	return a, nil
}

func (m *MemoryStore) SaveSubmission(_ context.Context, sub Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[sub.AttemptID]
	if !ok {
		return portalerr.NotFound("attempt " + sub.AttemptID)
	}
	m.answers[sub.AttemptID] = append([]Answer(nil), sub.Answers...)
	a.Score = sub.Score
	a.Status = sub.Status
	a.EndTime = sub.EndTime
	m.attempts[sub.AttemptID] = a
	return nil
}

// Answers returns the current answer rows of an attempt (test helper).
func (m *MemoryStore) Answers(attemptID string) []Answer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Answer(nil), m.answers[attemptID]...)
}
