package scores

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for offline use and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	rows    map[string][]Row    // termID -> rows
	rosters map[string][]string // classID -> student ids
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows:    map[string][]Row{},
		rosters: map[string][]string{},
	}
}

func (m *MemoryStore) AddScore(termID string, r Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[termID] = append(m.rows[termID], r)
}

func (m *MemoryStore) SetRoster(classID string, studentIDs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosters[classID] = append([]string(nil), studentIDs...)
}

func (m *MemoryStore) ReadScores(_ context.Context, studentIDs []string, termID string) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := map[string]bool{}
	for _, id := range studentIDs {
		want[id] = true
	}
	var out []Row
	for _, r := range m.rows[termID] {
		if want[r.StudentID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) ReadRoster(_ context.Context, classID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.rosters[classID]...), nil
}
