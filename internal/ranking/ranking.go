// Package ranking computes per-class term rankings with competition-style
// tie handling (1-2-2-4).
package ranking

import (
	"sort"

	"github.com/adesua/portal/internal/scores"
)

// Entry is one roster member's position in the class.
type Entry struct {
	StudentID string  `json:"student_id"`
	Total     float64 `json:"total"`
	Rank      int     `json:"rank"`
}

// Result is a full class ranking for one term.
type Result struct {
	Entries []Entry `json:"scores"`
	// ClassSize counts the active roster, not the students with score rows.
	ClassSize int `json:"totalClassSize"`
	// UniqueStudents counts distinct students with at least one score row;
	// callers use ClassSize-UniqueStudents to find not-yet-graded students.
	UniqueStudents int `json:"uniqueStudents"`
}

// Rank builds the ranking from the active roster and the term's score rows.
// Every roster member appears, with total 0 when no rows exist. Equal totals
// share a rank and the next distinct total resumes at position+1. There is
// deliberately no secondary tie-break key.
func Rank(roster []string, rows []scores.Row) Result {
	totals := make(map[string]float64, len(roster))
	scored := map[string]bool{}
	for _, id := range roster {
		totals[id] = 0
	}
	for _, r := range rows {
		if _, ok := totals[r.StudentID]; !ok {
			continue // not on the active roster
		}
		totals[r.StudentID] += r.Total
		scored[r.StudentID] = true
	}

	entries := make([]Entry, 0, len(roster))
	for _, id := range roster {
		entries = append(entries, Entry{StudentID: id, Total: totals[id]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})
	for i := range entries {
		if i > 0 && entries[i].Total == entries[i-1].Total {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}

	return Result{
		Entries:        entries,
		ClassSize:      len(roster),
		UniqueStudents: len(scored),
	}
}
