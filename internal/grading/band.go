// Package grading turns raw percentage scores into national-exam style grade
// bands and composite aggregates.
package grading

import "errors"

// ErrScoreOutOfRange is returned when a score falls outside 0..100.
// Banding fails closed rather than guessing a grade.
var ErrScoreOutOfRange = errors.New("score out of range 0..100")

// Band maps a 0..100 score to a grade band, 1 (best) to 9 (worst).
// Thresholds are inclusive lower bounds.
func Band(score float64) (int, error) {
	if score < 0 || score > 100 {
		return 0, ErrScoreOutOfRange
	}
	return band(score), nil
}

func band(score float64) int {
	switch {
	case score >= 80:
		return 1
	case score >= 70:
		return 2
	case score >= 60:
		return 3
	case score >= 55:
		return 4
	case score >= 50:
		return 5
	case score >= 45:
		return 6
	case score >= 40:
		return 7
	case score >= 35:
		return 8
	default:
		return 9
	}
}
