// Package quiz holds the online-quiz attempt state machine and its
// authoritative auto-grading engine.
package quiz

// Question types. short_answer is never auto-graded; its presence anywhere in
// a quiz keeps every submission of that quiz in "submitted" pending manual
// review.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeTrueFalse      = "true_false"
	TypeShortAnswer    = "short_answer"
)

// Attempt statuses.
const (
	StatusInProgress = "in_progress"
	StatusSubmitted  = "submitted"
	StatusGraded     = "graded"
)

type Option struct {
	ID      string
	Correct bool
}

type Question struct {
	ID      string
	Type    string
	Points  float64
	Options []Option
}

type Quiz struct {
	ID        string
	Questions []Question
}

// Attempt is one student's instance of taking a quiz. QuizID is immutable
// once the attempt exists and is the only trusted link to the question set.
type Attempt struct {
	ID        string  `json:"id"`
	StudentID string  `json:"student_id"`
	QuizID    string  `json:"quiz_id"`
	Status    string  `json:"status"`
	Score     float64 `json:"score"`
	EndTime   int64   `json:"end_time,omitempty"` // unix seconds, 0 until submitted
}

// Answer is the graded record for one question of one attempt. Exactly one
// row exists per question per attempt; the set is replaced atomically on
// every submission.
type Answer struct {
	ID               string  `json:"id"`
	AttemptID        string  `json:"attempt_id"`
	QuestionID       string  `json:"question_id"`
	SelectedOptionID string  `json:"selected_option_id,omitempty"`
	Text             string  `json:"text,omitempty"`
	Correct          bool    `json:"is_correct"`
	PointsAwarded    float64 `json:"points_awarded"`
}

// StudentAnswer is the untrusted client payload for one question. Everything
// that matters for grading (points, correctness) is re-derived from the
// stored question set.
type StudentAnswer struct {
	QuestionID string `json:"questionId" validate:"required"`
	OptionID   string `json:"optionId,omitempty"`
	Text       string `json:"text,omitempty"`
}
