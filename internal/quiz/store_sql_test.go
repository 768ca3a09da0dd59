package quiz

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/adesua/portal/internal/db"
	"github.com/adesua/portal/internal/portalerr"
)

func openQuizDB(t *testing.T) (*sql.DB, *SQLStore) {
	t.Helper()
	dbh, err := db.Open(context.Background(), db.DriverSQLite,
		"file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return dbh, NewSQLStore(dbh)
}

// one quiz with an MC question, a TF question and a short-answer question,
// plus an in-progress attempt for stu-1.
func seedQuizDB(t *testing.T, dbh *sql.DB) {
	t.Helper()
	stmts := []string{
		`INSERT INTO quizzes (id, title, created_at) VALUES ('quiz-1', 'Integers', 0)`,
		`INSERT INTO quiz_questions (id, quiz_id, qtype, points, position) VALUES
		   ('q1', 'quiz-1', 'multiple_choice', 5, 1),
		   ('q2', 'quiz-1', 'true_false', 3, 2),
		   ('q3', 'quiz-1', 'short_answer', 10, 3)`,
		`INSERT INTO quiz_options (id, question_id, is_correct) VALUES
		   ('q1a', 'q1', 0), ('q1b', 'q1', 1), ('q1c', 'q1', 0),
		   ('q2t', 'q2', 1), ('q2f', 'q2', 0)`,
		`INSERT INTO quiz_attempts (id, student_id, quiz_id, status, score, started_at)
		   VALUES ('att-1', 'stu-1', 'quiz-1', 'in_progress', 0, 0)`,
	}
	for _, q := range stmts {
		if _, err := dbh.Exec(q); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestSQLStoreGetQuiz(t *testing.T) {
	dbh, st := openQuizDB(t)
	seedQuizDB(t, dbh)

	qz, err := st.GetQuiz(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qz.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(qz.Questions))
	}
	for i, want := range []string{"q1", "q2", "q3"} {
		if qz.Questions[i].ID != want {
			t.Errorf("question[%d] = %q, want %q (position order)", i, qz.Questions[i].ID, want)
		}
	}

	q1 := qz.Questions[0]
	if q1.Type != TypeMultipleChoice || q1.Points != 5 || len(q1.Options) != 3 {
		t.Errorf("q1 = %+v", q1)
	}
	for _, o := range q1.Options {
		if o.Correct != (o.ID == "q1b") {
			t.Errorf("q1 option %s correct=%v", o.ID, o.Correct)
		}
	}
	if q3 := qz.Questions[2]; q3.Type != TypeShortAnswer || len(q3.Options) != 0 {
		t.Errorf("q3 = %+v, want short answer with no options", q3)
	}
}

func TestSQLStoreGetQuizNotFound(t *testing.T) {
	_, st := openQuizDB(t)
	if _, err := st.GetQuiz(context.Background(), "nope"); !portalerr.IsKind(err, portalerr.KindNotFound) {
		t.Fatalf("got %v, want not-found", err)
	}
}

func TestSQLStoreGetAttempt(t *testing.T) {
	dbh, st := openQuizDB(t)
	seedQuizDB(t, dbh)

	a, err := st.GetAttempt(context.Background(), "att-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.StudentID != "stu-1" || a.QuizID != "quiz-1" || a.Status != StatusInProgress || a.EndTime != 0 {
		t.Errorf("attempt = %+v", a)
	}

	if _, err := st.GetAttempt(context.Background(), "nope"); !portalerr.IsKind(err, portalerr.KindNotFound) {
		t.Fatalf("got %v, want not-found", err)
	}
}

// Drives the engine against the SQL store: submit, then resubmit with
// different answers, and check the transactional replacement left exactly one
// row per question scored against the latest selection.
func TestSQLStoreSubmitAndResubmit(t *testing.T) {
	dbh, st := openQuizDB(t)
	seedQuizDB(t, dbh)
	ctx := context.Background()
	e := NewEngine(st, &fakeSyncer{}, WithClock(func() time.Time { return time.Unix(1700000000, 0) }))

	res, err := e.Submit(ctx, SubmitRequest{
		AttemptID: "att-1",
		StudentID: "stu-1",
		Answers: []StudentAnswer{
			{QuestionID: "q1", OptionID: "q1b"},
			{QuestionID: "q2", OptionID: "q2f"},
			{QuestionID: "q3", Text: "osmosis"},
		},
	})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if res.Status != StatusSubmitted || res.Score != 5 {
		t.Errorf("got %+v, want submitted/5 (short answer pending)", res)
	}

	res, err = e.Submit(ctx, SubmitRequest{
		AttemptID: "att-1",
		Answers: []StudentAnswer{
			{QuestionID: "q1", OptionID: "q1a"},
			{QuestionID: "q2", OptionID: "q2t"},
		},
	})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if res.Score != 3 {
		t.Errorf("score = %v, want 3 (q1 now wrong, q2 now right)", res.Score)
	}

	var n int
	if err := dbh.QueryRow(`SELECT COUNT(*) FROM quiz_answers WHERE attempt_id='att-1'`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("answer rows = %d, want exactly one per question", n)
	}
	var sel string
	var correct bool
	if err := dbh.QueryRow(
		`SELECT selected_option_id, is_correct FROM quiz_answers WHERE attempt_id='att-1' AND question_id='q1'`).
		Scan(&sel, &correct); err != nil {
		t.Fatal(err)
	}
	if sel != "q1a" || correct {
		t.Errorf("q1 row not superseded: selected=%q correct=%v", sel, correct)
	}

	a, err := st.GetAttempt(ctx, "att-1")
	if err != nil {
		t.Fatal(err)
	}
	if a.Status != StatusSubmitted || a.Score != 3 || a.EndTime != 1700000000 {
		t.Errorf("attempt row not updated in the same transaction: %+v", a)
	}
}

func TestSQLStoreSaveSubmissionUnknownAttempt(t *testing.T) {
	dbh, st := openQuizDB(t)
	seedQuizDB(t, dbh)

	err := st.SaveSubmission(context.Background(), Submission{
		AttemptID: "nope",
		Status:    StatusGraded,
		Answers:   []Answer{{ID: "a1", AttemptID: "nope", QuestionID: "q1"}},
	})
	if !portalerr.IsKind(err, portalerr.KindNotFound) {
		t.Fatalf("got %v, want not-found", err)
	}

	var n int
	if err := dbh.QueryRow(`SELECT COUNT(*) FROM quiz_answers`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("answer rows = %d, want 0 (transaction rolled back)", n)
	}
}
