package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/adesua/portal/internal/auth/middleware"
	"github.com/adesua/portal/internal/quiz"
	"github.com/adesua/portal/internal/rbac"
)

type submitAssessmentReq struct {
	AttemptID string               `json:"attemptId" validate:"required"`
	Answers   []quiz.StudentAnswer `json:"answers" validate:"dive"`
}

type submitAssessmentResp struct {
	Success bool    `json:"success"`
	Status  string  `json:"status"`
	Score   float64 `json:"score"`
}

// POST /assessments/submit
func SubmitAssessmentHandler(engine *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitAssessmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
			return
		}

		// Students may only submit their own attempts; staff may submit on a
		// student's behalf (manual resubmission).
		studentID := ""
		if rbac.RoleFromContext(r.Context()) == "student" {
			studentID = authmw.SubjectFromContext(r.Context())
		}

		res, err := engine.Submit(r.Context(), quiz.SubmitRequest{
			AttemptID: req.AttemptID,
			StudentID: studentID,
			Answers:   req.Answers,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, submitAssessmentResp{Success: true, Status: res.Status, Score: res.Score})
	}
}

// GET /assessments/attempts/{attemptID}
func GetAttemptHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "attemptID")
		a, err := store.GetAttempt(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if rbac.RoleFromContext(r.Context()) == "student" &&
			a.StudentID != authmw.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}
