package http

import (
	"errors"
	"net/http"

	authmw "github.com/adesua/portal/internal/auth/middleware"
	"github.com/adesua/portal/internal/grading"
	"github.com/adesua/portal/internal/rbac"
)

// GET /aggregates?studentId=&termId=&strict=
// Students see their own aggregate; staff can query any student.
func StudentAggregateHandler(svc *grading.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := r.URL.Query().Get("studentId")
		termID := r.URL.Query().Get("termId")

		if rbac.RoleFromContext(r.Context()) == "student" {
			sub := authmw.SubjectFromContext(r.Context())
			if studentID == "" {
				studentID = sub
			}
			if studentID != sub {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}
		if studentID == "" || termID == "" {
			http.Error(w, "studentId and termId required", http.StatusBadRequest)
			return
		}

		var opts []grading.AggregateOption
		if r.URL.Query().Get("strict") == "true" {
			opts = append(opts, grading.WithStrict())
		}
		agg, err := svc.TermAggregate(r.Context(), studentID, termID, opts...)
		if errors.Is(err, grading.ErrIncompleteAggregate) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, agg)
	}
}
