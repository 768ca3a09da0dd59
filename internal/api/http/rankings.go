package http

import (
	"net/http"

	"github.com/adesua/portal/internal/ranking"
)

// GET /class-rankings?classId=&termId=
func ClassRankingsHandler(svc *ranking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		classID := r.URL.Query().Get("classId")
		termID := r.URL.Query().Get("termId")
		if classID == "" || termID == "" {
			http.Error(w, "classId and termId required", http.StatusBadRequest)
			return
		}
		res, err := svc.ClassRanking(r.Context(), classID, termID)
		if err != nil {
			writeError(w, err)
			return
		}
		if res.Entries == nil {
			res.Entries = []ranking.Entry{}
		}
		writeJSON(w, http.StatusOK, res)
	}
}
