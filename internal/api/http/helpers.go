// Package http contains the chi handlers for the grading, ranking and quiz
// surfaces.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/adesua/portal/internal/portalerr"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), portalerr.HTTPStatus(err))
}
