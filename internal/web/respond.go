package web

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/davidkarpay/library-docent/internal/docent"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondDocentError maps core errors onto HTTP statuses: missing parameter
// is the caller's fault, a failed lookup is absence, an unloadable library
// is service unavailability.
func respondDocentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, docent.ErrMissingParameter):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, docent.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, docent.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
