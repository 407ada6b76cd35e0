package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Error kinds surfaced to clients. These are stable wire values; the
// detail string is for humans.
const (
	errKindValidation     = "validation_error"
	errKindAuthentication = "authentication_failure"
	errKindAuthorization  = "authorization_failure"
	errKindNotFound       = "not_found"
	errKindConflict       = "conflict"
	errKindInternal       = "internal"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, kind, detail string) {
	respondJSON(w, status, errorResponse{Error: kind, Detail: detail})
}

func badRequest(w http.ResponseWriter, detail string) {
	respondError(w, http.StatusBadRequest, errKindValidation, detail)
}

func unauthorized(w http.ResponseWriter, detail string) {
	respondError(w, http.StatusUnauthorized, errKindAuthentication, detail)
}

func forbidden(w http.ResponseWriter, detail string) {
	respondError(w, http.StatusForbidden, errKindAuthorization, detail)
}

func notFound(w http.ResponseWriter, detail string) {
	respondError(w, http.StatusNotFound, errKindNotFound, detail)
}

func conflict(w http.ResponseWriter, detail string) {
	respondError(w, http.StatusConflict, errKindConflict, detail)
}

// internalError logs the underlying cause and returns an opaque 500.
func internalError(w http.ResponseWriter, err error) {
	log.Printf("internal error: %v", err)
	respondError(w, http.StatusInternalServerError, errKindInternal, "internal server error")
}

// urlID parses the named chi URL parameter as a numeric id.
func urlID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
