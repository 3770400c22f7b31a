package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/gray-logic-swh/internal/building"
	"github.com/nerrad567/gray-logic-swh/internal/runs"
	"github.com/nerrad567/gray-logic-swh/internal/standards"
	"github.com/nerrad567/gray-logic-swh/internal/swh"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// Common error codes.
const (
	ErrCodeBadRequest      = "bad_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeInternal        = "internal_error"
	ErrCodeValidation      = "validation_error"
	ErrCodeSizing          = "sizing_error"
	ErrCodeTooLarge        = "payload_too_large"
	ErrCodeUnsupportedType = "unsupported_media_type"
	ErrCodeUnavailable     = "unavailable"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeDocumentError maps a building document load error to a response.
func writeDocumentError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "building document too large")
	case errors.Is(err, standards.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, ErrCodeUnsupportedType, err.Error())
	case errors.Is(err, building.ErrInvalidBuilding):
		writeError(w, http.StatusUnprocessableEntity, ErrCodeValidation, err.Error())
	default:
		writeBadRequest(w, err.Error())
	}
}

// writeSizingError maps a sizing failure to a response. Data and domain
// errors are the client's to fix; anything else is internal.
func writeSizingError(w http.ResponseWriter, err error, runID string) {
	status, code := http.StatusInternalServerError, ErrCodeInternal
	if errors.Is(err, swh.ErrData) || errors.Is(err, swh.ErrDomain) {
		status, code = http.StatusUnprocessableEntity, ErrCodeSizing
	}
	writeJSON(w, status, Error{Status: status, Code: code, Message: err.Error(), RunID: runID})
}

// writeRunError maps a run store error to a response.
func writeRunError(w http.ResponseWriter, err error) {
	if errors.Is(err, runs.ErrRunNotFound) {
		writeNotFound(w, "sizing run not found")
		return
	}
	writeInternalError(w, "reading sizing runs failed")
}
