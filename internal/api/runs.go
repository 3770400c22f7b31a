package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-swh/internal/runs"
)

// handleListRuns returns recorded runs, newest first.
//
// Query parameters: building, status, limit, offset.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "run store not configured")
		return
	}

	q := r.URL.Query()
	filter := runs.Filter{
		Building: q.Get("building"),
		Status:   runs.Status(q.Get("status")),
	}
	switch filter.Status {
	case "", runs.StatusRunning, runs.StatusSucceeded, runs.StatusFailed:
	default:
		writeBadRequest(w, "status must be running, succeeded or failed")
		return
	}

	var err error
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		writeBadRequest(w, "limit must be an integer")
		return
	}
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		writeBadRequest(w, "offset must be an integer")
		return
	}

	result, err := s.runs.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("listing sizing runs failed", "error", err)
		writeRunError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetRun returns one run, including its stored result.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "run store not configured")
		return
	}

	run, err := s.runs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRunError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
