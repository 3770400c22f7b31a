package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/nerrad567/gray-logic-swh/internal/building"
	"github.com/nerrad567/gray-logic-swh/internal/runs"
	"github.com/nerrad567/gray-logic-swh/internal/standards"
)

// handleSizing sizes the building document in the request body.
// The body is JSON unless Content-Type names YAML.
func (s *Server) handleSizing(w http.ResponseWriter, r *http.Request) {
	format, err := formatForContentType(r.Header.Get("Content-Type"))
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	b, err := building.Parse(data, format)
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	report, err := s.sizer.SizeBuilding(r.Context(), b, runs.SourceAPI)
	if err != nil {
		runID := ""
		if report != nil {
			runID = report.RunID
		}
		s.logger.Warn("sizing request failed", "building", b.Name, "run_id", runID, "error", err)
		writeSizingError(w, err, runID)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func formatForContentType(contentType string) (standards.Format, error) {
	if contentType == "" {
		return standards.FormatJSON, nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %s", standards.ErrUnsupportedFormat, contentType)
	}
	switch mediaType {
	case "application/json":
		return standards.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return standards.FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", standards.ErrUnsupportedFormat, mediaType)
	}
}
