package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nerrad567/gray-logic-swh/internal/batch"
	"github.com/nerrad567/gray-logic-swh/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-swh/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-swh/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-swh/internal/runs"
	"github.com/nerrad567/gray-logic-swh/internal/standards"
	"github.com/nerrad567/gray-logic-swh/internal/swh"
	_ "github.com/nerrad567/gray-logic-swh/migrations" // registers embedded migrations
)

const clinicJSON = `{
  "name": "Clinic",
  "building_type": "Office",
  "spaces": [{
    "name": "Core",
    "space_type": "Demand",
    "floor_area_m2": 9.290304,
    "surfaces": [{"centroid": {"x": 0, "y": 0, "z": 0}}, {"centroid": {"x": 0, "y": 0, "z": 3}}]
  }]
}`

const clinicYAML = `name: Clinic
building_type: Office
spaces:
  - name: Core
    space_type: Demand
    floor_area_m2: 9.290304
    surfaces:
      - centroid: {x: 0, y: 0, z: 0}
`

type failingCheck struct{}

func (failingCheck) HealthCheck(context.Context) error { return errors.New("connection refused") }

func testTables(t *testing.T) *standards.Tables {
	t.Helper()
	values := make([]float64, standards.HoursPerDay)
	for i := range values {
		values[i] = 1.0 / 24
	}
	var schedules []standards.Schedule
	for _, d := range standards.DayTypes() {
		schedules = append(schedules, standards.Schedule{Name: "Uniform", DayTypes: d.String(), Values: values})
	}
	temp := 60.0
	tables, err := standards.NewTables(standards.Document{
		SpaceTypes: []standards.SpaceType{
			{BuildingType: "Office", SpaceType: "Demand", PeakFlowPerArea: 1, TargetTemperature: &temp, Schedule: "Uniform"},
			{BuildingType: "Office", SpaceType: "Broken", PeakFlowPerArea: 1, TargetTemperature: &temp, Schedule: "Missing"},
		},
		Schedules: schedules,
	})
	if err != nil {
		t.Fatalf("NewTables: %v", err)
	}
	return tables
}

// testServer creates a Server backed by a real Runner and in-memory SQLite.
func testServer(t *testing.T) (*Server, *database.DB) {
	t.Helper()

	db, err := database.Open(database.Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	sizer, err := swh.NewSizer(testTables(t), swh.DefaultOptions())
	if err != nil {
		t.Fatalf("NewSizer: %v", err)
	}
	repo := runs.NewSQLiteRepository(db.DB)
	runner := batch.NewRunner(sizer, batch.Config{Workers: 1})
	runner.SetRepository(repo)

	srv, err := New(Deps{
		Config:  config.APIConfig{Host: "127.0.0.1", MaxBodyBytes: 4096},
		Logger:  logging.Discard(),
		Sizer:   runner,
		Runs:    repo,
		Version: "test",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return srv, db
}

func do(t *testing.T, h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()
	var e Error
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return e
}

func TestNew_MissingDeps(t *testing.T) {
	if _, err := New(Deps{}); err == nil {
		t.Error("New() without logger should fail")
	}
	if _, err := New(Deps{Logger: logging.Discard()}); err == nil {
		t.Error("New() without sizer should fail")
	}
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv, _ := testServer(t)
		rec := do(t, srv.Handler(), http.MethodGet, "/api/v1/health", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header not set")
		}
	})

	t.Run("degraded", func(t *testing.T) {
		srv, db := testServer(t)
		srv.checks = map[string]HealthChecker{"database": db, "mqtt": failingCheck{}}
		rec := do(t, srv.Handler(), http.MethodGet, "/api/v1/health", "", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
		var body struct {
			Status       string            `json:"status"`
			Dependencies map[string]string `json:"dependencies"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body.Status != "degraded" || body.Dependencies["database"] != "ok" || body.Dependencies["mqtt"] != "connection refused" {
			t.Errorf("body = %+v", body)
		}
	})
}

func TestSizing(t *testing.T) {
	srv, _ := testServer(t)
	h := srv.Handler()

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"json", "application/json", clinicJSON},
		{"json default", "", clinicJSON},
		{"yaml", "application/yaml; charset=utf-8", clinicYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/sizing", tt.contentType, tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}

			var report batch.Report
			if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
				t.Fatalf("decoding report: %v", err)
			}
			if report.RunID == "" {
				t.Error("report has no run ID")
			}
			if report.Result == nil || report.Result.Building != "Clinic" {
				t.Fatalf("result = %+v", report.Result)
			}
			// 9.290304 m² is 100 ft², so 100 gal/h peak.
			if got := report.Result.Tank.TotalPeakFlowGalPerHour; got < 99.99 || got > 100.01 {
				t.Errorf("total peak flow = %v, want 100", got)
			}
		})
	}
}

func TestSizing_Errors(t *testing.T) {
	srv, _ := testServer(t)
	h := srv.Handler()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantCode    string
		wantRunID   bool
	}{
		{"malformed json", "application/json", `{"name":`, http.StatusBadRequest, ErrCodeBadRequest, false},
		{"unknown field", "application/json", `{"name":"X","colour":"red"}`, http.StatusBadRequest, ErrCodeBadRequest, false},
		{"unsupported type", "text/csv", "a,b", http.StatusUnsupportedMediaType, ErrCodeUnsupportedType, false},
		{"invalid building", "application/json", `{"name":"X","spaces":[]}`, http.StatusUnprocessableEntity, ErrCodeValidation, false},
		{
			"missing schedule",
			"application/json",
			strings.Replace(clinicJSON, `"Demand"`, `"Broken"`, 1),
			http.StatusUnprocessableEntity, ErrCodeSizing, true,
		},
		{"too large", "application/json", `{"name":"` + strings.Repeat("x", 5000) + `"}`, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/sizing", tt.contentType, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			e := decodeError(t, rec)
			if e.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", e.Code, tt.wantCode)
			}
			if (e.RunID != "") != tt.wantRunID {
				t.Errorf("run_id = %q, want present=%v", e.RunID, tt.wantRunID)
			}
		})
	}
}

func TestRuns(t *testing.T) {
	srv, _ := testServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/sizing", "application/json", clinicJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("sizing status = %d", rec.Code)
	}
	var report batch.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	do(t, h, http.MethodPost, "/api/v1/sizing", "application/json", strings.Replace(clinicJSON, `"Demand"`, `"Broken"`, 1))

	t.Run("list", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/runs", "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var list runs.ListResult
		if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
			t.Fatalf("decoding list: %v", err)
		}
		if list.Total != 2 {
			t.Errorf("total = %d, want 2", list.Total)
		}
	})

	t.Run("list by status", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/runs?status=failed&limit=10", "", "")
		var list runs.ListResult
		if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
			t.Fatalf("decoding list: %v", err)
		}
		if list.Total != 1 || list.Runs[0].Status != runs.StatusFailed {
			t.Errorf("list = %+v", list)
		}
	})

	t.Run("bad filters", func(t *testing.T) {
		for _, q := range []string{"status=done", "limit=ten", "offset=x"} {
			rec := do(t, h, http.MethodGet, "/api/v1/runs?"+q, "", "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: status = %d, want 400", q, rec.Code)
			}
		}
	})

	t.Run("get", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/runs/"+report.RunID, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var run runs.Run
		if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
			t.Fatalf("decoding run: %v", err)
		}
		if run.Status != runs.StatusSucceeded || run.Source != runs.SourceAPI || len(run.Result) == 0 {
			t.Errorf("run = %+v", run)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/runs/does-not-exist", "", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestRuns_NoStore(t *testing.T) {
	sizer, err := swh.NewSizer(testTables(t), swh.DefaultOptions())
	if err != nil {
		t.Fatalf("NewSizer: %v", err)
	}
	srv, err := New(Deps{Logger: logging.Discard(), Sizer: batch.NewRunner(sizer, batch.Config{})})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	rec := do(t, srv.Handler(), http.MethodGet, "/api/v1/runs", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	sizer, err := swh.NewSizer(testTables(t), swh.DefaultOptions())
	if err != nil {
		t.Fatalf("NewSizer: %v", err)
	}
	srv, err := New(Deps{
		Config: config.APIConfig{CORS: config.CORSConfig{AllowedOrigins: []string{"https://panel.local"}}},
		Logger: logging.Discard(),
		Sizer:  batch.NewRunner(sizer, batch.Config{}),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		origin string
		want   string
	}{
		{"https://panel.local", "https://panel.local"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/sizing", nil)
		req.Header.Set("Origin", tt.origin)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("%s: preflight status = %d, want 204", tt.origin, rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("%s: Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
	}
}
