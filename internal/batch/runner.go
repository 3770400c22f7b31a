package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/cheggaaa/pb.v1"

	"github.com/nerrad567/gray-logic-swh/internal/building"
	"github.com/nerrad567/gray-logic-swh/internal/runs"
	"github.com/nerrad567/gray-logic-swh/internal/swh"
)

const (
	dirPermissions  = 0750
	filePermissions = 0600

	// ArtifactName is the file written per building under the output directory.
	ArtifactName = "sizing.json"
)

// ErrArtifactPath is returned when a building name would place its artifact
// outside its own directory under the output directory.
var ErrArtifactPath = errors.New("artifact path outside output directory")

// Logger is the logging interface used by the Runner.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Publisher delivers sizing results to subscribers. *mqtt.Client satisfies it.
type Publisher interface {
	PublishSizing(building string, result any) error
	PublishFailure(building string, sizingErr error) error
}

// MetricsWriter records sizing metrics. *influxdb.Client satisfies it.
type MetricsWriter interface {
	WriteSizing(result *swh.Result)
	WriteDemandProfile(building string, profile *swh.Profile)
}

// Config holds the Runner settings, usually from the batch config section.
type Config struct {
	// Workers is the worker pool size. Zero or less means MaxParallelism().
	Workers int

	// OutputDir receives <building>/sizing.json. Empty disables artifacts.
	OutputDir string

	// Progress shows a progress bar on ProgressOutput during Run.
	Progress       bool
	ProgressOutput io.Writer
}

// Report is the artifact and API payload of one sized building.
type Report struct {
	RunID         string            `json:"run_id,omitempty"`
	Result        *swh.Result       `json:"result"`
	ZoneEquipment []ComponentReport `json:"zone_equipment,omitempty"`
}

// Outcome is the result of one building file in a batch.
type Outcome struct {
	Path     string
	Building string
	RunID    string
	Report   *Report
	Artifact string
	Err      error
}

// Runner sizes buildings and records each sizing as a run.
type Runner struct {
	sizer     *swh.Sizer
	cfg       Config
	repo      runs.Repository
	publisher Publisher
	metrics   MetricsWriter
	logger    Logger
}

// NewRunner creates a Runner around a configured Sizer.
// Persistence, publishing and metrics are optional and set separately.
func NewRunner(sizer *swh.Sizer, cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = MaxParallelism()
	}
	if cfg.ProgressOutput == nil {
		cfg.ProgressOutput = os.Stderr
	}
	return &Runner{sizer: sizer, cfg: cfg, logger: noopLogger{}}
}

// SetRepository sets the run store.
func (r *Runner) SetRepository(repo runs.Repository) { r.repo = repo }

// SetPublisher sets the result publisher.
func (r *Runner) SetPublisher(p Publisher) { r.publisher = p }

// SetMetrics sets the metrics writer.
func (r *Runner) SetMetrics(m MetricsWriter) { r.metrics = m }

// SetLogger sets the logger.
func (r *Runner) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	r.logger = logger
}

// Workers returns the worker pool size.
func (r *Runner) Workers() int { return r.cfg.Workers }

// MaxParallelism returns the smaller of GOMAXPROCS and the CPU count.
func MaxParallelism() int {
	maxProcs := runtime.GOMAXPROCS(0)
	numCPU := runtime.NumCPU()
	if maxProcs < numCPU {
		return maxProcs
	}
	return numCPU
}

// Run sizes every building file in paths using the worker pool.
//
// Outcomes are returned in the order of paths. A building that fails
// yields an Outcome with Err set and does not affect the others. When ctx
// is cancelled no further files are dispatched; their outcomes carry the
// context error, which Run also returns.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(paths))
	for i, p := range paths {
		outcomes[i].Path = p
	}
	if len(paths) == 0 {
		return outcomes, nil
	}

	var bar *pb.ProgressBar
	if r.cfg.Progress {
		bar = pb.New(len(paths))
		bar.Output = r.cfg.ProgressOutput
		bar.ShowTimeLeft = false
		bar.Start()
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = r.runFile(ctx, paths[i])
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}

	dispatched := 0
dispatch:
	for i := range paths {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
			dispatched++
		}
	}
	close(jobs)
	wg.Wait()

	if bar != nil {
		bar.Finish()
	}

	failed := 0
	for i := range outcomes {
		if i >= dispatched {
			outcomes[i].Err = ctx.Err()
		}
		if outcomes[i].Err != nil {
			failed++
		}
	}
	r.logger.Info("batch sizing finished",
		"buildings", len(paths),
		"dispatched", dispatched,
		"failed", failed,
		"workers", r.cfg.Workers,
	)

	if dispatched < len(paths) {
		return outcomes, ctx.Err()
	}
	return outcomes, nil
}

func (r *Runner) runFile(ctx context.Context, path string) Outcome {
	out := Outcome{Path: path}

	b, err := building.Load(path)
	if err != nil {
		r.logger.Warn("building load failed", "path", path, "error", err)
		out.Err = err
		return out
	}
	out.Building = b.Name

	var persist func(*Report) error
	if r.cfg.OutputDir != "" {
		persist = func(report *Report) error {
			artifact, err := r.writeArtifact(b.Name, report)
			out.Artifact = artifact
			return err
		}
	}

	report, err := r.sizeBuilding(ctx, b, runs.SourceBatch, persist)
	if report != nil {
		out.RunID = report.RunID
	}
	if err != nil {
		out.Err = err
		return out
	}
	out.Report = report
	return out
}

// SizeBuilding sizes one building, records the run and publishes the result.
//
// The returned Report is non-nil whenever a run record was created, so the
// caller can find the run ID of a failed sizing.
//
// Returns:
//   - *Report: Sizing result and zone equipment rule outcomes
//   - error: Sizing failure (swh.ErrData, swh.ErrDomain) or a run store failure
func (r *Runner) SizeBuilding(ctx context.Context, b *building.Building, source runs.Source) (*Report, error) {
	return r.sizeBuilding(ctx, b, source, nil)
}

// sizeBuilding runs persist, if set, after sizing and before the run is
// completed. A persist error fails the run like a sizing error.
func (r *Runner) sizeBuilding(ctx context.Context, b *building.Building, source runs.Source, persist func(*Report) error) (*Report, error) {
	report := &Report{}

	if r.repo != nil {
		run := &runs.Run{Building: b.Name, BuildingType: b.BuildingType, Source: source}
		if err := r.repo.Create(ctx, run); err != nil {
			return nil, fmt.Errorf("recording run: %w", err)
		}
		report.RunID = run.ID
	}

	result, err := r.sizer.Size(b)
	if err != nil {
		r.fail(ctx, b.Name, report.RunID, err)
		return report, err
	}
	report.Result = result
	report.ZoneEquipment = applyZoneRules(b)

	if persist != nil {
		if err := persist(report); err != nil {
			r.fail(ctx, b.Name, report.RunID, err)
			return report, err
		}
	}

	if r.repo != nil {
		if err := r.repo.Complete(ctx, report.RunID, report); err != nil {
			return report, fmt.Errorf("completing run: %w", err)
		}
	}

	if r.publisher != nil {
		if err := r.publisher.PublishSizing(b.Name, report); err != nil {
			r.logger.Warn("publishing sizing result failed", "building", b.Name, "error", err)
		}
	}
	if r.metrics != nil {
		r.metrics.WriteSizing(result)
		r.metrics.WriteDemandProfile(b.Name, result.Profile)
	}

	r.logger.Debug("building sized", "building", b.Name, "run_id", report.RunID, "source", string(source))
	return report, nil
}

func (r *Runner) fail(ctx context.Context, name, runID string, cause error) {
	r.logger.Warn("building sizing failed", "building", name, "run_id", runID, "error", cause)

	if r.repo != nil && runID != "" {
		if err := r.repo.Fail(ctx, runID, cause); err != nil && !errors.Is(err, runs.ErrRunFinished) {
			r.logger.Error("recording failed run", "run_id", runID, "error", err)
		}
	}
	if r.publisher != nil {
		if err := r.publisher.PublishFailure(name, cause); err != nil {
			r.logger.Warn("publishing sizing failure failed", "building", name, "error", err)
		}
	}
}

func (r *Runner) writeArtifact(name string, report *Report) (string, error) {
	root := filepath.Clean(r.cfg.OutputDir)
	dir := filepath.Join(root, name)
	if filepath.Dir(dir) != root || dir == root {
		return "", fmt.Errorf("%w: building %q", ErrArtifactPath, name)
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding sizing artifact: %w", err)
	}

	path := filepath.Join(dir, ArtifactName)
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return "", fmt.Errorf("writing sizing artifact: %w", err)
	}
	return path, nil
}
