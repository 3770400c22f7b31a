// swhsize sizes the service water heating system of buildings: storage tank
// volume, heater capacity and rating, and distribution pump head.
//
// Usage:
//
//	swhsize [flags] batch <building files or directories>...
//	swhsize [flags] serve
//	swhsize version
//
// batch sizes every building document given and writes
// <output>/<building>/sizing.json for each. serve exposes the HTTP API and,
// when MQTT is enabled, sizes documents published to graylogic/swh/request/+.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/pflag"

	_ "github.com/nerrad567/gray-logic-swh/migrations"

	"github.com/nerrad567/gray-logic-swh/internal/api"
	"github.com/nerrad567/gray-logic-swh/internal/batch"
	"github.com/nerrad567/gray-logic-swh/internal/building"
	"github.com/nerrad567/gray-logic-swh/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-swh/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-swh/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-swh/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-swh/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-swh/internal/runs"
	"github.com/nerrad567/gray-logic-swh/internal/standards"
	"github.com/nerrad567/gray-logic-swh/internal/swh"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// errBuildingsFailed is returned by batch when any building failed.
var errBuildingsFailed = errors.New("buildings failed")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the command-line flags.
type options struct {
	configPath string
	workers    int
	outputDir  string
	noProgress bool
	autoPump   bool
}

// run parses args and executes the selected command.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - args: Command-line arguments without the program name
//   - stdout: Destination of the batch summary and version output
//
// Returns:
//   - error: nil on success, or error describing failure
func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts := options{configPath: getConfigPath()}

	flags := pflag.NewFlagSet("swhsize", pflag.ContinueOnError)
	flags.StringVarP(&opts.configPath, "config", "c", opts.configPath, "Path to the YAML configuration file")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Concurrent sizing jobs (overrides batch.workers)")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "Artifact directory (overrides batch.output_dir)")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Hide the batch progress bar")
	flags.BoolVar(&opts.autoPump, "auto-pump", false, "Estimate pump head from building geometry")
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("missing command: batch, serve or version")
	}

	command, rest := flags.Arg(0), flags.Args()[1:]
	switch command {
	case "version":
		fmt.Fprintf(stdout, "swhsize %s (commit %s, built %s)\n", version, commit, date)
		return nil
	case "batch":
		if len(rest) == 0 {
			return fmt.Errorf("batch: no building files given")
		}
	case "serve":
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlagOverrides(cfg, flags, opts)

	log := logging.New(cfg.Logging, version)
	log.Info("starting swhsize",
		"command", command,
		"version", version,
		"commit", commit,
		"config", opts.configPath,
	)

	svc, err := openServices(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.close(log)

	if command == "batch" {
		return runBatch(ctx, svc.runner, rest, stdout)
	}
	return serve(ctx, cfg, svc, log)
}

// getConfigPath returns the configuration file path.
func getConfigPath() string {
	if path := os.Getenv("GRAYLOGIC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// applyFlagOverrides applies flags that were set explicitly over cfg.
func applyFlagOverrides(cfg *config.Config, flags *pflag.FlagSet, opts options) {
	if flags.Changed("workers") {
		cfg.Batch.Workers = opts.workers
	}
	if flags.Changed("output") {
		cfg.Batch.OutputDir = opts.outputDir
	}
	if opts.noProgress {
		cfg.Batch.Progress = false
	}
	if opts.autoPump {
		cfg.Sizing.Pump.AutoSize = true
	}
}

// sizingOptions maps the sizing config section onto swh.Options.
func sizingOptions(cfg config.SizingConfig) swh.Options {
	return swh.Options{
		DefaultTargetTemperatureC: cfg.DefaultTargetTemperatureC,
		MinTargetTemperatureC:     cfg.MinTargetTemperatureC,
		SupplyWaterTemperatureC:   cfg.SupplyWaterTemperatureC,
		AmbientTemperatureC:       cfg.AmbientTemperatureC,
		TankUValue:                cfg.TankUValue,
		ExposureThreshold:         cfg.ExposureThreshold,
		TankHeightToRadius:        cfg.TankHeightToRadius,
		Pipe: swh.PipeOptions{
			DiameterM:          cfg.Pipe.DiameterM,
			KinematicViscosity: cfg.Pipe.KinematicViscosity,
			RoughnessM:         cfg.Pipe.RoughnessM,
		},
		FuelType:                 cfg.FuelType,
		AutoSizePump:             cfg.Pump.AutoSize,
		FixedPumpHeadPa:          cfg.Pump.HeadPa,
		FixedPumpMotorEfficiency: cfg.Pump.MotorEfficiency,
	}
}

// services holds the opened infrastructure and the configured runner.
type services struct {
	db     *database.DB
	repo   *runs.SQLiteRepository
	mqtt   *mqtt.Client
	influx *influxdb.Client
	runner *batch.Runner
}

// openServices loads the standards tables, opens the run store, connects
// the optional MQTT and InfluxDB clients and wires them into a Runner.
// On error everything opened so far is closed.
func openServices(ctx context.Context, cfg *config.Config, log *logging.Logger) (_ *services, err error) {
	svc := &services{}
	defer func() {
		if err != nil {
			svc.close(log)
		}
	}()

	tables, err := standards.Load(cfg.Standards.Path)
	if err != nil {
		return nil, fmt.Errorf("loading standards: %w", err)
	}
	log.Info("standards loaded",
		"path", cfg.Standards.Path,
		"space_types", tables.SpaceTypeCount(),
		"schedules", tables.ScheduleCount(),
	)

	sizer, err := swh.NewSizer(tables, sizingOptions(cfg.Sizing))
	if err != nil {
		return nil, fmt.Errorf("configuring sizer: %w", err)
	}
	sizer.SetLogger(log)

	svc.db, err = database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := svc.db.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	svc.repo = runs.NewSQLiteRepository(svc.db.DB)
	log.Info("run store ready", "path", cfg.Database.Path)

	if cfg.MQTT.Enabled {
		svc.mqtt, err = mqtt.Connect(cfg.MQTT, mqtt.ServiceInfo{
			Version:    version,
			SpaceTypes: tables.SpaceTypeCount(),
			Schedules:  tables.ScheduleCount(),
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to MQTT: %w", err)
		}
		svc.mqtt.SetLogger(log)
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	}

	if cfg.InfluxDB.Enabled {
		svc.influx, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return nil, fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		svc.influx.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)
	}

	svc.runner = batch.NewRunner(sizer, batch.Config{
		Workers:   cfg.Batch.Workers,
		OutputDir: cfg.Batch.OutputDir,
		Progress:  cfg.Batch.Progress,
	})
	svc.runner.SetLogger(log)
	svc.runner.SetRepository(svc.repo)
	if svc.mqtt != nil {
		svc.runner.SetPublisher(svc.mqtt)
	}
	if svc.influx != nil {
		svc.runner.SetMetrics(svc.influx)
	}

	return svc, nil
}

// close shuts services down in reverse order of opening.
func (s *services) close(log *logging.Logger) {
	if s.influx != nil {
		log.Info("closing InfluxDB connection")
		if err := s.influx.Close(); err != nil {
			log.Error("error closing InfluxDB", "error", err)
		}
	}
	if s.mqtt != nil {
		log.Info("disconnecting from MQTT")
		if err := s.mqtt.Close(); err != nil {
			log.Error("error closing MQTT", "error", err)
		}
	}
	if s.db != nil {
		log.Info("closing database")
		if err := s.db.Close(); err != nil {
			log.Error("error closing database", "error", err)
		}
	}
}

// healthChecks returns the dependencies reported by the health endpoint.
func (s *services) healthChecks() map[string]api.HealthChecker {
	checks := map[string]api.HealthChecker{"database": s.db}
	if s.mqtt != nil {
		checks["mqtt"] = s.mqtt
	}
	if s.influx != nil {
		checks["influxdb"] = s.influx
	}
	return checks
}

// runBatch sizes the given building files and prints one line per building.
func runBatch(ctx context.Context, runner *batch.Runner, args []string, stdout io.Writer) error {
	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("batch: no building documents found")
	}

	outcomes, runErr := runner.Run(ctx, paths)

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tBUILDING\tVOLUME_M3\tCAPACITY_W\tPUMP_HEAD_PA\tDETAIL")
	failed := 0
	for _, o := range outcomes {
		name := o.Building
		if name == "" {
			name = filepath.Base(o.Path)
		}
		if o.Err != nil {
			failed++
			fmt.Fprintf(tw, "FAILED\t%s\t-\t-\t-\t%v\n", name, o.Err)
			continue
		}
		res := o.Report.Result
		fmt.Fprintf(tw, "OK\t%s\t%.4f\t%.1f\t%.1f\t%s\n",
			name, res.Tank.VolumeM3, res.Tank.CapacityW, res.Pump.HeadPa, o.Artifact)
	}
	tw.Flush() //nolint:errcheck // Best-effort summary output

	if runErr != nil {
		return fmt.Errorf("batch interrupted: %w", runErr)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d %w", failed, len(outcomes), errBuildingsFailed)
	}
	return nil
}

// expandPaths replaces directories in args with the building documents
// they contain. Files are passed through unchanged.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("batch: %w", err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("batch: reading %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, err := standards.FormatForPath(e.Name()); err == nil {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}

// serve runs the HTTP API and MQTT request intake until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, svc *services, log *logging.Logger) error {
	server, err := api.New(api.Deps{
		Config:  cfg.API,
		Logger:  log,
		Sizer:   svc.runner,
		Runs:    svc.repo,
		Checks:  svc.healthChecks(),
		Version: version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			log.Error("error closing API server", "error", err)
		}
	}()

	if svc.mqtt != nil {
		if err := svc.mqtt.SubscribeRequests(requestHandler(ctx, svc.runner, log)); err != nil {
			return fmt.Errorf("subscribing to sizing requests: %w", err)
		}
		log.Info("listening for sizing requests", "topic", mqtt.Topics{}.AllSizingRequests())
	}

	log.Info("swhsize serving", "address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port))
	<-ctx.Done()
	log.Info("shutdown signal received")
	return nil
}

// requestHandler sizes building documents received over MQTT. Results and
// failures are published by the runner.
func requestHandler(ctx context.Context, sizer api.BuildingSizer, log *logging.Logger) mqtt.RequestHandler {
	return func(requestID string, payload []byte) error {
		b, err := building.Parse(payload, standards.FormatJSON)
		if err != nil {
			return fmt.Errorf("request %s: %w", requestID, err)
		}

		report, err := sizer.SizeBuilding(ctx, b, runs.SourceMQTT)
		if err != nil {
			return fmt.Errorf("request %s: %w", requestID, err)
		}
		log.Info("sizing request complete", "request_id", requestID, "building", b.Name, "run_id", report.RunID)
		return nil
	}
}
