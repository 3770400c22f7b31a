package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the SWH sizing service.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Standards StandardsConfig `yaml:"standards"`
	Sizing    SizingConfig    `yaml:"sizing"`
	Batch     BatchConfig     `yaml:"batch"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	API       APIConfig       `yaml:"api"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// StandardsConfig locates the standards tables.
type StandardsConfig struct {
	// Path is a .json, .yaml or .yml standards document.
	Path string `yaml:"path"`
}

// SizingConfig contains the SWH sizing parameters.
type SizingConfig struct {
	DefaultTargetTemperatureC float64 `yaml:"default_target_temperature_c"`
	MinTargetTemperatureC     float64 `yaml:"min_target_temperature_c"`
	SupplyWaterTemperatureC   float64 `yaml:"supply_water_temperature_c"`
	AmbientTemperatureC       float64 `yaml:"ambient_temperature_c"`
	TankUValue                float64 `yaml:"tank_u_value"`
	ExposureThreshold         float64 `yaml:"exposure_threshold"`
	TankHeightToRadius        float64 `yaml:"tank_height_to_radius"`

	// FuelType is the water heater fuel for buildings that do not set one:
	// "NaturalGas" or "Electricity".
	FuelType string `yaml:"fuel_type"`

	Pump PumpConfig `yaml:"pump"`
	Pipe PipeConfig `yaml:"pipe"`
}

// PumpConfig contains distribution pump settings.
type PumpConfig struct {
	// AutoSize estimates head from building geometry instead of using HeadPa.
	AutoSize        bool    `yaml:"auto_size"`
	HeadPa          float64 `yaml:"head_pa"`
	MotorEfficiency float64 `yaml:"motor_efficiency"`
}

// PipeConfig contains distribution piping properties.
type PipeConfig struct {
	DiameterM          float64 `yaml:"diameter_m"`
	KinematicViscosity float64 `yaml:"kinematic_viscosity"`
	RoughnessM         float64 `yaml:"roughness_m"`
}

// BatchConfig contains batch sizing settings.
type BatchConfig struct {
	// Workers is the number of concurrent sizing jobs. 0 means one per CPU.
	Workers   int    `yaml:"workers"`
	OutputDir string `yaml:"output_dir"`
	Progress  bool   `yaml:"progress"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`

	// MaxBodyBytes caps the size of a posted building document.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// APITimeoutConfig contains HTTP timeout settings.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: GRAYLOGIC_SECTION_KEY
// For example: GRAYLOGIC_STANDARDS_PATH, GRAYLOGIC_BATCH_WORKERS
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with the NECB 2011 sizing defaults and local
// service endpoints.
func Default() *Config {
	return &Config{
		Standards: StandardsConfig{
			Path: "./data/standards.json",
		},
		Sizing: SizingConfig{
			DefaultTargetTemperatureC: 60,
			MinTargetTemperatureC:     16,
			SupplyWaterTemperatureC:   15,
			AmbientTemperatureC:       (70.0 - 32) * 5 / 9,
			TankUValue:                0.45,
			ExposureThreshold:         0.2,
			TankHeightToRadius:        2,
			FuelType:                  "NaturalGas",
			Pump: PumpConfig{
				AutoSize:        false,
				HeadPa:          179532,
				MotorEfficiency: 0.9,
			},
			Pipe: PipeConfig{
				DiameterM:          0.01905,
				KinematicViscosity: 4.736e-7,
				RoughnessM:         1.5e-6,
			},
		},
		Batch: BatchConfig{
			OutputDir: "./out",
			Progress:  true,
		},
		Database: DatabaseConfig{
			Path:        "./data/swhsize.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "swhsize",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		InfluxDB: InfluxDBConfig{
			URL:           "http://localhost:8086",
			Org:           "graylogic",
			Bucket:        "swh",
			BatchSize:     100,
			FlushInterval: 1,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
			MaxBodyBytes: 4 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: GRAYLOGIC_SECTION_KEY
func applyEnvOverrides(cfg *Config) error {
	// Standards
	if v := os.Getenv("GRAYLOGIC_STANDARDS_PATH"); v != "" {
		cfg.Standards.Path = v
	}

	// Batch
	if v := os.Getenv("GRAYLOGIC_BATCH_OUTPUT_DIR"); v != "" {
		cfg.Batch.OutputDir = v
	}
	if v := os.Getenv("GRAYLOGIC_BATCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing GRAYLOGIC_BATCH_WORKERS: %w", err)
		}
		cfg.Batch.Workers = n
	}

	// Database
	if v := os.Getenv("GRAYLOGIC_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("GRAYLOGIC_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("GRAYLOGIC_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("GRAYLOGIC_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// API
	if v := os.Getenv("GRAYLOGIC_API_HOST"); v != "" {
		cfg.API.Host = v
	}

	// InfluxDB
	if v := os.Getenv("GRAYLOGIC_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Logging
	if v := os.Getenv("GRAYLOGIC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return nil
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of every validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	// Standards
	if c.Standards.Path == "" {
		errs = append(errs, "standards.path is required")
	}

	// Sizing
	s := c.Sizing
	if s.ExposureThreshold < 0 || s.ExposureThreshold >= 1 {
		errs = append(errs, "sizing.exposure_threshold must be in [0, 1)")
	}
	if s.TankUValue < 0 {
		errs = append(errs, "sizing.tank_u_value must not be negative")
	}
	if s.TankHeightToRadius <= 0 {
		errs = append(errs, "sizing.tank_height_to_radius must be positive")
	}
	if s.FuelType != "NaturalGas" && s.FuelType != "Electricity" {
		errs = append(errs, "sizing.fuel_type must be NaturalGas or Electricity")
	}
	if s.Pipe.DiameterM <= 0 {
		errs = append(errs, "sizing.pipe.diameter_m must be positive")
	}
	if s.Pipe.KinematicViscosity <= 0 {
		errs = append(errs, "sizing.pipe.kinematic_viscosity must be positive")
	}
	if s.Pipe.RoughnessM < 0 {
		errs = append(errs, "sizing.pipe.roughness_m must not be negative")
	}
	if s.Pump.MotorEfficiency <= 0 || s.Pump.MotorEfficiency > 1 {
		errs = append(errs, "sizing.pump.motor_efficiency must be in (0, 1]")
	}

	// Batch
	if c.Batch.Workers < 0 {
		errs = append(errs, "batch.workers must not be negative")
	}
	if c.Batch.OutputDir == "" {
		errs = append(errs, "batch.output_dir is required")
	}

	// Database
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// MQTT
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	// InfluxDB
	if c.InfluxDB.Enabled && (c.InfluxDB.URL == "" || c.InfluxDB.Bucket == "") {
		errs = append(errs, "influxdb.url and influxdb.bucket are required when enabled")
	}

	// API
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	// Logging
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, "logging.format must be json or text")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
