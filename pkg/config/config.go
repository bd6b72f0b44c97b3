// Package config provides configuration management for olydash.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Data: input_dir, output_dir, format, sqlite_file
//   - Games: reference_date, exclude_nocs
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Images: endpoint, workers, timeout_sec, fallback_url
//   - Metrics: push_url, job
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use OLYDASH_ prefix with underscores for nesting:
//
//	OLYDASH_DATA_INPUT_DIR=~/olympics/raw
//	OLYDASH_DATA_FORMAT=both
//	OLYDASH_DATABASE_HOST=localhost
//	OLYDASH_IMAGES_WORKERS=8
//	OLYDASH_LOG_LEVEL=info
//	OLYDASH_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Output formats of derived tables.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
	FormatBoth   = "both"
)

// Config represents the complete olydash configuration.
type Config struct {
	// Data points to raw input files and derived outputs.
	Data DataConfig `mapstructure:"data" yaml:"data"`

	// Games holds settings of the analysed Olympic Games edition.
	Games GamesConfig `mapstructure:"games" yaml:"games"`

	// Database contains PostgreSQL connection settings used by publish.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Images configures the athlete portrait fetcher.
	Images ImagesConfig `mapstructure:"images" yaml:"images"`

	// Metrics configures pushing of run metrics.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DataConfig locates raw and derived tables.
type DataConfig struct {
	// InputDir contains raw CSV files (athletes.csv, medals.csv, ...).
	// Empty value means the current working directory.
	InputDir string `mapstructure:"input_dir" yaml:"input_dir"`

	// OutputDir receives derived tables. Empty value means
	// ~/.cache/olydash/derived.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Format of derived tables: "csv", "sqlite" or "both".
	Format string `mapstructure:"format" yaml:"format"`

	// SQLiteFile is the name of the SQLite database inside OutputDir.
	SQLiteFile string `mapstructure:"sqlite_file" yaml:"sqlite_file"`
}

// GamesConfig describes the analysed edition.
type GamesConfig struct {
	// ReferenceDate is the date ages are computed at, YYYY-MM-DD.
	ReferenceDate string `mapstructure:"reference_date" yaml:"reference_date"`

	// ExcludeNOCs lists NOC codes dropped from every loaded entity.
	ExcludeNOCs []string `mapstructure:"exclude_nocs" yaml:"exclude_nocs"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows sent per COPY batch when publishing.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ImagesConfig configures the portrait fetcher.
type ImagesConfig struct {
	// Endpoint is the MediaWiki API URL.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Workers is the size of the worker pool.
	Workers int `mapstructure:"workers" yaml:"workers"`

	// TimeoutSec limits every single request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// FallbackURL is used for athletes without a portrait.
	FallbackURL string `mapstructure:"fallback_url" yaml:"fallback_url"`
}

// MetricsConfig configures the Prometheus Pushgateway.
type MetricsConfig struct {
	// PushURL is the Pushgateway address. Empty value disables pushing.
	PushURL string `mapstructure:"push_url" yaml:"push_url"`

	// Job is the Pushgateway job name.
	Job string `mapstructure:"job" yaml:"job"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Data: DataConfig{
			Format:     FormatCSV,
			SQLiteFile: "olydash.sqlite",
		},
		Games: GamesConfig{
			ReferenceDate: "2024-07-26",
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "olydash",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Images: ImagesConfig{
			Endpoint:    "https://en.wikipedia.org/w/api.php",
			Workers:     4,
			TimeoutSec:  8,
			FallbackURL: "https://upload.wikimedia.org/wikipedia/commons/8/89/Portrait_Placeholder.png",
		},
		Metrics: MetricsConfig{
			Job: AppName,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
