package config

import (
	"slices"
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records to process per batch.
// Used by COPY batches of the publish command.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptDataInputDir sets the directory with raw CSV files.
func OptDataInputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Input Dir", s) {
			c.Data.InputDir = s
		}
	}
}

// OptDataOutputDir sets the directory for derived tables.
func OptDataOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Output Dir", s) {
			c.Data.OutputDir = s
		}
	}
}

// OptDataFormat sets the storage format of derived tables.
// Valid values: "csv", "sqlite", "both".
func OptDataFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Data.Format", s) {
			c.Data.Format = s
		}
	}
}

// OptDataSQLiteFile sets the file name of the SQLite store.
func OptDataSQLiteFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data SQLite File", s) {
			c.Data.SQLiteFile = s
		}
	}
}

// OptGamesReferenceDate sets the date athlete ages are computed at.
// Format: YYYY-MM-DD.
func OptGamesReferenceDate(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidDate("Games Reference Date", s) {
			c.Games.ReferenceDate = s
		}
	}
}

// OptGamesExcludeNOCs sets NOC codes that are dropped at load time.
// Codes are upper-cased, empty values are skipped.
func OptGamesExcludeNOCs(ss []string) Option {
	var nocs []string
	for _, s := range ss {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" && !slices.Contains(nocs, s) {
			nocs = append(nocs, s)
		}
	}
	return func(c *Config) {
		c.Games.ExcludeNOCs = nocs
	}
}

// OptImagesEndpoint sets the MediaWiki API URL for portraits.
func OptImagesEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("Images Endpoint", s) {
			c.Images.Endpoint = s
		}
	}
}

// OptImagesWorkers sets the number of concurrent portrait requests.
func OptImagesWorkers(i int) Option {
	return func(c *Config) {
		if isValidInt("Images Workers", i) {
			c.Images.Workers = i
		}
	}
}

// OptImagesTimeoutSec sets the timeout of one portrait request.
func OptImagesTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Images Timeout", i) {
			c.Images.TimeoutSec = i
		}
	}
}

// OptImagesFallbackURL sets the image used when no portrait is found.
func OptImagesFallbackURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("Images Fallback URL", s) {
			c.Images.FallbackURL = s
		}
	}
}

// OptMetricsPushURL sets the Pushgateway address. Empty string disables
// pushing.
func OptMetricsPushURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s == "" || isValidURL("Metrics Push URL", s) {
			c.Metrics.PushURL = s
		}
	}
}

// OptMetricsJob sets the Pushgateway job name.
func OptMetricsJob(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Metrics Job", s) {
			c.Metrics.Job = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
