package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Data.InputDir
	if s != "" {
		res = append(res, OptDataInputDir(s))
	}
	s = c.Data.OutputDir
	if s != "" {
		res = append(res, OptDataOutputDir(s))
	}
	s = c.Data.Format
	if s != "" {
		res = append(res, OptDataFormat(s))
	}
	s = c.Data.SQLiteFile
	if s != "" {
		res = append(res, OptDataSQLiteFile(s))
	}

	s = c.Games.ReferenceDate
	if s != "" {
		res = append(res, OptGamesReferenceDate(s))
	}
	if len(c.Games.ExcludeNOCs) > 0 {
		res = append(res, OptGamesExcludeNOCs(c.Games.ExcludeNOCs))
	}

	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	i = c.Database.BatchSize
	if i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}

	s = c.Images.Endpoint
	if s != "" {
		res = append(res, OptImagesEndpoint(s))
	}
	i = c.Images.Workers
	if i > 0 {
		res = append(res, OptImagesWorkers(i))
	}
	i = c.Images.TimeoutSec
	if i > 0 {
		res = append(res, OptImagesTimeoutSec(i))
	}
	s = c.Images.FallbackURL
	if s != "" {
		res = append(res, OptImagesFallbackURL(s))
	}

	s = c.Metrics.PushURL
	if s != "" {
		res = append(res, OptMetricsPushURL(s))
	}
	s = c.Metrics.Job
	if s != "" {
		res = append(res, OptMetricsJob(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidDate(name, s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	if err != nil {
		gn.Warn("<em>%s</em> must look like YYYY-MM-DD, ignoring '%s'",
			name, s)
		return false
	}
	return true
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		gn.Warn("<em>%s</em> is not a valid http(s) URL, ignoring '%s'",
			name, s)
		return false
	}
	return true
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
		"Data.Format":     {"csv": s, "sqlite": s, "both": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}
