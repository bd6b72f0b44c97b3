// Package iotesting provides shared helpers for integration tests.
package iotesting

import (
	"os"
	"strconv"
	"testing"

	"github.com/olydash/olydash/pkg/config"
)

const (
	// TestDatabaseName is the database used by all integration tests, so
	// tests never touch a real publishing target.
	TestDatabaseName = "olydash_test"

	// EnvEnable turns on integration tests that need PostgreSQL.
	EnvEnable = "OLYDASH_TEST_PG"
)

// PGConfig returns a configuration for PostgreSQL integration tests. The
// test is skipped unless OLYDASH_TEST_PG=1 is set or when running with
// -short. Connection settings come from OLYDASH_DATABASE_* variables with
// defaults as a fallback. The database name is always TestDatabaseName.
//
// Example:
//
//	docker run -d -e POSTGRES_PASSWORD=postgres -p 5432:5432 postgres:16
//	createdb -h localhost -U postgres olydash_test
//	OLYDASH_TEST_PG=1 go test ./...
func PGConfig(t *testing.T) *config.Config {
	t.Helper()
	if testing.Short() || os.Getenv(EnvEnable) != "1" {
		t.Skipf("set %s=1 to run PostgreSQL integration tests", EnvEnable)
	}

	var opts []config.Option
	if s := os.Getenv("OLYDASH_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("OLYDASH_DATABASE_PORT"); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(i))
		}
	}
	if s := os.Getenv("OLYDASH_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("OLYDASH_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))

	cfg := config.New()
	cfg.Update(opts)
	return cfg
}
