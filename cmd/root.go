/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/internal/iofs"
	"github.com/olydash/olydash/internal/iologger"
	app "github.com/olydash/olydash/pkg"
	"github.com/olydash/olydash/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd builds the command tree.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "olydash",
		Short:   "Olympic Games analytics: enrich, query and publish",
		Long: `olydash turns raw Olympic Games CSV files into enriched tables
and answers filtered questions about them.

Typical workflow:
  1. olydash enrich     load raw files, build derived tables
  2. olydash query      filter, group and print a derived table
  3. olydash publish    copy derived tables to PostgreSQL
  4. olydash images     resolve athlete portraits

Configuration precedence (highest to lowest):
  1. CLI flags
  2. OLYDASH_* environment variables
  3. ~/.config/olydash/config.yaml
  4. built-in defaults`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "olydash version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for olydash")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0,
		"number of concurrent jobs (default from config)")

	rootCmd.AddCommand(
		getEnrichCmd(),
		getQueryCmd(),
		getPublishCmd(),
		getImagesCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureDatasetsFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if cmd.Flags().Changed("jobs") {
		jobs, _ := cmd.Flags().GetInt("jobs")
		cfg.Update([]config.Option{config.OptJobsNumber(jobs)})
	}

	logCloser, err = iologger.Init(config.LogDir(homeDir), cfg.Log, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"command", cmd.Name(),
		"config_file", config.ConfigFilePath(homeDir),
	)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("OLYDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Data configuration
	v.BindEnv("data.input_dir", "OLYDASH_DATA_INPUT_DIR")
	v.BindEnv("data.output_dir", "OLYDASH_DATA_OUTPUT_DIR")
	v.BindEnv("data.format", "OLYDASH_DATA_FORMAT")
	v.BindEnv("data.sqlite_file", "OLYDASH_DATA_SQLITE_FILE")

	// Games configuration
	v.BindEnv("games.reference_date", "OLYDASH_GAMES_REFERENCE_DATE")
	v.BindEnv("games.exclude_nocs", "OLYDASH_GAMES_EXCLUDE_NOCS")

	// Database configuration
	v.BindEnv("database.host", "OLYDASH_DATABASE_HOST")
	v.BindEnv("database.port", "OLYDASH_DATABASE_PORT")
	v.BindEnv("database.user", "OLYDASH_DATABASE_USER")
	v.BindEnv("database.password", "OLYDASH_DATABASE_PASSWORD")
	v.BindEnv("database.database", "OLYDASH_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "OLYDASH_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "OLYDASH_DATABASE_BATCH_SIZE")

	// Images configuration
	v.BindEnv("images.endpoint", "OLYDASH_IMAGES_ENDPOINT")
	v.BindEnv("images.workers", "OLYDASH_IMAGES_WORKERS")
	v.BindEnv("images.timeout_sec", "OLYDASH_IMAGES_TIMEOUT_SEC")
	v.BindEnv("images.fallback_url", "OLYDASH_IMAGES_FALLBACK_URL")

	// Metrics configuration
	v.BindEnv("metrics.push_url", "OLYDASH_METRICS_PUSH_URL")
	v.BindEnv("metrics.job", "OLYDASH_METRICS_JOB")

	// Log configuration
	v.BindEnv("log.level", "OLYDASH_LOG_LEVEL")
	v.BindEnv("log.format", "OLYDASH_LOG_FORMAT")
	v.BindEnv("log.destination", "OLYDASH_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "OLYDASH_JOBS_NUMBER")

	v.AutomaticEnv()
}
