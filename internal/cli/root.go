package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/config"
	"github.com/aaronscribner/macos-dev-resource-monitor/internal/logger"
	"github.com/aaronscribner/macos-dev-resource-monitor/internal/storage"
)

var (
	// Global flags
	cfgFile string
	dataDir string
	jsonOut bool
	verbose bool

	// Version info (set from main)
	Version = "0.1.0"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "resmon",
	Short: "Local process and resource monitoring for developers",
	Long: `Resmon samples running processes and per-core CPU utilization,
groups them into application categories (IDEs, build tools, browsers, ...),
alerts when CPU or memory crosses a configured threshold, and keeps a
local history of resource snapshots for later inspection.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

// loadConfig resolves the effective daemon config from file and flags.
func loadConfig() *config.Config {
	cfg := config.LoadOrDefault(cfgFile)
	if dataDir != "" {
		cfg.Persistence.DataDir = dataDir
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

// quietLogger keeps read-only commands from mixing log lines into their
// printed output unless the user asked for verbosity.
func quietLogger(cfg *config.Config) *slog.Logger {
	if verbose {
		return newLogger(cfg)
	}
	return logger.Nop()
}

func openStore(cfg *config.Config, log *slog.Logger) *storage.Store {
	return storage.New(cfg.Persistence.DataDir, cfg.Persistence.RetentionDays, log)
}
