package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/catalog"
	"github.com/aaronscribner/macos-dev-resource-monitor/internal/config"
	"github.com/aaronscribner/macos-dev-resource-monitor/internal/monitor"
	"github.com/aaronscribner/macos-dev-resource-monitor/internal/notify"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start monitoring in the foreground",
	Long:  `Start the monitoring pipeline and run until interrupted.`,
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	log := newLogger(cfg)

	log.Info("resmon starting", "version", Version, "config", cfgFile)

	store := openStore(cfg, log)

	// Persisted settings win over the config file; the config only seeds
	// the first run.
	var settings monitor.AppSettings
	if store.HasSettings() {
		settings = store.LoadSettings()
	} else {
		settings = settingsFromConfig(cfg)
		if err := settings.Validate(); err != nil {
			log.Warn("config thresholds invalid, using defaults", "error", err)
			settings = monitor.DefaultSettings()
		}
		if err := store.SaveSettings(settings); err != nil {
			log.Warn("failed to seed settings", "error", err)
		}
	}

	store.Cleanup(settings.RetentionDays)

	cats, ok := store.LoadCategories()
	if !ok {
		cats = catalog.Default()
	}

	sampler := monitor.NewSystemSampler(log)
	notifier := notify.NewLogNotifier(log)
	pipeline := monitor.NewPipeline(sampler, store, notifier, settings, cats, log)

	pipeline.Subscribe(func(s *monitor.ResourceSnapshot) {
		log.Debug("snapshot published",
			"cpu_percent", s.CPUPercent(),
			"memory_percent", s.MemoryPercent(),
			"processes", len(s.TopProcesses),
		)
	})

	pipeline.Start()
	defer pipeline.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	log.Info("shutting down", "signal", sig.String())
	return nil
}

func settingsFromConfig(cfg *config.Config) monitor.AppSettings {
	s := monitor.DefaultSettings()
	s.PollIntervalSec = cfg.Monitoring.IntervalSec
	s.CPUThreshold = cfg.Thresholds.CPUPercent
	s.MemoryThreshold = cfg.Thresholds.MemoryPercent
	s.CooldownSec = cfg.Thresholds.CooldownSec
	s.ThresholdsEnabled = cfg.Thresholds.Enabled
	s.NotifyOnCPU = cfg.Notifications.CPU
	s.NotifyOnMemory = cfg.Notifications.Memory
	s.RetentionDays = cfg.Persistence.RetentionDays
	return s
}
