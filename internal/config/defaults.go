package config

import (
	"os"
	"path/filepath"
)

func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Persistence: PersistenceConfig{
			DataDir:       defaultDataDir(),
			RetentionDays: 30,
		},
		Monitoring: MonitoringConfig{
			IntervalSec: 5,
		},
		Thresholds: ThresholdsConfig{
			Enabled:       true,
			CPUPercent:    80,
			MemoryPercent: 85,
			CooldownSec:   60,
		},
		Notifications: NotificationsConfig{
			CPU:    true,
			Memory: true,
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "resmon-data"
	}
	return filepath.Join(home, ".resmon")
}
