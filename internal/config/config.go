package config

import "time"

// Config is the daemon-level configuration read from YAML at startup.
// Runtime-editable settings (thresholds, poll interval, retention) seed
// the persisted settings record on first run; after that the store's copy
// wins.
type Config struct {
	Logging       LoggingConfig       `yaml:"logging"`
	Persistence   PersistenceConfig   `yaml:"persistence"`
	Monitoring    MonitoringConfig    `yaml:"monitoring"`
	Thresholds    ThresholdsConfig    `yaml:"thresholds"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PersistenceConfig struct {
	DataDir       string `yaml:"data_dir"`
	RetentionDays int    `yaml:"retention_days"`
}

type MonitoringConfig struct {
	IntervalSec int `yaml:"interval_sec"`
}

type ThresholdsConfig struct {
	Enabled       bool    `yaml:"enabled"`
	CPUPercent    float64 `yaml:"cpu_percent"`
	MemoryPercent float64 `yaml:"memory_percent"`
	CooldownSec   int     `yaml:"cooldown_sec"`
}

type NotificationsConfig struct {
	CPU    bool `yaml:"cpu"`
	Memory bool `yaml:"memory"`
}

func (c *Config) MonitoringInterval() time.Duration {
	return time.Duration(c.Monitoring.IntervalSec) * time.Second
}

func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Thresholds.CooldownSec) * time.Second
}
