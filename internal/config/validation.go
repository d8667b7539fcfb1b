package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Persistence.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("persistence: %w", err))
	}

	if err := c.Monitoring.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("monitoring: %w", err))
	}

	if err := c.Thresholds.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("thresholds: %w", err))
	}

	return errors.Join(errs...)
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", l.Level)
	}

	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[l.Format] {
		return fmt.Errorf("invalid log format: %s (valid: json, text)", l.Format)
	}

	return nil
}

func (p *PersistenceConfig) Validate() error {
	if p.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	if p.RetentionDays < 1 || p.RetentionDays > 365 {
		return fmt.Errorf("retention_days must be between 1 and 365, got %d", p.RetentionDays)
	}
	return nil
}

func (m *MonitoringConfig) Validate() error {
	if m.IntervalSec < 1 || m.IntervalSec > 60 {
		return fmt.Errorf("interval_sec must be between 1 and 60, got %d", m.IntervalSec)
	}
	return nil
}

func (t *ThresholdsConfig) Validate() error {
	var errs []error

	if t.CPUPercent < 1 || t.CPUPercent > 100 {
		errs = append(errs, fmt.Errorf("cpu_percent must be between 1 and 100, got %g", t.CPUPercent))
	}
	if t.MemoryPercent < 1 || t.MemoryPercent > 100 {
		errs = append(errs, fmt.Errorf("memory_percent must be between 1 and 100, got %g", t.MemoryPercent))
	}
	if t.CooldownSec < 1 {
		errs = append(errs, fmt.Errorf("cooldown_sec must be at least 1, got %d", t.CooldownSec))
	}

	return errors.Join(errs...)
}
