package monitor

import (
	"errors"
	"fmt"
	"time"
)

// AppSettings is the flat, user-editable configuration record. It is
// persisted as a whole on every change; loading returns either the last
// saved value or DefaultSettings, never a partial merge.
type AppSettings struct {
	PollIntervalSec   int     `json:"poll_interval_sec"`
	CPUThreshold      float64 `json:"cpu_threshold"`
	MemoryThreshold   float64 `json:"memory_threshold"`
	CooldownSec       int     `json:"cooldown_sec"`
	ThresholdsEnabled bool    `json:"thresholds_enabled"`
	NotifyOnCPU       bool    `json:"notify_on_cpu"`
	NotifyOnMemory    bool    `json:"notify_on_memory"`
	RetentionDays     int     `json:"retention_days"`
	ShowPerCoreView   bool    `json:"show_per_core_view"`
	ShowCategoryBars  bool    `json:"show_category_bars"`
}

func DefaultSettings() AppSettings {
	return AppSettings{
		PollIntervalSec:   5,
		CPUThreshold:      80,
		MemoryThreshold:   85,
		CooldownSec:       60,
		ThresholdsEnabled: true,
		NotifyOnCPU:       true,
		NotifyOnMemory:    true,
		RetentionDays:     30,
		ShowPerCoreView:   true,
		ShowCategoryBars:  true,
	}
}

// Validate rejects out-of-range values. The rest of the pipeline assumes
// settings it receives already passed this check.
func (s AppSettings) Validate() error {
	var errs []error

	if s.PollIntervalSec < 1 || s.PollIntervalSec > 60 {
		errs = append(errs, fmt.Errorf("poll_interval_sec must be between 1 and 60, got %d", s.PollIntervalSec))
	}
	if s.CPUThreshold < 1 || s.CPUThreshold > 100 {
		errs = append(errs, fmt.Errorf("cpu_threshold must be between 1 and 100, got %g", s.CPUThreshold))
	}
	if s.MemoryThreshold < 1 || s.MemoryThreshold > 100 {
		errs = append(errs, fmt.Errorf("memory_threshold must be between 1 and 100, got %g", s.MemoryThreshold))
	}
	if s.CooldownSec < 1 {
		errs = append(errs, fmt.Errorf("cooldown_sec must be at least 1, got %d", s.CooldownSec))
	}
	if s.RetentionDays < 1 || s.RetentionDays > 365 {
		errs = append(errs, fmt.Errorf("retention_days must be between 1 and 365, got %d", s.RetentionDays))
	}

	return errors.Join(errs...)
}

func (s AppSettings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalSec) * time.Second
}

func (s AppSettings) Cooldown() time.Duration {
	return time.Duration(s.CooldownSec) * time.Second
}
