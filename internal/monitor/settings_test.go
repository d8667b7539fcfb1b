package monitor

import (
	"testing"
	"time"
)

func TestDefaultSettings_AreValid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppSettings)
		wantErr bool
	}{
		{"valid", func(s *AppSettings) {}, false},
		{"interval too low", func(s *AppSettings) { s.PollIntervalSec = 0 }, true},
		{"interval too high", func(s *AppSettings) { s.PollIntervalSec = 61 }, true},
		{"interval upper bound", func(s *AppSettings) { s.PollIntervalSec = 60 }, false},
		{"cpu threshold zero", func(s *AppSettings) { s.CPUThreshold = 0 }, true},
		{"cpu threshold over 100", func(s *AppSettings) { s.CPUThreshold = 101 }, true},
		{"cpu threshold bound", func(s *AppSettings) { s.CPUThreshold = 100 }, false},
		{"memory threshold zero", func(s *AppSettings) { s.MemoryThreshold = 0 }, true},
		{"cooldown zero", func(s *AppSettings) { s.CooldownSec = 0 }, true},
		{"retention zero", func(s *AppSettings) { s.RetentionDays = 0 }, true},
		{"retention too high", func(s *AppSettings) { s.RetentionDays = 366 }, true},
		{"retention upper bound", func(s *AppSettings) { s.RetentionDays = 365 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppSettings_Durations(t *testing.T) {
	s := DefaultSettings()
	s.PollIntervalSec = 5
	s.CooldownSec = 90

	if s.PollInterval() != 5*time.Second {
		t.Errorf("unexpected poll interval %v", s.PollInterval())
	}
	if s.Cooldown() != 90*time.Second {
		t.Errorf("unexpected cooldown %v", s.Cooldown())
	}
}
