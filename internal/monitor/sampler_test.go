package monitor

import "testing"

func TestSystemSampler_ReadsLiveSystem(t *testing.T) {
	s := NewSystemSampler(testLogger())

	res := s.Sample()

	if res.TotalMemoryMB <= 0 {
		t.Error("total system memory should be known")
	}
	if res.UsedMemoryMB <= 0 {
		t.Error("used memory should be non-zero on a live system")
	}
	if len(res.CoreTicks) == 0 {
		t.Error("expected at least one core")
	}
	if len(res.Processes) == 0 {
		t.Fatal("expected at least one process")
	}

	for _, p := range res.Processes {
		if p.Name == "" {
			t.Errorf("process %d has empty name", p.PID)
		}
	}
}

func TestSystemSampler_HandleCacheSurvivesTicks(t *testing.T) {
	s := NewSystemSampler(testLogger())

	first := s.Sample()
	second := s.Sample()

	if len(first.Processes) == 0 || len(second.Processes) == 0 {
		t.Fatal("expected processes on both ticks")
	}
	// Ticks counters are cumulative and must not go backwards.
	if len(second.CoreTicks) > 0 && len(first.CoreTicks) > 0 {
		if second.CoreTicks[0].User < first.CoreTicks[0].User {
			t.Error("cumulative user ticks went backwards")
		}
	}
}
