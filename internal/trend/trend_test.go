package trend

import (
	"math"
	"testing"
	"time"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/monitor"
)

func snaps() []*monitor.ResourceSnapshot {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []*monitor.ResourceSnapshot{
		{
			Timestamp: base, TotalCPU: 20,
			TotalMemoryMB: 4000, TotalSystemMemoryMB: 16000,
			Categories: map[string]monitor.ResourceUsage{
				"ide": {CPUPercent: 10, MemoryMB: 1000, ProcessCount: 2},
			},
		},
		{
			Timestamp: base.Add(time.Minute), TotalCPU: 60,
			TotalMemoryMB: 8000, TotalSystemMemoryMB: 16000,
			Categories: map[string]monitor.ResourceUsage{
				"ide": {CPUPercent: 30, MemoryMB: 3000, ProcessCount: 4},
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize(snaps())

	if stats.Samples != 2 {
		t.Errorf("expected 2 samples, got %d", stats.Samples)
	}
	if stats.AvgCPU != 40 {
		t.Errorf("expected avg cpu 40, got %f", stats.AvgCPU)
	}
	if stats.PeakCPU != 60 {
		t.Errorf("expected peak cpu 60, got %f", stats.PeakCPU)
	}
	if math.Abs(stats.AvgMemoryPercent-37.5) > 0.001 {
		t.Errorf("expected avg mem 37.5, got %f", stats.AvgMemoryPercent)
	}
	if stats.PeakMemoryPercent != 50 {
		t.Errorf("expected peak mem 50, got %f", stats.PeakMemoryPercent)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil); got != (RangeStats{}) {
		t.Errorf("empty window should be zero, got %+v", got)
	}
}

func TestCategoryAverages(t *testing.T) {
	avgs := CategoryAverages(snaps())

	ide := avgs["ide"]
	if ide.CPUPercent != 20 {
		t.Errorf("expected avg cpu 20, got %f", ide.CPUPercent)
	}
	if ide.MemoryMB != 2000 {
		t.Errorf("expected avg mem 2000, got %f", ide.MemoryMB)
	}
	if ide.ProcessCount != 3 {
		t.Errorf("expected avg procs 3, got %d", ide.ProcessCount)
	}
}

func TestSeriesExtraction(t *testing.T) {
	cpu := CPUSeries(snaps())
	mem := MemorySeries(snaps())

	if len(cpu) != 2 || cpu[1].Value != 60 {
		t.Errorf("unexpected cpu series: %+v", cpu)
	}
	if len(mem) != 2 || mem[0].Value != 25 {
		t.Errorf("unexpected memory series: %+v", mem)
	}
}

func TestSmooth(t *testing.T) {
	points := []Point{{Value: 10}, {Value: 20}, {Value: 30}}

	out := Smooth(points, 0.5)
	if out[0].Value != 10 {
		t.Errorf("first point unchanged, got %f", out[0].Value)
	}
	if out[1].Value != 15 {
		t.Errorf("expected 15, got %f", out[1].Value)
	}
	if out[2].Value != 22.5 {
		t.Errorf("expected 22.5, got %f", out[2].Value)
	}

	// Input must not be mutated.
	if points[1].Value != 20 {
		t.Error("Smooth mutated its input")
	}
}

func TestSmooth_InvalidAlphaFallsBack(t *testing.T) {
	points := []Point{{Value: 10}, {Value: 20}}

	out := Smooth(points, -1)
	want := 0.2*20 + 0.8*10
	if math.Abs(out[1].Value-want) > 0.001 {
		t.Errorf("expected fallback alpha result %f, got %f", want, out[1].Value)
	}
}
