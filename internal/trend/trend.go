// Package trend computes read-path summaries over stored snapshots for
// historical reporting. It never touches the live pipeline; its input is
// whatever the store returns for a time window.
package trend

import (
	"time"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/monitor"
)

// RangeStats summarizes a window of snapshots.
type RangeStats struct {
	Samples           int     `json:"samples"`
	AvgCPU            float64 `json:"avg_cpu"`
	PeakCPU           float64 `json:"peak_cpu"`
	AvgMemoryPercent  float64 `json:"avg_memory_percent"`
	PeakMemoryPercent float64 `json:"peak_memory_percent"`
}

// Summarize folds a snapshot window into averages and peaks. An empty
// window yields the zero value.
func Summarize(snaps []*monitor.ResourceSnapshot) RangeStats {
	var stats RangeStats
	if len(snaps) == 0 {
		return stats
	}

	var cpuSum, memSum float64
	for _, s := range snaps {
		cpu := s.CPUPercent()
		mem := s.MemoryPercent()
		cpuSum += cpu
		memSum += mem
		if cpu > stats.PeakCPU {
			stats.PeakCPU = cpu
		}
		if mem > stats.PeakMemoryPercent {
			stats.PeakMemoryPercent = mem
		}
	}

	stats.Samples = len(snaps)
	stats.AvgCPU = cpuSum / float64(len(snaps))
	stats.AvgMemoryPercent = memSum / float64(len(snaps))
	return stats
}

// CategoryAverages returns the mean per-category usage across the window,
// divided over all snapshots so a category absent from some snapshots
// still averages against the full window.
func CategoryAverages(snaps []*monitor.ResourceSnapshot) map[string]monitor.ResourceUsage {
	totals := make(map[string]monitor.ResourceUsage)
	for _, s := range snaps {
		for id, u := range s.Categories {
			totals[id] = totals[id].Add(u)
		}
	}

	n := float64(len(snaps))
	if n == 0 {
		return totals
	}
	for id, u := range totals {
		totals[id] = monitor.ResourceUsage{
			CPUPercent:   u.CPUPercent / n,
			MemoryMB:     u.MemoryMB / n,
			ProcessCount: int(float64(u.ProcessCount)/n + 0.5),
		}
	}
	return totals
}

// Point is one value of a time series.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// CPUSeries extracts the normalized CPU series from a snapshot window.
func CPUSeries(snaps []*monitor.ResourceSnapshot) []Point {
	out := make([]Point, len(snaps))
	for i, s := range snaps {
		out[i] = Point{Timestamp: s.Timestamp, Value: s.CPUPercent()}
	}
	return out
}

// MemorySeries extracts the memory-percent series from a snapshot window.
func MemorySeries(snaps []*monitor.ResourceSnapshot) []Point {
	out := make([]Point, len(snaps))
	for i, s := range snaps {
		out[i] = Point{Timestamp: s.Timestamp, Value: s.MemoryPercent()}
	}
	return out
}

// Smooth applies an exponential moving average to a series:
// smoothed = alpha*value + (1-alpha)*previous. Higher alpha weights
// recent samples more; out-of-range alpha falls back to 0.2.
func Smooth(points []Point, alpha float64) []Point {
	if alpha <= 0 || alpha > 1 {
		alpha = 0.2
	}

	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = p
		if i > 0 {
			out[i].Value = alpha*p.Value + (1-alpha)*out[i-1].Value
		}
	}
	return out
}
