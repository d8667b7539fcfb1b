package monitor

import "time"

// ProcessSample is one observed process at sample time. Samples are
// rebuilt on every poll; only the top-N subset embedded in a snapshot or
// event outlives the tick.
type ProcessSample struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	Command    string  `json:"command,omitempty"`
	CPUPercent float64 `json:"cpu_percent"`
	MemoryMB   float64 `json:"memory_mb"`
	ParentPID  int32   `json:"parent_pid,omitempty"`
	CategoryID string  `json:"category_id,omitempty"`
	AppName    string  `json:"app_name,omitempty"`
}

// CoreUsage is the derived utilization of one CPU core for the current tick.
type CoreUsage struct {
	Core         int     `json:"core"`
	UsagePercent float64 `json:"usage_percent"`
}

// ResourceUsage is an additive CPU/memory/count triple. The zero value is
// the identity for Add.
type ResourceUsage struct {
	CPUPercent   float64 `json:"cpu_percent"`
	MemoryMB     float64 `json:"memory_mb"`
	ProcessCount int     `json:"process_count"`
}

func (u ResourceUsage) Add(o ResourceUsage) ResourceUsage {
	return ResourceUsage{
		CPUPercent:   u.CPUPercent + o.CPUPercent,
		MemoryMB:     u.MemoryMB + o.MemoryMB,
		ProcessCount: u.ProcessCount + o.ProcessCount,
	}
}

// AddSample folds one process into the accumulator.
func (u ResourceUsage) AddSample(p ProcessSample) ResourceUsage {
	return u.Add(ResourceUsage{CPUPercent: p.CPUPercent, MemoryMB: p.MemoryMB, ProcessCount: 1})
}

// CategoryUsage is a per-category total plus the samples that produced it.
// Recomputed every poll, never persisted on its own.
type CategoryUsage struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Color     string          `json:"color"`
	Usage     ResourceUsage   `json:"usage"`
	Processes []ProcessSample `json:"processes,omitempty"`
}

// AppUsage groups samples by resolved application (or raw process name for
// unmatched processes).
type AppUsage struct {
	Name      string          `json:"name"`
	Usage     ResourceUsage   `json:"usage"`
	Processes []ProcessSample `json:"processes,omitempty"`
}

// ResourceSnapshot is the point-in-time aggregate record. Immutable once
// built; the only unit of history that gets persisted.
type ResourceSnapshot struct {
	ID                  string                   `json:"id"`
	Timestamp           time.Time                `json:"timestamp"`
	TotalCPU            float64                  `json:"total_cpu"`
	TotalMemoryMB       float64                  `json:"total_memory_mb"`
	TotalSystemMemoryMB float64                  `json:"total_system_memory_mb"`
	CoreCount           int                      `json:"core_count"`
	Categories          map[string]ResourceUsage `json:"categories"`
	TopProcesses        []ProcessSample          `json:"top_processes"`
}

// CPUPercent is the normalized 0-100 system CPU (mean across cores).
func (s *ResourceSnapshot) CPUPercent() float64 {
	return s.TotalCPU
}

// MemoryPercent is used over total system memory, or 0 when the total is
// unknown.
func (s *ResourceSnapshot) MemoryPercent() float64 {
	if s.TotalSystemMemoryMB <= 0 {
		return 0
	}
	return s.TotalMemoryMB / s.TotalSystemMemoryMB * 100
}

// TriggerType names which metric breached a threshold.
type TriggerType string

const (
	TriggerCPU    TriggerType = "cpu"
	TriggerMemory TriggerType = "memory"
)

// ThresholdEvent records a single breach. It carries the full process list
// captured at breach time, not only the top-10, so the offender can be
// identified after the fact. One event per breach; never merged.
type ThresholdEvent struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Trigger   TriggerType     `json:"trigger_type"`
	Value     float64         `json:"trigger_value"`
	Threshold float64         `json:"threshold"`
	Processes []ProcessSample `json:"processes"`
}
