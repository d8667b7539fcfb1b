package monitor

import (
	"log/slog"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// CoreTicks is one core's cumulative CPU time counters. Values only ever
// grow; utilization is derived from the delta between two readings.
type CoreTicks struct {
	User   float64
	System float64
	Idle   float64
	Nice   float64
}

// SampleResult is everything one poll tick reads from the OS.
type SampleResult struct {
	Processes    []ProcessSample
	CoreTicks    []CoreTicks
	UsedMemoryMB float64
	// TotalMemoryMB mirrors the startup reading so a result is
	// self-contained for snapshot construction.
	TotalMemoryMB float64
}

// Sampler reads the live process table and raw per-core CPU counters.
type Sampler interface {
	Sample() SampleResult
}

// SystemSampler is the gopsutil-backed Sampler. It keeps a per-PID handle
// cache so CPUPercent reflects usage since the previous tick instead of
// the process's lifetime average, and it reads total system memory once
// at construction (it does not change while we run).
type SystemSampler struct {
	logger        *slog.Logger
	handles       map[int32]*process.Process
	totalMemoryMB float64
}

func NewSystemSampler(logger *slog.Logger) *SystemSampler {
	s := &SystemSampler{
		logger:  logger,
		handles: make(map[int32]*process.Process),
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.totalMemoryMB = bytesToMB(vm.Total)
	} else {
		logger.Warn("failed to read total system memory", "error", err)
	}
	return s
}

// Sample never fails: a partial or total OS read failure degrades to
// "no data this tick" so the poll loop keeps running.
func (s *SystemSampler) Sample() SampleResult {
	res := SampleResult{TotalMemoryMB: s.totalMemoryMB}

	if vm, err := mem.VirtualMemory(); err == nil {
		res.UsedMemoryMB = bytesToMB(vm.Used)
	} else {
		s.logger.Warn("memory read failed", "error", err)
	}

	if times, err := cpu.Times(true); err == nil {
		res.CoreTicks = make([]CoreTicks, len(times))
		for i, t := range times {
			res.CoreTicks[i] = CoreTicks{User: t.User, System: t.System, Idle: t.Idle, Nice: t.Nice}
		}
	} else {
		s.logger.Warn("cpu times read failed", "error", err)
	}

	procs, err := process.Processes()
	if err != nil {
		s.logger.Warn("process table read failed", "error", err)
		return res
	}

	res.Processes = make([]ProcessSample, 0, len(procs))
	alive := make(map[int32]struct{}, len(procs))
	for _, p := range procs {
		alive[p.Pid] = struct{}{}

		h, ok := s.handles[p.Pid]
		if !ok {
			h = p
			s.handles[p.Pid] = h
		}

		name, err := h.Name()
		if err != nil || name == "" {
			// Gone between enumeration and read, or not readable.
			continue
		}

		sample := ProcessSample{PID: p.Pid, Name: name}
		if cmd, err := h.Cmdline(); err == nil {
			sample.Command = cmd
		}
		if pct, err := h.CPUPercent(); err == nil {
			sample.CPUPercent = pct
		}
		if mi, err := h.MemoryInfo(); err == nil && mi != nil {
			sample.MemoryMB = bytesToMB(mi.RSS)
		}
		if ppid, err := h.Ppid(); err == nil {
			sample.ParentPID = ppid
		}
		res.Processes = append(res.Processes, sample)
	}

	// Drop handles for exited PIDs so a recycled PID starts a fresh
	// CPU accounting window.
	for pid := range s.handles {
		if _, ok := alive[pid]; !ok {
			delete(s.handles, pid)
		}
	}

	return res
}

func bytesToMB(b uint64) float64 {
	return float64(b) / (1024 * 1024)
}
