package monitor

// DeltaEngine turns consecutive cumulative per-core tick readings into
// 0-100 utilization values. State is the previous tick vector, indexed by
// core position; cores have no stable identity across readings.
type DeltaEngine struct {
	prev []CoreTicks
}

func NewDeltaEngine() *DeltaEngine {
	return &DeltaEngine{}
}

// Update computes per-core usage from the delta against the previous
// reading and stores the new reading. A core index with no previous value
// (first tick, or the reported core count grew) reads as 0 for this tick
// only. A zero total delta also reads as 0; there is no division by zero.
func (e *DeltaEngine) Update(ticks []CoreTicks) []CoreUsage {
	usages := make([]CoreUsage, len(ticks))
	for i, cur := range ticks {
		usages[i] = CoreUsage{Core: i}
		if i >= len(e.prev) {
			continue
		}
		prev := e.prev[i]

		dUser := cur.User - prev.User
		dSystem := cur.System - prev.System
		dIdle := cur.Idle - prev.Idle
		dNice := cur.Nice - prev.Nice

		total := dUser + dSystem + dIdle + dNice
		if total <= 0 {
			continue
		}

		usages[i].UsagePercent = clampPercent(100 * (dUser + dSystem + dNice) / total)
	}

	e.prev = make([]CoreTicks, len(ticks))
	copy(e.prev, ticks)

	return usages
}

// MeanUsage is the system-wide normalized CPU percent: the arithmetic
// mean of per-core usages, 0-100 regardless of core count. Summing raw
// per-process percentages can exceed 100 on multi-core machines and is
// only used for category breakdowns, never for this headline number.
func MeanUsage(cores []CoreUsage) float64 {
	if len(cores) == 0 {
		return 0
	}
	var sum float64
	for _, c := range cores {
		sum += c.UsagePercent
	}
	return sum / float64(len(cores))
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
