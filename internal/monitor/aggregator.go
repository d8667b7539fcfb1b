package monitor

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/catalog"
)

const topProcessCount = 10

// Aggregator matches samples against the enabled catalog and builds the
// per-category and per-application breakdowns plus snapshots. It holds no
// tick state; a new one is built whenever the catalog changes.
type Aggregator struct {
	matcher      *catalog.Matcher
	order        []string          // enabled category ids, catalog order
	names        map[string]string // id -> display name
	colors       map[string]string // id -> hex color
	otherEnabled bool
}

func NewAggregator(cats []catalog.AppCategory) *Aggregator {
	a := &Aggregator{
		matcher: catalog.NewMatcher(cats),
		names:   make(map[string]string),
		colors:  make(map[string]string),
	}
	for _, c := range cats {
		if !c.Enabled {
			continue
		}
		a.order = append(a.order, c.ID)
		a.names[c.ID] = c.Name
		a.colors[c.ID] = c.Color
		if c.ID == catalog.OtherCategoryID {
			a.otherEnabled = true
		}
	}
	return a
}

// Categorize resolves category and application for each sample, on a
// copy. Precedence is catalog order, first match wins; a process lands in
// exactly one category. Unmatched processes go to "other" only when that
// category is enabled.
func (a *Aggregator) Categorize(procs []ProcessSample) []ProcessSample {
	out := make([]ProcessSample, len(procs))
	copy(out, procs)
	for i := range out {
		id, app, ok := a.matcher.Resolve(out[i].Name, out[i].Command)
		if ok {
			out[i].CategoryID = id
			out[i].AppName = app
		} else if a.otherEnabled {
			out[i].CategoryID = catalog.OtherCategoryID
		}
	}
	return out
}

// ByCategory sums categorized samples into per-category totals, in
// catalog order. Empty buckets are dropped except "other", which may
// surface as zero.
func (a *Aggregator) ByCategory(procs []ProcessSample) []CategoryUsage {
	buckets := make(map[string]*CategoryUsage, len(a.order))
	for _, id := range a.order {
		buckets[id] = &CategoryUsage{ID: id, Name: a.names[id], Color: a.colors[id]}
	}

	for _, p := range procs {
		b, ok := buckets[p.CategoryID]
		if !ok {
			continue
		}
		b.Usage = b.Usage.AddSample(p)
		b.Processes = append(b.Processes, p)
	}

	out := make([]CategoryUsage, 0, len(a.order))
	for _, id := range a.order {
		b := buckets[id]
		if b.Usage.ProcessCount > 0 || id == catalog.OtherCategoryID {
			out = append(out, *b)
		}
	}
	return out
}

// ByApp groups every sample by resolved application name, falling back to
// the raw process name for unmatched processes (they appear here even
// when dropped from category aggregation). Sorted by total CPU, highest
// first.
func (a *Aggregator) ByApp(procs []ProcessSample) []AppUsage {
	groups := make(map[string]*AppUsage)
	var order []string
	for _, p := range procs {
		key := p.AppName
		if key == "" {
			key = p.Name
		}
		g, ok := groups[key]
		if !ok {
			g = &AppUsage{Name: key}
			groups[key] = g
			order = append(order, key)
		}
		g.Usage = g.Usage.AddSample(p)
		g.Processes = append(g.Processes, p)
	}

	out := make([]AppUsage, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Usage.CPUPercent > out[j].Usage.CPUPercent
	})
	return out
}

// TopProcesses returns the n highest-CPU samples. The sort is stable so
// ties keep their original enumeration order.
func TopProcesses(procs []ProcessSample, n int) []ProcessSample {
	sorted := make([]ProcessSample, len(procs))
	copy(sorted, procs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CPUPercent > sorted[j].CPUPercent
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// BuildSnapshot assembles the immutable point-in-time record. The
// normalized total CPU, memory readings and core count come from the
// orchestrator (the delta engine's output), not from re-summing samples.
func (a *Aggregator) BuildSnapshot(ts time.Time, procs []ProcessSample, totalCPU, usedMemoryMB, totalMemoryMB float64, coreCount int) *ResourceSnapshot {
	snap := &ResourceSnapshot{
		ID:                  uuid.NewString(),
		Timestamp:           ts,
		TotalCPU:            totalCPU,
		TotalMemoryMB:       usedMemoryMB,
		TotalSystemMemoryMB: totalMemoryMB,
		CoreCount:           coreCount,
		Categories:          make(map[string]ResourceUsage),
		TopProcesses:        TopProcesses(procs, topProcessCount),
	}
	for _, cu := range a.ByCategory(procs) {
		snap.Categories[cu.ID] = cu.Usage
	}
	return snap
}
