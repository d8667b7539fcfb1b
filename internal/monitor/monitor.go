package monitor

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/catalog"
)

// snapshotInterval is how often a snapshot is persisted on the steady
// path; breaches persist on demand regardless.
const snapshotInterval = 60 * time.Second

// SnapshotStore is the persistence surface the pipeline needs.
type SnapshotStore interface {
	EventSink
	SaveSnapshot(s *ResourceSnapshot) error
}

// Subscriber receives each newly published snapshot.
type Subscriber func(s *ResourceSnapshot)

// Pipeline owns the poll timer and sequences sampler, delta engine,
// aggregator, threshold monitor and persistence on every tick. One cycle
// runs at a time; the ticker drops missed ticks, so a slow OS read
// lengthens the effective interval but never double-samples.
type Pipeline struct {
	sampler    Sampler
	delta      *DeltaEngine
	thresholds *ThresholdMonitor
	store      SnapshotStore
	logger     *slog.Logger
	now        func() time.Time

	mu          sync.RWMutex
	settings    AppSettings
	categories  []catalog.AppCategory
	agg         *Aggregator
	latest      *ResourceSnapshot
	lastRaw     []ProcessSample
	lastProcs   []ProcessSample
	cores       []CoreUsage
	subscribers []Subscriber
	running     bool
	lastPersist time.Time

	done    chan struct{}
	refresh chan struct{}
}

func NewPipeline(sampler Sampler, store SnapshotStore, notifier Notifier, settings AppSettings, cats []catalog.AppCategory, logger *slog.Logger) *Pipeline {
	p := &Pipeline{
		sampler:    sampler,
		delta:      NewDeltaEngine(),
		store:      store,
		logger:     logger,
		now:        time.Now,
		settings:   settings,
		categories: catalog.Clone(cats),
		agg:        NewAggregator(cats),
		refresh:    make(chan struct{}, 1),
	}
	// The threshold monitor shares the pipeline clock, so snapshots and
	// cooldown deadlines always come from the same time source.
	p.thresholds = NewThresholdMonitor(store, notifier, logger, func() time.Time { return p.now() })
	return p
}

// Start begins polling. Calling Start on a running pipeline is a no-op.
func (p *Pipeline) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	done := make(chan struct{})
	p.done = done
	interval := p.settings.PollInterval()
	p.mu.Unlock()

	go p.runLoop(interval, done)

	p.logger.Info("monitoring started", "interval", interval)
}

// Stop invalidates the timer. An in-flight sample finishes but its result
// is dropped when it comes back.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.done)
	p.mu.Unlock()

	p.logger.Info("monitoring stopped")
}

func (p *Pipeline) Running() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}

// Refresh requests an immediate poll outside the timer schedule.
func (p *Pipeline) Refresh() {
	p.mu.RLock()
	running := p.running
	p.mu.RUnlock()
	if !running {
		return
	}
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// runLoop drives poll cycles until done is closed. It works exclusively
// with the done channel captured at Start: after a Stop/Start restart the
// pipeline holds a fresh channel, so a stale loop can neither tick again
// nor have its in-flight cycle accepted by collect.
func (p *Pipeline) runLoop(interval time.Duration, done chan struct{}) {
	// Prime the delta engine and publish a first snapshot right away
	// rather than waiting a full interval.
	p.collect(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p.collect(done)
		case <-p.refresh:
			p.collect(done)
		}

		p.mu.RLock()
		want := p.settings.PollInterval()
		p.mu.RUnlock()
		if want != interval {
			interval = want
			ticker.Reset(interval)
		}
	}
}

// collect runs one full poll cycle: sample, delta, aggregate, evaluate,
// persist, publish. The OS read happens outside the state lock so readers
// of the latest snapshot never wait on a slow kernel call. done is the
// channel the calling loop was started with; a cycle whose channel no
// longer matches p.done began before a Stop and drops its result, even
// when a restart has set running again.
func (p *Pipeline) collect(done chan struct{}) {
	res := p.sampler.Sample()

	p.mu.Lock()
	if !p.running || done != p.done {
		// Stopped or restarted while the sample was in flight.
		p.mu.Unlock()
		return
	}

	cores := p.delta.Update(res.CoreTicks)
	totalCPU := MeanUsage(cores)

	procs := p.agg.Categorize(res.Processes)
	snap := p.agg.BuildSnapshot(p.now(), procs, totalCPU, res.UsedMemoryMB, res.TotalMemoryMB, len(cores))

	p.latest = snap
	p.lastRaw = res.Processes
	p.lastProcs = procs
	p.cores = cores

	settings := p.settings
	subs := append([]Subscriber(nil), p.subscribers...)

	persist := p.lastPersist.IsZero() || snap.Timestamp.Sub(p.lastPersist) >= snapshotInterval
	if persist {
		p.lastPersist = snap.Timestamp
	}
	p.mu.Unlock()

	event := p.thresholds.Evaluate(snap, procs, settings)

	if persist || event != nil {
		if err := p.store.SaveSnapshot(snap); err != nil {
			p.logger.Warn("failed to persist snapshot", "error", err)
		}
	}

	for _, fn := range subs {
		fn(snap)
	}
}

// Latest returns the most recently published snapshot, or nil before the
// first cycle completes.
func (p *Pipeline) Latest() *ResourceSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}

// Processes returns the categorized samples from the latest cycle.
func (p *Pipeline) Processes() []ProcessSample {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]ProcessSample, len(p.lastProcs))
	copy(out, p.lastProcs)
	return out
}

// CoreUsages returns the per-core utilization from the latest cycle.
func (p *Pipeline) CoreUsages() []CoreUsage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]CoreUsage, len(p.cores))
	copy(out, p.cores)
	return out
}

// Categories returns the current per-category breakdown.
func (p *Pipeline) Categories() []CategoryUsage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.agg.ByCategory(p.lastProcs)
}

// Apps returns the current by-application grouping, highest CPU first.
func (p *Pipeline) Apps() []AppUsage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.agg.ByApp(p.lastProcs)
}

// Settings returns the active settings.
func (p *Pipeline) Settings() AppSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.settings
}

// Catalog returns a copy of the active category catalog.
func (p *Pipeline) Catalog() []catalog.AppCategory {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return catalog.Clone(p.categories)
}

// Subscribe registers a callback invoked with every published snapshot.
// Callbacks run on the poll goroutine and should return quickly.
func (p *Pipeline) Subscribe(fn Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// UpdateSettings replaces the active settings. Invalid values are
// rejected and the previous settings stay in effect. A changed poll
// interval takes hold on the next tick.
func (p *Pipeline) UpdateSettings(s AppSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	p.settings = s
	p.mu.Unlock()

	p.logger.Info("settings updated",
		"poll_interval_sec", s.PollIntervalSec,
		"cpu_threshold", s.CPUThreshold,
		"memory_threshold", s.MemoryThreshold,
	)
	return nil
}

// UpdateCategories replaces the category catalog and immediately
// re-aggregates the most recent process list, so breakdowns reflect the
// new catalog without waiting for the next timer tick.
func (p *Pipeline) UpdateCategories(cats []catalog.AppCategory) {
	p.mu.Lock()
	p.categories = catalog.Clone(cats)
	p.agg = NewAggregator(p.categories)

	var snap *ResourceSnapshot
	var subs []Subscriber
	if p.latest != nil {
		procs := p.agg.Categorize(p.lastRaw)
		snap = p.agg.BuildSnapshot(p.latest.Timestamp, procs,
			p.latest.TotalCPU, p.latest.TotalMemoryMB, p.latest.TotalSystemMemoryMB, p.latest.CoreCount)
		p.latest = snap
		p.lastProcs = procs
		subs = append([]Subscriber(nil), p.subscribers...)
	}
	p.mu.Unlock()

	p.logger.Info("category catalog updated", "categories", len(cats))

	if snap != nil {
		for _, fn := range subs {
			fn(snap)
		}
	}
}
