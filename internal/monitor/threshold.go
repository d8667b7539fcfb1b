package monitor

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

// EventSink persists threshold events.
type EventSink interface {
	SaveEvent(e *ThresholdEvent) error
}

// Notifier requests an external alert for a breach. Delivery is not the
// pipeline's concern; failures must not affect persistence or monitor
// state.
type Notifier interface {
	ThresholdExceeded(e *ThresholdEvent, top []ProcessSample)
}

// ThresholdMonitor checks each new snapshot against the configured
// thresholds and emits at most one event per cooldown window. The
// cooldown is an explicit deadline compared against an injected clock,
// which keeps the timing deterministic under test.
type ThresholdMonitor struct {
	sink     EventSink
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	cooldownUntil time.Time
}

// NewThresholdMonitor builds a monitor using the given clock; a nil now
// falls back to time.Now.
func NewThresholdMonitor(sink EventSink, notifier Notifier, logger *slog.Logger, now func() time.Time) *ThresholdMonitor {
	if now == nil {
		now = time.Now
	}
	return &ThresholdMonitor{
		sink:     sink,
		notifier: notifier,
		logger:   logger,
		now:      now,
	}
}

// Evaluate inspects one snapshot. CPU is checked before memory and at
// most one event is emitted per call; comparisons are strictly
// greater-than, so a value exactly at the threshold does not trigger.
// During cooldown, or when thresholds are disabled, it is a no-op.
// The returned event, if any, has already been persisted and notified.
func (m *ThresholdMonitor) Evaluate(snap *ResourceSnapshot, procs []ProcessSample, settings AppSettings) *ThresholdEvent {
	if !settings.ThresholdsEnabled {
		return nil
	}

	now := m.now()
	if now.Before(m.cooldownUntil) {
		return nil
	}

	var event *ThresholdEvent
	switch {
	case snap.CPUPercent() > settings.CPUThreshold:
		event = m.newEvent(now, TriggerCPU, snap.CPUPercent(), settings.CPUThreshold, procs)
	case snap.MemoryPercent() > settings.MemoryThreshold:
		event = m.newEvent(now, TriggerMemory, snap.MemoryPercent(), settings.MemoryThreshold, procs)
	default:
		return nil
	}

	m.cooldownUntil = now.Add(settings.Cooldown())

	m.logger.Info("threshold exceeded",
		"trigger", event.Trigger,
		"value", event.Value,
		"threshold", event.Threshold,
		"cooldown_until", m.cooldownUntil,
	)

	// Persistence and notification are independent consumers: a failure
	// in one must not suppress the other.
	if err := m.sink.SaveEvent(event); err != nil {
		m.logger.Warn("failed to persist threshold event", "error", err)
	}
	if m.notifier != nil && m.notifyEnabled(event.Trigger, settings) {
		m.notifier.ThresholdExceeded(event, TopByTrigger(procs, event.Trigger, 3))
	}

	return event
}

func (m *ThresholdMonitor) notifyEnabled(trigger TriggerType, settings AppSettings) bool {
	if trigger == TriggerCPU {
		return settings.NotifyOnCPU
	}
	return settings.NotifyOnMemory
}

func (m *ThresholdMonitor) newEvent(ts time.Time, trigger TriggerType, value, threshold float64, procs []ProcessSample) *ThresholdEvent {
	// Events carry the full process list so the offender can be found
	// later, unlike the snapshot's top-10.
	captured := make([]ProcessSample, len(procs))
	copy(captured, procs)

	return &ThresholdEvent{
		ID:        uuid.NewString(),
		Timestamp: ts,
		Trigger:   trigger,
		Value:     value,
		Threshold: threshold,
		Processes: captured,
	}
}

// TopByTrigger returns the n samples highest on the triggering metric.
func TopByTrigger(procs []ProcessSample, trigger TriggerType, n int) []ProcessSample {
	sorted := make([]ProcessSample, len(procs))
	copy(sorted, procs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if trigger == TriggerMemory {
			return sorted[i].MemoryMB > sorted[j].MemoryMB
		}
		return sorted[i].CPUPercent > sorted[j].CPUPercent
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
