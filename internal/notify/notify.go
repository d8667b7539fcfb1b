// Package notify is the alert delivery boundary. The pipeline only knows
// the monitor.Notifier interface; delivery mechanics (system notification
// center, menu bar, etc.) live behind it and their failures never reach
// pipeline state.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/monitor"
)

// LogNotifier writes alerts to the structured log. It is the default
// delivery used by the daemon; GUI frontends supply their own
// monitor.Notifier.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) ThresholdExceeded(e *monitor.ThresholdEvent, top []monitor.ProcessSample) {
	n.logger.Warn("resource alert",
		"description", Describe(e),
		"top_processes", summarize(top, e.Trigger),
	)
}

// Describe renders a one-line human description of a breach.
func Describe(e *monitor.ThresholdEvent) string {
	metric := "CPU"
	if e.Trigger == monitor.TriggerMemory {
		metric = "Memory"
	}
	return fmt.Sprintf("%s usage %.1f%% exceeded threshold %.0f%%", metric, e.Value, e.Threshold)
}

func summarize(top []monitor.ProcessSample, trigger monitor.TriggerType) []string {
	out := make([]string, 0, len(top))
	for _, p := range top {
		if trigger == monitor.TriggerMemory {
			out = append(out, fmt.Sprintf("%s (%.0f MB)", p.Name, p.MemoryMB))
		} else {
			out = append(out, fmt.Sprintf("%s (%.1f%%)", p.Name, p.CPUPercent))
		}
	}
	return out
}
