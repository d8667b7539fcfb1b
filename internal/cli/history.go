package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/trend"
)

var (
	historyHours int
	historyDays  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show stored resource snapshots",
	Long: `Print stored snapshots for a time window along with summary
statistics for the range.

Examples:
  resmon history               # last 24 hours
  resmon history --hours 6
  resmon history --days 7 --json`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyHours, "hours", 24, "window size in hours")
	historyCmd.Flags().IntVar(&historyDays, "days", 0, "window size in days (overrides --hours)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store := openStore(cfg, quietLogger(cfg))

	snaps := store.SnapshotsLastHours(historyHours)
	if historyDays > 0 {
		snaps = store.SnapshotsLastDays(historyDays)
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(snaps)
	}

	if len(snaps) == 0 {
		fmt.Println("No snapshots in the selected window.")
		return nil
	}

	stats := trend.Summarize(snaps)
	fmt.Printf("=== Resource History (%d snapshots) ===\n", stats.Samples)
	fmt.Printf("CPU:    avg %5.1f%%  peak %5.1f%%\n", stats.AvgCPU, stats.PeakCPU)
	fmt.Printf("Memory: avg %5.1f%%  peak %5.1f%%\n\n", stats.AvgMemoryPercent, stats.PeakMemoryPercent)

	for _, s := range snaps {
		fmt.Printf("%s  cpu %5.1f%%  mem %5.1f%%  (%d cores)\n",
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.CPUPercent(), s.MemoryPercent(), s.CoreCount)
	}

	avgs := trend.CategoryAverages(snaps)
	if len(avgs) > 0 {
		fmt.Println("\nPer-category averages:")
		for id, u := range avgs {
			fmt.Printf("  %-16s cpu %5.1f%%  mem %7.1f MB  procs %d\n",
				id, u.CPUPercent, u.MemoryMB, u.ProcessCount)
		}
	}

	return nil
}
