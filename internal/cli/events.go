package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/monitor"
	"github.com/aaronscribner/macos-dev-resource-monitor/internal/notify"
)

var eventsDays int

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent threshold events",
	Long:  `Print threshold breach events, most recent first.`,
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().IntVar(&eventsDays, "days", 7, "how many days back to look")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store := openStore(cfg, quietLogger(cfg))

	events := store.LoadEvents(eventsDays)

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(events)
	}

	if len(events) == 0 {
		fmt.Printf("No threshold events in the last %d days.\n", eventsDays)
		return nil
	}

	for _, e := range events {
		fmt.Printf("%s  %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"),
			notify.Describe(e))
		for _, p := range monitor.TopByTrigger(e.Processes, e.Trigger, 3) {
			fmt.Printf("    %-24s cpu %5.1f%%  mem %7.1f MB\n", p.Name, p.CPUPercent, p.MemoryMB)
		}
	}

	return nil
}
