package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupDays int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete snapshots and events past the retention window",
	RunE:  runCleanup,
}

func init() {
	cleanupCmd.Flags().IntVar(&cleanupDays, "days", 0, "retention in days (default: persisted setting)")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store := openStore(cfg, quietLogger(cfg))

	days := cleanupDays
	if days <= 0 {
		days = store.LoadSettings().RetentionDays
	}
	if days < 1 || days > 365 {
		return fmt.Errorf("retention must be between 1 and 365 days, got %d", days)
	}

	store.Cleanup(days)
	fmt.Printf("Removed records older than %d days.\n", days)
	return nil
}
