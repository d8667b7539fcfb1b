package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aaronscribner/macos-dev-resource-monitor/internal/catalog"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the application category catalog",
	Long: `Print the category catalog used to group processes. The stored,
user-edited catalog is shown when one exists; otherwise the built-ins.`,
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store := openStore(cfg, quietLogger(cfg))

	cats, ok := store.LoadCategories()
	source := "stored"
	if !ok {
		cats = catalog.Default()
		source = "built-in"
	}

	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(cats)
	}

	fmt.Printf("=== Categories (%s) ===\n", source)
	for _, c := range cats {
		state := "enabled"
		if !c.Enabled {
			state = "disabled"
		}
		fmt.Printf("%-16s %-20s %s  %s\n", c.ID, c.Name, c.Color, state)
		for _, app := range c.Apps {
			kind := "substring"
			if app.UseRegex {
				kind = "regex"
			}
			fmt.Printf("    %-20s %-9s %v\n", app.Name, kind, app.Patterns)
		}
	}

	return nil
}
