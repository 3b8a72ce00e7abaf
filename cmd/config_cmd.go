// Package cmd implements the subtrack CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.DataDir())
	fmt.Printf("    Upcoming days:  %d\n", cfg.General.UpcomingDays)
	fmt.Println()

	fmt.Println("  [Currency]")
	fmt.Printf("    Local:   %s (%s)\n", cfg.Currency.LocalSymbol, cfg.Currency.LocalCode)
	fmt.Printf("    Foreign: %s\n", cfg.Currency.ForeignCode)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	level := cfg.Log.Level
	if level == "" {
		level = "warn"
	}
	fmt.Printf("    Level: %s\n", level)
	fmt.Println()

	printStore()

	fmt.Println("  Run `subtrack setup` to reconfigure.")
	return nil
}

// printStore lists the stored keys and when each was last written.
func printStore() {
	s, err := openSession()
	if err != nil {
		return
	}
	defer s.Close()

	fmt.Println("  [Store]")
	entries, err := s.tracker.Saved()
	switch {
	case err != nil:
		fmt.Printf("    Unavailable: %v\n", err)
	case len(entries) == 0:
		fmt.Println("    Nothing saved yet")
	default:
		for _, e := range entries {
			fmt.Printf("    %-8s last saved %s\n", e.Key+":", e.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		}
	}
	fmt.Println()
}
