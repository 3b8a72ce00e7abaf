package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/tui/forms"
)

var flagRemoveYes bool

var removeCmd = &cobra.Command{
	Use:     "remove <id-or-prefix>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a subscription",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&flagRemoveYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	sub, err := s.tracker.Resolve(args[0])
	if err != nil {
		return err
	}

	confirm := func(sub model.Subscription) bool {
		if flagRemoveYes {
			return true
		}
		return confirmDelete(sub, s.money.For(sub.Currency).Format(sub.Amount))
	}

	removed, err := s.tracker.Remove(sub.ID, confirm)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Println("  Cancelled.")
		return nil
	}
	fmt.Printf("  Removed %s (%s)\n", sub.Name, cli.ShortID(sub.ID))
	return nil
}

// confirmDelete asks the yes/no question. Any prompt failure counts as no.
func confirmDelete(sub model.Subscription, amount string) bool {
	ok := false
	err := huh.NewForm(forms.DeleteGroup(sub, amount, &ok)).Run()
	return err == nil && ok
}
