package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rateCmd = &cobra.Command{
	Use:   "rate [value]",
	Short: "Show or set the conversion rate",
	Long:  "Show the foreign-to-local conversion rate, set it to a positive number, " +
		"or reset it to the default with --reset.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRate,
}

var flagRateReset bool

func init() {
	rateCmd.Flags().BoolVar(&flagRateReset, "reset", false, "Forget the stored rate and use the default")
	rootCmd.AddCommand(rateCmd)
}

func runRate(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	label := s.cfg.Currency.RateLabel()
	if flagRateReset {
		if len(args) > 0 {
			return fmt.Errorf("--reset takes no value")
		}
		s.tracker.ResetRate()
		fmt.Printf("  %s reset to %s\n", label, s.tracker.Rate().String())
		return nil
	}
	if len(args) == 0 {
		fmt.Printf("  %s  %s\n", label, s.tracker.Rate().String())
		return nil
	}

	if !s.tracker.SetRate(args[0]) {
		return fmt.Errorf("rate %q must be a positive number; keeping %s", args[0], s.tracker.Rate().String())
	}
	fmt.Printf("  %s set to %s\n", label, s.tracker.Rate().String())
	return nil
}
