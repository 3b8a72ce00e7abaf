package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/model"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly and annual spend with a per-category breakdown",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	t := s.tracker
	summary := t.Summary()
	local := s.money.For(model.CurrencyLocal)

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING SUMMARY"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Overview",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Subscriptions", cli.FormatNumber(int64(t.Len()))},
			{"Monthly total", local.Format(summary.Total)},
			{"Annual estimate", local.Format(summary.Annualized)},
			{"---"},
			{"Rate (" + s.cfg.Currency.RateLabel() + ")", t.Rate().String()},
		},
	}))

	cats := t.Categories()
	if len(cats) == 0 {
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			c.Category.Emoji() + " " + string(c.Category),
			cli.FormatNumber(int64(c.Count)),
			local.Format(c.Monthly),
			cli.FormatPercent(c.SharePercent),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Category",
		Headers: []string{"Category", "Count", "Monthly", "Share"},
		Rows:    rows,
	}))

	fmt.Println()
	for _, c := range cats {
		label := fmt.Sprintf("%-8s", c.Category)
		fmt.Println(cli.RenderHorizontalBar(label, c.SharePercent, 100, 30))
	}
	fmt.Println()
	return nil
}
