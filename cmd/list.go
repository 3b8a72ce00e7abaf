package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/billing"
	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/pipeline"
)

var listCmd = &cobra.Command{
	Use:     "list [query]",
	Aliases: []string{"ls"},
	Short:   "List subscriptions, optionally filtered by name",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runList,
}

var flagListCategory string

func init() {
	listCmd.Flags().StringVarP(&flagListCategory, "category", "c", "", "Only show one category (Video, Music or Tools)")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	t := s.tracker
	if t.Len() == 0 {
		fmt.Println("\n  No subscriptions yet.")
		fmt.Println("  Add one with `subtrack add`.")
		return nil
	}

	records, err := filterByCategoryFlag(t.Search(query), flagListCategory)
	if err != nil {
		return err
	}
	summary := t.Summary()
	now := t.Now()

	fmt.Println()
	fmt.Println(cli.RenderTitle("SUBSCRIPTIONS"))
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("  No subscriptions match.")
	} else {
		fmt.Print(cli.RenderTable(recordsTable(s, records, summary, now)))
	}

	local := s.money.For(model.CurrencyLocal)
	fmt.Println()
	fmt.Printf("  Monthly total     %s\n", cli.RenderMoney(local.Format(summary.Total)))
	fmt.Printf("  Annual estimate   %s\n", cli.RenderMoney(local.Format(summary.Annualized)))
	fmt.Printf("  %s\n", cli.RenderMuted(fmt.Sprintf("%d subscriptions, rate 1 %s = %s %s",
		t.Len(), s.cfg.Currency.ForeignCode, t.Rate().String(), local.Symbol())))
	fmt.Println()
	return nil
}

func recordsTable(s *session, records []model.Subscription, summary model.SpendSummary, now time.Time) cli.Table {
	local := s.money.For(model.CurrencyLocal)
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		u := billing.UrgencyOf(r.NextDate, now)
		rows = append(rows, []string{
			cli.ShortID(r.ID),
			r.Category.Emoji() + " " + r.Name,
			s.money.For(r.Currency).Format(r.Amount),
			local.Format(summary.Local(r.ID)),
			cli.FormatDisplayDate(r.NextDate),
			cli.RenderUrgency(u),
		})
	}
	return cli.Table{
		Headers: []string{"ID", "Name", "Amount", "Monthly", "Next", "Due"},
		Rows:    rows,
	}
}

// filterByCategoryFlag narrows records to the named category; an empty name
// keeps them all.
func filterByCategoryFlag(records []model.Subscription, name string) ([]model.Subscription, error) {
	if name == "" {
		return records, nil
	}
	cat, ok := model.ParseCategory(name)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", name)
	}
	return pipeline.FilterByCategory(records, cat), nil
}
