package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/billing"
	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/pipeline"
)

var flagWithin int

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Billing dates coming up, soonest first",
	Args:  cobra.NoArgs,
	RunE:  runUpcoming,
}

func init() {
	upcomingCmd.Flags().IntVarP(&flagWithin, "within", "w", 0, "Window in days (default from config, -1 for all)")
	rootCmd.AddCommand(upcomingCmd)
}

// tierOrder is the display order of the groups, most pressing first.
var tierOrder = []billing.Tier{billing.TierDueToday, billing.TierUrgent, billing.TierNormal}

func runUpcoming(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	within := s.cfg.General.UpcomingDays
	if cmd.Flags().Changed("within") {
		within = flagWithin
	}

	dues := s.tracker.Upcoming(within)

	title := fmt.Sprintf("UPCOMING  Next %dd", within)
	if within < 0 {
		title = "UPCOMING"
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	if len(dues) == 0 {
		fmt.Println("  Nothing due in this window.")
		fmt.Println()
		return nil
	}

	groups := pipeline.GroupByTier(dues)
	var rows [][]string
	for _, tier := range tierOrder {
		group := groups[tier]
		if len(group) == 0 {
			continue
		}
		if len(rows) > 0 {
			rows = append(rows, []string{"---"})
		}
		for _, d := range group {
			sub := d.Sub
			rows = append(rows, []string{
				sub.Category.Emoji() + " " + sub.Name,
				tier.String(),
				s.money.For(sub.Currency).Format(sub.Amount),
				cli.FormatDayOfWeek(int(sub.NextDate.Time().Weekday())) + " " + cli.FormatDisplayDate(sub.NextDate),
				cli.RenderUrgency(d.Urgency),
			})
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Tier", "Amount", "Date", "Due"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
