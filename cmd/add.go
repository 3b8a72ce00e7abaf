package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/tracker"
	"github.com/theirongolddev/subtrack/internal/tui/forms"
)

var (
	flagAddName     string
	flagAddAmount   string
	flagAddCurrency string
	flagAddCategory string
	flagAddDay      int
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a subscription",
	Long: "Add a subscription. Missing name or amount are asked for interactively " +
		"when stdin is a terminal.",
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddName, "name", "", "Display name")
	addCmd.Flags().StringVar(&flagAddAmount, "amount", "", "Amount per month")
	addCmd.Flags().StringVar(&flagAddCurrency, "currency", string(model.CurrencyLocal), "RM or USD")
	addCmd.Flags().StringVar(&flagAddCategory, "category", string(model.CategoryVideo), "Video, Music or Tools")
	addCmd.Flags().IntVar(&flagAddDay, "day", 0, "Billing day of month, 1-31 (default today)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	f := addFormFromFlags(cmd.Flags().Changed("day"), s.tracker.Now().Day())

	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Amount) == "" {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return errors.New("--name and --amount are required when stdin is not a terminal")
		}
		if err := runAddForm(&f); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("  Cancelled.")
				return nil
			}
			return err
		}
	}

	in, err := f.Input()
	if err != nil {
		return err
	}
	sub, err := s.tracker.Add(in)
	if err != nil {
		return err
	}

	fmt.Printf("  Added %s %s (%s), %s, next billing %s\n",
		sub.Emoji, sub.Name, cli.ShortID(sub.ID),
		s.money.For(sub.Currency).Format(sub.Amount),
		cli.FormatDisplayDate(sub.NextDate))
	return nil
}

func runAddForm(f *tracker.Form) error {
	return huh.NewForm(forms.AddGroup(f)).Run()
}

// addFormFromFlags builds the form from the add flags. The billing day
// defaults to today only when --day was not given, so an explicit 0 reaches
// validation.
func addFormFromFlags(dayGiven bool, today int) tracker.Form {
	f := tracker.Form{
		Name:     flagAddName,
		Amount:   flagAddAmount,
		Day:      strconv.Itoa(flagAddDay),
		Currency: model.Currency(strings.ToUpper(flagAddCurrency)),
		Category: model.Category(flagAddCategory),
	}
	if c, ok := model.ParseCurrency(flagAddCurrency); ok {
		f.Currency = c
	}
	if c, ok := model.ParseCategory(flagAddCategory); ok {
		f.Category = c
	}
	if !dayGiven {
		f.Day = strconv.Itoa(today)
	}
	return f
}
