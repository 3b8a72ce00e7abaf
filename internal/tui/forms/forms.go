// Package forms holds the huh forms shared by the CLI prompts and the dashboard.
package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/tracker"
	"github.com/theirongolddev/subtrack/internal/tui/theme"
)

// AddGroup is the add-subscription form. Name suggestions follow what has
// been typed so far.
func AddGroup(f *tracker.Form) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Placeholder("Netflix").
			Value(&f.Name).
			SuggestionsFunc(func() []string {
				return model.SuggestApps(f.Name)
			}, &f.Name).
			Validate(tracker.CheckName),
		huh.NewInput().
			Title("Amount").
			Placeholder("0.00").
			Value(&f.Amount).
			Validate(tracker.CheckAmount),
		huh.NewSelect[model.Currency]().
			Title("Currency").
			Options(huh.NewOptions(model.Currencies...)...).
			Value(&f.Currency),
		huh.NewSelect[model.Category]().
			Title("Category").
			Options(categoryOptions()...).
			Value(&f.Category),
		huh.NewInput().
			Title("Billing day").
			Description("Day of month, 1-31").
			Value(&f.Day).
			Validate(tracker.CheckDay),
	).Title("New subscription")
}

func categoryOptions() []huh.Option[model.Category] {
	opts := make([]huh.Option[model.Category], 0, len(model.Categories))
	for _, c := range model.Categories {
		opts = append(opts, huh.NewOption(c.Emoji()+" "+string(c), c))
	}
	return opts
}

// NewAdd returns a blank add form defaulting to today's billing day.
func NewAdd(today int) *tracker.Form {
	return &tracker.Form{
		Day:      strconv.Itoa(today),
		Currency: model.CurrencyLocal,
		Category: model.CategoryVideo,
	}
}

// DeleteGroup asks the yes/no removal question for sub.
func DeleteGroup(sub model.Subscription, amount string, ok *bool) *huh.Group {
	return huh.NewGroup(
		huh.NewConfirm().
			Title("Delete this subscription?").
			Description(fmt.Sprintf("%s %s  %s", sub.Emoji, sub.Name, amount)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(ok),
	)
}

// Setup holds the editable first-run settings as text.
type Setup struct {
	Theme        string
	UpcomingDays string
	LocalSymbol  string
	LocalCode    string
	ForeignCode  string
}

// SetupFrom seeds the wizard from cfg.
func SetupFrom(cfg config.Config) *Setup {
	return &Setup{
		Theme:        cfg.Appearance.Theme,
		UpcomingDays: strconv.Itoa(cfg.General.UpcomingDays),
		LocalSymbol:  cfg.Currency.LocalSymbol,
		LocalCode:    cfg.Currency.LocalCode,
		ForeignCode:  cfg.Currency.ForeignCode,
	}
}

// Apply copies the wizard answers into cfg.
func (s *Setup) Apply(cfg *config.Config) {
	cfg.Appearance.Theme = s.Theme
	if n, err := strconv.Atoi(strings.TrimSpace(s.UpcomingDays)); err == nil && n > 0 {
		cfg.General.UpcomingDays = n
	}
	cfg.Currency.LocalSymbol = strings.TrimSpace(s.LocalSymbol)
	cfg.Currency.LocalCode = strings.ToUpper(strings.TrimSpace(s.LocalCode))
	cfg.Currency.ForeignCode = strings.ToUpper(strings.TrimSpace(s.ForeignCode))
}

// SetupGroups is the first-run wizard.
func SetupGroups(s *Setup) []*huh.Group {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return []*huh.Group{
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to subtrack!").
				Description("Let's set up a few things.\nPress Enter to continue."),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&s.Theme),
			huh.NewInput().
				Title("Upcoming window").
				Description("How many days ahead the upcoming view looks").
				Value(&s.UpcomingDays).
				Validate(checkPositive),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Local currency symbol").
				Value(&s.LocalSymbol),
			huh.NewInput().
				Title("Local currency ISO code").
				Description("Used for number formatting, e.g. MYR").
				Value(&s.LocalCode),
			huh.NewInput().
				Title("Foreign currency ISO code").
				Value(&s.ForeignCode),
		),
	}
}

func checkPositive(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a positive number of days")
	}
	return nil
}
