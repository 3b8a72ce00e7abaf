package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/subtrack/internal/billing"
	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/pipeline"
	"github.com/theirongolddev/subtrack/internal/tui/components"
	"github.com/theirongolddev/subtrack/internal/tui/theme"
)

// tierOrder is the display order of the upcoming groups.
var tierOrder = []billing.Tier{billing.TierDueToday, billing.TierUrgent, billing.TierNormal}

func (a App) renderUpcomingTab(cw int) string {
	t := theme.Active
	local := a.money.For(model.CurrencyLocal)
	window := a.cfg.General.UpcomingDays

	var inWindow []pipeline.Due
	windowSpend := decimal.Zero
	for _, d := range a.dues {
		if d.Urgency.Days > window {
			break
		}
		inWindow = append(inWindow, d)
		windowSpend = windowSpend.Add(a.summary.Local(d.Sub.ID))
	}

	next := "--"
	if len(a.dues) > 0 {
		first := a.dues[0]
		next = first.Sub.Name + " · " + cli.FormatDays(first.Urgency.Days)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Monthly total", Value: local.Format(a.summary.Total), Color: t.Money},
		{Label: "Annual estimate", Value: local.Format(a.summary.Annualized)},
		{Label: fmt.Sprintf("Due in %dd", window), Value: local.Format(windowSpend),
			Note: fmt.Sprintf("%d charges", len(inWindow))},
		{Label: "Next charge", Value: truncStr(next, cw/4-4)},
	}, cw))
	b.WriteString("\n")

	if len(inWindow) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		b.WriteString(components.ContentCard("Upcoming",
			muted.Render(fmt.Sprintf("Nothing due in the next %d days.", window)), cw))
		return b.String()
	}

	groups := pipeline.GroupByTier(inWindow)
	var cards []string
	for _, tier := range tierOrder {
		if len(groups[tier]) == 0 {
			continue
		}
		cards = append(cards, a.renderDueGroup(tier, groups[tier], cw))
	}
	b.WriteString(strings.Join(cards, "\n"))
	return b.String()
}

func (a App) renderDueGroup(tier billing.Tier, dues []pipeline.Due, cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	tierStyle := lipgloss.NewStyle().Foreground(t.TierColor(tier)).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	const amountW, dateW, dueW = 12, 13, 18
	barW := 20
	nameW := innerW - amountW - dateW - dueW - barW - 4
	if nameW < 12 {
		barW -= 12 - nameW
		nameW = 12
	}

	var body strings.Builder
	for i, d := range dues {
		sub := d.Sub
		date := cli.FormatDayOfWeek(int(sub.NextDate.Time().Weekday())) + " " + cli.FormatDisplayDate(sub.NextDate)

		body.WriteString(nameStyle.Render(padTo(truncStr(sub.Category.Emoji()+" "+sub.Name, nameW), nameW)))
		body.WriteString(space)
		body.WriteString(nameStyle.Render(fmt.Sprintf("%*s", amountW, a.money.For(sub.Currency).Format(sub.Amount))))
		body.WriteString(space)
		body.WriteString(mutedStyle.Render(fmt.Sprintf("%*s", dateW, date)))
		body.WriteString(space)
		body.WriteString(tierStyle.Render(padTo(urgencyText(d.Urgency), dueW)))
		if barW > 4 {
			body.WriteString(space)
			body.WriteString(components.CountdownBar(d.Urgency.Days, t.TierColor(tier), barW))
		}
		if i < len(dues)-1 {
			body.WriteString("\n")
		}
	}

	title := fmt.Sprintf("%s [%d]", strings.ToUpper(tier.String()[:1])+tier.String()[1:], len(dues))
	return components.ContentCard(title, body.String(), cw)
}
