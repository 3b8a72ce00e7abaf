package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/pipeline"
	"github.com/theirongolddev/subtrack/internal/tui/components"
	"github.com/theirongolddev/subtrack/internal/tui/theme"
)

func (a App) renderCategoriesTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(a.cats) == 0 {
		return components.ContentCard("Categories", muted.Render("No subscriptions yet."), cw)
	}

	var b strings.Builder
	if a.isCompactLayout() {
		b.WriteString(a.renderCategoryTable(cw))
		b.WriteString("\n")
		b.WriteString(a.renderCategoryShares(cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.renderCategoryTable(widths[0]),
			a.renderCategoryShares(widths[1]),
		}))
	}
	b.WriteString("\n")
	b.WriteString(a.renderBillingCalendar(cw))
	return b.String()
}

func (a App) renderCategoryTable(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)
	local := a.money.For(model.CurrencyLocal)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	costStyle := lipgloss.NewStyle().Foreground(t.Money).Background(t.Surface)

	const countW, moneyW = 6, 14
	nameW := innerW - countW - moneyW*2 - 3
	if nameW < 10 {
		nameW = 10
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s",
		nameW, "Category", countW, "Count", moneyW, "Monthly", moneyW, "Yearly")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", nameW+countW+moneyW*2+3)))
	body.WriteString("\n")

	for _, c := range a.cats {
		nameStyle := lipgloss.NewStyle().Foreground(t.CategoryColor(c.Category)).Background(t.Surface)
		body.WriteString(nameStyle.Render(padTo(c.Category.Emoji()+" "+string(c.Category), nameW)))
		body.WriteString(rowStyle.Render(fmt.Sprintf(" %*s", countW, cli.FormatNumber(int64(c.Count)))))
		body.WriteString(costStyle.Render(fmt.Sprintf(" %*s", moneyW, local.Format(c.Monthly))))
		body.WriteString(rowStyle.Render(fmt.Sprintf(" %*s", moneyW, local.Format(c.Monthly.Mul(monthsPerYear)))))
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(strings.Repeat("─", nameW+countW+moneyW*2+3)))
	body.WriteString("\n")
	body.WriteString(rowStyle.Render(fmt.Sprintf("%-*s %*s", nameW, "Total", countW, cli.FormatNumber(int64(a.tracker.Len())))))
	body.WriteString(costStyle.Bold(true).Render(fmt.Sprintf(" %*s", moneyW, local.Format(a.summary.Total))))
	body.WriteString(rowStyle.Render(fmt.Sprintf(" %*s", moneyW, local.Format(a.summary.Annualized))))

	return components.ContentCard("Spend by Category", body.String(), w)
}

func (a App) renderCategoryShares(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	const labelW = 8
	barW := innerW - labelW - 8
	if barW < 10 {
		barW = 10
	}

	var body strings.Builder
	for i, c := range a.cats {
		body.WriteString(components.ShareBar(string(c.Category), c.SharePercent, t.CategoryColor(c.Category), labelW, barW))
		if i < len(a.cats)-1 {
			body.WriteString("\n")
		}
	}
	return components.ContentCard("Share", body.String(), w)
}

// renderBillingCalendar charts local spend by billing day across the month.
func (a App) renderBillingCalendar(cw int) string {
	t := theme.Active

	days := pipeline.SpendByBillingDay(a.tracker.Records(), a.tracker.Rate())
	values := make([]float64, len(days))
	labels := make([]string, len(days))
	for i, d := range days {
		values[i] = d.InexactFloat64()
		labels[i] = strconv.Itoa(i + 1)
	}

	chart := components.ColumnChart(values, labels, t.Accent, 6, 5)
	return components.ContentCard("Charges by Day of Month", chart, cw)
}
