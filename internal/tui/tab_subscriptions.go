package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/subtrack/internal/billing"
	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/tui/components"
	"github.com/theirongolddev/subtrack/internal/tui/theme"
)

var monthsPerYear = decimal.NewFromInt(12)

// subsState holds the subscriptions tab state.
type subsState struct {
	cursor int
	offset int // scroll offset for the list

	searching   bool
	searchInput textinput.Model
	searchQuery string
}

func (s *subsState) move(delta, n int) {
	s.cursor += delta
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// selected returns the record under the cursor, if any.
func (a App) selected() (model.Subscription, bool) {
	if a.subs.cursor < 0 || a.subs.cursor >= len(a.records) {
		return model.Subscription{}, false
	}
	return a.records[a.subs.cursor], true
}

// updateSubscriptionsKey handles keys specific to the list. ok is false when
// the key should fall through to the global bindings.
func (a App) updateSubscriptionsKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.records)
	switch key {
	case "/":
		a.subs.searching = true
		a.subs.searchInput = newSearchInput()
		a.subs.searchInput.SetValue(a.subs.searchQuery)
		a.subs.searchInput.Focus()
		return a, a.subs.searchInput.Cursor.BlinkCmd(), true
	case "esc":
		if a.subs.searchQuery != "" {
			a.subs.searchQuery = ""
			a.subs.cursor = 0
			a.subs.offset = 0
			a.recompute()
		}
		return a, nil, true
	case "j", "down":
		a.subs.move(1, n)
		return a, nil, true
	case "k", "up":
		a.subs.move(-1, n)
		return a, nil, true
	case "g", "home":
		a.subs.cursor = 0
		a.subs.offset = 0
		return a, nil, true
	case "G", "end":
		a.subs.move(n, n)
		return a, nil, true
	case "d", "delete":
		sub, ok := a.selected()
		if !ok {
			return a, nil, true
		}
		a.modal = newDeleteModal(sub, a.money.For(sub.Currency).Format(sub.Amount))
		a.modal.resize(a.width, a.height)
		return a, a.modal.form.Init(), true
	}
	return a, nil, false
}

// updateSearch handles key events while in search mode.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.subs.searchQuery = strings.TrimSpace(a.subs.searchInput.Value())
		a.subs.searching = false
		a.subs.cursor = 0
		a.subs.offset = 0
		a.recompute()
		return a, nil
	case "esc":
		a.subs.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.subs.searchInput, cmd = a.subs.searchInput.Update(msg)
	return a, cmd
}

func (a App) renderSubscriptionsTab(cw, h int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	if a.subs.searching {
		b.WriteString(components.ContentCard("Search", a.subs.searchInput.View(), cw))
		b.WriteString("\n")
		h -= 3
	}

	if a.tracker.Len() == 0 {
		b.WriteString(components.ContentCard("Subscriptions",
			muted.Render("No subscriptions yet. Press a to add one."), cw))
		return b.String()
	}
	if len(a.records) == 0 {
		b.WriteString(components.ContentCard("Subscriptions",
			muted.Render(fmt.Sprintf("Nothing matches %q. Esc clears the search.", a.subs.searchQuery)), cw))
		return b.String()
	}

	if a.isCompactLayout() {
		b.WriteString(a.renderSubsList(cw, h, true))
		return b.String()
	}

	leftW := cw * 3 / 5
	rightW := cw - leftW
	list := a.renderSubsList(leftW, h, false)
	detail := a.renderSubDetail(rightW)
	b.WriteString(components.CardRow([]string{list, detail}))
	return b.String()
}

func (a App) renderSubsList(w, h int, withDate bool) string {
	t := theme.Active
	ss := a.subs
	innerW := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)

	amountW, dueW, dateW := 12, 18, 0
	if withDate {
		dateW = 10
	}
	nameW := innerW - amountW - dueW - dateW - 3
	if nameW < 10 {
		nameW = 10
	}

	visible := h - 4 // card border (2) + title + header
	if visible < 3 {
		visible = 3
	}
	offset := ss.offset
	if ss.cursor < offset {
		offset = ss.cursor
	}
	if ss.cursor >= offset+visible {
		offset = ss.cursor - visible + 1
	}
	end := offset + visible
	if end > len(a.records) {
		end = len(a.records)
	}

	header := fmt.Sprintf("%-*s %*s", nameW, "Name", amountW, "Monthly")
	if withDate {
		header += fmt.Sprintf(" %*s", dateW, "Next")
	}
	header += fmt.Sprintf(" %-*s", dueW, "Due")

	var body strings.Builder
	body.WriteString(headerStyle.Render(padTo(header, innerW)))
	body.WriteString("\n")

	local := a.money.For(model.CurrencyLocal)
	for i := offset; i < end; i++ {
		r := a.records[i]
		u := billing.UrgencyOf(r.NextDate, a.now)

		name := truncStr(r.Category.Emoji()+" "+r.Name, nameW)
		line := padTo(name, nameW) + " " + fmt.Sprintf("%*s", amountW, local.Format(a.summary.Local(r.ID)))
		if withDate {
			line += " " + fmt.Sprintf("%*s", dateW, cli.FormatDisplayDate(r.NextDate))
		}

		style := rowStyle
		if i == ss.cursor {
			style = selectedStyle
		}
		dueStyle := lipgloss.NewStyle().Foreground(t.TierColor(u.Tier)).Background(style.GetBackground())
		if u.Tier != billing.TierNormal {
			dueStyle = dueStyle.Bold(true)
		}
		body.WriteString(style.Render(line + " "))
		body.WriteString(dueStyle.Render(padTo(urgencyText(u), dueW)))
		body.WriteString("\n")
	}

	title := fmt.Sprintf("Subscriptions [%d]", len(a.records))
	if ss.searchQuery != "" {
		title = fmt.Sprintf("Subscriptions [%d/%d]", len(a.records), a.tracker.Len())
	}
	return components.ContentCard(title, strings.TrimSuffix(body.String(), "\n"), w)
}

func (a App) renderSubDetail(w int) string {
	t := theme.Active
	sel, ok := a.selected()
	if !ok {
		return components.ContentCard("Detail", "", w)
	}
	innerW := components.CardInnerWidth(w)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	moneyStyle := lipgloss.NewStyle().Foreground(t.Money).Background(t.Surface).Bold(true)
	ruleStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)

	u := billing.UrgencyOf(sel.NextDate, a.now)
	local := a.money.For(model.CurrencyLocal)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-13s", label)) + value + "\n"
	}

	var body strings.Builder
	body.WriteString(valueStyle.Render(sel.Category.Emoji() + " " + string(sel.Category)))
	body.WriteString("\n")
	body.WriteString(ruleStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")
	body.WriteString(row("Amount", valueStyle.Render(a.money.For(sel.Currency).Format(sel.Amount))))
	if sel.Currency.IsForeign() {
		body.WriteString(row("In "+local.Symbol(), moneyStyle.Render(local.Format(a.summary.Local(sel.ID)))))
	}
	body.WriteString(row("Yearly", valueStyle.Render(local.Format(a.summary.Local(sel.ID).Mul(monthsPerYear)))))
	body.WriteString(row("Billing day", valueStyle.Render(fmt.Sprintf("%d%s of the month", sel.BillingDay, cli.OrdinalSuffix(sel.BillingDay)))))
	next := cli.FormatDisplayDate(sel.NextDate)
	if !sel.NextDate.IsZero() {
		next = cli.FormatDayOfWeek(int(sel.NextDate.Time().Weekday())) + " " + next
	}
	body.WriteString(row("Next billing", valueStyle.Render(next)))
	body.WriteString(row("Due", lipgloss.NewStyle().Foreground(t.TierColor(u.Tier)).Background(t.Surface).Render(urgencyText(u))))
	body.WriteString("\n")

	barW := innerW - 2
	if barW > 40 {
		barW = 40
	}
	body.WriteString(components.CountdownBar(u.Days, t.TierColor(u.Tier), barW))
	body.WriteString("\n\n")
	body.WriteString(labelStyle.Render("id " + sel.ID))

	return components.ContentCard(truncStr(sel.Name, innerW), body.String(), w)
}

func urgencyText(u billing.Urgency) string {
	if u.Tier == billing.TierNormal {
		return cli.FormatDays(u.Days)
	}
	return "⚠ " + cli.FormatDays(u.Days)
}

// padTo right-pads s with spaces to visual width w.
func padTo(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
