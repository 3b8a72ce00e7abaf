// Package tui provides the interactive Bubble Tea dashboard for subtrack.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theirongolddev/subtrack/internal/cli"
	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/pipeline"
	"github.com/theirongolddev/subtrack/internal/tracker"
	"github.com/theirongolddev/subtrack/internal/tui/components"
	"github.com/theirongolddev/subtrack/internal/tui/theme"
)

const (
	tabSubscriptions = iota
	tabUpcoming
	tabCategories
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160

	minContentHeight = 5
	flashTicks       = 4 // seconds a status message stays up
)

// App is the root Bubble Tea model. The tracker is shared by pointer, so
// every copy of App sees the same records.
type App struct {
	tracker *tracker.Tracker
	cfg     config.Config
	log     *zap.Logger
	money   cli.Formatter

	// Recomputed from the tracker after every change
	now     time.Time
	records []model.Subscription // search-filtered
	summary model.SpendSummary
	cats    []model.CategorySpend
	dues    []pipeline.Due

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	subs     subsState
	settings settingsState

	// Modal huh form (add, delete, first-run setup)
	modal *modal

	flash      string
	flashLeft  int
	flashError bool
}

// NewApp creates a new TUI app model around a loaded tracker.
func NewApp(t *tracker.Tracker, cfg config.Config, log *zap.Logger) App {
	if log == nil {
		log = zap.NewNop()
	}
	a := App{
		tracker: t,
		cfg:     cfg,
		log:     log,
		money:   cli.NewFormatter(cfg.Currency),
	}
	if !config.Exists() {
		a.modal = newSetupModal(cfg)
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		tickCmd(),
	}
	if a.modal != nil {
		cmds = append(cmds, a.modal.form.Init())
	}
	return tea.Batch(cmds...)
}

// recompute refreshes every derived view of the tracker state.
func (a *App) recompute() {
	a.now = a.tracker.Now()
	a.records = a.tracker.Search(a.subs.searchQuery)
	a.summary = a.tracker.Summary()
	a.cats = a.tracker.Categories()
	a.dues = a.tracker.Upcoming(-1)

	if a.subs.cursor >= len(a.records) {
		a.subs.cursor = len(a.records) - 1
	}
	if a.subs.cursor < 0 {
		a.subs.cursor = 0
	}
}

func (a *App) setFlash(msg string, isErr bool) {
	a.flash = msg
	a.flashLeft = flashTicks
	a.flashError = isErr
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.modal != nil {
			a.modal.resize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.modal != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.modal != nil {
			return a.updateModal(msg)
		}
		return a.updateKey(msg)

	case tickMsg:
		if a.flashLeft > 0 {
			a.flashLeft--
			if a.flashLeft == 0 {
				a.flash = ""
			}
		}
		// Days remaining roll over at midnight.
		if model.DateOf(a.tracker.Now()) != model.DateOf(a.now) {
			a.recompute()
		}
		return a, tickCmd()
	}

	// Cursor blinks and other internal messages belong to the form.
	if a.modal != nil {
		return a.updateModal(msg)
	}
	if a.activeTab == tabSettings && a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabSubscriptions && !a.subs.searching {
			a.subs.move(-1, len(a.records))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabSubscriptions && !a.subs.searching {
			a.subs.move(1, len(a.records))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if a.activeTab == tabSubscriptions && a.subs.searching {
		return a.updateSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case tabSubscriptions:
		if m, cmd, ok := a.updateSubscriptionsKey(key); ok {
			return m, cmd
		}
	case tabSettings:
		if m, cmd, ok := a.updateSettingsKey(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "a", "n":
		a.modal = newAddModal(a.tracker.Now().Day())
		a.modal.resize(a.width, a.height)
		return a, a.modal.form.Init()
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.modal != nil {
		return a.viewModal()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  subtrack needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.KeyHint).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"s u c x", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move selection"},
			{"g G", "First / Last"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"a", "Add subscription"},
			{"d", "Delete selected"},
			{"/", "Search by name"},
			{"Enter", "Edit setting / Confirm"},
			{"Esc", "Clear search / Cancel"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + info pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pillAccent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	local := a.money.For(model.CurrencyLocal)
	info := pillStyle.Render(" ") +
		pillAccent.Render(local.Format(a.summary.Total)) + pillStyle.Render("/mo")
	info += pillStyle.Render(" │ ") + pillAccent.Render(cli.FormatNumber(int64(a.tracker.Len()))) + pillStyle.Render(" subs")
	if a.subs.searchQuery != "" {
		info += pillStyle.Render(" │ search: ") + pillAccent.Render(a.subs.searchQuery)
	}
	info += pillStyle.Render(" ")

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(info)

	// 2. Status bar
	rateInfo := fmt.Sprintf("%s %s", a.cfg.Currency.RateLabel(), a.tracker.Rate().String())
	flash := a.flash
	if a.flashError && flash != "" {
		flash = "! " + flash
	}
	statusBar := components.RenderStatusBar(w, a.statusHints(), flash, rateInfo)

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabSubscriptions:
		content = a.renderSubscriptionsTab(cw, contentH)
	case tabUpcoming:
		content = a.renderUpcomingTab(cw)
	case tabCategories:
		content = a.renderCategoriesTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch {
	case a.activeTab == tabSubscriptions && a.subs.searching:
		return "[Enter]apply  [Esc]cancel"
	case a.activeTab == tabSettings && a.settings.editing:
		return "[Enter]save  [Esc]cancel"
	case a.activeTab == tabSubscriptions:
		return "[a]dd  [d]elete  [/]search  [?]help  [q]uit"
	case a.activeTab == tabSettings:
		return "[j/k]move  [Enter]edit  [?]help  [q]uit"
	default:
		return "[a]dd  [?]help  [q]uit"
	}
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "name contains..."
	ti.CharLimit = 64
	ti.Width = 30
	ti.Prompt = "/ "
	return ti
}
