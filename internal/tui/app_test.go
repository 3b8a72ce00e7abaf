package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/store"
	"github.com/theirongolddev/subtrack/internal/tracker"
)

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// newTestApp returns an app with a saved config (so no setup wizard) and
// two records: a foreign one due in 2 days and a local one due in 10.
func newTestApp(t *testing.T) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	if err := config.Save(config.DefaultConfig()); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	n := 0
	tr := tracker.New(store.NewMemory(),
		tracker.WithClock(func() time.Time { return testNow }),
		tracker.WithIDFunc(func() string {
			n++
			return strings.Repeat(string(rune('a'+n)), 12)
		}),
	)
	mustAdd(t, tr, "Spotify", "15", model.CurrencyLocal, model.CategoryMusic, 20)
	mustAdd(t, tr, "Netflix", "10", model.CurrencyForeign, model.CategoryVideo, 12)

	a := NewApp(tr, config.DefaultConfig(), nil)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return m.(App)
}

func mustAdd(t *testing.T, tr *tracker.Tracker, name, amount string, cur model.Currency, cat model.Category, day int) {
	t.Helper()
	_, err := tr.Add(model.Input{
		Name:       name,
		Amount:     decimal.RequireFromString(amount),
		Currency:   cur,
		Category:   cat,
		BillingDay: day,
	})
	if err != nil {
		t.Fatalf("Add(%s): %v", name, err)
	}
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func TestNewAppComputesSummary(t *testing.T) {
	a := newTestApp(t)

	if a.modal != nil {
		t.Fatal("setup wizard should not open when a config file exists")
	}
	if !a.summary.Total.Equal(decimal.RequireFromString("62")) {
		t.Errorf("Total = %s, want 62", a.summary.Total)
	}
	if len(a.dues) != 2 || a.dues[0].Sub.Name != "Netflix" {
		t.Errorf("dues should be soonest first, got %+v", a.dues)
	}
}

func TestNewAppOpensSetupWithoutConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := NewApp(tracker.New(store.NewMemory()), config.DefaultConfig(), nil)
	if a.modal == nil || a.modal.kind != modalSetup {
		t.Fatal("first run should open the setup wizard")
	}
}

func TestTabKeys(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		key  string
		want int
	}{
		{"u", tabUpcoming},
		{"c", tabCategories},
		{"x", tabSettings},
		{"s", tabSubscriptions},
	}
	for _, tt := range tests {
		a = press(t, a, tt.key)
		if a.activeTab != tt.want {
			t.Errorf("after %q activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}
}

func TestSearchFiltersList(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "/")
	if !a.subs.searching {
		t.Fatal("/ should start search mode")
	}
	a = press(t, a, "n", "e", "t", "enter")

	if a.subs.searching {
		t.Error("enter should leave search mode")
	}
	if len(a.records) != 1 || a.records[0].Name != "Netflix" {
		t.Fatalf("records = %+v, want only Netflix", a.records)
	}
	if a.tracker.Len() != 2 {
		t.Error("search must not remove records")
	}

	a = press(t, a, "esc")
	if len(a.records) != 2 {
		t.Errorf("esc should clear the search, got %d records", len(a.records))
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "j", "j", "j")
	if a.subs.cursor != 1 {
		t.Errorf("cursor = %d, want 1", a.subs.cursor)
	}
	a = press(t, a, "k", "k", "k")
	if a.subs.cursor != 0 {
		t.Errorf("cursor = %d, want 0", a.subs.cursor)
	}
}

func TestDeleteOpensConfirm(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "d")
	if a.modal == nil || a.modal.kind != modalDelete {
		t.Fatal("d should open the delete confirmation")
	}
	if a.modal.target.Name != "Netflix" {
		t.Errorf("target = %s, want the selected record", a.modal.target.Name)
	}

	a = press(t, a, "esc")
	if a.modal != nil || a.tracker.Len() != 2 {
		t.Error("esc should close the confirmation without removing anything")
	}
}

func TestFinishDeleteRespectsAnswer(t *testing.T) {
	a := newTestApp(t)
	sub := a.records[0]

	declined := newDeleteModal(sub, "")
	a.finishModal(declined)
	if a.tracker.Len() != 2 {
		t.Fatal("declined confirmation must keep the record")
	}

	approved := newDeleteModal(sub, "")
	*approved.ok = true
	a.finishModal(approved)
	if a.tracker.Len() != 1 || len(a.records) != 1 {
		t.Fatalf("approved confirmation should remove the record, have %d", a.tracker.Len())
	}
	if !strings.Contains(a.flash, "Removed") {
		t.Errorf("flash = %q", a.flash)
	}
}

func TestFinishAdd(t *testing.T) {
	a := newTestApp(t)

	m := newAddModal(testNow.Day())
	m.add.Name = "iCloud"
	m.add.Amount = "4.90"
	a.finishModal(m)

	if a.tracker.Len() != 3 {
		t.Fatalf("Len = %d, want 3", a.tracker.Len())
	}
	if a.records[0].Name != "iCloud" || a.records[0].BillingDay != 10 {
		t.Errorf("new record should be first with today's day, got %+v", a.records[0])
	}

	bad := newAddModal(testNow.Day())
	bad.add.Name = "Broken"
	bad.add.Amount = "0"
	a.finishModal(bad)
	if a.tracker.Len() != 3 || !a.flashError {
		t.Error("invalid input should be rejected with an error flash")
	}
}

func TestSettingsRateEdit(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "x", "enter")
	if !a.settings.editing {
		t.Fatal("enter should start editing the rate")
	}

	a.settings.input.SetValue("5")
	a = press(t, a, "enter")
	if !a.tracker.Rate().Equal(decimal.NewFromInt(5)) {
		t.Errorf("rate = %s, want 5", a.tracker.Rate())
	}
	if !a.summary.Total.Equal(decimal.RequireFromString("65")) {
		t.Errorf("Total = %s, want 65 after the rate change", a.summary.Total)
	}

	a = press(t, a, "enter")
	a.settings.input.SetValue("-1")
	a = press(t, a, "enter")
	if a.settings.saveErr == nil || !a.tracker.Rate().Equal(decimal.NewFromInt(5)) {
		t.Error("a non-positive rate should be refused and the old one kept")
	}
}

func TestSetupApplies(t *testing.T) {
	a := newTestApp(t)
	m := newSetupModal(a.cfg)
	m.setup.UpcomingDays = "30"
	a.finishModal(m)

	if a.cfg.General.UpcomingDays != 30 {
		t.Errorf("UpcomingDays = %d", a.cfg.General.UpcomingDays)
	}
	saved, err := config.Load()
	if err != nil || saved.General.UpcomingDays != 30 {
		t.Errorf("config on disk = %+v, %v", saved.General, err)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t)

	for _, key := range []string{"s", "u", "c", "x"} {
		a = press(t, a, key)
		out := a.View()
		if out == "" {
			t.Fatalf("tab %q rendered nothing", key)
		}
		if (key == "s" || key == "u") && !strings.Contains(out, "Netflix") {
			t.Errorf("tab %q should list Netflix", key)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if out := m.(App).View(); !strings.Contains(out, "too narrow") {
		t.Errorf("narrow view = %q", out)
	}
}

func TestLastSavedText(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	empty := NewApp(tracker.New(store.NewMemory()), config.DefaultConfig(), nil)
	if got := empty.lastSavedText(); got != "never" {
		t.Errorf("empty store = %q, want never", got)
	}

	a := newTestApp(t)
	if got := a.lastSavedText(); got == "never" {
		t.Error("records were saved, want a timestamp")
	}
}
