package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/subtrack/internal/billing"
	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/model"
)

func TestFormatDisplayDate(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "Jan 1st"},
		{2, "Jan 2nd"},
		{3, "Jan 3rd"},
		{4, "Jan 4th"},
		{11, "Jan 11th"},
		{12, "Jan 12th"},
		{13, "Jan 13th"},
		{21, "Jan 21st"},
		{22, "Jan 22nd"},
		{23, "Jan 23rd"},
		{31, "Jan 31st"},
	}
	for _, tt := range tests {
		got := FormatDisplayDate(model.Date{Year: 2025, Month: time.January, Day: tt.day})
		if got != tt.want {
			t.Errorf("FormatDisplayDate(day %d) = %q, want %q", tt.day, got, tt.want)
		}
	}

	if got := FormatDisplayDate(model.Date{}); got != "--" {
		t.Errorf("FormatDisplayDate(zero) = %q, want --", got)
	}
}

func TestFormatDays(t *testing.T) {
	tests := map[int]string{
		0:  "Due today",
		1:  "1 day remaining",
		2:  "2 days remaining",
		30: "30 days remaining",
	}
	for days, want := range tests {
		if got := FormatDays(days); got != want {
			t.Errorf("FormatDays(%d) = %q, want %q", days, got, want)
		}
	}
}

func TestMoney_Format(t *testing.T) {
	f := NewFormatter(config.DefaultConfig().Currency)

	tests := []struct {
		name string
		m    Money
		amt  string
		want string
	}{
		{"local", f.Local, "62", "RM 62.00"},
		{"local grouping", f.Local, "1234.5", "RM 1,234.50"},
		{"local rounding", f.Local, "9.999", "RM 10.00"},
		{"foreign", f.Foreign, "9.99", "$9.99"},
		{"foreign thousands", f.Foreign, "1234", "$1,234.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Format(decimal.RequireFromString(tt.amt)); got != tt.want {
				t.Errorf("Format(%s) = %q, want %q", tt.amt, got, tt.want)
			}
		})
	}

	if f.For(model.CurrencyForeign).Code != "USD" || f.For(model.CurrencyLocal).Code != "MYR" {
		t.Error("For picked the wrong formatter")
	}
}

func TestMoney_UnknownCodeUsesCode(t *testing.T) {
	m := NewMoney(config.CurrencyInfo{Code: "xyz"})
	if got := m.Format(decimal.NewFromInt(5)); got != "XYZ 5.00" {
		t.Errorf("Format = %q, want XYZ 5.00", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for n, want := range tests {
		if got := FormatNumber(n); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("123e4567-e89b-12d3"); got != "123e4567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Name", "Due"},
		Rows: [][]string{
			{"Netflix", RenderUrgency(billing.Urgency{Days: 0, Tier: billing.TierDueToday})},
			{"Spotify", RenderUrgency(billing.Urgency{Days: 12, Tier: billing.TierNormal})},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
	w := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != w {
			t.Errorf("line %d width %d, want %d", i, lipgloss.Width(l), w)
		}
	}
	if !strings.Contains(out, "Due today") || !strings.Contains(out, "12 days remaining") {
		t.Errorf("urgency text missing:\n%s", out)
	}
}
