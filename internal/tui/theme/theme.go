// Package theme defines color themes for the subtrack TUI dashboard.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/subtrack/internal/billing"
	"github.com/theirongolddev/subtrack/internal/model"
)

// Theme maps the dashboard's color roles to concrete colors.
type Theme struct {
	Name string

	// Layout
	Background    lipgloss.Color
	Surface       lipgloss.Color // cards and bars
	SurfaceHover  lipgloss.Color // active tab
	SurfaceBright lipgloss.Color // selected row
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // modal frame
	TextDim       lipgloss.Color
	TextMuted     lipgloss.Color
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color
	AccentBright  lipgloss.Color
	KeyHint       lipgloss.Color

	// Spending
	Money lipgloss.Color // totals and converted amounts
	OK    lipgloss.Color // flash and "Saved!"
	Warn  lipgloss.Color

	// Billing urgency
	DueToday lipgloss.Color
	Urgent   lipgloss.Color
	Normal   lipgloss.Color

	// Categories
	Video lipgloss.Color
	Music lipgloss.Color
	Tools lipgloss.Color
}

// palette is the raw color set a theme is derived from.
type palette struct {
	bg, surface, raised, bright, border string
	dim, muted, text                    string
	accent, accentHi                    string
	green, red, orange, blue            string
	yellow, magenta, cyan               string
}

func (p palette) theme(name string) Theme {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Theme{
		Name:          name,
		Background:    c(p.bg),
		Surface:       c(p.surface),
		SurfaceHover:  c(p.raised),
		SurfaceBright: c(p.bright),
		Border:        c(p.border),
		BorderAccent:  c(p.accent),
		TextDim:       c(p.dim),
		TextMuted:     c(p.muted),
		TextPrimary:   c(p.text),
		Accent:        c(p.accent),
		AccentBright:  c(p.accentHi),
		KeyHint:       c(p.cyan),
		Money:         c(p.green),
		OK:            c(p.green),
		Warn:          c(p.orange),
		DueToday:      c(p.red),
		Urgent:        c(p.orange),
		Normal:        c(p.blue),
		Video:         c(p.magenta),
		Music:         c(p.green),
		Tools:         c(p.yellow),
	}
}

// FlexokiDark is the default theme.
var FlexokiDark = palette{
	bg: "#100F0F", surface: "#1C1B1A", raised: "#282726", bright: "#343331", border: "#403E3C",
	dim: "#575653", muted: "#878580", text: "#FFFCF0",
	accent: "#3AA99F", accentHi: "#5BC8BE",
	green: "#A3B859", red: "#D14D41", orange: "#DA702C", blue: "#4385BE",
	yellow: "#D0A215", magenta: "#CE5D97", cyan: "#24837B",
}.theme("flexoki-dark")

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = palette{
	bg: "#1E1E2E", surface: "#313244", raised: "#45475A", bright: "#585B70", border: "#585B70",
	dim: "#6C7086", muted: "#A6ADC8", text: "#CDD6F4",
	accent: "#89B4FA", accentHi: "#B4D0FB",
	green: "#A6E3A1", red: "#F38BA8", orange: "#FAB387", blue: "#74C7EC",
	yellow: "#F9E2AF", magenta: "#F5C2E7", cyan: "#94E2D5",
}.theme("catppuccin-mocha")

// TokyoNight is a cool blue and purple theme.
var TokyoNight = palette{
	bg: "#1A1B26", surface: "#24283B", raised: "#343A52", bright: "#414868", border: "#565F89",
	dim: "#565F89", muted: "#A9B1D6", text: "#C0CAF5",
	accent: "#7AA2F7", accentHi: "#A9C1FF",
	green: "#9ECE6A", red: "#F7768E", orange: "#FF9E64", blue: "#2AC3DE",
	yellow: "#E0AF68", magenta: "#BB9AF7", cyan: "#7DCFFF",
}.theme("tokyo-night")

// Terminal uses the 16 ANSI colors only.
var Terminal = palette{
	bg: "0", surface: "0", raised: "8", bright: "8", border: "8",
	dim: "8", muted: "7", text: "15",
	accent: "6", accentHi: "14",
	green: "10", red: "1", orange: "3", blue: "4",
	yellow: "11", magenta: "5", cyan: "6",
}.theme("terminal")

// Active is the currently selected theme.
var Active = FlexokiDark

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Lookup returns the theme with the given name and whether it exists.
func Lookup(name string) (Theme, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	return FlexokiDark
}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// TierColor is the color for an urgency tier.
func (t Theme) TierColor(tier billing.Tier) lipgloss.Color {
	switch tier {
	case billing.TierDueToday:
		return t.DueToday
	case billing.TierUrgent:
		return t.Urgent
	default:
		return t.Normal
	}
}

// CategoryColor is the bar color for a category.
func (t Theme) CategoryColor(c model.Category) lipgloss.Color {
	switch c {
	case model.CategoryVideo:
		return t.Video
	case model.CategoryMusic:
		return t.Music
	case model.CategoryTools:
		return t.Tools
	default:
		return t.Accent
	}
}
