package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/subtrack/internal/tui/theme"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	peak := maxOf(values)
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if v > 0 && idx == 0 {
			idx = 1
		}
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// ColumnChart renders one column per value, height rows tall, with a value
// axis on the left and every labelEvery-th label under the columns. Each
// column is one cell wide with a one-cell gap.
func ColumnChart(values []float64, labels []string, color lipgloss.Color, height, labelEvery int) string {
	if len(values) == 0 || height < 1 {
		return ""
	}
	t := theme.Active

	peak := maxOf(values)
	if peak == 0 {
		peak = 1
	}
	if labelEvery < 1 {
		labelEvery = 1
	}

	axisW := len(formatAxis(peak)) + 1
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	partial := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇'}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		label := ""
		if row == height {
			label = formatAxis(peak)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", axisW, label)))

		for i, v := range values {
			if i > 0 {
				b.WriteString(blank.Render(" "))
			}
			// Height of this column in eighths of a row.
			eighths := int(v / peak * float64(height*8))
			full := eighths / 8
			switch {
			case full >= row:
				b.WriteString(barStyle.Render("█"))
			case full == row-1 && eighths%8 > 0:
				b.WriteString(barStyle.Render(string(partial[eighths%8])))
			default:
				b.WriteString(blank.Render(" "))
			}
		}
		b.WriteString("\n")
	}

	axisLen := len(values)*2 - 1
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", axisW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == len(values) {
		line := []rune(strings.Repeat(" ", axisLen+4))
		for i := 0; i < len(labels); i += labelEvery {
			pos := i * 2
			for j, r := range labels[i] {
				if pos+j < len(line) {
					line[pos+j] = r
				}
			}
		}
		b.WriteString("\n")
		b.WriteString(axisStyle.Render(strings.Repeat(" ", axisW+1) + strings.TrimRight(string(line), " ")))
	}

	return b.String()
}

func maxOf(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	return peak
}

func formatAxis(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
