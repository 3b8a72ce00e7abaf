// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/theirongolddev/subtrack/internal/config"
	"github.com/theirongolddev/subtrack/internal/model"
)

// Money formats amounts in one currency.
type Money struct {
	Code    string
	symbol  string
	printer *message.Printer
}

// NewMoney returns a formatter for the given currency. An empty symbol is
// replaced by the narrow symbol x/text knows for the code, or the code itself.
func NewMoney(info config.CurrencyInfo) Money {
	code := strings.ToUpper(info.Code)
	printer := message.NewPrinter(language.AmericanEnglish)

	symbol := info.Symbol
	if symbol == "" {
		if unit, err := currency.ParseISO(code); err == nil {
			symbol = printer.Sprint(currency.NarrowSymbol(unit))
		} else {
			symbol = code
		}
	}
	return Money{Code: code, symbol: symbol, printer: printer}
}

// Symbol returns the display symbol.
func (m Money) Symbol() string {
	return m.symbol
}

// Format renders d with two decimals and thousands grouping.
// e.g., 1234.5 -> "RM 1,234.50", 9.99 -> "$9.99"
func (m Money) Format(d decimal.Decimal) string {
	formatted := m.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
	if endsInLetter(m.symbol) {
		return m.symbol + " " + formatted
	}
	return m.symbol + formatted
}

func endsInLetter(s string) bool {
	r := []rune(s)
	return len(r) > 0 && unicode.IsLetter(r[len(r)-1])
}

// Formatter picks a Money formatter per record currency.
type Formatter struct {
	Local   Money
	Foreign Money
}

// NewFormatter builds formatters for both sides of the rate.
func NewFormatter(c config.CurrencyConfig) Formatter {
	return Formatter{
		Local:   NewMoney(c.LookupCurrency(model.CurrencyLocal)),
		Foreign: NewMoney(c.LookupCurrency(model.CurrencyForeign)),
	}
}

// For returns the formatter for cur.
func (f Formatter) For(cur model.Currency) Money {
	if cur.IsForeign() {
		return f.Foreign
	}
	return f.Local
}

// FormatDisplayDate renders a date as "Jan 5th".
func FormatDisplayDate(d model.Date) string {
	if d.IsZero() {
		return "--"
	}
	return fmt.Sprintf("%s %d%s", d.Month.String()[:3], d.Day, OrdinalSuffix(d.Day))
}

// OrdinalSuffix returns the English ordinal suffix for a day of month.
func OrdinalSuffix(day int) string {
	switch {
	case day%10 == 1 && day%100 != 11:
		return "st"
	case day%10 == 2 && day%100 != 12:
		return "nd"
	case day%10 == 3 && day%100 != 13:
		return "rd"
	default:
		return "th"
	}
}

// FormatDays renders days remaining as shown next to each record.
func FormatDays(days int) string {
	switch {
	case days <= 0:
		return "Due today"
	case days == 1:
		return "1 day remaining"
	default:
		return fmt.Sprintf("%d days remaining", days)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 share as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// ShortID returns the first 8 characters of an id for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
