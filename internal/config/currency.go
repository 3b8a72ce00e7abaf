package config

import (
	"strings"

	"github.com/theirongolddev/subtrack/internal/model"
)

// CurrencyInfo describes how one side of the rate is shown.
type CurrencyInfo struct {
	Code   string // ISO 4217
	Symbol string // empty means the narrow symbol for Code
}

// LookupCurrency returns the display info for c under this configuration.
// Blank settings fall back to the defaults.
func (c CurrencyConfig) LookupCurrency(cur model.Currency) CurrencyInfo {
	def := DefaultConfig().Currency
	if cur.IsForeign() {
		return CurrencyInfo{Code: orDefault(c.ForeignCode, def.ForeignCode)}
	}
	return CurrencyInfo{
		Code:   orDefault(c.LocalCode, def.LocalCode),
		Symbol: orDefault(c.LocalSymbol, def.LocalSymbol),
	}
}

// RateLabel returns the "USD→RM" style label for the conversion rate.
func (c CurrencyConfig) RateLabel() string {
	return c.LookupCurrency(model.CurrencyForeign).Code + "→" + c.LookupCurrency(model.CurrencyLocal).Symbol
}

func orDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return strings.ToUpper(v)
}
