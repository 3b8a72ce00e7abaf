package model

import "github.com/shopspring/decimal"

// DefaultRate is the foreign-to-local conversion rate used whenever no valid
// rate has been stored.
var DefaultRate = decimal.RequireFromString("4.70")

// CategorySpend holds the monthly local spend of one category.
type CategorySpend struct {
	Category     Category
	Count        int
	Monthly      decimal.Decimal
	SharePercent float64
}

// SpendSummary holds the aggregate spend across a record list.
type SpendSummary struct {
	PerItem    map[string]decimal.Decimal // local amount by record id
	Total      decimal.Decimal
	Annualized decimal.Decimal
	Rate       decimal.Decimal
}

// Local returns the normalised amount for the record with the given id.
func (s SpendSummary) Local(id string) decimal.Decimal {
	if v, ok := s.PerItem[id]; ok {
		return v
	}
	return decimal.Zero
}

func init() {
	// Amounts persist as JSON numbers, matching records written by the web app.
	decimal.MarshalJSONWithoutQuotes = true
}
