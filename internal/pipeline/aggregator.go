// Package pipeline aggregates spend and filters subscription records.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/subtrack/internal/billing"
	"github.com/theirongolddev/subtrack/internal/model"
)

var monthsPerYear = decimal.NewFromInt(12)

// Aggregate normalises every record to the local currency and sums them.
// Foreign amounts are multiplied by rate. The result does not depend on
// record order.
func Aggregate(records []model.Subscription, rate decimal.Decimal) model.SpendSummary {
	stats := model.SpendSummary{
		PerItem: make(map[string]decimal.Decimal, len(records)),
		Total:   decimal.Zero,
		Rate:    rate,
	}

	for _, s := range records {
		local := LocalAmount(s, rate)
		if _, dup := stats.PerItem[s.ID]; !dup {
			stats.PerItem[s.ID] = local
		}
		stats.Total = stats.Total.Add(local)
	}

	stats.Annualized = stats.Total.Mul(monthsPerYear)
	return stats
}

// LocalAmount returns the record's amount in the local currency.
func LocalAmount(s model.Subscription, rate decimal.Decimal) decimal.Decimal {
	if s.Currency.IsForeign() {
		return s.Amount.Mul(rate)
	}
	return s.Amount
}

// AggregateCategories computes per-category monthly spend, sorted by spend
// descending. Categories without records are omitted.
func AggregateCategories(records []model.Subscription, rate decimal.Decimal) []model.CategorySpend {
	catMap := make(map[model.Category]*model.CategorySpend)
	total := decimal.Zero

	for _, s := range records {
		cs, ok := catMap[s.Category]
		if !ok {
			cs = &model.CategorySpend{Category: s.Category, Monthly: decimal.Zero}
			catMap[s.Category] = cs
		}
		local := LocalAmount(s, rate)
		cs.Count++
		cs.Monthly = cs.Monthly.Add(local)
		total = total.Add(local)
	}

	cats := make([]model.CategorySpend, 0, len(catMap))
	for _, cs := range catMap {
		if total.IsPositive() {
			cs.SharePercent = cs.Monthly.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		cats = append(cats, *cs)
	}
	sort.Slice(cats, func(i, j int) bool {
		if !cats[i].Monthly.Equal(cats[j].Monthly) {
			return cats[i].Monthly.GreaterThan(cats[j].Monthly)
		}
		return cats[i].Category < cats[j].Category
	})

	return cats
}

// Search returns records whose name contains query, ignoring case. A blank
// query returns every record. The input slice is never modified.
func Search(records []model.Subscription, query string) []model.Subscription {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}
	var result []model.Subscription
	for _, s := range records {
		if containsIgnoreCase(s.Name, query) {
			result = append(result, s)
		}
	}
	return result
}

// FilterByCategory returns records in the given category.
func FilterByCategory(records []model.Subscription, cat model.Category) []model.Subscription {
	if cat == "" {
		return records
	}
	var result []model.Subscription
	for _, s := range records {
		if s.Category == cat {
			result = append(result, s)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Due pairs a record with its urgency relative to a fixed instant.
type Due struct {
	Sub     model.Subscription
	Urgency billing.Urgency
}

// Upcoming returns records due within the given number of days, soonest
// first. A negative window includes every record.
func Upcoming(records []model.Subscription, now time.Time, within int) []Due {
	result := make([]Due, 0, len(records))
	for _, s := range records {
		u := billing.UrgencyOf(s.NextDate, now)
		if within >= 0 && u.Days > within {
			continue
		}
		result = append(result, Due{Sub: s, Urgency: u})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Urgency.Days < result[j].Urgency.Days
	})
	return result
}

// GroupByTier buckets due records by urgency tier, keeping their order.
func GroupByTier(dues []Due) map[billing.Tier][]Due {
	groups := make(map[billing.Tier][]Due)
	for _, d := range dues {
		groups[d.Urgency.Tier] = append(groups[d.Urgency.Tier], d)
	}
	return groups
}

// SpendByBillingDay returns the local spend charged on each day of the month.
// Index 0 is day 1. Records with a day outside 1..31 are ignored.
func SpendByBillingDay(records []model.Subscription, rate decimal.Decimal) [31]decimal.Decimal {
	var days [31]decimal.Decimal
	for i := range days {
		days[i] = decimal.Zero
	}
	for _, s := range records {
		if s.BillingDay < 1 || s.BillingDay > 31 {
			continue
		}
		days[s.BillingDay-1] = days[s.BillingDay-1].Add(LocalAmount(s, rate))
	}
	return days
}
