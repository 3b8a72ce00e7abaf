package pipeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/subtrack/internal/billing"
	"github.com/theirongolddev/subtrack/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sub(id, name, amount string, cur model.Currency, cat model.Category) model.Subscription {
	return model.Subscription{
		ID:       id,
		Name:     name,
		Amount:   dec(amount),
		Currency: cur,
		Category: cat,
	}
}

func sampleRecords() []model.Subscription {
	return []model.Subscription{
		sub("a", "Netflix", "10", model.CurrencyForeign, model.CategoryVideo),
		sub("b", "Spotify", "15", model.CurrencyLocal, model.CategoryMusic),
	}
}

func TestAggregate_RateScenario(t *testing.T) {
	stats := Aggregate(sampleRecords(), model.DefaultRate)

	if !stats.Local("a").Equal(dec("47.00")) {
		t.Errorf("Local(a) = %s, want 47.00", stats.Local("a"))
	}
	if !stats.Local("b").Equal(dec("15")) {
		t.Errorf("Local(b) = %s, want 15", stats.Local("b"))
	}
	if !stats.Total.Equal(dec("62.00")) {
		t.Errorf("Total = %s, want 62.00", stats.Total)
	}
	if !stats.Annualized.Equal(dec("744.00")) {
		t.Errorf("Annualized = %s, want 744.00", stats.Annualized)
	}
	if got := stats.Total.StringFixed(2); got != "62.00" {
		t.Errorf("Total fixed = %s, want 62.00", got)
	}
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil, model.DefaultRate)
	if !stats.Total.IsZero() || !stats.Annualized.IsZero() {
		t.Fatalf("empty aggregate = %s/%s, want 0/0", stats.Total, stats.Annualized)
	}
	if len(stats.PerItem) != 0 {
		t.Fatalf("PerItem = %d entries, want 0", len(stats.PerItem))
	}
}

func TestAggregate_ZeroAmountContributesNothing(t *testing.T) {
	records := append(sampleRecords(), model.Subscription{ID: "broken", Name: "Broken", Currency: model.CurrencyForeign})
	stats := Aggregate(records, model.DefaultRate)
	if !stats.Total.Equal(dec("62.00")) {
		t.Fatalf("Total = %s, want 62.00", stats.Total)
	}
	if !stats.Local("broken").IsZero() {
		t.Fatalf("Local(broken) = %s, want 0", stats.Local("broken"))
	}
}

func TestAggregate_Linear(t *testing.T) {
	a := sampleRecords()
	b := []model.Subscription{
		sub("c", "iCloud", "4.49", model.CurrencyLocal, model.CategoryTools),
		sub("d", "ChatGPT Plus", "20", model.CurrencyForeign, model.CategoryTools),
	}
	rate := dec("4.4321")

	whole := Aggregate(append(append([]model.Subscription{}, a...), b...), rate)
	sum := Aggregate(a, rate).Total.Add(Aggregate(b, rate).Total)

	if !whole.Total.Equal(sum) {
		t.Fatalf("Aggregate(A++B) = %s, Aggregate(A)+Aggregate(B) = %s", whole.Total, sum)
	}
	if !whole.Annualized.Equal(whole.Total.Mul(dec("12"))) {
		t.Fatalf("Annualized = %s, want 12 * %s", whole.Annualized, whole.Total)
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	records := []model.Subscription{
		sub("1", "A", "9.99", model.CurrencyForeign, model.CategoryVideo),
		sub("2", "B", "17.90", model.CurrencyLocal, model.CategoryMusic),
		sub("3", "C", "0.33", model.CurrencyForeign, model.CategoryTools),
		sub("4", "D", "120", model.CurrencyLocal, model.CategoryTools),
		sub("5", "E", "3.10", model.CurrencyForeign, model.CategoryMusic),
	}
	rate := dec("4.7")
	want := Aggregate(records, rate).Total

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]model.Subscription{}, records...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if got := Aggregate(shuffled, rate).Total; !got.Equal(want) {
			t.Fatalf("shuffle %d: Total = %s, want %s", i, got, want)
		}
	}
}

func TestAggregateCategories(t *testing.T) {
	records := append(sampleRecords(),
		sub("c", "YouTube Premium", "3", model.CurrencyLocal, model.CategoryVideo),
	)
	cats := AggregateCategories(records, model.DefaultRate)

	if len(cats) != 2 {
		t.Fatalf("got %d categories, want 2", len(cats))
	}
	if cats[0].Category != model.CategoryVideo || cats[0].Count != 2 || !cats[0].Monthly.Equal(dec("50")) {
		t.Errorf("cats[0] = %+v, want Video x2 = 50", cats[0])
	}
	if cats[1].Category != model.CategoryMusic || !cats[1].Monthly.Equal(dec("15")) {
		t.Errorf("cats[1] = %+v, want Music = 15", cats[1])
	}

	var share float64
	for _, c := range cats {
		share += c.SharePercent
	}
	if share < 99.99 || share > 100.01 {
		t.Errorf("share percentages sum to %f, want 100", share)
	}
}

func TestSearch(t *testing.T) {
	records := []model.Subscription{
		sub("1", "Netflix", "1", model.CurrencyLocal, model.CategoryVideo),
		sub("2", "Spotify", "1", model.CurrencyLocal, model.CategoryMusic),
		sub("3", "YouTube Premium", "1", model.CurrencyLocal, model.CategoryVideo),
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3"}},
		{"   ", []string{"1", "2", "3"}},
		{"net", []string{"1"}},
		{"NET", []string{"1"}},
		{"t", []string{"1", "2", "3"}},
		{"premium", []string{"3"}},
		{"hbo", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Search(records, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d records, want %d", tt.query, len(got), len(tt.want))
			}
			for i, s := range got {
				if s.ID != tt.want[i] {
					t.Errorf("Search(%q)[%d] = %s, want %s", tt.query, i, s.ID, tt.want[i])
				}
			}
		})
	}

	if records[0].ID != "1" || records[1].ID != "2" || records[2].ID != "3" || len(records) != 3 {
		t.Fatal("Search mutated its input")
	}
}

func TestFilterByCategory(t *testing.T) {
	got := FilterByCategory(sampleRecords(), model.CategoryMusic)
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("FilterByCategory(Music) = %+v", got)
	}
	if got := FilterByCategory(sampleRecords(), ""); len(got) != 2 {
		t.Fatalf("FilterByCategory(\"\") returned %d, want 2", len(got))
	}
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2025, time.June, 15, 20, 0, 0, 0, time.Local)
	mk := func(id string, day int) model.Subscription {
		s := sub(id, id, "1", model.CurrencyLocal, model.CategoryTools)
		s.NextDate = model.Date{Year: 2025, Month: time.June, Day: day}
		return s
	}
	records := []model.Subscription{mk("far", 30), mk("today", 15), mk("soon", 17), mk("past", 2)}

	all := Upcoming(records, now, -1)
	wantOrder := []string{"today", "past", "soon", "far"}
	if len(all) != len(wantOrder) {
		t.Fatalf("Upcoming returned %d, want %d", len(all), len(wantOrder))
	}
	for i, d := range all {
		if d.Sub.ID != wantOrder[i] {
			t.Errorf("Upcoming[%d] = %s, want %s", i, d.Sub.ID, wantOrder[i])
		}
	}

	week := Upcoming(records, now, 7)
	if len(week) != 3 {
		t.Fatalf("Upcoming within 7 returned %d, want 3", len(week))
	}

	groups := GroupByTier(all)
	if len(groups[billing.TierDueToday]) != 2 {
		t.Errorf("due today group = %d, want 2", len(groups[billing.TierDueToday]))
	}
	if len(groups[billing.TierUrgent]) != 1 || groups[billing.TierUrgent][0].Sub.ID != "soon" {
		t.Errorf("urgent group = %+v, want [soon]", groups[billing.TierUrgent])
	}
	if len(groups[billing.TierNormal]) != 1 {
		t.Errorf("normal group = %d, want 1", len(groups[billing.TierNormal]))
	}
}

func TestSpendByBillingDay(t *testing.T) {
	a := sub("a", "Netflix", "10", model.CurrencyForeign, model.CategoryVideo)
	a.BillingDay = 5
	b := sub("b", "Spotify", "15", model.CurrencyLocal, model.CategoryMusic)
	b.BillingDay = 5
	c := sub("c", "iCloud", "4", model.CurrencyLocal, model.CategoryTools)
	c.BillingDay = 31
	bad := sub("d", "Legacy", "99", model.CurrencyLocal, model.CategoryTools)

	days := SpendByBillingDay([]model.Subscription{a, b, c, bad}, model.DefaultRate)

	if !days[4].Equal(dec("62.00")) {
		t.Errorf("day 5 = %s, want 62.00", days[4])
	}
	if !days[30].Equal(dec("4")) {
		t.Errorf("day 31 = %s, want 4", days[30])
	}
	total := decimal.Zero
	for _, d := range days {
		total = total.Add(d)
	}
	if !total.Equal(dec("66.00")) {
		t.Errorf("sum = %s, want 66.00 (day 0 record ignored)", total)
	}
}

func TestAggregate_PerItemByID(t *testing.T) {
	records := []model.Subscription{
		sub("x", "First", "10", model.CurrencyForeign, model.CategoryVideo),
		sub("x", "Second", "99", model.CurrencyLocal, model.CategoryVideo),
		sub("y", "Other", "3", model.CurrencyLocal, model.CategoryTools),
	}
	stats := Aggregate(records, dec("2"))

	if len(stats.PerItem) != 2 {
		t.Fatalf("PerItem has %d ids, want 2", len(stats.PerItem))
	}
	if !stats.Local("x").Equal(dec("20")) {
		t.Errorf("Local(x) = %s, want the first record's 20", stats.Local("x"))
	}
	if !stats.Local("missing").IsZero() {
		t.Errorf("Local(missing) = %s, want 0", stats.Local("missing"))
	}
	if !stats.Total.Equal(dec("122")) {
		t.Errorf("Total = %s, want 122", stats.Total)
	}
}
