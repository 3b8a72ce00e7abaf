package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/subtrack/internal/model"
)

func benchRecords(n int) []model.Subscription {
	records := make([]model.Subscription, n)
	for i := range records {
		cur := model.CurrencyLocal
		if i%3 == 0 {
			cur = model.CurrencyForeign
		}
		records[i] = sub(fmt.Sprintf("id-%d", i), fmt.Sprintf("App %d", i), "12.99", cur, model.Categories[i%len(model.Categories)])
		records[i].NextDate = model.DateOf(time.Now().AddDate(0, 0, i%31))
	}
	return records
}

func BenchmarkAggregate(b *testing.B) {
	records := benchRecords(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Aggregate(records, model.DefaultRate)
	}
}

func BenchmarkUpcoming(b *testing.B) {
	records := benchRecords(1000)
	now := time.Now()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Upcoming(records, now, 7)
	}
}
