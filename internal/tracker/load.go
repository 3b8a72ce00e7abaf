package tracker

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/store"
)

func (t *Tracker) loadRecords() []model.Subscription {
	raw, ok, err := t.kv.Get(store.KeyRecords)
	if err != nil {
		t.log.Warn("store read failed", zap.String("key", store.KeyRecords), zap.Error(err))
		return []model.Subscription{}
	}
	if !ok {
		return []model.Subscription{}
	}

	records, skipped := model.DecodeRecords([]byte(raw))
	if skipped > 0 {
		t.log.Debug("skipped unreadable records", zap.String("key", store.KeyRecords), zap.Int("skipped", skipped))
	}
	return records
}

func (t *Tracker) loadRate() (decimal.Decimal, bool) {
	raw, ok, err := t.kv.Get(store.KeyRate)
	if err != nil {
		t.log.Warn("store read failed", zap.String("key", store.KeyRate), zap.Error(err))
		return decimal.Zero, false
	}
	if !ok {
		return decimal.Zero, false
	}
	r, valid := ParseRate(raw)
	if !valid {
		t.log.Debug("stored rate invalid, using default", zap.String("key", store.KeyRate), zap.String("value", raw))
	}
	return r, valid
}
