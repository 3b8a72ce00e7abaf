// Package tracker owns the subscription list and the conversion rate, and
// keeps both in sync with the backing store.
package tracker

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/theirongolddev/subtrack/internal/billing"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/pipeline"
	"github.com/theirongolddev/subtrack/internal/store"
)

// ConfirmFunc is asked before a record is removed. Returning false cancels.
type ConfirmFunc func(model.Subscription) bool

// Tracker holds the in-memory state for one session. It is not safe for
// concurrent use; callers drive it from a single goroutine.
type Tracker struct {
	kv       store.KV
	records  []model.Subscription
	rate     decimal.Decimal
	now      func() time.Time
	newID    func() string
	log      *zap.Logger
	validate *validator.Validate
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the clock used to project billing dates.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDFunc sets the record id generator.
func WithIDFunc(fn func() string) Option {
	return func(t *Tracker) { t.newID = fn }
}

// WithLogger sets the logger for store failures and lifecycle events.
func WithLogger(log *zap.Logger) Option {
	return func(t *Tracker) { t.log = log }
}

// New loads state from kv. Missing or corrupt values yield an empty list and
// the default rate; New never fails.
func New(kv store.KV, opts ...Option) *Tracker {
	t := &Tracker{
		kv:       kv,
		rate:     model.DefaultRate,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		log:      zap.NewNop(),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.records = t.loadRecords()
	if r, ok := t.loadRate(); ok {
		t.rate = r
	}
	return t
}

// newValidator registers decimal_gt0, which compares decimals exactly
// rather than through a float conversion.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("decimal_gt0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	})
	return v
}

// Records returns the current list, most recent first. The slice is a copy.
func (t *Tracker) Records() []model.Subscription {
	out := make([]model.Subscription, len(t.records))
	copy(out, t.records)
	return out
}

// Len returns the number of records.
func (t *Tracker) Len() int {
	return len(t.records)
}

// Search returns records whose name contains query, ignoring case.
func (t *Tracker) Search(query string) []model.Subscription {
	return pipeline.Search(t.Records(), query)
}

// Summary aggregates the current records at the current rate.
func (t *Tracker) Summary() model.SpendSummary {
	return pipeline.Aggregate(t.records, t.rate)
}

// Categories returns the per-category breakdown at the current rate.
func (t *Tracker) Categories() []model.CategorySpend {
	return pipeline.AggregateCategories(t.records, t.rate)
}

// Upcoming returns records due within the given number of days.
func (t *Tracker) Upcoming(within int) []pipeline.Due {
	return pipeline.Upcoming(t.records, t.now(), within)
}

// Now returns the tracker's clock reading.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// Add validates in, builds a record with a fresh id and projected billing
// date, and prepends it. Rejected input leaves state untouched.
func (t *Tracker) Add(in model.Input) (model.Subscription, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := t.validate.Struct(in); err != nil {
		return model.Subscription{}, fromValidator(err)
	}

	s := model.Subscription{
		ID:         t.newID(),
		Name:       in.Name,
		Amount:     in.Amount,
		Category:   in.Category,
		Emoji:      in.Category.Emoji(),
		NextDate:   billing.NextBillingDate(in.BillingDay, t.now()),
		BillingDay: in.BillingDay,
		Currency:   in.Currency,
	}

	t.records = append([]model.Subscription{s}, t.records...)
	t.persistRecords()
	t.log.Debug("subscription added",
		zap.String("id", s.ID),
		zap.String("name", s.Name),
		zap.String("next_date", s.NextDate.String()),
	)
	return s, nil
}

// Remove deletes the record with the given id once confirm approves it. A
// nil confirm approves. An unknown id is a no-op and reports false.
func (t *Tracker) Remove(id string, confirm ConfirmFunc) (bool, error) {
	idx := t.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	if confirm != nil && !confirm(t.records[idx]) {
		return false, nil
	}

	removed := t.records[idx]
	next := make([]model.Subscription, 0, len(t.records)-1)
	next = append(next, t.records[:idx]...)
	next = append(next, t.records[idx+1:]...)
	t.records = next

	t.persistRecords()
	t.log.Debug("subscription removed", zap.String("id", removed.ID), zap.String("name", removed.Name))
	return true, nil
}

// Resolve finds the single record whose id equals or starts with prefix.
func (t *Tracker) Resolve(prefix string) (model.Subscription, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return model.Subscription{}, ErrNotFound
	}
	if idx := t.indexOf(prefix); idx >= 0 {
		return t.records[idx], nil
	}

	var match []model.Subscription
	for _, s := range t.records {
		if strings.HasPrefix(s.ID, prefix) {
			match = append(match, s)
		}
	}
	switch len(match) {
	case 0:
		return model.Subscription{}, ErrNotFound
	case 1:
		return match[0], nil
	default:
		return model.Subscription{}, ErrAmbiguous
	}
}

func (t *Tracker) indexOf(id string) int {
	for i, s := range t.records {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Rate returns the active conversion rate.
func (t *Tracker) Rate() decimal.Decimal {
	return t.rate
}

// SetRate parses text as a positive decimal and, if valid, makes it the
// active rate and persists it. Invalid text is ignored and reports false.
func (t *Tracker) SetRate(text string) bool {
	r, ok := ParseRate(text)
	if !ok {
		t.log.Debug("ignoring invalid rate", zap.String("value", text))
		return false
	}
	t.rate = r
	t.write(store.KeyRate, r.String())
	return true
}

// ResetRate forgets the stored rate and returns to the default.
func (t *Tracker) ResetRate() {
	t.rate = model.DefaultRate
	if err := t.kv.Delete(store.KeyRate); err != nil {
		t.log.Warn("store delete failed", zap.String("key", store.KeyRate), zap.Error(err))
	}
}

// Saved lists what the store currently holds, with last write times.
func (t *Tracker) Saved() ([]store.Entry, error) {
	return store.Entries(t.kv)
}

// LastSaved returns the most recent write time across all stored keys.
func (t *Tracker) LastSaved() (time.Time, bool) {
	entries, err := t.Saved()
	if err != nil {
		t.log.Debug("listing store entries", zap.Error(err))
		return time.Time{}, false
	}
	var last time.Time
	for _, e := range entries {
		if e.UpdatedAt.After(last) {
			last = e.UpdatedAt
		}
	}
	return last, !last.IsZero()
}

// ParseRate reports whether text is a positive decimal.
func ParseRate(text string) (decimal.Decimal, bool) {
	r, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || !r.IsPositive() {
		return decimal.Zero, false
	}
	return r, true
}

// Import prepends records that are not already present by id and persists
// the result. Records are held to the same rules as Add; a missing next
// billing date is projected from the billing day. It returns how many
// records were added and how many were rejected as invalid. Duplicates count
// as neither.
func (t *Tracker) Import(records []model.Subscription) (added, rejected int) {
	seen := make(map[string]struct{}, len(t.records))
	for _, s := range t.records {
		seen[s.ID] = struct{}{}
	}

	var fresh []model.Subscription
	for _, s := range records {
		if s.ID == "" {
			rejected++
			continue
		}
		if _, dup := seen[s.ID]; dup {
			continue
		}
		checked, err := t.checkImported(s)
		if err != nil {
			rejected++
			t.log.Debug("skipping invalid record", zap.String("id", s.ID), zap.Error(err))
			continue
		}
		seen[s.ID] = struct{}{}
		fresh = append(fresh, checked)
	}
	if len(fresh) == 0 {
		return 0, rejected
	}

	t.records = append(fresh, t.records...)
	t.persistRecords()
	t.log.Debug("records imported", zap.Int("count", len(fresh)), zap.Int("rejected", rejected))
	return len(fresh), rejected
}

// checkImported validates s like Add does and fills derived fields.
func (t *Tracker) checkImported(s model.Subscription) (model.Subscription, error) {
	s.Name = strings.TrimSpace(s.Name)
	in := model.Input{
		Name:       s.Name,
		Amount:     s.Amount,
		Currency:   s.Currency,
		Category:   s.Category,
		BillingDay: s.BillingDay,
	}
	if err := t.validate.Struct(in); err != nil {
		return s, fromValidator(err)
	}
	if s.NextDate.IsZero() {
		s.NextDate = billing.NextBillingDate(s.BillingDay, t.now())
	}
	if s.Emoji == "" {
		s.Emoji = s.Category.Emoji()
	}
	return s, nil
}

func (t *Tracker) persistRecords() {
	data, err := json.Marshal(t.records)
	if err != nil {
		t.log.Warn("encoding records", zap.Error(err))
		return
	}
	t.write(store.KeyRecords, string(data))
}

// write is best-effort: the in-memory state stays authoritative.
func (t *Tracker) write(key, value string) {
	if err := t.kv.Set(key, value); err != nil {
		t.log.Warn("store write failed", zap.String("key", key), zap.Error(err))
	}
}
