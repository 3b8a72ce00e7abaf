package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// storedRecord mirrors Subscription with every field loosely typed, so
// one bad field does not discard the whole record.
type storedRecord struct {
	ID         json.RawMessage `json:"id"`
	Name       json.RawMessage `json:"name"`
	Amount     json.RawMessage `json:"amount"`
	Category   json.RawMessage `json:"category"`
	Emoji      json.RawMessage `json:"emoji"`
	NextDate   json.RawMessage `json:"nextDate"`
	BillingDay json.RawMessage `json:"billingDay"`
	Currency   json.RawMessage `json:"currency"`
}

// DecodeRecords reads a JSON array of records. Content that is not an array
// yields no records. Elements that are not objects or carry no id are
// skipped and counted. Unreadable fields fall back to zero values; an
// unreadable amount therefore contributes nothing to spend.
func DecodeRecords(data []byte) ([]Subscription, int) {
	records := []Subscription{}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		if len(bytes.TrimSpace(data)) > 0 {
			return records, 1
		}
		return records, 0
	}

	skipped := 0
	for _, elem := range elems {
		s, ok := decodeRecord(elem)
		if !ok {
			skipped++
			continue
		}
		records = append(records, s)
	}
	return records, skipped
}

func decodeRecord(elem json.RawMessage) (Subscription, bool) {
	trimmed := bytes.TrimSpace(elem)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Subscription{}, false
	}

	var sr storedRecord
	if err := json.Unmarshal(trimmed, &sr); err != nil {
		return Subscription{}, false
	}

	id := looseString(sr.ID)
	if id == "" {
		return Subscription{}, false
	}

	s := Subscription{
		ID:    id,
		Name:  looseString(sr.Name),
		Emoji: looseString(sr.Emoji),
	}

	if err := json.Unmarshal(sr.Amount, &s.Amount); err != nil {
		s.Amount = decimal.Zero
	}
	if cur, ok := ParseCurrency(looseString(sr.Currency)); ok {
		s.Currency = cur
	} else {
		s.Currency = CurrencyLocal
	}
	if cat, ok := ParseCategory(looseString(sr.Category)); ok {
		s.Category = cat
	} else {
		s.Category = Category(looseString(sr.Category))
	}
	if d, err := ParseDate(looseString(sr.NextDate)); err == nil {
		s.NextDate = d
	}
	var day json.Number
	if err := json.Unmarshal(sr.BillingDay, &day); err == nil {
		if n, err := day.Int64(); err == nil {
			s.BillingDay = int(n)
		}
	}
	return s, true
}

// looseString returns a JSON string's value, or a number's literal text.
func looseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
