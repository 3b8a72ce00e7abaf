// Package model defines domain types for subtrack subscriptions and spend.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency identifies which side of the conversion rate an amount lives on.
type Currency string

const (
	CurrencyLocal   Currency = "RM"
	CurrencyForeign Currency = "USD"
)

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{CurrencyLocal, CurrencyForeign}

// IsForeign reports whether amounts in c must be multiplied by the rate.
func (c Currency) IsForeign() bool {
	return c == CurrencyForeign
}

// ParseCurrency accepts the persisted codes plus the ISO code of the local side.
func ParseCurrency(s string) (Currency, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RM", "MYR":
		return CurrencyLocal, true
	case "USD", "$":
		return CurrencyForeign, true
	}
	return "", false
}

// Category is a display-only tag.
type Category string

const (
	CategoryVideo Category = "Video"
	CategoryMusic Category = "Music"
	CategoryTools Category = "Tools"
)

// Categories lists the selectable categories in display order.
var Categories = []Category{CategoryVideo, CategoryMusic, CategoryTools}

var categoryAliases = map[string]Category{
	"video": CategoryVideo,
	"music": CategoryMusic,
	"tools": CategoryTools,
	"视频":    CategoryVideo,
	"音乐":    CategoryMusic,
	"工具":    CategoryTools,
}

var categoryEmoji = map[Category]string{
	CategoryVideo: "📺",
	CategoryMusic: "🎵",
	CategoryTools: "🛠️",
}

// ParseCategory resolves a category name, including the legacy Chinese labels.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// Emoji returns the display glyph for the category.
func (c Category) Emoji() string {
	if e, ok := categoryEmoji[c]; ok {
		return e
	}
	return "•"
}

// Subscription is the sole persisted entity. Records are immutable once
// created; NextDate is projected at creation and never recomputed.
type Subscription struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Category   Category        `json:"category" yaml:"category"`
	Emoji      string          `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	NextDate   Date            `json:"nextDate" yaml:"nextDate"`
	BillingDay int             `json:"billingDay" yaml:"billingDay"`
	Currency   Currency        `json:"currency" yaml:"currency"`
}

// Input is the raw user-supplied data for a new subscription.
type Input struct {
	Name       string          `validate:"required"`
	Amount     decimal.Decimal `validate:"decimal_gt0"`
	Currency   Currency        `validate:"oneof=RM USD"`
	Category   Category        `validate:"oneof=Video Music Tools"`
	BillingDay int             `validate:"min=1,max=31"`
}
