package tracker

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/subtrack/internal/model"
)

// Form is the text a user typed into an add form, before parsing.
type Form struct {
	Name     string
	Amount   string
	Day      string
	Currency model.Currency
	Category model.Category
}

// Input parses the text fields. Unparseable numbers are reported as
// validation errors; range checks are left to Add.
func (f Form) Input() (model.Input, error) {
	in := model.Input{
		Name:     f.Name,
		Currency: f.Currency,
		Category: f.Category,
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		return in, &ValidationError{Field: "Amount", Reason: "must be a number"}
	}
	in.Amount = amount

	day, err := strconv.Atoi(strings.TrimSpace(f.Day))
	if err != nil {
		return in, &ValidationError{Field: "BillingDay", Reason: "must be a whole number"}
	}
	in.BillingDay = day
	return in, nil
}

// CheckName is a field validator for interactive forms.
func CheckName(s string) error {
	if strings.TrimSpace(s) == "" {
		return &ValidationError{Field: "Name", Reason: "must not be blank"}
	}
	return nil
}

// CheckAmount is a field validator for interactive forms.
func CheckAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return &ValidationError{Field: "Amount", Reason: "must be a number"}
	}
	if !d.IsPositive() {
		return &ValidationError{Field: "Amount", Reason: "must be greater than 0"}
	}
	return nil
}

// CheckDay is a field validator for interactive forms.
func CheckDay(s string) error {
	d, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || d < 1 || d > 31 {
		return &ValidationError{Field: "BillingDay", Reason: "must be between 1 and 31"}
	}
	return nil
}
