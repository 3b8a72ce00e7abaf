package tracker

import (
	"errors"
	"testing"

	"github.com/theirongolddev/subtrack/internal/model"
)

func TestFormInput(t *testing.T) {
	in, err := Form{
		Name:     " Netflix ",
		Amount:   "15.90",
		Day:      " 5",
		Currency: model.CurrencyLocal,
		Category: model.CategoryVideo,
	}.Input()
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if in.BillingDay != 5 || in.Amount.String() != "15.9" || in.Name != " Netflix " {
		t.Errorf("unexpected input %+v", in)
	}
}

func TestFormInput_BadNumbers(t *testing.T) {
	tests := []struct {
		name  string
		form  Form
		field string
	}{
		{"amount text", Form{Amount: "ten", Day: "1"}, "Amount"},
		{"day text", Form{Amount: "1", Day: "first"}, "BillingDay"},
		{"empty day", Form{Amount: "1", Day: ""}, "BillingDay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Input()
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Fatalf("err = %v, want ValidationError on %s", err, tt.field)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("error should wrap ErrValidation")
			}
		})
	}
}

func TestFieldChecks(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) error
		in    string
		ok    bool
	}{
		{"name ok", CheckName, "Spotify", true},
		{"name blank", CheckName, "   ", false},
		{"amount ok", CheckAmount, "0.01", true},
		{"amount zero", CheckAmount, "0", false},
		{"amount negative", CheckAmount, "-5", false},
		{"amount text", CheckAmount, "abc", false},
		{"day 1", CheckDay, "1", true},
		{"day 31", CheckDay, "31", true},
		{"day 0", CheckDay, "0", false},
		{"day 32", CheckDay, "32", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.in)
			if (err == nil) != tt.ok {
				t.Errorf("check(%q) = %v, want ok=%v", tt.in, err, tt.ok)
			}
		})
	}
}
