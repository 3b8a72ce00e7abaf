package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation marks input rejected before a record is constructed.
	ErrValidation = errors.New("invalid subscription")
	// ErrNotFound is returned when no record matches an id or prefix.
	ErrNotFound = errors.New("subscription not found")
	// ErrAmbiguous is returned when an id prefix matches several records.
	ErrAmbiguous = errors.New("id prefix matches more than one subscription")
)

// ValidationError names the rejected field and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation, strings.ToLower(e.Field), e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// fromValidator converts the first failed rule into a ValidationError.
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fe := verrs[0]

	reason := fe.Tag()
	switch fe.Tag() {
	case "required":
		reason = "must not be blank"
	case "decimal_gt0":
		reason = "must be greater than 0"
	case "min", "max":
		reason = "must be between 1 and 31"
	case "oneof":
		reason = "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	}
	return &ValidationError{Field: fe.Field(), Reason: reason}
}
