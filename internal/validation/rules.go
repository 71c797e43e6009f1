// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/afrireads/bookgate/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// PositiveHours validates that an optional hour count is positive when supplied.
// The zero value means "use the configured default" and is accepted.
var PositiveHours = validation.By(func(value interface{}) error {
	hours, ok := value.(float64)
	if !ok {
		return validation.NewError("validation_hours_type", "must be a number of hours")
	}
	if hours < 0 {
		return validation.NewError("validation_hours_positive", "must be a positive number of hours")
	}
	return nil
})
