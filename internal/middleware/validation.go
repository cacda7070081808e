package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/meric/studentbase/internal/app/models/dto"
)

// FormatBindingError turns a gin binding failure into the standard error
// detail, surfacing the first failed field when the underlying error comes
// from the validator.
func FormatBindingError(err error) *dto.ErrorDetail {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fieldErr := validationErrs[0]
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, formatValidationError(fieldErr)).
			WithField(fieldErr.Field())
	}

	return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
		WithDetails(err.Error())
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
