package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	field := e.Field()
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be empty", field)

	case "not_blank":
		return fmt.Sprintf("%s should not be blank", field)

	case "min":
		if isString(e) {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		if isList(e) {
			return fmt.Sprintf("%s must contain at least %s items", field, param)
		}
		return fmt.Sprintf("%s must not be less than %s", field, param)

	case "max":
		if isString(e) {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must not be greater than %s", field, param)

	case "gte":
		return fmt.Sprintf("%s must not be less than %s", field, param)

	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", field, strings.ReplaceAll(param, " ", ", "))

	case "email":
		return fmt.Sprintf("%s must be an email", field)

	case "url":
		return fmt.Sprintf("%s must be a URL address", field)

	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a UUID", field)

	case "valid_phone":
		return fmt.Sprintf("%s must be a valid phone number", field)

	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, e.Tag())
	}
}

func isString(e validator.FieldError) bool {
	return e.Kind().String() == "string"
}

func isList(e validator.FieldError) bool {
	k := e.Kind().String()
	return k == "slice" || k == "array"
}
