package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct validates a struct based on its validation tags.
// The returned error carries one formatted message per failing field.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidationMessages returns the individual field messages for a validation
// error, or nil if the error did not come from ValidateStruct.
func ValidationMessages(err error) []string {
	var fieldErrors validator.ValidationErrors
	if vErr, ok := err.(*validationError); ok {
		fieldErrors = vErr.fields
	} else {
		return nil
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		messages = append(messages, formatFieldError(e))
	}
	return messages
}

type validationError struct {
	fields validator.ValidationErrors
}

func (e *validationError) Error() string {
	messages := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		messages = append(messages, formatFieldError(f))
	}
	return strings.Join(messages, "; ")
}

// formatValidationError formats validation errors into readable messages
func formatValidationError(err error) error {
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		return &validationError{fields: fieldErrors}
	}
	return err
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "url":
		return fmt.Sprintf("%s must be a valid url", field)
	case "dive":
		return fmt.Sprintf("%s contains invalid values", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
