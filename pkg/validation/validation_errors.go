package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Job posting wizard
	"JobName":      "Job name",
	"Requirements": "Requirements",
	"Categories":   "Categories",
	"Slots":        "Slots",
	"Salary":       "Salary",

	// Job input
	"Name":        "Job name",
	"Description": "Job description",
	"Tags":        "Job tags",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, FormatFieldError(e))
	}
	return messages
}

// FieldMessages keys every validation failure by its struct field name.
// Element errors of a slice are reported under the slice field. Only the
// first failure per field is kept.
func FieldMessages(err error) map[string]string {
	return collect(err, func(e validator.FieldError) string { return e.StructField() })
}

// JSONFieldMessages is FieldMessages keyed by the json name of the field.
// It relies on the tag name func registered by New.
func JSONFieldMessages(err error) map[string]string {
	return collect(err, func(e validator.FieldError) string { return e.Field() })
}

func collect(err error, key func(validator.FieldError) string) map[string]string {
	out := map[string]string{}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return out
	}
	for _, e := range validationErrors {
		k := baseField(key(e))
		if _, seen := out[k]; seen {
			continue
		}
		out[k] = FormatFieldError(e)
	}
	return out
}

// baseField strips an element index such as "Categories[0]".
func baseField(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}

// FormatFieldError formats a single validation error to a user-friendly message
func FormatFieldError(e validator.FieldError) string {
	label := getFieldLabel(baseField(e.StructField()))
	param := e.Param()
	kind := e.Kind().String()

	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", label)

	case "min":
		if kind == "slice" || kind == "array" {
			return fmt.Sprintf("%s: select at least %s", label, param)
		}
		if kind == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if kind == "slice" || kind == "array" {
			return fmt.Sprintf("%s: at most %s entries", label, param)
		}
		if kind == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)

	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or symbols", label)

	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
