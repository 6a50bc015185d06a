// Package validation holds helpers shared by enum-like option parsers.
package validation

import (
	"fmt"
	"strings"
)

// FormatValidValues joins string-like values for error messages.
func FormatValidValues[T ~string](values []T) string {
	formatted := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		formatted = append(formatted, string(value))
	}
	return strings.Join(formatted, ", ")
}

// FormatInvalidValueError wraps base with the rejected value and the list of
// accepted ones.
func FormatInvalidValueError[T ~string](base error, value T, valid []T) error {
	return fmt.Errorf("%w: %q (valid: %s)", base, string(value), FormatValidValues(valid))
}

// IsOneOf reports whether value is among valid.
func IsOneOf[T comparable](value T, valid []T) bool {
	for _, candidate := range valid {
		if value == candidate {
			return true
		}
	}
	return false
}
