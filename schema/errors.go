package schema

import (
	"fmt"
	"strings"

	"github.com/Azhovan/confit"
)

// Error codes for validation failures.
const (
	ErrCodeMissingSection  = "missing_section"
	ErrCodeUnknownSection  = "unknown_section"
	ErrCodeMissingField    = "missing_field"
	ErrCodeUnknownKey      = "unknown_key"
	ErrCodeTypeMismatch    = "type_mismatch"
	ErrCodeStringTooShort  = "string_too_short"
	ErrCodeStringTooLong   = "string_too_long"
	ErrCodePatternMismatch = "pattern_mismatch"
	ErrCodeInvalidValue    = "invalid_value"
	ErrCodeIntegerTooSmall = "integer_too_small"
	ErrCodeIntegerTooLarge = "integer_too_large"
	ErrCodeInvalidInteger  = "invalid_integer"
	ErrCodeFloatTooSmall   = "float_too_small"
	ErrCodeFloatTooLarge   = "float_too_large"
	ErrCodeArrayTooShort   = "array_too_short"
	ErrCodeArrayTooLong    = "array_too_long"
	ErrCodeCustom          = "custom"
)

// ValidationError aggregates every failure found by one validation pass.
type ValidationError struct {
	FieldErrors []FieldError
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "config validation failed: no errors"
	}

	var b strings.Builder
	if len(e.FieldErrors) == 1 {
		b.WriteString("config validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "config validation failed: %d errors\n", len(e.FieldErrors))
	}

	for _, fe := range e.FieldErrors {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", fe.FieldPath, fe.Code, fe.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Unwrap lets errors.Is match confit.ErrValidation.
func (e *ValidationError) Unwrap() error {
	return confit.ErrValidation
}

// Codes returns the code of every field error, in order.
func (e *ValidationError) Codes() []string {
	codes := make([]string, len(e.FieldErrors))
	for i, fe := range e.FieldErrors {
		codes[i] = fe.Code
	}
	return codes
}

// FieldError represents a single validation failure.
type FieldError struct {
	FieldPath string // "section", "section.key" or "section.key[2]"
	Code      string // Error code (e.g., "missing_field", "integer_too_large")
	Message   string // Human-readable description
}

func (fe FieldError) String() string {
	return fmt.Sprintf("%s: %s (%s)", fe.FieldPath, fe.Code, fe.Message)
}
