package confit

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps one of them,
// so callers can classify failures with errors.Is.
var (
	// ErrIO is returned when a configuration file cannot be read or written.
	ErrIO = errors.New("confit: i/o error")

	// ErrUnsupportedFormat is returned for an unknown shebang format or when
	// saving a store whose format is unknown.
	ErrUnsupportedFormat = errors.New("confit: unsupported configuration format")

	// ErrParse is returned when content is malformed for its format.
	ErrParse = errors.New("confit: parse error")

	// ErrInclude is returned when an include directive cannot be resolved.
	ErrInclude = errors.New("confit: include error")

	// ErrIncludeCycle is returned when a file includes itself, directly or not.
	// It wraps ErrInclude.
	ErrIncludeCycle = fmt.Errorf("%w: include cycle", ErrInclude)

	// ErrNotFound is returned when no configuration file exists in any candidate location.
	ErrNotFound = errors.New("confit: configuration file not found")

	// ErrValidation is wrapped by schema validation failures.
	ErrValidation = errors.New("confit: validation failed")
)

// ParseError reports malformed line-format content.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap lets errors.Is match ErrParse.
func (e *ParseError) Unwrap() error {
	return ErrParse
}
