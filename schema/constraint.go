package schema

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/Azhovan/confit"
)

// Constraint is a rule attached to a Field. Text, integer, float and list
// constraints only apply to values of their own kind and pass silently on
// any other kind; a custom constraint applies to every value.
type Constraint interface {
	check(v confit.Value, path string) []FieldError
}

// TextConstraint bounds Text values.
type TextConstraint struct {
	minLength *int
	maxLength *int
	pattern   *regexp.Regexp
	allowed   []string
}

// Text starts an empty text constraint.
func Text() *TextConstraint { return &TextConstraint{} }

// MinLength requires at least n characters.
func (c *TextConstraint) MinLength(n int) *TextConstraint {
	c.minLength = &n
	return c
}

// MaxLength allows at most n characters.
func (c *TextConstraint) MaxLength(n int) *TextConstraint {
	c.maxLength = &n
	return c
}

// Pattern requires the text to match expr. It panics if expr does not compile.
func (c *TextConstraint) Pattern(expr string) *TextConstraint {
	c.pattern = regexp.MustCompile(expr)
	return c
}

// OneOf restricts the text to the given values.
func (c *TextConstraint) OneOf(values ...string) *TextConstraint {
	c.allowed = append(c.allowed, values...)
	return c
}

func (c *TextConstraint) check(v confit.Value, path string) []FieldError {
	s, ok := v.AsString()
	if !ok {
		return nil
	}

	var errs []FieldError
	n := utf8.RuneCountInString(s)
	if c.minLength != nil && n < *c.minLength {
		errs = append(errs, FieldError{
			FieldPath: path,
			Code:      ErrCodeStringTooShort,
			Message:   fmt.Sprintf("length must be at least %d, got %d", *c.minLength, n),
		})
	}
	if c.maxLength != nil && n > *c.maxLength {
		errs = append(errs, FieldError{
			FieldPath: path,
			Code:      ErrCodeStringTooLong,
			Message:   fmt.Sprintf("length must be at most %d, got %d", *c.maxLength, n),
		})
	}
	if c.pattern != nil && !c.pattern.MatchString(s) {
		errs = append(errs, FieldError{
			FieldPath: path,
			Code:      ErrCodePatternMismatch,
			Message:   fmt.Sprintf("value %q does not match pattern %s", s, c.pattern),
		})
	}
	if len(c.allowed) > 0 && !slices.Contains(c.allowed, s) {
		errs = append(errs, FieldError{
			FieldPath: path,
			Code:      ErrCodeInvalidValue,
			Message:   fmt.Sprintf("must be one of [%s], got %q", strings.Join(c.allowed, ", "), s),
		})
	}
	return errs
}

// IntegerConstraint bounds Integer values.
type IntegerConstraint struct {
	min     *int64
	max     *int64
	allowed []int64
}

// Integer starts an empty integer constraint.
func Integer() *IntegerConstraint { return &IntegerConstraint{} }

// Min requires the value to be >= n.
func (c *IntegerConstraint) Min(n int64) *IntegerConstraint {
	c.min = &n
	return c
}

// Max requires the value to be <= n.
func (c *IntegerConstraint) Max(n int64) *IntegerConstraint {
	c.max = &n
	return c
}

// OneOf restricts the value to the given integers.
func (c *IntegerConstraint) OneOf(values ...int64) *IntegerConstraint {
	c.allowed = append(c.allowed, values...)
	return c
}

func (c *IntegerConstraint) check(v confit.Value, path string) []FieldError {
	i, ok := v.AsInteger()
	if !ok {
		return nil
	}

	var errs []FieldError
	if c.min != nil && i < *c.min {
		errs = append(errs, FieldError{
			FieldPath: path,
			Code:      ErrCodeIntegerTooSmall,
			Message:   fmt.Sprintf("must be >= %d, got %d", *c.min, i),
		})
	}
	if c.max != nil && i > *c.max {
		errs = append(errs, FieldError{
			FieldPath: path,
			Code:      ErrCodeIntegerTooLarge,
			Message:   fmt.Sprintf("must be <= %d, got %d", *c.max, i),
		})
	}
	if len(c.allowed) > 0 && !slices.Contains(c.allowed, i) {
		errs = append(errs, FieldError{
			FieldPath: path,
			Code:      ErrCodeInvalidInteger,
			Message:   fmt.Sprintf("must be one of %v, got %d", c.allowed, i),
		})
	}
	return errs
}

// FloatConstraint bounds Float values. Integer values are not checked.
type FloatConstraint struct {
	min *float64
	max *float64
}

// Float starts an empty float constraint.
func Float() *FloatConstraint { return &FloatConstraint{} }

// Min requires the value to be >= f.
func (c *FloatConstraint) Min(f float64) *FloatConstraint {
	c.min = &f
	return c
}

// Max requires the value to be <= f.
func (c *FloatConstraint) Max(f float64) *FloatConstraint {
	c.max = &f
	return c
}

func (c *FloatConstraint) check(v confit.Value, path string) []FieldError {
	if v.Kind() != confit.KindFloat {
		return nil
	}
	f, _ := v.AsFloat()

	var errs []FieldError
	if c.min != nil && f < *c.min {
		errs = append(errs, FieldError{
			FieldPath: path,
			Code:      ErrCodeFloatTooSmall,
			Message:   fmt.Sprintf("must be >= %g, got %g", *c.min, f),
		})
	}
	if c.max != nil && f > *c.max {
		errs = append(errs, FieldError{
			FieldPath: path,
			Code:      ErrCodeFloatTooLarge,
			Message:   fmt.Sprintf("must be <= %g, got %g", *c.max, f),
		})
	}
	return errs
}

// ListConstraint bounds List values and validates their items.
type ListConstraint struct {
	minLength *int
	maxLength *int
	item      *Field
}

// List starts an empty list constraint.
func List() *ListConstraint { return &ListConstraint{} }

// MinLength requires at least n items.
func (c *ListConstraint) MinLength(n int) *ListConstraint {
	c.minLength = &n
	return c
}

// MaxLength allows at most n items.
func (c *ListConstraint) MaxLength(n int) *ListConstraint {
	c.maxLength = &n
	return c
}

// Items validates every element against f, at path "key[i]".
func (c *ListConstraint) Items(f *Field) *ListConstraint {
	c.item = f
	return c
}

func (c *ListConstraint) check(v confit.Value, path string) []FieldError {
	items, ok := v.AsList()
	if !ok {
		return nil
	}

	var errs []FieldError
	if c.minLength != nil && len(items) < *c.minLength {
		errs = append(errs, FieldError{
			FieldPath: path,
			Code:      ErrCodeArrayTooShort,
			Message:   fmt.Sprintf("must have at least %d items, got %d", *c.minLength, len(items)),
		})
	}
	if c.maxLength != nil && len(items) > *c.maxLength {
		errs = append(errs, FieldError{
			FieldPath: path,
			Code:      ErrCodeArrayTooLong,
			Message:   fmt.Sprintf("must have at most %d items, got %d", *c.maxLength, len(items)),
		})
	}
	if c.item != nil {
		for i := range items {
			errs = append(errs, c.item.Validate(&items[i], fmt.Sprintf("%s[%d]", path, i))...)
		}
	}
	return errs
}

// Checker is a user-supplied predicate. A non-nil error fails the value.
type Checker interface {
	Check(v confit.Value) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(v confit.Value) error

// Check calls f(v).
func (f CheckerFunc) Check(v confit.Value) error { return f(v) }

// CustomConstraint runs a Checker against every value, whatever its kind.
type CustomConstraint struct {
	description string
	checker     Checker
}

// Custom returns a constraint that fails with "<description>: <error>"
// whenever checker rejects the value.
func Custom(description string, checker Checker) *CustomConstraint {
	return &CustomConstraint{description: description, checker: checker}
}

func (c *CustomConstraint) check(v confit.Value, path string) []FieldError {
	if err := c.checker.Check(v); err != nil {
		return []FieldError{{
			FieldPath: path,
			Code:      ErrCodeCustom,
			Message:   fmt.Sprintf("%s: %v", c.description, err),
		}}
	}
	return nil
}
