package schema

import (
	"fmt"

	"github.com/Azhovan/confit"
)

// Type is the value kind a field expects.
type Type int

// Field types. TypeAny skips the type check.
const (
	TypeAny Type = iota
	TypeText
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeList
	TypeMap
)

func (t Type) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeText:
		return "text"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	default:
		return "unknown"
	}
}

// TypeOf returns the Type matching v's kind.
func TypeOf(v confit.Value) Type {
	switch v.Kind() {
	case confit.KindText:
		return TypeText
	case confit.KindInteger:
		return TypeInteger
	case confit.KindFloat:
		return TypeFloat
	case confit.KindBoolean:
		return TypeBoolean
	case confit.KindList:
		return TypeList
	case confit.KindMap:
		return TypeMap
	default:
		return TypeAny
	}
}

// Field describes one expected key: its type, whether it is required, an
// optional default and the constraints its value must satisfy.
type Field struct {
	typ         Type
	required    bool
	def         *confit.Value
	constraints []Constraint
	description string
}

// NewField returns an optional field of type t with no constraints.
func NewField(t Type) *Field {
	return &Field{typ: t}
}

// Required marks the field as mandatory.
func (f *Field) Required() *Field {
	f.required = true
	return f
}

// Default sets the value ApplyDefaults inserts when the key is absent.
func (f *Field) Default(v confit.Value) *Field {
	v = v.Clone()
	f.def = &v
	return f
}

// Constraint appends c to the field's constraints. Constraints run in the
// order they were added.
func (f *Field) Constraint(c Constraint) *Field {
	f.constraints = append(f.constraints, c)
	return f
}

// Describe sets a human-readable description.
func (f *Field) Describe(desc string) *Field {
	f.description = desc
	return f
}

// Type returns the expected type.
func (f *Field) Type() Type { return f.typ }

// IsRequired reports whether the field is mandatory.
func (f *Field) IsRequired() bool { return f.required }

// DefaultValue returns the default, if one was set.
func (f *Field) DefaultValue() (confit.Value, bool) {
	if f.def == nil {
		return confit.Value{}, false
	}
	return f.def.Clone(), true
}

// Description returns the description set with Describe.
func (f *Field) Description() string { return f.description }

// Validate checks a value found at path. A nil value means the key is absent.
// The type is checked first, then every constraint; all failures are returned.
func (f *Field) Validate(value *confit.Value, path string) []FieldError {
	if value == nil {
		if f.required {
			return []FieldError{{
				FieldPath: path,
				Code:      ErrCodeMissingField,
				Message:   "field is required but not provided",
			}}
		}
		return nil
	}

	var errs []FieldError
	if f.typ != TypeAny {
		if actual := TypeOf(*value); actual != f.typ {
			errs = append(errs, FieldError{
				FieldPath: path,
				Code:      ErrCodeTypeMismatch,
				Message:   fmt.Sprintf("expected %s, got %s", f.typ, actual),
			})
		}
	}

	for _, c := range f.constraints {
		errs = append(errs, c.check(*value, path)...)
	}
	return errs
}

func (f *Field) clone() *Field {
	out := *f
	out.constraints = append([]Constraint(nil), f.constraints...)
	return &out
}
