package confit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

// Value kinds.
const (
	KindText Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindList
	KindMap
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a format-independent configuration value.
// The zero Value is an empty Text.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	list []Value
	m    map[string]Value
}

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Integer returns a 64-bit integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float returns a 64-bit float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{kind: KindBoolean, b: b} }

// List returns a list value holding copies of items.
func List(items ...Value) Value {
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return Value{kind: KindList, list: out}
}

// Map returns a map value holding copies of entries.
func Map(entries map[string]Value) Value {
	out := make(map[string]Value, len(entries))
	for k, v := range entries {
		out[k] = v.Clone()
	}
	return Value{kind: KindMap, m: out}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the text held by v.
func (v Value) AsString() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.s, true
}

// AsInteger returns the integer held by v.
func (v Value) AsInteger() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the float held by v. Integers are widened.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInteger:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsBoolean returns the boolean held by v.
func (v Value) AsBoolean() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.b, true
}

// AsList returns the items held by v. The slice is shared with v.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsMap returns the entries held by v. The map is shared with v.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindList:
		return List(v.list...)
	case KindMap:
		return Map(v.m)
	default:
		return v
	}
}

// Equal reports whether v and other hold the same variant and contents.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.s == other.s
	case KindInteger:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindBoolean:
		return v.b == other.b
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, item := range v.m {
			o, ok := other.m[k]
			if !ok || !item.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v to plain Go values: string, int64, float64, bool,
// []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindBoolean:
		return v.b
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, item := range v.m {
			out[k] = item.Interface()
		}
		return out
	default:
		return v.s
	}
}

// String renders v for humans. Text is quoted, maps are printed with sorted keys.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return strconv.Quote(v.s)
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, v.m[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}

// formatFloat renders f so that it reads back as a float, never as an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}
