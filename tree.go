package confit

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"
)

// mergeTree merges a decoded structured-format document into s. The
// include key is resolved first; nested mappings become sections and every
// other top-level entry lands in the default section.
func (s *Store) mergeTree(root map[string]any, path string, format Format, chain []string) error {
	if raw, ok := root[includeKey]; ok {
		targets, err := includeTargets(raw, path)
		if err != nil {
			return err
		}
		for _, target := range targets {
			if err := s.resolveInclude(target, path, format, chain); err != nil {
				return err
			}
		}
	}

	names := make([]string, 0, len(root))
	for name := range root {
		if name != includeKey {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		section, ok := asStringMap(root[name])
		if !ok {
			s.SetWithOrigin(DefaultSection, name, fromNative(root[name]), path)
			continue
		}
		for key, raw := range section {
			s.SetWithOrigin(name, key, fromNative(raw), path)
		}
	}
	return nil
}

// asStringMap normalizes the mapping types produced by the format decoders.
func asStringMap(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// fromNative converts a decoded document value into a Value. Numbers become
// Integer when they are exactly an int64 and Float otherwise; null becomes
// empty Text.
func fromNative(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Text("")
	case string:
		return Text(v)
	case bool:
		return Boolean(v)
	case int:
		return Integer(int64(v))
	case int8:
		return Integer(int64(v))
	case int16:
		return Integer(int64(v))
	case int32:
		return Integer(int64(v))
	case int64:
		return Integer(v)
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return Integer(int64(v))
	case uint16:
		return Integer(int64(v))
	case uint32:
		return Integer(int64(v))
	case uint64:
		return fromUint(v)
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Integer(i)
		}
		if f, err := v.Float64(); err == nil {
			return Float(f)
		}
		return Text(v.String())
	case time.Time:
		return Text(v.Format(time.RFC3339Nano))
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			items[i] = fromNative(item)
		}
		return Value{kind: KindList, list: items}
	case map[string]any, map[any]any:
		m, _ := asStringMap(v)
		entries := make(map[string]Value, len(m))
		for k, item := range m {
			entries[k] = fromNative(item)
		}
		return Value{kind: KindMap, m: entries}
	case fmt.Stringer:
		return Text(v.String())
	default:
		return Text(fmt.Sprint(v))
	}
}

func fromUint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Integer(int64(u))
	}
	return Float(float64(u))
}

// documentRoot lays a store out as a document: default-section keys at the
// root, every other non-empty section as a nested mapping. convert maps each
// Value to the encoder's native representation. Layouts that would read back
// differently are rejected: a default key sharing a section's name, or
// anything named after the include key at the root.
func documentRoot[T any](s *Store, convert func(Value) T, nest func(map[string]T) T) (map[string]T, error) {
	root := make(map[string]T)
	for _, key := range s.Keys(DefaultSection) {
		if key == includeKey {
			return nil, fmt.Errorf("%w: default key %q would read back as an include directive", ErrUnsupportedFormat, key)
		}
		v, _ := s.Get(DefaultSection, key)
		root[key] = convert(v)
	}

	for _, section := range s.Sections() {
		keys := s.Keys(section)
		if section == DefaultSection || len(keys) == 0 {
			continue
		}
		if section == includeKey {
			return nil, fmt.Errorf("%w: section %q would read back as an include directive", ErrUnsupportedFormat, section)
		}
		if _, ok := root[section]; ok {
			return nil, fmt.Errorf("%w: default key %q collides with section %q", ErrUnsupportedFormat, section, section)
		}
		nested := make(map[string]T, len(keys))
		for _, key := range keys {
			v, _ := s.Get(section, key)
			nested[key] = convert(v)
		}
		root[section] = nest(nested)
	}
	return root, nil
}
