package confit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

func parseJSON(s *Store, content, path string, chain []string) error {
	dec := json.NewDecoder(strings.NewReader(stripShebang(content)))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: parse JSON file %s: %w", ErrParse, path, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: parse JSON file %s: unexpected data after top-level object", ErrParse, path)
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: parse JSON file %s: root must be an object, got %T", ErrParse, path, doc)
	}
	return s.mergeTree(root, path, FormatJSON, chain)
}

func encodeJSON(s *Store) ([]byte, error) {
	root, err := documentRoot(s, jsonValue, func(m map[string]any) any { return m })
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(shebangPrefix + FormatJSON.String() + "\n")
	buf.Write(data)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// jsonValue converts v for encoding/json. Floats are emitted as number
// literals that keep a decimal point; non-finite floats have no JSON form
// and are written as strings.
func jsonValue(v Value) any {
	switch v.Kind() {
	case KindFloat:
		f, _ := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return formatFloat(f)
		}
		return json.Number(formatFloat(f))
	case KindList:
		items, _ := v.AsList()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = jsonValue(item)
		}
		return out
	case KindMap:
		entries, _ := v.AsMap()
		out := make(map[string]any, len(entries))
		for k, item := range entries {
			out[k] = jsonValue(item)
		}
		return out
	default:
		return v.Interface()
	}
}
