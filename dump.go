package confit

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// redacted replaces the value of keys passed to WithRedacted.
const redacted = "***redacted***"

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

type dumpConfig struct {
	withSources bool
	asJSON      bool
	indent      string
	redact      map[string]bool // lowercased "section.key"
}

// WithSources includes the origin of each value in the output.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs the store as a JSON object of sections instead of text.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces; "" produces compact output.
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// WithRedacted hides the values of the given "section.key" paths.
// Matching is case-insensitive.
func WithRedacted(paths ...string) DumpOption {
	return func(cfg *dumpConfig) {
		for _, p := range paths {
			cfg.redact[strings.ToLower(p)] = true
		}
	}
}

// Dump writes a human-readable representation of the store, one
// "section.key: value" line per value in section and key order.
// Returns an error if writing to w fails.
func Dump(w io.Writer, s *Store, opts ...DumpOption) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}

	config := dumpConfig{
		indent: "  ",
		redact: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(&config)
	}

	if config.asJSON {
		return dumpAsJSON(w, s, config)
	}
	return dumpAsText(w, s, config)
}

func dumpAsText(w io.Writer, s *Store, config dumpConfig) error {
	for _, field := range s.Provenance().Fields {
		v, _ := s.Get(field.Section, field.Key)

		display := v.String()
		if config.redact[strings.ToLower(field.KeyPath())] {
			display = redacted
		}

		line := fmt.Sprintf("%s: %s", field.KeyPath(), display)
		if config.withSources && field.SourceName != "" {
			line += fmt.Sprintf(" (source: %s)", field.SourceName)
		}
		line += "\n"

		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	return nil
}

// dumpAsJSON writes {"section": {"key": value}}. With sources, each value
// becomes {"value": ..., "source": ...}.
func dumpAsJSON(w io.Writer, s *Store, config dumpConfig) error {
	result := make(map[string]map[string]any)
	for _, field := range s.Provenance().Fields {
		v, _ := s.Get(field.Section, field.Key)

		var out any = jsonValue(v)
		if config.redact[strings.ToLower(field.KeyPath())] {
			out = redacted
		}
		if config.withSources {
			out = map[string]any{"value": out, "source": field.SourceName}
		}

		section, ok := result[field.Section]
		if !ok {
			section = make(map[string]any)
			result[field.Section] = section
		}
		section[field.Key] = out
	}

	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(result, "", config.indent)
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}
