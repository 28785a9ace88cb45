package confit

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeTag is the struct tag read by Unmarshal.
const DecodeTag = "conf"

// Unmarshal decodes the keys of section into out, which must be a pointer
// to a struct or a map. Fields are matched by their `conf` tag, falling back
// to a case-insensitive match on the field name. Scalars are coerced weakly
// ("8080" decodes into an int), durations parse from strings such as "5s",
// and types implementing encoding.TextUnmarshaler decode from text.
// A missing section decodes as empty.
func (s *Store) Unmarshal(section string, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          DecodeTag,
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("decode section %q: %w", section, err)
	}

	values := s.values[section]
	raw := make(map[string]any, len(values))
	for k, v := range values {
		raw[k] = v.Interface()
	}

	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decode section %q: %w", section, err)
	}
	return nil
}
