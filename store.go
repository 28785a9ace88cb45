package confit

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// DefaultSection holds keys that appear outside any explicit section.
const DefaultSection = "default"

// Origins recorded for values that do not come from a file.
const (
	OriginSet     = "set"     // Store.Set
	OriginDefault = "default" // schema default
)

// Store holds configuration values organized as section → key → Value.
// A Store is not safe for concurrent mutation; use Snapshot to hand out
// read-only copies.
type Store struct {
	appName string
	values  map[string]map[string]Value
	origins map[string]map[string]string
	files   []string
	format  Format
	path    string
	logger  *slog.Logger
}

// New creates an empty store for the named application.
func New(appName string, opts ...Option) *Store {
	s := &Store{
		appName: appName,
		values:  make(map[string]map[string]Value),
		origins: make(map[string]map[string]string),
		format:  FormatUnknown,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AppName returns the application name given to New.
func (s *Store) AppName() string { return s.appName }

// SetFormat sets the format used by SaveToFile.
func (s *Store) SetFormat(f Format) *Store {
	s.format = f
	return s
}

// Format returns the current format: the one detected by the last load,
// or the one set explicitly.
func (s *Store) Format() Format { return s.format }

// Path returns the file last loaded or saved, or "" if none.
func (s *Store) Path() string { return s.path }

// Files returns every file read by the last LoadFromFile, in read order,
// the top-level file first.
func (s *Store) Files() []string {
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// LoadFromFile reads path, detects its format from the content and merges
// its values, and those of every file it includes, into the store.
// On failure the store keeps whatever was merged before the failing step.
func (s *Store) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read config file %s: %w", ErrIO, path, err)
	}

	s.path = path
	s.files = nil
	content := string(data)

	format, err := DetectFormat(content)
	if err != nil {
		s.format = FormatUnknown
		return fmt.Errorf("config file %s: %w", path, err)
	}
	s.format = format

	return s.parse(format, content, path, []string{absPath(path)})
}

// MergeFile reads path and merges its values, and those of its includes,
// over the current ones. The format is picked like an included file's:
// shebang, then extension, then ini. Unlike LoadFromFile it keeps the
// store's path and format; the files read are appended to Files.
func (s *Store) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read config file %s: %w", ErrIO, path, err)
	}
	content := string(data)

	format, err := detectIncludeFormat(content, path, FormatINI)
	if err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return s.parse(format, content, path, []string{absPath(path)})
}

// Get returns the value stored under section and key.
func (s *Store) Get(section, key string) (Value, bool) {
	values, ok := s.values[section]
	if !ok {
		return Value{}, false
	}
	v, ok := values[key]
	return v, ok
}

// GetString returns a Text value.
func (s *Store) GetString(section, key string) Optional[string] {
	if v, ok := s.Get(section, key); ok {
		if str, ok := v.AsString(); ok {
			return some(str)
		}
	}
	return Optional[string]{}
}

// GetInteger returns an Integer value.
func (s *Store) GetInteger(section, key string) Optional[int64] {
	if v, ok := s.Get(section, key); ok {
		if i, ok := v.AsInteger(); ok {
			return some(i)
		}
	}
	return Optional[int64]{}
}

// GetFloat returns a Float value; Integer values are widened.
func (s *Store) GetFloat(section, key string) Optional[float64] {
	if v, ok := s.Get(section, key); ok {
		if f, ok := v.AsFloat(); ok {
			return some(f)
		}
	}
	return Optional[float64]{}
}

// GetBoolean returns a Boolean value.
func (s *Store) GetBoolean(section, key string) Optional[bool] {
	if v, ok := s.Get(section, key); ok {
		if b, ok := v.AsBoolean(); ok {
			return some(b)
		}
	}
	return Optional[bool]{}
}

// GetArray returns the items of a List value.
func (s *Store) GetArray(section, key string) Optional[[]Value] {
	if v, ok := s.Get(section, key); ok {
		if items, ok := v.AsList(); ok {
			return some(items)
		}
	}
	return Optional[[]Value]{}
}

// GetTable returns the entries of a Map value.
func (s *Store) GetTable(section, key string) Optional[map[string]Value] {
	if v, ok := s.Get(section, key); ok {
		if m, ok := v.AsMap(); ok {
			return some(m)
		}
	}
	return Optional[map[string]Value]{}
}

// Set stores a copy of value under section and key, replacing any previous value.
func (s *Store) Set(section, key string, value Value) *Store {
	return s.SetWithOrigin(section, key, value, OriginSet)
}

// SetWithOrigin is Set with an explicit provenance label, such as "env:APP_PORT".
func (s *Store) SetWithOrigin(section, key string, value Value, origin string) *Store {
	values, ok := s.values[section]
	if !ok {
		values = make(map[string]Value)
		s.values[section] = values
		s.origins[section] = make(map[string]string)
	}
	values[key] = value.Clone()
	s.origins[section][key] = origin
	return s
}

// Origin returns where the value under section and key came from:
// a file path, "set", "default" or a source label such as "env:NAME".
func (s *Store) Origin(section, key string) (string, bool) {
	origins, ok := s.origins[section]
	if !ok {
		return "", false
	}
	origin, ok := origins[key]
	return origin, ok
}

// HasSection reports whether section holds at least one key.
func (s *Store) HasSection(section string) bool {
	_, ok := s.values[section]
	return ok
}

// Sections returns the section names in sorted order.
func (s *Store) Sections() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Keys returns the keys of section in sorted order.
func (s *Store) Keys(section string) []string {
	values := s.values[section]
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Section returns a copy of the values in section.
func (s *Store) Section(section string) (map[string]Value, bool) {
	values, ok := s.values[section]
	if !ok {
		return nil, false
	}
	out := make(map[string]Value, len(values))
	for k, v := range values {
		out[k] = v.Clone()
	}
	return out, true
}

var encoders = map[Format]func(*Store) ([]byte, error){
	FormatINI:  encodeINI,
	FormatTOML: encodeTOML,
	FormatYAML: encodeYAML,
	FormatJSON: encodeJSON,
}

// Encode serializes the store in its current format, shebang line included.
func (s *Store) Encode() ([]byte, error) {
	encode, ok := encoders[s.format]
	if !ok {
		return nil, fmt.Errorf("%w: cannot encode format %s", ErrUnsupportedFormat, s.format)
	}
	return encode(s)
}

// SaveToFile serializes the store in its current format and writes it to path.
func (s *Store) SaveToFile(path string) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: write config file %s: %w", ErrIO, path, err)
	}

	s.path = path
	s.logger.Debug("saved configuration", "path", path, "format", s.format.String())
	return nil
}

// Save writes the store back to the file it was loaded from or last saved to.
func (s *Store) Save() error {
	if s.path == "" {
		return fmt.Errorf("%w: store has no associated file", ErrIO)
	}
	return s.SaveToFile(s.path)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
