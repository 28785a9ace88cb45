// Package schema validates a confit.Store against declared sections and
// fields, and fills in defaults for missing keys.
//
//	s := schema.New().
//		RequiredSection("server").
//		Field("server", "port", schema.NewField(schema.TypeInteger).
//			Required().
//			Constraint(schema.Integer().Min(1).Max(65535))).
//		Field("server", "host", schema.NewField(schema.TypeText).
//			Default(confit.Text("localhost")))
//
//	if err := s.ValidateAndApplyDefaults(store); err != nil {
//		var verr *schema.ValidationError
//		if errors.As(err, &verr) { ... }
//	}
//
// Validation never stops at the first failure: every section, field and
// constraint is checked and all failures are returned together.
package schema

import (
	"sort"

	"github.com/Azhovan/confit"
)

// Schema maps section names to their expected fields.
type Schema struct {
	sections             map[string]map[string]*Field
	requiredSections     map[string]bool
	allowUnknownSections bool
	allowUnknownKeys     bool
}

// New returns an empty schema that tolerates unknown sections and keys.
func New() *Schema {
	return &Schema{
		sections:             make(map[string]map[string]*Field),
		requiredSections:     make(map[string]bool),
		allowUnknownSections: true,
		allowUnknownKeys:     true,
	}
}

// Section declares a section with no fields yet.
func (s *Schema) Section(name string) *Schema {
	if _, ok := s.sections[name]; !ok {
		s.sections[name] = make(map[string]*Field)
	}
	return s
}

// RequiredSection declares a section that must be present in the store.
func (s *Schema) RequiredSection(name string) *Schema {
	s.requiredSections[name] = true
	return s.Section(name)
}

// Field declares key in section. A later call for the same key replaces it.
func (s *Schema) Field(section, key string, f *Field) *Schema {
	s.Section(section)
	s.sections[section][key] = f
	return s
}

// AllowUnknownSections controls whether store sections absent from the
// schema are tolerated. Default: true.
func (s *Schema) AllowUnknownSections(allow bool) *Schema {
	s.allowUnknownSections = allow
	return s
}

// AllowUnknownKeys controls whether keys absent from a declared section are
// tolerated. Default: true.
func (s *Schema) AllowUnknownKeys(allow bool) *Schema {
	s.allowUnknownKeys = allow
	return s
}

// Lookup returns the field declared for section and key.
func (s *Schema) Lookup(section, key string) (*Field, bool) {
	f, ok := s.sections[section][key]
	return f, ok
}

// Validate checks store against the schema and returns a *ValidationError
// listing every failure, or nil. Errors are ordered: missing sections first,
// then per section in name order, fields in name order, then unknown keys.
// Fields of a section absent from the store are not checked.
func (s *Schema) Validate(store *confit.Store) error {
	var errs []FieldError

	for _, name := range sortedKeys(s.requiredSections) {
		if !store.HasSection(name) {
			errs = append(errs, FieldError{
				FieldPath: name,
				Code:      ErrCodeMissingSection,
				Message:   "required section is missing",
			})
		}
	}

	for _, section := range store.Sections() {
		fields, known := s.sections[section]
		if !known {
			if !s.allowUnknownSections {
				errs = append(errs, FieldError{
					FieldPath: section,
					Code:      ErrCodeUnknownSection,
					Message:   "section is not declared in the schema",
				})
			}
			continue
		}

		for _, key := range sortedKeys(fields) {
			var value *confit.Value
			if v, ok := store.Get(section, key); ok {
				value = &v
			}
			errs = append(errs, fields[key].Validate(value, section+"."+key)...)
		}

		if !s.allowUnknownKeys {
			for _, key := range store.Keys(section) {
				if _, ok := fields[key]; !ok {
					errs = append(errs, FieldError{
						FieldPath: section + "." + key,
						Code:      ErrCodeUnknownKey,
						Message:   "key is not declared in the schema",
					})
				}
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{FieldErrors: errs}
	}
	return nil
}

// ApplyDefaults inserts the default of every field whose key is absent from
// store. Existing values are never overwritten, so applying twice is the same
// as applying once. Inserted values have origin confit.OriginDefault.
func (s *Schema) ApplyDefaults(store *confit.Store) {
	for _, section := range sortedKeys(s.sections) {
		fields := s.sections[section]
		for _, key := range sortedKeys(fields) {
			def, ok := fields[key].DefaultValue()
			if !ok {
				continue
			}
			if _, exists := store.Get(section, key); exists {
				continue
			}
			store.SetWithOrigin(section, key, def, confit.OriginDefault)
		}
	}
}

// ValidateAndApplyDefaults applies defaults, then validates.
func (s *Schema) ValidateAndApplyDefaults(store *confit.Store) error {
	s.ApplyDefaults(store)
	return s.Validate(store)
}

// Clone returns an independent copy of the schema. Custom checkers are
// shared with the original.
func (s *Schema) Clone() *Schema {
	out := New()
	out.allowUnknownSections = s.allowUnknownSections
	out.allowUnknownKeys = s.allowUnknownKeys
	for name := range s.requiredSections {
		out.requiredSections[name] = true
	}
	for section, fields := range s.sections {
		copied := make(map[string]*Field, len(fields))
		for key, f := range fields {
			copied[key] = f.clone()
		}
		out.sections[section] = copied
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
