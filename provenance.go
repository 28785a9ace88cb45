package confit

import "sort"

// Provenance lists where each value of a store came from.
type Provenance struct {
	Fields []FieldProvenance
}

// FieldProvenance describes where one value came from.
type FieldProvenance struct {
	Section    string
	Key        string
	SourceName string // File path, "set", "default" or e.g. "env:APP_PORT"
}

// KeyPath returns "section.key".
func (f FieldProvenance) KeyPath() string {
	return f.Section + "." + f.Key
}

// Provenance returns the origin of every value, ordered by section then key.
func (s *Store) Provenance() *Provenance {
	prov := &Provenance{}
	for _, section := range s.Sections() {
		for _, key := range s.Keys(section) {
			origin, _ := s.Origin(section, key)
			prov.Fields = append(prov.Fields, FieldProvenance{
				Section:    section,
				Key:        key,
				SourceName: origin,
			})
		}
	}
	return prov
}

// Sources returns the distinct origins in the store, sorted.
func (p *Provenance) Sources() []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range p.Fields {
		if f.SourceName != "" && !seen[f.SourceName] {
			seen[f.SourceName] = true
			out = append(out, f.SourceName)
		}
	}
	sort.Strings(out)
	return out
}
