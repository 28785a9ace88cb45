package normalize

import "strings"

// ToLowerDotPath normalizes a key to a lowercase dot-separated path.
// Double underscores (__) are treated as level separators and converted to dots.
// Single underscores within a level are preserved.
// Examples:
//   - "FOO__BAR" → "foo.bar"
//   - "DB_MAX_CONNECTIONS" → "db_max_connections"
//   - "API__RATE_LIMIT" → "api.rate_limit"
func ToLowerDotPath(key string) string {
	normalized := strings.ReplaceAll(key, "__", ".")
	return strings.ToLower(normalized)
}

// EnvSectionKey maps an environment variable name (prefix already stripped)
// to a section and key. The part before the first "__" is the section and
// the rest is the key; names without "__" go to defaultSection.
// Examples:
//   - "SERVER__PORT" → ("server", "port")
//   - "DEBUG" → (defaultSection, "debug")
//   - "DB__POOL__MAX" → ("db", "pool.max")
func EnvSectionKey(name, defaultSection string) (section, key string) {
	path := ToLowerDotPath(name)
	section, key, ok := strings.Cut(path, ".")
	if !ok {
		return defaultSection, path
	}
	return section, key
}

// SplitKeyPath splits "section.key" on the first dot. A path without a dot
// names a key in defaultSection.
// Examples:
//   - "database.host" → ("database", "host")
//   - "port" → (defaultSection, "port")
func SplitKeyPath(path, defaultSection string) (section, key string) {
	section, key, ok := strings.Cut(path, ".")
	if !ok {
		return defaultSection, path
	}
	return section, key
}

// JoinKeyPath combines a section and key into "section.key".
// If section is empty, returns the key unchanged.
// Examples:
//   - JoinKeyPath("database", "host") → "database.host"
//   - JoinKeyPath("", "host") → "host"
func JoinKeyPath(section, key string) string {
	if section == "" {
		return key
	}
	if key == "" {
		return section
	}
	return section + "." + key
}
