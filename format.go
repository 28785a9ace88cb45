package confit

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a configuration file format.
type Format int

// Supported formats.
const (
	FormatUnknown Format = iota
	FormatINI
	FormatTOML
	FormatYAML
	FormatJSON
)

// shebangPrefix marks the first line that selects a format, e.g. "#!config/yaml".
const shebangPrefix = "#!config/"

// String returns the format name used in shebang lines.
func (f Format) String() string {
	switch f {
	case FormatINI:
		return "ini"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name (case-insensitive) to a Format.
// Unrecognized names yield FormatUnknown.
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ini":
		return FormatINI
	case "toml":
		return FormatTOML
	case "yaml", "yml":
		return FormatYAML
	case "json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// DetectFormat picks the format of raw content from its shebang line.
// Content without a shebang is treated as the line-oriented ini format.
func DetectFormat(content string) (Format, error) {
	name, ok := shebang(content)
	if !ok {
		return FormatINI, nil
	}
	f := ParseFormat(name)
	if f == FormatUnknown {
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, strings.TrimSpace(name))
	}
	return f, nil
}

// detectIncludeFormat picks the format of an included file: shebang first,
// then the file extension, then the format of the including file.
func detectIncludeFormat(content, path string, parent Format) (Format, error) {
	if _, ok := shebang(content); ok {
		return DetectFormat(content)
	}
	if f := formatFromExt(path); f != FormatUnknown {
		return f, nil
	}
	return parent, nil
}

func formatFromExt(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		return FormatINI
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// shebang returns the format name from a "#!config/<fmt>" first line.
func shebang(content string) (string, bool) {
	first := firstLine(content)
	if !strings.HasPrefix(first, shebangPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(first, shebangPrefix)), true
}

// stripShebang removes the first line when it is a shebang.
func stripShebang(content string) string {
	if !strings.HasPrefix(content, shebangPrefix) {
		return content
	}
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		return content[i+1:]
	}
	return ""
}

func firstLine(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[:i]
	}
	return strings.TrimSuffix(content, "\r")
}
