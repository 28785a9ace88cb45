package confit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Azhovan/confit/internal/linefmt"
)

var (
	iniSectionRe = regexp.MustCompile(`^\s*\[(.*?)\]\s*$`)
	iniIncludeRe = regexp.MustCompile(`^\s*include\s*=\s*(.*?)\s*$`)
)

// parseINI merges line-oriented content into s.
func parseINI(s *Store, content, path string, chain []string) error {
	section := DefaultSection

	lines := strings.Split(stripShebang(content), "\n")
	offset := 1
	if _, ok := shebang(content); ok {
		offset = 2
	}

	for i, raw := range lines {
		line := linefmt.StripComment(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := iniIncludeRe.FindStringSubmatch(line); m != nil {
			if err := s.resolveInclude(linefmt.Unquote(m[1]), path, FormatINI, chain); err != nil {
				return err
			}
			continue
		}

		if m := iniSectionRe.FindStringSubmatch(line); m != nil {
			section = strings.TrimSpace(m[1])
			continue
		}

		key, raw, ok := linefmt.SplitKeyValue(line)
		if !ok {
			return &ParseError{Path: path, Line: i + offset, Message: "expected [section], key = value or include = path"}
		}
		if key == "" {
			return &ParseError{Path: path, Line: i + offset, Message: "empty key"}
		}
		s.SetWithOrigin(section, key, ParseScalar(raw), path)
	}

	return nil
}

// ParseScalar classifies a raw line-format value. In priority order: a
// double-quoted string is Text with \" unescaped; true/yes/on/1 and
// false/no/off/0 (any case) are Boolean; then Integer; then Float;
// anything else is Text verbatim.
func ParseScalar(raw string) Value {
	if linefmt.IsQuoted(raw) {
		return Text(linefmt.Unquote(raw))
	}

	switch strings.ToLower(raw) {
	case "true", "yes", "on", "1":
		return Boolean(true)
	case "false", "no", "off", "0":
		return Boolean(false)
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Integer(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Float(f)
	}
	return Text(raw)
}

// encodeINI writes default-section keys first, without a header, then every
// other section in name order. Lists and maps have no ini representation and
// are written as quoted strings, which do not read back as lists or maps.
// Names and values the grammar cannot carry fail with ErrUnsupportedFormat.
func encodeINI(s *Store) ([]byte, error) {
	var b strings.Builder
	b.WriteString(shebangPrefix + FormatINI.String() + "\n")

	writeKeys := func(section string) error {
		for _, key := range s.Keys(section) {
			if err := checkINIKey(section, key); err != nil {
				return err
			}
			v, _ := s.Get(section, key)
			value := iniValue(v)
			if strings.Contains(value, "\n") {
				return fmt.Errorf("%w: ini cannot hold the line break in %s.%s", ErrUnsupportedFormat, section, key)
			}
			b.WriteString(linefmt.EscapeKey(key))
			b.WriteString(" = ")
			b.WriteString(value)
			b.WriteByte('\n')
		}
		return nil
	}

	if s.HasSection(DefaultSection) {
		if err := writeKeys(DefaultSection); err != nil {
			return nil, err
		}
	}
	for _, section := range s.Sections() {
		if section == DefaultSection {
			continue
		}
		if strings.TrimSpace(section) != section || strings.ContainsAny(section, "#\n\r") {
			return nil, fmt.Errorf("%w: ini cannot hold section name %q", ErrUnsupportedFormat, section)
		}
		b.WriteString("\n[" + section + "]\n")
		if err := writeKeys(section); err != nil {
			return nil, err
		}
	}

	return []byte(b.String()), nil
}

// checkINIKey rejects keys that would not read back as themselves. Only '='
// has an escape in the grammar.
func checkINIKey(section, key string) error {
	switch {
	case key == "" || strings.TrimSpace(key) != key:
		return fmt.Errorf("%w: ini cannot hold key %q in section %s", ErrUnsupportedFormat, key, section)
	case key == includeKey:
		return fmt.Errorf("%w: key %q in section %s would read back as an include directive", ErrUnsupportedFormat, key, section)
	case strings.ContainsAny(key, "#\"\\\n\r"):
		return fmt.Errorf("%w: ini cannot hold key %q in section %s", ErrUnsupportedFormat, key, section)
	}
	return nil
}

func iniValue(v Value) string {
	switch v.Kind() {
	case KindText:
		str, _ := v.AsString()
		return linefmt.Quote(str)
	case KindInteger:
		// A bare 0 or 1 reads back as Boolean.
		i, _ := v.AsInteger()
		if i == 0 || i == 1 {
			return "+" + strconv.FormatInt(i, 10)
		}
		return strconv.FormatInt(i, 10)
	case KindList:
		items, _ := v.AsList()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = iniValue(item)
		}
		return linefmt.Quote(strings.Join(parts, ", "))
	case KindMap:
		return linefmt.Quote(v.String())
	default:
		return v.String()
	}
}
