// Package linefmt holds the lexical helpers of the line-oriented ini format:
// comment stripping, quoting and key/value splitting.
package linefmt

import "strings"

// StripComment removes everything from the first unquoted '#' to the end of
// the line and trims trailing whitespace. Inside double quotes '#' is literal
// and \" does not close the quoted span.
func StripComment(line string) string {
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				i++
			}
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				return strings.TrimRight(line[:i], " \t\r")
			}
		}
	}
	return strings.TrimRight(line, " \t\r")
}

// IsQuoted reports whether s is wrapped in double quotes.
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// Unquote strips surrounding double quotes and unescapes \".
// Unquoted input is returned unchanged.
func Unquote(s string) string {
	if !IsQuoted(s) {
		return s
	}
	return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`)
}

// Quote wraps s in double quotes, escaping embedded quotes.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// SplitKeyValue splits line on the first '=' not preceded by a backslash.
// The key has "\=" unescaped; both parts are trimmed.
func SplitKeyValue(line string) (key, value string, ok bool) {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '=':
			key = strings.ReplaceAll(strings.TrimSpace(line[:i]), `\=`, "=")
			return key, strings.TrimSpace(line[i+1:]), true
		}
	}
	return "", "", false
}

// EscapeKey escapes '=' so that SplitKeyValue reads key back unchanged.
func EscapeKey(key string) string {
	return strings.ReplaceAll(key, "=", `\=`)
}
