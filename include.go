package confit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// includeKey is the reserved key naming files to merge into the store.
const includeKey = "include"

// parseFunc merges content read from path into s. chain lists the absolute
// paths of the files currently being parsed, outermost first.
type parseFunc func(s *Store, content, path string, chain []string) error

var parsers map[Format]parseFunc

func init() {
	parsers = map[Format]parseFunc{
		FormatINI:  parseINI,
		FormatTOML: parseTOML,
		FormatYAML: parseYAML,
		FormatJSON: parseJSON,
	}
}

// parse dispatches content to the parser registered for f.
func (s *Store) parse(f Format, content, path string, chain []string) error {
	parse, ok := parsers[f]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	s.files = append(s.files, path)
	s.logger.Debug("parsing configuration file", "path", path, "format", f.String(), "depth", len(chain)-1)
	return parse(s, content, path, chain)
}

// resolveInclude merges the file or glob named by target into s. Relative
// paths and patterns are resolved against the directory of includingPath.
// A target holding any of * ? [ { is a glob; a literal name containing one
// of them needs a backslash before it, as in conf\[1\].ini.
func (s *Store) resolveInclude(target, includingPath string, includingFormat Format, chain []string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("%w: empty include path in %s", ErrInclude, includingPath)
	}

	if !hasGlobMeta(target) {
		return s.includeFile(resolvePath(includingPath, target), includingFormat, chain)
	}

	pattern := resolvePath(includingPath, target)
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("%w: invalid glob pattern %q in %s: %w", ErrInclude, target, includingPath, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("%w: no files match pattern %q in %s", ErrInclude, target, includingPath)
	}
	sort.Strings(matches)

	s.logger.Debug("expanded include pattern", "pattern", pattern, "matches", len(matches))
	for _, match := range matches {
		if err := s.includeFile(match, includingFormat, chain); err != nil {
			return err
		}
	}
	return nil
}

// includeFile reads one included file and merges it with the parser
// chosen by its shebang, its extension, or the including file's format.
func (s *Store) includeFile(path string, includingFormat Format, chain []string) error {
	abs := absPath(path)
	for _, active := range chain {
		if active == abs {
			return fmt.Errorf("%w: %s is already being included (%s)", ErrIncludeCycle, path, strings.Join(chain, " -> "))
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: included file not found: %s", ErrInclude, path)
		}
		return fmt.Errorf("%w: stat included file %s: %w", ErrInclude, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: included path is a directory: %s", ErrInclude, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read included file %s: %w", ErrInclude, path, err)
	}
	content := string(data)

	format, err := detectIncludeFormat(content, path, includingFormat)
	if err != nil {
		return fmt.Errorf("included file %s: %w", path, err)
	}

	next := make([]string, len(chain), len(chain)+1)
	copy(next, chain)
	return s.parse(format, content, path, append(next, abs))
}

// includeTargets extracts include paths from a decoded structured-format value:
// a string or a list of strings.
func includeTargets(raw any, path string) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []any:
		targets := make([]string, 0, len(v))
		for i, item := range v {
			target, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: include entry %d in %s must be a string, got %T", ErrInclude, i, path, item)
			}
			targets = append(targets, target)
		}
		return targets, nil
	default:
		return nil, fmt.Errorf("%w: include in %s must be a string or a list of strings, got %T", ErrInclude, path, raw)
	}
}

// resolvePath resolves target against the directory of baseFile.
// Absolute targets pass through; the result is cleaned.
func resolvePath(baseFile, target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(filepath.Dir(baseFile), target)
}

// hasGlobMeta reports whether path is expanded as a glob pattern. Escaped
// metacharacters still count, so the escape is resolved by the glob.
func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
