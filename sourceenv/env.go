package sourceenv

import (
	"os"
	"strings"

	"github.com/Azhovan/confit"
	"github.com/Azhovan/confit/internal/normalize"
)

// Options configures environment variable source behavior.
type Options struct {
	// Prefix filters vars starting with prefix (stripped before normalization).
	// Empty = apply all vars.
	// Prefix matching behavior is controlled by CaseSensitive.
	Prefix string

	// CaseSensitive controls prefix matching (default: false).
	// When false, prefix matching is case-insensitive (APP_ matches app_, App_, etc.).
	// When true, prefix must match exactly.
	// Sections and keys are always lowercased after prefix stripping.
	CaseSensitive bool
}

type envSource struct {
	opts Options
}

// New creates an environment variable source for confit.Loader.
func New(opts Options) confit.Source {
	return &envSource{opts: opts}
}

// Name returns "env".
func (e *envSource) Name() string { return "env" }

// Apply overlays matching environment variables onto s. PREFIX_SECTION__KEY
// sets key in section; a name without "__" sets a key in the default
// section. Values are classified like unquoted ini values, so "8080" becomes
// an Integer. Each value's origin is "env:<VARIABLE>".
func (e *envSource) Apply(s *confit.Store) error {
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		key := name
		if e.opts.Prefix != "" {
			var hasPrefix bool
			if e.opts.CaseSensitive {
				hasPrefix = strings.HasPrefix(key, e.opts.Prefix)
			} else {
				hasPrefix = strings.HasPrefix(strings.ToUpper(key), strings.ToUpper(e.opts.Prefix))
			}

			if !hasPrefix {
				continue
			}
			key = key[len(e.opts.Prefix):]
		}

		if key == "" {
			continue
		}

		section, field := normalize.EnvSectionKey(key, confit.DefaultSection)
		if section == "" || field == "" {
			continue
		}
		s.SetWithOrigin(section, field, confit.ParseScalar(value), "env:"+name)
	}

	return nil
}

// Apply overlays environment variables onto s using opts.
func Apply(s *confit.Store, opts Options) error {
	return New(opts).Apply(s)
}
