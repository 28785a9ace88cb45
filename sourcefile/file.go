package sourcefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Azhovan/confit"
)

// Options configures file lookup and overlay behavior.
type Options struct {
	// Required: if true, a missing overlay file causes an error.
	// Default: false (the overlay is skipped).
	Required bool

	// Root is prepended to the system locations (/etc, /opt/etc).
	// Empty = filesystem root.
	Root string

	// HomeDir replaces the user's home directory. Empty = os.UserHomeDir.
	HomeDir string

	// ExecDir replaces the directory of the running executable.
	// Empty = directory of os.Executable.
	ExecDir string
}

type fileSource struct {
	path string
	opts Options
}

// New creates a source that merges the file at path over the values
// already loaded. The format comes from the shebang line, then the file
// extension, then defaults to ini. Includes are resolved.
func New(path string, opts Options) confit.Source {
	return &fileSource{
		path: path,
		opts: opts,
	}
}

// Name returns "file:<path>".
func (f *fileSource) Name() string { return "file:" + f.path }

// Apply merges the file into s.
func (f *fileSource) Apply(s *confit.Store) error {
	if _, err := os.Stat(f.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !f.opts.Required {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: required config file not found: %s", confit.ErrIO, f.path)
		}
		return fmt.Errorf("%w: stat config file %s: %w", confit.ErrIO, f.path, err)
	}
	return s.MergeFile(f.path)
}

// SearchPaths returns the default locations of appName's configuration file,
// most system-wide first:
//
//	/etc/<app>/<app>.conf
//	/etc/<app>.conf
//	/opt/etc/<app>.conf
//	~/.config/<app>/<app>.conf
//	~/.config/<app>.conf
//	<executable dir>/<app>.conf
//
// Locations whose base directory cannot be determined are omitted.
func SearchPaths(appName string, opts Options) []string {
	filename := appName + ".conf"
	root := opts.Root
	if root == "" {
		root = string(filepath.Separator)
	}

	paths := []string{
		filepath.Join(root, "etc", appName, filename),
		filepath.Join(root, "etc", filename),
		filepath.Join(root, "opt", "etc", filename),
	}

	home := opts.HomeDir
	if home == "" {
		if dir, err := os.UserHomeDir(); err == nil {
			home = dir
		}
	}
	if home != "" {
		paths = append(paths,
			filepath.Join(home, ".config", appName, filename),
			filepath.Join(home, ".config", filename),
		)
	}

	execDir := opts.ExecDir
	if execDir == "" {
		if exe, err := os.Executable(); err == nil {
			execDir = filepath.Dir(exe)
		}
	}
	if execDir != "" {
		paths = append(paths, filepath.Join(execDir, filename))
	}

	return paths
}

// Find returns the first of SearchPaths that exists as a regular file.
func Find(appName string, opts Options) (string, error) {
	for _, path := range SearchPaths(appName, opts) {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", confit.ErrNotFound, appName)
}

// Load loads the first existing default location into s and returns its path.
// It returns an error wrapping confit.ErrNotFound when no location exists.
func Load(s *confit.Store, opts Options) (string, error) {
	path, err := Find(s.AppName(), opts)
	if err != nil {
		return "", err
	}
	if err := s.LoadFromFile(path); err != nil {
		return path, err
	}
	return path, nil
}
