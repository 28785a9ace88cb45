package confit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last file event before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Source overlays values onto a store after its file has been loaded,
// e.g. environment variables.
type Source interface {
	Name() string
	Apply(s *Store) error
}

// Validator checks a loaded store. Returning an error wrapping ErrValidation
// marks the configuration as invalid.
type Validator interface {
	Validate(s *Store) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(s *Store) error

// Validate calls f(s).
func (f ValidatorFunc) Validate(s *Store) error { return f(s) }

// Loader loads a configuration file, applies source overlays in order
// (later override earlier) and runs validators.
type Loader struct {
	appName    string
	path       string
	sources    []Source
	validators []Validator
	opts       []Option
	debounce   time.Duration
	logger     *slog.Logger
}

// NewLoader creates a Loader for the file at path. opts are applied to
// every Store it creates.
func NewLoader(appName, path string, opts ...Option) *Loader {
	return &Loader{
		appName:  appName,
		path:     path,
		opts:     opts,
		debounce: DefaultDebounce,
		logger:   New(appName, opts...).logger,
	}
}

// WithSource adds a source. Sources are applied in order after the file.
func (l *Loader) WithSource(src Source) *Loader {
	l.sources = append(l.sources, src)
	return l
}

// WithValidator adds a validator, run after every source has been applied.
func (l *Loader) WithValidator(v Validator) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Debounce sets the quiet period Watch waits for before reloading.
func (l *Loader) Debounce(d time.Duration) *Loader {
	if d > 0 {
		l.debounce = d
	}
	return l
}

// Load reads the file, applies sources and runs validators.
// Validation failures are returned unwrapped so callers can inspect them.
func (l *Loader) Load(ctx context.Context) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := New(l.appName, l.opts...)
	if err := s.LoadFromFile(l.path); err != nil {
		return nil, err
	}

	for _, src := range l.sources {
		if err := src.Apply(s); err != nil {
			return nil, fmt.Errorf("apply source %s: %w", src.Name(), err)
		}
	}

	for i, v := range l.validators {
		if err := v.Validate(s); err != nil {
			if errors.Is(err, ErrValidation) {
				return nil, err
			}
			return nil, fmt.Errorf("validator %d failed: %w", i, err)
		}
	}

	return s, nil
}

// Watch loads the configuration, then reloads it whenever one of the files
// read during the last successful load changes. Events are debounced.
// The first snapshot (Version 1, Source "initial") is sent before any reload.
// Reload failures are sent on the error channel and the previous snapshot
// stays current. Both channels are closed when ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan Snapshot, <-chan error, error) {
	initial, err := l.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("initial load failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create file watcher: %w", err)
	}

	snapshotCh := make(chan Snapshot)
	errorCh := make(chan error)

	go l.watchLoop(ctx, watcher, initial, snapshotCh, errorCh)

	return snapshotCh, errorCh, nil
}

// Watch is shorthand for NewLoader(appName, path, opts...).Watch(ctx).
func Watch(ctx context.Context, appName, path string, opts ...Option) (<-chan Snapshot, <-chan error, error) {
	return NewLoader(appName, path, opts...).Watch(ctx)
}

func (l *Loader) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, initial *Store, snapshotCh chan<- Snapshot, errorCh chan<- error) {
	defer close(snapshotCh)
	defer close(errorCh)
	defer watcher.Close()

	watched := l.watchFiles(watcher, initial)

	currentVersion := int64(1)
	select {
	case snapshotCh <- Snapshot{Store: initial, Version: currentVersion, LoadedAt: time.Now(), Source: "initial"}:
	case <-ctx.Done():
		return
	}

	var (
		timer  *time.Timer
		timerC <-chan time.Time
		cause  string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !watched[absPath(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			l.logger.Debug("configuration file event", "path", event.Name, "op", event.Op.String())
			cause = event.Name

			if timer == nil {
				timer = time.NewTimer(l.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(l.debounce)
			}
			timerC = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			select {
			case errorCh <- fmt.Errorf("watch: %w", err):
			case <-ctx.Done():
				return
			}

		case <-timerC:
			timerC = nil

			next, err := l.Load(ctx)
			if err != nil {
				l.logger.Debug("configuration reload failed", "error", err)
				select {
				case errorCh <- fmt.Errorf("reload failed: %w", err):
				case <-ctx.Done():
					return
				}
				continue
			}

			watched = l.watchFiles(watcher, next)
			currentVersion++
			l.logger.Debug("configuration reloaded", "version", currentVersion, "cause", cause)

			select {
			case snapshotCh <- Snapshot{Store: next, Version: currentVersion, LoadedAt: time.Now(), Source: cause}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// watchFiles watches the directory of every file s was loaded from, so that
// replace-by-rename saves are seen, and returns the set of files to react to.
func (l *Loader) watchFiles(watcher *fsnotify.Watcher, s *Store) map[string]bool {
	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range append(s.Files(), l.path) {
		abs := absPath(f)
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			l.logger.Debug("cannot watch directory", "dir", dir, "error", err)
		}
	}
	return files
}
