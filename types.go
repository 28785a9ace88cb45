package confit

import (
	"log/slog"
	"time"
)

// Optional distinguishes "not set" from "zero value".
type Optional[T any] struct {
	Value T
	Set   bool
}

// Get returns the wrapped value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrDefault returns the wrapped value or the provided default.
func (o Optional[T]) OrDefault(defaultVal T) T {
	if o.Set {
		return o.Value
	}
	return defaultVal
}

func some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and include diagnostics.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Snapshot represents a configuration version emitted by Watch.
type Snapshot struct {
	Store    *Store
	Version  int64 // Increments on reload (starts at 1)
	LoadedAt time.Time
	Source   string // What triggered the load
}
