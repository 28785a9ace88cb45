package confit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	name   string
	values map[string]Value // "section.key"
	err    error
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Apply(store *Store) error {
	if s.err != nil {
		return s.err
	}
	for path, v := range s.values {
		section, key, _ := strings.Cut(path, ".")
		store.SetWithOrigin(section, key, v, s.name)
	}
	return nil
}

func TestLoader_Load(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.conf", "[server]\nport = 8080\nhost = a\n")

	s, err := NewLoader("test", path).
		WithSource(staticSource{name: "first", values: map[string]Value{"server.port": Integer(9000)}}).
		WithSource(staticSource{name: "second", values: map[string]Value{"server.port": Integer(9100)}}).
		Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(9100), s.GetInteger("server", "port").OrDefault(0))
	assert.Equal(t, "a", s.GetString("server", "host").OrDefault(""))
	origin, _ := s.Origin("server", "port")
	assert.Equal(t, "second", origin)
	assert.Equal(t, "test", s.AppName())
}

func TestLoader_LoadErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.conf", "[server]\nport = 8080\n")

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader("test", filepath.Join(t.TempDir(), "nope")).Load(context.Background())
		assert.True(t, errors.Is(err, ErrIO))
	})

	t.Run("source failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewLoader("test", path).
			WithSource(staticSource{name: "broken", err: boom}).
			Load(context.Background())
		assert.True(t, errors.Is(err, boom))
		assert.Contains(t, err.Error(), "apply source broken")
	})

	t.Run("validation failure is returned as is", func(t *testing.T) {
		invalid := fmt.Errorf("%w: port too low", ErrValidation)
		_, err := NewLoader("test", path).
			WithValidator(ValidatorFunc(func(*Store) error { return invalid })).
			Load(context.Background())
		assert.Equal(t, invalid, err)
	})

	t.Run("other validator errors are wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewLoader("test", path).
			WithValidator(ValidatorFunc(func(*Store) error { return nil })).
			WithValidator(ValidatorFunc(func(*Store) error { return boom })).
			Load(context.Background())
		assert.True(t, errors.Is(err, boom))
		assert.Contains(t, err.Error(), "validator 1 failed")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewLoader("test", path).Load(ctx)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestLoader_ValidatorsSeeSources(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.conf", "[server]\nport = 8080\n")

	var seen int64
	_, err := NewLoader("test", path).
		WithSource(staticSource{name: "env", values: map[string]Value{"server.port": Integer(9999)}}).
		WithValidator(ValidatorFunc(func(s *Store) error {
			seen = s.GetInteger("server", "port").OrDefault(0)
			return nil
		})).
		Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9999), seen)
}

func receiveSnapshot(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "snapshot channel closed")
		return snap
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return Snapshot{}
}

func TestLoader_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.conf", "[server]\nport = 8080\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, errs, err := NewLoader("test", path).Watch(ctx)
	require.NoError(t, err)

	initial := receiveSnapshot(t, snapshots)
	assert.Equal(t, int64(1), initial.Version)
	assert.Equal(t, "initial", initial.Source)
	assert.Equal(t, int64(8080), initial.Store.GetInteger("server", "port").OrDefault(0))

	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 9090\n"), 0o644))

	next := receiveSnapshot(t, snapshots)
	assert.Equal(t, int64(2), next.Version)
	assert.Equal(t, path, next.Source)
	assert.Equal(t, int64(9090), next.Store.GetInteger("server", "port").OrDefault(0))
	assert.Equal(t, int64(8080), initial.Store.GetInteger("server", "port").OrDefault(0))

	cancel()
	for range snapshots {
	}
	for range errs {
	}
}

func TestLoader_WatchIncludedFile(t *testing.T) {
	dir := t.TempDir()
	extra := writeFile(t, dir, "conf.d/extra.conf", "[server]\nport = 8080\n")
	path := writeFile(t, dir, "app.conf", "include = conf.d/extra.conf\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, _, err := NewLoader("test", path).Watch(ctx)
	require.NoError(t, err)
	receiveSnapshot(t, snapshots)

	require.NoError(t, os.WriteFile(extra, []byte("[server]\nport = 7070\n"), 0o644))

	next := receiveSnapshot(t, snapshots)
	assert.Equal(t, int64(7070), next.Store.GetInteger("server", "port").OrDefault(0))
}

func TestLoader_WatchReportsReloadErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.conf", "[server]\nport = 8080\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, errs, err := NewLoader("test", path).Watch(ctx)
	require.NoError(t, err)
	receiveSnapshot(t, snapshots)

	require.NoError(t, os.WriteFile(path, []byte("[server]\nnot a pair\n"), 0o644))

	select {
	case err := <-errs:
		assert.True(t, errors.Is(err, ErrParse))
		assert.Contains(t, err.Error(), "reload failed")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}

	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 9191\n"), 0o644))

	next := receiveSnapshot(t, snapshots)
	assert.Equal(t, int64(2), next.Version)
	assert.Equal(t, int64(9191), next.Store.GetInteger("server", "port").OrDefault(0))
}

func TestLoader_WatchSeesAtomicSave(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.conf", "[server]\nport = 8080\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots, _, err := Watch(ctx, "test", path)
	require.NoError(t, err)
	initial := receiveSnapshot(t, snapshots)

	edited := initial.Store.Snapshot()
	edited.Set("server", "port", Integer(6060))
	require.NoError(t, edited.Save())

	next := receiveSnapshot(t, snapshots)
	assert.Equal(t, int64(6060), next.Store.GetInteger("server", "port").OrDefault(0))
}

func TestLoader_WatchInitialLoadFailure(t *testing.T) {
	_, _, err := Watch(context.Background(), "test", filepath.Join(t.TempDir(), "nope.conf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
	assert.Contains(t, err.Error(), "initial load failed")
}

func TestLoader_WatchClosesChannelsOnCancel(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.conf", "[server]\nport = 8080\n")

	ctx, cancel := context.WithCancel(context.Background())
	snapshots, errs, err := NewLoader("test", path).Watch(ctx)
	require.NoError(t, err)
	receiveSnapshot(t, snapshots)

	cancel()

	select {
	case _, ok := <-snapshots:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("snapshot channel not closed")
	}
	select {
	case _, ok := <-errs:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("error channel not closed")
	}
}
