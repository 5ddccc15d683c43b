package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type brokenBackend struct{ err error }

func (b brokenBackend) Get(context.Context, string) (string, bool, error) { return "", false, b.err }
func (b brokenBackend) Set(context.Context, string, string) error         { return b.err }
func (b brokenBackend) Close() error                                      { return nil }

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	file, err := OpenFile(filepath.Join(t.TempDir(), "nested", "state.json"))
	require.NoError(t, err)

	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   file,
		"sqlite": db,
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(backend, newTestLogger())

			require.NoError(t, s.Save(ctx, "words", []string{"hello", "world"}))

			var got []string
			require.True(t, s.Load(ctx, "words", &got))
			assert.Equal(t, []string{"hello", "world"}, got)

			require.NoError(t, s.Save(ctx, "words", []string{"world"}))
			require.True(t, s.Load(ctx, "words", &got))
			assert.Equal(t, []string{"world"}, got)
		})
	}
}

func TestStore_TokenIsStoredVerbatim(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backend := NewMemoryBackend()
	s := New(backend, newTestLogger())
	require.NoError(t, s.SaveToken(ctx, "theme", "dark"))

	raw, ok, err := backend.Get(ctx, "theme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", raw)

	token, ok := s.LoadToken(ctx, "theme")
	require.True(t, ok)
	assert.Equal(t, "dark", token)
}

func TestStore_LoadMissingOrMalformed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	backend := NewMemoryBackend()
	s := New(backend, newTestLogger())

	var got []string
	assert.False(t, s.Load(ctx, "missing", &got))

	require.NoError(t, backend.Set(ctx, "words", "{not json"))
	assert.False(t, s.Load(ctx, "words", &got))
	assert.Nil(t, got)
}

func TestStore_BackendFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cause := errors.New("quota exceeded")
	s := New(brokenBackend{err: cause}, newTestLogger())

	err := s.Save(ctx, "words", []string{"a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)

	var got []string
	assert.False(t, s.Load(ctx, "words", &got))
	_, ok := s.LoadToken(ctx, "theme")
	assert.False(t, ok)
}

func TestFileBackend_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	first, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "theme", "dark"))
	require.NoError(t, first.Set(ctx, "wordly_favorites", `["a"]`))

	second, err := OpenFile(path)
	require.NoError(t, err)
	v, ok, err := second.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileBackend_CorruptFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	b, err := OpenFile(path)
	require.NoError(t, err)

	s := New(b, newTestLogger())
	_, ok := s.LoadToken(ctx, "theme")
	assert.False(t, ok, "corrupt file reads as absent")

	require.NoError(t, b.Set(ctx, "theme", "light"))
	v, ok, err := b.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestFileBackend_ReadErrorKeepsExistingState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	b, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, "wordly_favorites", `["a"]`))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	b.readFile = func(string) ([]byte, error) { return nil, fs.ErrPermission }

	err = New(b, newTestLogger()).SaveToken(ctx, "theme", "dark")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, fs.ErrPermission)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "the other key must survive a failed read")
}

func TestFileBackend_RejectsDirectory(t *testing.T) {
	t.Parallel()

	_, err := OpenFile(t.TempDir())
	assert.Error(t, err)
}

func TestSQLiteBackend_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "theme", "dark"))
	require.NoError(t, first.Set(ctx, "theme", "light"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	v, ok, err := second.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	tests := []struct {
		name    string
		backend string
		path    string
		wantErr bool
		unavail bool
	}{
		{name: "memory", backend: "memory"},
		{name: "file", backend: "file", path: filepath.Join(dir, "a.json")},
		{name: "sqlite upper case", backend: " SQLite ", path: filepath.Join(dir, "a.db")},
		{name: "unknown", backend: "redis", wantErr: true},
		{name: "file on directory", backend: "file", path: dir, wantErr: true, unavail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Open(tt.backend, tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.unavail, errors.Is(err, ErrUnavailable))
				return
			}
			require.NoError(t, err)
			require.NoError(t, b.Close())
		})
	}
}
