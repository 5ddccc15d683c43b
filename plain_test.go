package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zam-dot/wordly/internal/favorites"
	"github.com/zam-dot/wordly/internal/session"
	"github.com/zam-dot/wordly/internal/storage"
	"github.com/zam-dot/wordly/internal/theme"
)

func TestDefine(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		word    string
		want    []string
		wantErr error
	}{
		{name: "found", word: "hello", want: []string{"hello", "def of hello", "Pronunciation available"}},
		{name: "not found", word: "xyzzyqq", want: []string{session.MessageNotFound}, wantErr: session.ErrNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := storage.New(storage.NewMemoryBackend(), newTestLogger())
			var out bytes.Buffer

			r := newPlainRenderer(&out, 80)
			err := define(ctx, tt.word, dictionary("hello"), favorites.New(store, newTestLogger()), theme.New(store, newTestLogger()), r, newTestLogger())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, errLookupFailed)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			for _, s := range tt.want {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestPlainRenderer_IgnoresThemeWhenNotATerminal(t *testing.T) {
	t.Parallel()

	r := newPlainRenderer(&bytes.Buffer{}, 80)
	require.Equal(t, "notty", r.style)

	r.ApplyTheme(true)
	assert.Equal(t, "notty", r.style)
}

func TestRun_SetThemeAndExit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WORDLY_LOG_FILE", filepath.Join(dir, "wordly.log"))
	dataPath := filepath.Join(dir, "state.json")
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"-data", dataPath, "-dark"}, &out, &bytes.Buffer{}))
	assert.Equal(t, "Theme set to dark\n", out.String())

	backend, err := storage.OpenFile(dataPath)
	require.NoError(t, err)
	pref := theme.New(storage.New(backend, newTestLogger()), newTestLogger())
	assert.True(t, pref.IsDark(ctx))
}

func TestRun_SetThemeWithoutStorageFails(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WORDLY_LOG_FILE", filepath.Join(dir, "wordly.log"))

	// A directory cannot be used as the state file.
	var out bytes.Buffer
	err := run(context.Background(), []string{"-data", dir, "-dark"}, &out, &bytes.Buffer{})

	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrUnavailable)
	assert.Empty(t, out.String(), "nothing was saved")
}

func TestOpenStore_FallsBackToMemory(t *testing.T) {
	t.Parallel()

	// A directory cannot be used as the state file.
	store, degraded := openStore(StorageConfig{Backend: storage.BackendFile, Path: t.TempDir()}, newTestLogger())
	defer store.Close()
	assert.True(t, degraded)

	store, degraded = openStore(StorageConfig{Backend: storage.BackendMemory}, newTestLogger())
	defer store.Close()
	assert.False(t, degraded)
}

func TestOpenerCommand(t *testing.T) {
	t.Parallel()

	url := "https://example.com/a.mp3"
	tests := map[string][]string{
		"linux":   {"xdg-open", url},
		"darwin":  {"open", url},
		"windows": {"rundll32", "url.dll,FileProtocolHandler", url},
	}
	for goos, want := range tests {
		assert.Equal(t, want, openerCommand(goos, url).Args, goos)
	}
}
