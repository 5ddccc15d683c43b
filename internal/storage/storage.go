// Package storage persists small keyed values across sessions.
//
// A Store owns serialization and sits on top of a Backend that only knows
// about raw strings. Reads are absent-tolerant: a missing key, a value that
// fails to decode, or a failing backend all look like "not there". Writes
// report backend failures as ErrUnavailable so callers can keep working
// in memory for the rest of the session.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnavailable is returned when the durable backend cannot be written.
var ErrUnavailable = errors.New("storage unavailable")

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backend is a raw key/value medium.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Store serializes values onto a Backend.
type Store struct {
	backend Backend
	log     *slog.Logger
}

// New wraps backend in a Store.
func New(backend Backend, logger *slog.Logger) *Store {
	return &Store{
		backend: backend,
		log:     logger.With("component", "storage"),
	}
}

// Save JSON-encodes value and writes it under key.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	return s.SaveToken(ctx, key, string(data))
}

// SaveToken writes token verbatim under key.
func (s *Store) SaveToken(ctx context.Context, key, token string) error {
	if err := s.backend.Set(ctx, key, token); err != nil {
		s.log.WarnContext(ctx, "write failed", slog.String("key", key), slog.String("error", err.Error()))
		return fmt.Errorf("storage: write %s: %w: %w", key, ErrUnavailable, err)
	}
	return nil
}

// Load decodes the JSON value stored under key into dst.
// It reports false when the key is missing or the value cannot be decoded.
func (s *Store) Load(ctx context.Context, key string, dst any) bool {
	raw, ok := s.LoadToken(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.WarnContext(ctx, "discarding unparsable value", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

// LoadToken returns the raw string stored under key.
func (s *Store) LoadToken(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.WarnContext(ctx, "read failed", slog.String("key", key), slog.String("error", err.Error()))
		return "", false
	}
	return raw, ok
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Open builds the named backend at path. An empty path resolves to
// DefaultPath(name). Unknown names are an error; a durable backend that
// cannot be opened is reported wrapped in ErrUnavailable.
func Open(name, path string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == BackendMemory {
		return NewMemoryBackend(), nil
	}
	if name != BackendFile && name != BackendSQLite {
		return nil, fmt.Errorf("storage: unknown backend %q", name)
	}

	if path == "" {
		var err error
		if path, err = DefaultPath(name); err != nil {
			return nil, fmt.Errorf("storage: %w: %w", ErrUnavailable, err)
		}
	}

	var (
		backend Backend
		err     error
	)
	switch name {
	case BackendSQLite:
		backend, err = OpenSQLite(path)
	default:
		backend, err = OpenFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w: %w", name, ErrUnavailable, err)
	}
	return backend, nil
}

// DefaultPath returns the per-user state location for a backend.
func DefaultPath(name string) (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if name == BackendSQLite {
		return filepath.Join(dir, "state.db"), nil
	}
	return filepath.Join(dir, "state.json"), nil
}

// DataDir is the directory wordly keeps its state and log files in.
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "wordly"), nil
}
