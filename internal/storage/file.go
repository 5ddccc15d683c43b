package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend keeps every key in a single JSON object file.
// Writes go to a temp file in the same directory and are renamed into place.
type FileBackend struct {
	path     string
	mu       sync.Mutex
	readFile func(name string) ([]byte, error)
}

// errCorrupt marks a state file that exists but does not decode.
var errCorrupt = errors.New("corrupt state file")

// OpenFile returns a FileBackend for path, creating its directory.
// The file itself is created on first write.
func OpenFile(path string) (*FileBackend, error) {
	if path == "" {
		return nil, errors.New("file path is required")
	}
	clean := filepath.Clean(path)
	if info, err := os.Stat(clean); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", clean)
	}
	if err := os.MkdirAll(filepath.Dir(clean), 0o700); err != nil {
		return nil, err
	}
	return &FileBackend{path: clean, readFile: os.ReadFile}, nil
}

func (b *FileBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	rows, err := b.readLocked()
	if err != nil {
		return "", false, err
	}
	v, ok := rows[key]
	return v, ok, nil
}

func (b *FileBackend) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	rows, err := b.readLocked()
	switch {
	case errors.Is(err, errCorrupt):
		// A corrupt file is replaced rather than blocking every later write.
		rows = map[string]string{}
	case err != nil:
		return err
	}
	rows[key] = value
	return b.writeLocked(rows)
}

func (b *FileBackend) Close() error { return nil }

func (b *FileBackend) readLocked() (map[string]string, error) {
	data, err := b.readFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}
	rows := map[string]string{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", b.path, errCorrupt, err)
	}
	return rows, nil
}

func (b *FileBackend) writeLocked(rows map[string]string) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(dir, ".wordly-state-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Chmod(0o600); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
