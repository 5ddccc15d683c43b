package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps values for the lifetime of the process only.
type MemoryBackend struct {
	mu   sync.Mutex
	rows map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{rows: map[string]string{}}
}

func (b *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.rows[key]
	return v, ok, nil
}

func (b *MemoryBackend) Set(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows[key] = value
	return nil
}

func (b *MemoryBackend) Close() error { return nil }
