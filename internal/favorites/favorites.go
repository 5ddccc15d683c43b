// Package favorites keeps the user's saved words.
package favorites

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/zam-dot/wordly/internal/storage"
)

// StorageKey is where the registry persists its JSON array.
const StorageKey = "wordly_favorites"

// ErrEmptyWord is returned by Add for an empty word.
var ErrEmptyWord = errors.New("favorites: empty word")

// Registry is an insertion-ordered set of words mirrored to a Store.
// Every mutation is written through before the call returns. If the write
// fails the in-memory change is kept and the error is returned, so the
// session carries on without persistence.
type Registry struct {
	store *storage.Store
	words []string
	log   *slog.Logger
}

func New(store *storage.Store, logger *slog.Logger) *Registry {
	return &Registry{
		store: store,
		log:   logger.With("component", "favorites"),
	}
}

// Load replaces the in-memory state with what the store holds.
// Missing or malformed data yields an empty registry.
func (r *Registry) Load(ctx context.Context) []string {
	var stored []string
	if !r.store.Load(ctx, StorageKey, &stored) {
		stored = nil
	}

	r.words = make([]string, 0, len(stored))
	for _, w := range stored {
		if w == "" || slices.Contains(r.words, w) {
			continue
		}
		r.words = append(r.words, w)
	}
	if len(r.words) != len(stored) {
		r.log.WarnContext(ctx, "dropped invalid stored favorites",
			slog.Int("stored", len(stored)), slog.Int("kept", len(r.words)))
	}
	return r.List()
}

// List returns a copy of the saved words in insertion order.
func (r *Registry) List() []string {
	out := make([]string, len(r.words))
	copy(out, r.words)
	return out
}

// Contains reports whether word is saved, by exact match.
func (r *Registry) Contains(word string) bool {
	return slices.Contains(r.words, word)
}

// Add appends word unless it is already present.
func (r *Registry) Add(ctx context.Context, word string) error {
	if word == "" {
		return ErrEmptyWord
	}
	if r.Contains(word) {
		return nil
	}
	r.words = append(r.words, word)
	return r.persist(ctx)
}

// Remove drops every entry equal to word and persists, even if none matched.
func (r *Registry) Remove(ctx context.Context, word string) error {
	r.words = slices.DeleteFunc(r.words, func(w string) bool { return w == word })
	return r.persist(ctx)
}

func (r *Registry) persist(ctx context.Context) error {
	words := r.words
	if words == nil {
		words = []string{}
	}
	if err := r.store.Save(ctx, StorageKey, words); err != nil {
		r.log.WarnContext(ctx, "favorites not persisted", slog.String("error", err.Error()))
		return err
	}
	return nil
}
