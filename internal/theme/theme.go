// Package theme stores the light/dark preference.
//
// The preference is a single token under a fixed key. It carries no styling;
// renderers receive the boolean through Apply and derive their own look.
package theme

import (
	"context"
	"log/slog"
	"strings"

	"github.com/zam-dot/wordly/internal/storage"
)

// StorageKey is where the token is persisted.
const StorageKey = "theme"

// Setting is the two-valued theme.
type Setting int

const (
	Light Setting = iota
	Dark
)

func (s Setting) String() string {
	if s == Dark {
		return "dark"
	}
	return "light"
}

// ParseSetting maps a stored token to a Setting. Matching ignores case and
// surrounding space.
func ParseSetting(token string) (Setting, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "dark":
		return Dark, true
	case "light":
		return Light, true
	}
	return Light, false
}

// FromBool returns Dark for true.
func FromBool(dark bool) Setting {
	if dark {
		return Dark
	}
	return Light
}

// Applier is anything that re-derives its look from the theme.
type Applier interface {
	ApplyTheme(dark bool)
}

// Preference reads and writes the theme token.
type Preference struct {
	store *storage.Store
	log   *slog.Logger

	// fallback holds the last Set value; it answers IsDark after a failed write.
	fallback Setting
	degraded bool
}

func New(store *storage.Store, logger *slog.Logger) *Preference {
	return &Preference{
		store: store,
		log:   logger.With("component", "theme"),
	}
}

// Set persists the preference. If the write fails the value still holds for
// the rest of the session.
func (p *Preference) Set(ctx context.Context, dark bool) error {
	s := FromBool(dark)
	p.fallback = s
	if err := p.store.SaveToken(ctx, StorageKey, s.String()); err != nil {
		p.degraded = true
		p.log.WarnContext(ctx, "theme not persisted", slog.String("error", err.Error()))
		return err
	}
	p.degraded = false
	return nil
}

// IsDark reports the persisted preference. Absent or unrecognized tokens
// mean light.
func (p *Preference) IsDark(ctx context.Context) bool {
	if p.degraded {
		return p.fallback == Dark
	}
	token, ok := p.store.LoadToken(ctx, StorageKey)
	if !ok {
		return false
	}
	s, ok := ParseSetting(token)
	if !ok {
		p.log.DebugContext(ctx, "unrecognized theme token", slog.String("token", token))
	}
	return s == Dark
}

// Toggle flips the preference and returns the new value.
func (p *Preference) Toggle(ctx context.Context) (bool, error) {
	dark := !p.IsDark(ctx)
	return dark, p.Set(ctx, dark)
}

// Apply hands the current preference to a.
func (p *Preference) Apply(ctx context.Context, a Applier) {
	a.ApplyTheme(p.IsDark(ctx))
}
