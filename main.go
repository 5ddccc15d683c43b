package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zam-dot/wordly/internal/favorites"
	"github.com/zam-dot/wordly/internal/freedict"
	"github.com/zam-dot/wordly/internal/session"
	"github.com/zam-dot/wordly/internal/storage"
	"github.com/zam-dot/wordly/internal/theme"
)

// errLookupFailed ends a -define run whose failure was already printed.
var errLookupFailed = errors.New("lookup failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, errLookupFailed):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, "wordly:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := ParseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	cfg := opts.Config

	logOut, closeLog := openLogFile(cfg.Log)
	defer closeLog()
	logger := newLogger(cfg.Log, logOut)

	store, degraded := openStore(cfg.Storage, logger)
	defer store.Close()

	favs := favorites.New(store, logger)
	pref := theme.New(store, logger)

	if opts.Theme != "" {
		if degraded {
			return fmt.Errorf("set theme: %w", storage.ErrUnavailable)
		}
		if err := pref.Set(ctx, opts.Theme == theme.Dark.String()); err != nil {
			return fmt.Errorf("set theme: %w", err)
		}
		fmt.Fprintf(stdout, "Theme set to %s\n", opts.Theme)
		return nil
	}

	client := freedict.NewClient(freedict.Options{
		BaseURL:   cfg.Lookup.BaseURL,
		Timeout:   cfg.Lookup.Timeout,
		Retry:     !cfg.Lookup.NoRetry,
		UserAgent: cfg.Lookup.UserAgent,
	}, logger)

	if opts.Define != "" {
		return define(ctx, opts.Define, client, favs, pref, newPlainRenderer(stdout, cfg.UI.Width), logger)
	}

	scr := &screen{}
	ctrl := session.New(client, favs, pref, scr, logger)
	ctrl.Start(ctx)

	m := newModel(ctx, ctrl, scr, cfg.UI, logger)
	if degraded {
		m.setStatus(statusNotPersisted, true)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !cfg.UI.Inline {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	logger.Info("starting", slog.String("storage", cfg.Storage.Backend), slog.Bool("degraded", degraded))
	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// openStore opens the configured backend. When it cannot be opened the
// session runs on memory and reports itself degraded.
func openStore(cfg StorageConfig, logger *slog.Logger) (*storage.Store, bool) {
	backend, err := storage.Open(cfg.Backend, cfg.Path)
	if err != nil {
		logger.Warn("storage unavailable, using memory",
			slog.String("backend", cfg.Backend),
			slog.String("error", err.Error()))
		return storage.New(storage.NewMemoryBackend(), logger), true
	}
	return storage.New(backend, logger), false
}

// define looks up a single word and prints it through r.
func define(ctx context.Context, word string, lookup session.Lookup, favs session.Favorites, pref session.ThemeStore, r session.Renderer, logger *slog.Logger) error {
	ctrl := session.New(lookup, favs, pref, r, logger)
	ctrl.Start(ctx)
	if err := ctrl.Search(ctx, word); err != nil {
		return fmt.Errorf("%w: %w", errLookupFailed, err)
	}
	return nil
}
