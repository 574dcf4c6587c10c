package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pkg/browser"

	"github.com/vfpar/registro/internal/config"
	"github.com/vfpar/registro/internal/insight"
	"github.com/vfpar/registro/internal/prefs"
	"github.com/vfpar/registro/internal/registry"
	"github.com/vfpar/registro/internal/share"
	"github.com/vfpar/registro/internal/source"
	"github.com/vfpar/registro/internal/state"
	"github.com/vfpar/registro/internal/telemetry"
	"github.com/vfpar/registro/internal/ui"
)

// Options configure a registro command.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/registro/prefs.toml
	Debug      bool
	Version    string
}

// session holds everything one command needs, from config to the loader.
type session struct {
	cfg       config.Config
	prefs     prefs.Prefs
	prefsPath string // where theme changes are saved
	tel       *telemetry.Telemetry
	logger    *slog.Logger
	source    source.Source
	store     *state.Store
	loader    *state.Loader
}

// openSession loads config and prefs, sets up telemetry and builds the data
// source. verbose sends logs to stderr; the TUI never does.
func openSession(ctx context.Context, opts Options, verbose bool) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.PrefsPath == "" {
		opts.PrefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(opts.PrefsPath)

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}
	telemetry.SetVersion(version)
	tel, err := telemetry.Setup(ctx, telemetry.Options{
		Debug:     opts.Debug || cfg.Log.Debug,
		LogFile:   cfg.Log.File,
		SessionID: uuid.NewString(),
		Stderr:    verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}
	logger := tel.Logger

	src, err := source.Open(ctx, source.Options{
		Kind:        cfg.Source.Kind,
		URL:         cfg.Source.URL,
		DatabaseURL: cfg.Source.DatabaseURL,
		Table:       cfg.Source.Table,
		Path:        cfg.Source.Path,
		Timeout:     cfg.Source.Timeout(),
		UserAgent:   "registro/" + version,
	})
	if err != nil {
		_ = tel.Shutdown(ctx)
		return nil, fmt.Errorf("open source: %w", err)
	}
	logger.Info("session started", "config", cfg.Path, "source", cfg.Source.Kind, "version", version)

	store := &state.Store{}
	return &session{
		cfg:       cfg,
		prefs:     userPrefs,
		prefsPath: opts.PrefsPath,
		tel:       tel,
		logger:    logger,
		source:    src,
		store:     store,
		loader:    state.NewLoader(store, src, logger),
	}, nil
}

// close releases the source and flushes telemetry.
func (s *session) close(ctx context.Context) error {
	s.logger.Info("session ended")
	return errors.Join(s.source.Close(), s.tel.Shutdown(context.WithoutCancel(ctx)))
}

// generator returns the insight generator, or nil when no API key is set.
// The returned closer is never nil.
func (s *session) generator(ctx context.Context) (insight.Generator, func()) {
	if !s.cfg.Insight.Enabled() {
		s.logger.Info("insights disabled, no api key")
		return nil, func() {}
	}
	gem, err := insight.NewGemini(ctx, s.cfg.Insight.APIKey, s.cfg.Insight.Model)
	if err != nil {
		s.logger.Warn("insights unavailable", "error", err)
		return nil, func() {}
	}
	return gem, func() { _ = gem.Close() }
}

func (s *session) sharer() share.Chain {
	return share.Chain{
		Primary:  share.Command{Argv: s.cfg.Share.Command},
		Fallback: share.Clipboard{},
		Logger:   s.logger,
	}
}

// Run boots the registro TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	s, err := openSession(ctx, opts, false)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	gen, closeGen := s.generator(ctx)
	defer closeGen()

	// The browser helper echoes to stdout, which belongs to the TUI.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	model := ui.New(ui.Options{
		Context:   ctx,
		Store:     s.store,
		Loader:    s.loader,
		Insight:   gen,
		Share:     s.sharer(),
		OpenURL:   browser.OpenURL,
		Renderer:  registry.NewRenderer(s.prefs.Tag()),
		Logger:    s.logger,
		Prefs:     s.prefs,
		PrefsPath: s.prefsPath,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
