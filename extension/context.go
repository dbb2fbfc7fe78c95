// context.go defines the Context interface for extension access to shared
// tagger state.
//
// Extensions receive a Context during Init, after configuration has been
// loaded, rather than at construction: they register before main runs.

package extension

import (
	"sync"

	"github.com/jpl-au/tagger/internal/config"
	"github.com/jpl-au/tagger/internal/search"
	"github.com/jpl-au/tagger/internal/session"
	"github.com/jpl-au/tagger/internal/widget"
)

// Context provides extensions controlled access to shared state.
type Context interface {
	// Config returns the loaded user configuration.
	Config() *config.Config

	// Searcher returns the remote tag-search client built from config.
	Searcher() search.Searcher

	// Sessions returns the registry of live widgets.
	Sessions() *session.Registry

	// WidgetOptions returns widget defaults from config and flags. Input
	// and Output are left for the caller to bind.
	WidgetOptions() widget.Options

	// Reload re-reads configuration so later widgets use new values.
	// Existing widgets keep the settings they were created with.
	Reload() error
}

// Settings are the per-invocation values that override config.
type Settings struct {
	Lang       string // --lang flag; overrides tagger.lang
	SystemLang string // environment locale
}

type extContext struct {
	sessions *session.Registry
	settings Settings

	mu       sync.RWMutex
	cfg      *config.Config
	searcher search.Searcher
}

// NewContext creates a Context over cfg. The search client targets the
// configured endpoint.
func NewContext(cfg *config.Config, s Settings) Context {
	c := &extContext{sessions: session.NewRegistry(), settings: s}
	c.apply(cfg)
	return c
}

func (c *extContext) apply(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	c.searcher = search.NewClient(
		search.WithEndpoint(cfg.Endpoint()),
		search.WithParam(cfg.Param()),
	)
}

func (c *extContext) Config() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

func (c *extContext) Searcher() search.Searcher {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.searcher
}

func (c *extContext) Sessions() *session.Registry { return c.sessions }

func (c *extContext) WidgetOptions() widget.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lang := c.settings.Lang
	if lang == "" {
		lang = c.cfg.Lang()
	}
	return widget.Options{
		MixTags:    c.cfg.MixTags(),
		Lang:       lang,
		SystemLang: c.settings.SystemLang,
		MinLength:  c.cfg.MinLength(),
		Searcher:   c.searcher,
		Timeout:    c.cfg.Timeout(),
	}
}

func (c *extContext) Reload() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.apply(cfg)
	return nil
}
