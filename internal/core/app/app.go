package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"littlelemon/internal/core/config"
	"littlelemon/internal/core/ports"
	"littlelemon/internal/data/kv"
	"littlelemon/internal/data/menu"
	"littlelemon/internal/data/profile"
	"littlelemon/internal/data/seed"
)

// Update carries settings that the UI picks up after a config reload.
type Update struct {
	Categories     []string
	SearchDebounce time.Duration
	SearchMode     string
}

type App struct {
	Config  *config.Config
	Paths   config.ResolvedPaths
	Menu    *menu.Store
	KV      *kv.Store
	Profile *profile.Service

	logger *slog.Logger

	updateMu sync.RWMutex
	onUpdate func(Update)
}

// New opens the menu and key-value stores described by cfg. Relative paths
// are anchored at baseDir.
func New(cfg *config.Config, baseDir string) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	paths, err := config.ResolvePaths(cfg, baseDir)
	if err != nil {
		return nil, err
	}
	mode, err := menu.ParseSearchMode(cfg.Menu.SearchMode)
	if err != nil {
		return nil, err
	}

	menuStore, err := menu.Open(paths.MenuDBPath,
		menu.WithSearchMode(mode),
		menu.WithBusyTimeout(cfg.DB.BusyTimeout),
	)
	if err != nil {
		return nil, err
	}
	kvStore, err := kv.Open(paths.KVDBPath, cfg.DB.BusyTimeout)
	if err != nil {
		_ = menuStore.Close()
		return nil, err
	}

	logger := slog.Default().With("component", "app")
	a := &App{
		Config:  cfg,
		Paths:   paths,
		Menu:    menuStore,
		KV:      kvStore,
		Profile: profile.NewService(kvStore, logger),
		logger:  logger,
	}
	logger.Debug("stores opened", "menu_db", paths.MenuDBPath, "kv_db", paths.KVDBPath, "search_mode", mode.String())
	return a, nil
}

// Seed populates an empty menu table from the configured seed directory or
// the built-in catalogue.
func (a *App) Seed(ctx context.Context) (int, error) {
	if !a.Config.Seed.IsEnabled() {
		return 0, nil
	}
	items := seed.Default()
	if a.Paths.SeedDir != "" {
		loaded, err := seed.LoadDir(a.Paths.SeedDir, a.Config.Seed.Include)
		if err != nil {
			return 0, err
		}
		items = loaded
	}
	return seed.IfEmpty(ctx, a.Menu, items)
}

func (a *App) MenuService() ports.MenuService {
	return NewMenuService(a.Menu)
}

func (a *App) SetUpdateHandler(fn func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = fn
}

// ApplyConfig takes the reloadable parts of cfg. Store paths and search mode
// only change on restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	a.updateMu.Lock()
	if cfg.Menu.SearchMode != a.Config.Menu.SearchMode || cfg.DB != a.Config.DB {
		a.logger.Warn("database and search mode changes take effect after restart")
	}
	a.Config.Menu.Categories = append([]string(nil), cfg.Menu.Categories...)
	a.Config.Menu.SearchDebounce = cfg.Menu.SearchDebounce
	a.Config.Logging = cfg.Logging
	handler := a.onUpdate
	update := a.currentUpdateLocked()
	a.updateMu.Unlock()

	if handler != nil {
		handler(update)
	}
}

func (a *App) CurrentUpdate() Update {
	a.updateMu.RLock()
	defer a.updateMu.RUnlock()
	return a.currentUpdateLocked()
}

func (a *App) currentUpdateLocked() Update {
	return Update{
		Categories:     append([]string(nil), a.Config.Menu.Categories...),
		SearchDebounce: a.Config.Menu.SearchDebounce,
		SearchMode:     a.Config.Menu.SearchMode,
	}
}

func (a *App) Close(ctx context.Context) error {
	var firstErr error
	if a.Menu != nil {
		if err := a.Menu.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.KV != nil {
		if err := a.KV.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
