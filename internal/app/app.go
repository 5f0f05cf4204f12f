// Package app wires configuration, storage and services into one
// application shared by the HTTP server and the CLI commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/conorfennell/versekeep/internal/cardstore"
	"github.com/conorfennell/versekeep/internal/config"
	"github.com/conorfennell/versekeep/internal/kits"
	"github.com/conorfennell/versekeep/internal/logger"
	"github.com/conorfennell/versekeep/internal/progress"
	"github.com/conorfennell/versekeep/internal/storage"
	"github.com/conorfennell/versekeep/internal/study"
	"github.com/conorfennell/versekeep/internal/web"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *storage.DB
	Kits   *kits.Catalog
	Store  *cardstore.Store
	Study  *study.Service
}

// New sets up logging, opens the database and loads the flashcard record.
func New(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	catalog, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	log.Debug("Database opened", "path", cfg.DBPath)

	store, _, err := cardstore.Open(ctx, db,
		cardstore.WithKits(catalog),
		cardstore.WithEngine(progress.NewEngine(loc)),
		cardstore.WithLogger(log),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		Config: cfg,
		Logger: log,
		DB:     db,
		Kits:   catalog,
		Store:  store,
		Study:  study.NewService(db, log),
	}, nil
}

// LoadCatalog returns the built-in kits extended with those in the configured
// kits directory and in the local checkout of the kits repository, if one has
// been synced.
func LoadCatalog(cfg *config.Config) (*kits.Catalog, error) {
	catalog := kits.Builtin()

	var dirs []string
	if cfg.KitsDir != "" {
		dirs = append(dirs, cfg.KitsDir)
	}
	if cfg.KitsRepo != "" {
		dir, err := kits.CheckoutDir(cfg.KitsRepo, cfg.ReposDir)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(dir); err == nil {
			dirs = append(dirs, dir)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read kits checkout %s: %w", dir, err)
		}
	}

	for _, dir := range dirs {
		extra, err := kits.LoadDir(dir)
		if err != nil {
			return nil, err
		}
		if catalog, err = catalog.With(extra...); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// Handler returns the HTTP API.
func (a *App) Handler() http.Handler {
	return web.NewServer(a.Store, a.Kits, a.Study, a.Logger)
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}
