package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hance08/dealflow/internal/config"
	"github.com/hance08/dealflow/internal/logging"
	"github.com/hance08/dealflow/internal/pipeline"
	"github.com/hance08/dealflow/internal/remote"
	"github.com/hance08/dealflow/internal/service"
	"github.com/hance08/dealflow/internal/store"
	"github.com/pterm/pterm"
)

type App struct {
	Config *config.Config
	Logger *pterm.Logger
	Remote *remote.Client

	migrations fs.FS
	store      *store.Store
	svc        *service.Service
}

// NewApp builds the logger and API client. The local database is only
// opened when a command asks for it through Service.
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(cfg.Log)

	a := &App{
		Config:     cfg,
		Logger:     logger,
		Remote:     remote.New(cfg.API, logger),
		migrations: migrationFS,
	}

	cleanup := func() {
		if a.store == nil {
			return
		}
		if err := a.store.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
	}

	return a, cleanup, nil
}

// Service opens the local SQLite store on first use.
func (a *App) Service() (*service.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	dbStore, err := a.Store()
	if err != nil {
		return nil, err
	}
	a.svc = service.NewService(dbStore, a.Config)
	return a.svc, nil
}

func (a *App) Store() (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	dbPath, err := a.DBPath()
	if err != nil {
		return nil, err
	}

	dbStore, err := store.NewStore(dbPath, a.migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.store = dbStore
	return dbStore, nil
}

// NewBoard returns an empty mirror and a controller that confirms moves
// against the remote store.
func (a *App) NewBoard(onError func(pipeline.Outcome)) *pipeline.Controller {
	opts := []pipeline.Option{pipeline.WithLogger(a.Logger)}
	if onError != nil {
		opts = append(opts, pipeline.WithErrorHandler(onError))
	}
	return pipeline.NewController(pipeline.NewMirror(), a.Remote, opts...)
}

func (a *App) DBPath() (string, error) {
	dbPath, err := ExpandPath(a.Config.Database.Path)
	if err != nil {
		return "", err
	}
	if dbPath == "" {
		appDir, err := GetAppDataDir()
		if err != nil {
			return "", err
		}
		dbPath = filepath.Join(appDir, "dealflow.db")
	}
	return dbPath, nil
}

func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".dealflow"), nil
	}

	return filepath.Join(configDir, "dealflow"), nil
}

func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	if path[1] == '/' || path[1] == '\\' {
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Provider hands commands the App, building it on first use so that flags
// such as --config are parsed before the configuration is read.
type Provider func() (*App, error)
