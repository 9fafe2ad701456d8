// Package internal provides the App struct that wires the configuration,
// audit log, and CLI layer of the DORA metrics server together.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudsteak/dora-mcp-server/internal/cli"
	"github.com/cloudsteak/dora-mcp-server/internal/config"
	"github.com/cloudsteak/dora-mcp-server/internal/observability"
)

// App holds the service dependencies for the DORA metrics server.
type App struct {
	BasePath string
	Config   *config.Config
	EventLog observability.EventLog
}

// NewApp loads configuration from basePath and wires all components.
func NewApp(basePath string) (*App, error) {
	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	app := &App{BasePath: basePath, Config: cfg}

	if cfg.EventsEnabled {
		path := cfg.EventsPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(basePath, path)
		}
		app.EventLog, err = observability.NewJSONLEventLog(path)
		if err != nil {
			// Non-fatal: run without audit logging if the log can't be created.
			app.EventLog = nil
		}
	}

	cli.BasePath = basePath
	cli.Config = cfg
	cli.EventLog = app.EventLog

	return app, nil
}

// Close releases resources held by the App. It is safe to call when the
// event log is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the directory holding .doraconfig and the
// audit log: the DORA_HOME env var when set, otherwise the current
// working directory.
func ResolveBasePath() string {
	if home := os.Getenv("DORA_HOME"); home != "" {
		return home
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
