// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jlaunch/jlaunch/internal/config"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// App is the composition root of the CLI. Every command handler receives
	// it and reaches the outside world only through its fields.
	App struct {
		Config   ConfigProvider
		Environ  func() []string
		LookPath func(string) (string, error)
		Logger   *log.Logger

		stdout io.Writer
		stderr io.Writer

		configPath string
		verbose    bool
	}

	// Dependencies are the injection points for NewApp. Nil fields get
	// production defaults.
	Dependencies struct {
		Config   ConfigProvider
		Environ  func() []string
		LookPath func(string) (string, error)
		Stdout   io.Writer
		Stderr   io.Writer
	}
)

// NewApp builds an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:   deps.Config,
		Environ:  deps.Environ,
		LookPath: deps.LookPath,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Environ == nil {
		app.Environ = os.Environ
	}
	if app.LookPath == nil {
		app.LookPath = exec.LookPath
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	app.Logger = log.NewWithOptions(app.stderr, log.Options{Prefix: config.AppName})
	return app
}

// loadConfig loads the configuration named by --config, or the default one.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return nil, err
	}
	if cfg.UI.Verbose {
		a.setVerbose(true)
	}
	return cfg, nil
}

func (a *App) setVerbose(v bool) {
	a.verbose = a.verbose || v
	if a.verbose {
		a.Logger.SetLevel(log.DebugLevel)
	}
}

// getenv looks name up in the App's environment rather than the process's.
func (a *App) getenv(name string) string {
	for _, kv := range a.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k == name {
			return v
		}
	}
	return ""
}
