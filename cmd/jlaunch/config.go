// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jlaunch/jlaunch/internal/config"
	"github.com/jlaunch/jlaunch/internal/issue"
)

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage jlaunch configuration",
		Long: `Manage jlaunch configuration.

Configuration is stored in CUE at:
  - Linux:   ~/.config/jlaunch/config.cue
  - macOS:   ~/Library/Application Support/jlaunch/config.cue
  - Windows: %APPDATA%\jlaunch\config.cue

A config.cue in the current directory is used when the user file is absent.
JLAUNCH_* environment variables override single settings, e.g.
JLAUNCH_JMX_PORT=9010.`,
	}

	cmd.AddCommand(
		newConfigShowCommand(app),
		newConfigPathCommand(app),
		newConfigDumpCommand(app),
		newConfigInitCommand(app),
	)
	return cmd
}

func newConfigShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(err, "")
			}
			writeConfig(app.stdout, cfg)
			return nil
		},
	}
}

func newConfigPathCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, exists, err := config.FilePath(config.LoadOptions{ConfigFilePath: app.configPath})
			if err != nil {
				return app.fail(issue.WrapWithOperation(err, "locate configuration"), "")
			}
			fmt.Fprintln(app.stdout, path)
			if !exists {
				fmt.Fprintln(app.stderr, WarningStyle.Render("(file does not exist; run 'jlaunch config init' to create it)"))
			}
			return nil
		},
	}
}

func newConfigDumpCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(err, "")
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	}
}

func newConfigInitCommand(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return app.fail(issue.WrapWithOperation(err, "locate configuration"), "")
			}
			path := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
			if _, statErr := os.Stat(path); statErr == nil && !force {
				fmt.Fprintln(app.stderr, WarningStyle.Render("Configuration already exists: ")+path)
				fmt.Fprintln(app.stderr, SubtitleStyle.Render("Use --force to overwrite it"))
				return nil
			}

			written, err := config.Save(config.DefaultConfig())
			if err != nil {
				return app.fail(issue.NewErrorContext().
					WithOperation("write configuration").
					WithResource(dir).
					WithSuggestion("Check that the directory is writable").
					Wrap(err).
					BuildError(), "")
			}
			app.Logger.Debug("wrote configuration", "path", written)
			fmt.Fprintln(app.stdout, ValueStyle.Render("Created ")+written)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	return cmd
}

func writeConfig(w io.Writer, cfg *config.Config) {
	row := func(key string, value any) {
		s := fmt.Sprint(value)
		if s == "" {
			s = SubtitleStyle.Render("(none)")
		} else {
			s = ValueStyle.Render(s)
		}
		fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render(key+":"), s)
	}

	fmt.Fprintln(w, TitleStyle.Render("Launch"))
	row("executable", cfg.Executable)
	row("classpath", cfg.ClassPath)
	row("options", strings.Join(cfg.Options, " "))
	row("prefer_ipv4", cfg.PreferIPv4)
	row("rmi_hostname", cfg.RMIHostName)

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("JMX"))
	row("enabled", cfg.JMX.Enabled)
	port := ""
	if cfg.JMX.Port != 0 {
		port = fmt.Sprint(cfg.JMX.Port)
	}
	row("port", port)
	row("port_range", cfg.JMX.PortRange)
	row("authenticate", cfg.JMX.Authenticate)

	writeTableSection(w, "Properties", cfg.Properties)
	writeTableSection(w, "Environment", cfg.Environment)

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("UI"))
	row("color_scheme", cfg.UI.ColorScheme)
	row("verbose", cfg.UI.Verbose)
}

func writeTableSection(w io.Writer, title string, table map[string]any) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render(title))
	if len(table) == 0 {
		fmt.Fprintln(w, "  "+SubtitleStyle.Render("(none)"))
		return
	}
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s = %s\n", KeyStyle.Render(k), ValueStyle.Render(fmt.Sprint(table[k])))
	}
}
