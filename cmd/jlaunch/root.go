// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/jlaunch/jlaunch/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the jlaunch command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "jlaunch",
		Short: "Build JVM launch command lines",
		Long: TitleStyle.Render("jlaunch") + SubtitleStyle.Render(" - Build JVM launch command lines") + `

jlaunch assembles the executable, class path, JVM options and system
properties needed to start a Java program, with explicit settings always
winning over defaults from your configuration and feature toggles.

` + SubtitleStyle.Render("Examples:") + `
  jlaunch render -c 'lib/*' com.example.Main       Print the launch line
  jlaunch render --jmx --jmx-port 9010 app.Main    Enable remote JMX
  jlaunch render --format json app.Main            Machine-readable output
  jlaunch config show                              Show current configuration`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.setVerbose(verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/jlaunch/config.cue)")

	root.AddCommand(newRenderCommand(app))
	root.AddCommand(newConfigCommand(app))

	return root
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the resulting code.
func Execute() {
	app := NewApp(Dependencies{})
	slog.SetDefault(slog.New(app.Logger))

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}
