// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/jlaunch/jlaunch/internal/config"
	"github.com/jlaunch/jlaunch/internal/issue"
	"github.com/jlaunch/jlaunch/internal/launcher"
	"github.com/jlaunch/jlaunch/internal/propfile"
	"github.com/jlaunch/jlaunch/pkg/classpath"
	"github.com/jlaunch/jlaunch/pkg/jvm"
	"github.com/jlaunch/jlaunch/pkg/ports"
)

const (
	formatShell    = "shell"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

var formats = []string{formatShell, formatJSON, formatMarkdown}

// renderFlags holds the values of every `jlaunch render` flag.
type renderFlags struct {
	executable    string
	classPath     string
	options       []string
	optionString  string
	props         []string
	defaultProps  []string
	propFiles     []string
	jmx           bool
	jmxPort       int
	jmxPortRange  string
	jmxAuth       bool
	preferIPv4    bool
	rmiHostName   string
	env           []string
	noInheritEnv  bool
	workDir       string
	format        string
	checkPath     bool
	changedFlagFn func(string) bool
}

func newRenderCommand(app *App) *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [flags] <class> [args...]",
		Short: "Print the command line that launches a class",
		Long: `Print the command line that launches a class.

Configuration values are defaults. Flags are explicit and always win, so
'-D app.mode=prod' beats 'properties: {"app.mode": "dev"}' in config.cue.
--jmx-port, --jmx-port-range and --jmx-auth imply --jmx; --jmx=false removes
every JMX setting, including ones from configuration.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.changedFlagFn = cmd.Flags().Changed
			return app.render(cmd, f, args[0], args[1:])
		},
	}
	cmd.Flags().SetInterspersed(false)

	fl := cmd.Flags()
	fl.StringVarP(&f.executable, "executable", "e", "", "executable to launch (default from config, else \"java\")")
	fl.StringVarP(&f.classPath, "classpath", "c", "", "class path (default from config, else $CLASSPATH)")
	fl.StringArrayVarP(&f.options, "option", "X", nil, "JVM option, with or without its leading '-' (repeatable)")
	fl.StringVar(&f.optionString, "options", "", "JVM options as one shell-quoted string, like JAVA_OPTS")
	fl.StringArrayVarP(&f.props, "property", "D", nil, "system property name=value (repeatable)")
	fl.StringArrayVar(&f.defaultProps, "default-property", nil, "system property name=value, unless set elsewhere (repeatable)")
	fl.StringArrayVar(&f.propFiles, "property-file", nil, "TOML property file (repeatable)")
	fl.BoolVar(&f.jmx, "jmx", false, "enable remote JMX management")
	fl.IntVar(&f.jmxPort, "jmx-port", 0, "JMX remote port")
	fl.StringVar(&f.jmxPortRange, "jmx-port-range", "", "pick the first free JMX port in start-end")
	fl.BoolVar(&f.jmxAuth, "jmx-auth", false, "require JMX authentication")
	fl.BoolVar(&f.preferIPv4, "prefer-ipv4", false, "prefer the IPv4 network stack")
	fl.StringVar(&f.rmiHostName, "rmi-hostname", "", "host name advertised by the RMI server")
	fl.StringArrayVar(&f.env, "env", nil, "environment variable KEY=VALUE (repeatable)")
	fl.BoolVar(&f.noInheritEnv, "no-inherit-env", false, "do not pass the current environment on")
	fl.StringVar(&f.workDir, "workdir", "", "working directory of the launched process")
	fl.StringVar(&f.format, "format", formatShell, "output format: "+strings.Join(formats, ", "))
	fl.BoolVar(&f.checkPath, "check", false, "fail unless the executable is found in PATH")
	cmd.MarkFlagsMutuallyExclusive("jmx-port", "jmx-port-range")

	return cmd
}

func (f *renderFlags) changed(name string) bool {
	return f.changedFlagFn != nil && f.changedFlagFn(name)
}

func (a *App) render(cmd *cobra.Command, f *renderFlags, className string, args []string) error {
	ctx := cmd.Context()

	if !slices.Contains(formats, f.format) {
		return a.fail(fmt.Errorf("%w: unknown format %q (valid: %s)", errUsage, f.format, strings.Join(formats, ", ")), "")
	}

	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return a.fail(err, "")
	}
	style := string(cfg.UI.ColorScheme)

	schema, err := a.buildSchema(cfg, f, className, args)
	if err != nil {
		return a.fail(err, style)
	}

	cl, err := launcher.Realize(ctx, schema, launcher.Options{Environ: a.Environ})
	if err != nil {
		return a.fail(err, style)
	}

	if f.checkPath {
		if _, err := a.LookPath(cl.Executable); err != nil {
			return a.fail(issue.NewErrorContext().
				WithOperation("find executable").
				WithResource(cl.Executable).
				WithIssue(issue.ExecutableNotFoundId).
				Wrap(err).
				BuildError(), style)
		}
	}

	if err := a.writeCommandLine(cl, f.format, style); err != nil {
		return a.fail(err, style)
	}
	return nil
}

// buildSchema layers the launch schema: configuration defaults first, then
// property files, then flags.
func (a *App) buildSchema(cfg *config.Config, f *renderFlags, className string, args []string) (*jvm.Schema, error) {
	executable := cfg.Executable
	if f.executable != "" {
		executable = f.executable
	}
	cp := cfg.ClassPath
	if cp == "" {
		cp = classpath.New(a.getenv(classpath.EnvVar)).String()
	}
	if f.changed("classpath") {
		cp = f.classPath
	}

	schema, err := jvm.NewWithExecutable(executable, className, cp)
	if err != nil {
		return nil, err
	}
	a.Logger.Debug("building launch schema", "executable", executable, "class", className)

	if err := cfg.Apply(schema); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("apply configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	for _, path := range f.propFiles {
		pf, err := propfile.Load(path)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("read property file").
				WithResource(path).
				WithIssue(issue.PropertyFileErrorId).
				Wrap(err).
				BuildError()
		}
		schema.SetSystemProperties(pf.Properties).
			SetEnvironmentVariables(pf.Environment)
		a.Logger.Debug("applied property file", "path", path,
			"properties", pf.Properties.Len(), "environment", pf.Environment.Len())
	}

	for _, kv := range f.defaultProps {
		name, value := splitAssignment(kv)
		schema.SetDefaultSystemProperty(name, value)
	}
	for _, kv := range f.props {
		name, value := splitAssignment(kv)
		schema.SetSystemProperty(name, value)
	}

	if f.optionString != "" {
		words, err := launcher.SplitOptions(f.optionString, a.getenv)
		if err != nil {
			return nil, fmt.Errorf("%w: --options: %w", errUsage, err)
		}
		for _, w := range words {
			schema.AddOption(w)
		}
	}
	for _, opt := range f.options {
		schema.AddOption(opt)
	}

	if f.changed("prefer-ipv4") {
		schema.SetSystemProperty(jvm.PropPreferIPv4Stack, f.preferIPv4)
	}
	if f.changed("rmi-hostname") {
		schema.SetSystemProperty(jvm.PropRMIServerHostName, f.rmiHostName)
	}
	// The toggle runs last so --jmx=false also drops the settings above.
	if err := applyJMXFlags(schema, f); err != nil {
		return nil, err
	}

	for _, kv := range f.env {
		name, value := splitAssignment(kv)
		schema.SetEnvironmentVariable(name, value)
	}
	if f.noInheritEnv {
		schema.SetEnvironmentInherited(false)
	}
	if f.workDir != "" {
		schema.SetWorkingDirectory(f.workDir)
	}
	schema.AddArguments(args...)

	return schema, schema.Validate()
}

func applyJMXFlags(schema *jvm.Schema, f *renderFlags) error {
	implied := false
	if f.changed("jmx-port") {
		schema.SetJMXPort(f.jmxPort)
		implied = true
	}
	if f.changed("jmx-port-range") {
		start, end, err := ports.ParseRange(f.jmxPortRange)
		if err != nil {
			return fmt.Errorf("%w: --jmx-port-range: %w", errUsage, err)
		}
		it, err := ports.NewAvailablePortIterator(start, end)
		if err != nil {
			return fmt.Errorf("%w: --jmx-port-range: %w", errUsage, err)
		}
		schema.SetJMXPortSource(it)
		implied = true
	}
	if f.changed("jmx-auth") {
		schema.SetSystemProperty(jvm.PropJMXRemoteAuthenticate, f.jmxAuth)
		implied = true
	}

	switch {
	case f.changed("jmx"):
		schema.SetJMXSupport(f.jmx)
	case implied:
		schema.SetJMXSupport(true)
	}
	return nil
}

// splitAssignment splits "name=value". A missing "=" yields an empty value,
// which renders as a bare -Dname.
func splitAssignment(kv string) (string, string) {
	name, value, _ := strings.Cut(kv, "=")
	return name, value
}

func (a *App) writeCommandLine(cl *launcher.CommandLine, format, style string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cl)
	case formatMarkdown:
		md, err := markdownReport(cl)
		if err != nil {
			return err
		}
		out, err := glamour.Render(md, style)
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		_, err = fmt.Fprint(a.stdout, out)
		return err
	default:
		line, err := cl.Shell()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.stdout, line)
		return err
	}
}

func markdownReport(cl *launcher.CommandLine) (string, error) {
	line, err := cl.Shell()
	if err != nil {
		return "", err
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# Launch `%s`\n\n", cl.ClassName)
	md.WriteString("| Setting | Value |\n|---|---|\n")
	fmt.Fprintf(&md, "| Executable | %s |\n", cell(cl.Executable))
	fmt.Fprintf(&md, "| Class path | %s |\n", cell(cl.ClassPath))
	fmt.Fprintf(&md, "| Working directory | %s |\n", cell(cl.Dir))

	if len(cl.Options) > 0 {
		md.WriteString("\n## Options\n\n")
		for _, o := range cl.Options {
			fmt.Fprintf(&md, "- `%s`\n", o)
		}
	}
	if len(cl.Properties) > 0 {
		md.WriteString("\n## System properties\n\n| Name | Value |\n|---|---|\n")
		for _, p := range cl.Properties {
			fmt.Fprintf(&md, "| %s | %s |\n", cell(p.Name), cell(p.Value))
		}
	}

	fmt.Fprintf(&md, "\n## Command line\n\n```sh\n%s\n```\n", line)
	return md.String(), nil
}

func cell(s string) string {
	if s == "" {
		return "_(none)_"
	}
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}
