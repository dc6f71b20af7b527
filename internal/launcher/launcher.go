// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/jlaunch/jlaunch/pkg/jvm"
	"github.com/jlaunch/jlaunch/pkg/properties"
)

const (
	// ClassPathFlag precedes the class path in the argv.
	ClassPathFlag = "-cp"
	// PropertyFlag prefixes each system property.
	PropertyFlag = "-D"

	// controlEnvPrefix marks variables that configure jlaunch itself; they
	// are not passed to the launched process.
	controlEnvPrefix = "JLAUNCH_"
)

// ErrInvalidSchema is returned when a schema recorded a rejected argument.
var ErrInvalidSchema = errors.New("invalid launch schema")

type (
	// CommandLine is a fully resolved launch description.
	CommandLine struct {
		// Executable is the program to run.
		Executable string `json:"executable"`
		// Args are the arguments after the executable, in order.
		Args []string `json:"args"`
		// Env is the complete environment as sorted KEY=VALUE pairs.
		Env []string `json:"env,omitempty"`
		// Dir is the working directory; empty means the caller's.
		Dir string `json:"dir,omitempty"`
		// ClassName is the entry point, repeated for display.
		ClassName string `json:"className"`
		// ClassPath is the rendered class path, repeated for display.
		ClassPath string `json:"classPath,omitempty"`
		// Options are the JVM options with their leading marker restored.
		Options []string `json:"options,omitempty"`
		// Properties are the resolved system properties in schema order.
		Properties []properties.Resolved `json:"properties,omitempty"`
	}

	// Options configures Realize.
	Options struct {
		// Environ returns the host environment as "KEY=VALUE" strings.
		// When nil, os.Environ is used.
		Environ func() []string
	}
)

// Realize resolves schema into a CommandLine. The argv order is:
//
//	-cp <classpath> -<option>... -D<name>=<value>... <class> <argument>...
//
// A property with an empty value is rendered as -D<name>.
func Realize(ctx context.Context, schema *jvm.Schema, opts Options) (*CommandLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("realize canceled: %w", err)
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	props, err := schema.SystemProperties().Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving system properties: %w", err)
	}

	env, err := buildEnv(schema, opts.Environ)
	if err != nil {
		return nil, err
	}

	cl := &CommandLine{
		Executable: schema.Executable().String(),
		Env:        env,
		Dir:        schema.WorkingDirectory(),
		ClassName:  schema.ClassName().String(),
		ClassPath:  schema.ClassPath().String(),
		Properties: props,
	}

	if !schema.ClassPath().IsEmpty() {
		cl.Args = append(cl.Args, ClassPathFlag, cl.ClassPath)
	}
	for _, opt := range schema.Options() {
		cl.Options = append(cl.Options, jvm.OptionMarker+opt)
	}
	cl.Args = append(cl.Args, cl.Options...)
	for _, p := range props {
		cl.Args = append(cl.Args, formatProperty(p))
	}
	cl.Args = append(cl.Args, cl.ClassName)
	cl.Args = append(cl.Args, schema.Arguments()...)

	slog.Debug("realized launch command",
		"executable", cl.Executable,
		"class", cl.ClassName,
		"options", len(cl.Options),
		"properties", len(cl.Properties),
		"inheritEnv", schema.IsEnvironmentInherited())

	return cl, nil
}

// Argv returns the executable followed by its arguments.
func (c *CommandLine) Argv() []string {
	return append([]string{c.Executable}, c.Args...)
}

// Cmd returns an unstarted command for the command line.
func (c *CommandLine) Cmd(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Executable, c.Args...)
	cmd.Env = slices.Clone(c.Env)
	if cmd.Env == nil {
		// A nil Env means "inherit" to os/exec; keep an empty environment empty.
		cmd.Env = []string{}
	}
	cmd.Dir = c.Dir
	return cmd
}

func formatProperty(p properties.Resolved) string {
	if p.Value == "" {
		return PropertyFlag + p.Name
	}
	return PropertyFlag + p.Name + "=" + p.Value
}

// buildEnv layers the schema's environment variables over the host
// environment (when inherited). Variables controlling jlaunch itself are
// never passed on.
func buildEnv(schema *jvm.Schema, environ func() []string) ([]string, error) {
	env := make(map[string]string)

	if schema.IsEnvironmentInherited() {
		if environ == nil {
			environ = os.Environ
		}
		for _, entry := range environ() {
			name, value, ok := strings.Cut(entry, "=")
			if !ok || name == "" || strings.HasPrefix(name, controlEnvPrefix) {
				continue
			}
			env[name] = value
		}
	}

	vars, err := schema.Environment().Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving environment variables: %w", err)
	}
	for _, v := range vars {
		env[v.Name] = v.Value
	}

	out := make([]string, 0, len(env))
	for _, name := range slices.Sorted(maps.Keys(env)) {
		out = append(out, name+"="+env[name])
	}
	return out, nil
}
