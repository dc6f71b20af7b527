// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/jlaunch/jlaunch/internal/issue"
	"github.com/jlaunch/jlaunch/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "jlaunch"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variables that override settings.
	EnvPrefix = "JLAUNCH"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the jlaunch configuration directory using platform
// conventions: %APPDATA% on Windows, ~/Library/Application Support on macOS
// and $XDG_CONFIG_HOME (default ~/.config) elsewhere.
//
//nolint:revive // ConfigDir reads better than Dir for callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, AppName), nil
}

// FilePath returns the config file that Load would read and whether it
// exists. When nothing exists it returns the path in the config directory.
func FilePath(opts LoadOptions) (string, bool, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, fileExists(opts.ConfigFilePath), nil
	}

	dir := opts.ConfigDirPath
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", false, err
		}
	}

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(path) {
		return path, true, nil
	}
	local := ConfigFileName + "." + ConfigFileExt
	if fileExists(local) {
		return local, true, nil
	}
	return path, false, nil
}

// loadWithOptions loads configuration without touching package state. It
// returns the file that was read, or "" when defaults were used.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", fmt.Errorf("load config canceled: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, exists, err := FilePath(opts)
	if err != nil {
		return nil, "", err
	}
	if opts.ConfigFilePath != "" && !exists {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(opts.ConfigFilePath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Use 'jlaunch config dump' to print an example configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
			BuildError()
	}

	var maps *fileMaps
	if exists {
		if maps, err = loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
		slog.Debug("loaded configuration", "path", path)
	} else {
		path = ""
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if maps != nil {
		cfg.Properties = maps.Properties
		cfg.Environment = maps.Environment
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Check " + EnvPrefix + "_* environment variables as well as the config file").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, path, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("executable", d.Executable)
	v.SetDefault("classpath", d.ClassPath)
	v.SetDefault("options", d.Options)
	v.SetDefault("jmx.enabled", d.JMX.Enabled)
	v.SetDefault("jmx.port", d.JMX.Port)
	v.SetDefault("jmx.port_range", d.JMX.PortRange)
	v.SetDefault("jmx.authenticate", d.JMX.Authenticate)
	v.SetDefault("prefer_ipv4", d.PreferIPv4)
	v.SetDefault("rmi_hostname", d.RMIHostName)
	v.SetDefault("ui.color_scheme", string(d.UI.ColorScheme))
	v.SetDefault("ui.verbose", d.UI.Verbose)
}

// fileMaps holds the keyed tables that bypass Viper.
type fileMaps struct {
	Properties  map[string]any `json:"properties"`
	Environment map[string]any `json:"environment"`
}

// loadCUEIntoViper validates the file against #Config and merges its scalar
// settings into v. The properties and environment tables are returned as is.
func loadCUEIntoViper(v *viper.Viper, path string) (*fileMaps, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	res, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}

	settings := *res.Value
	maps := &fileMaps{}
	if err := res.Unified.Decode(maps); err != nil {
		return nil, cueutil.FormatError(err, path)
	}
	delete(settings, "properties")
	delete(settings, "environment")

	if err := v.MergeConfigMap(settings); err != nil {
		return nil, fmt.Errorf("failed to merge config: %w", err)
	}
	return maps, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Save writes cfg as CUE to the config directory, creating it if needed, and
// returns the path written.
func Save(cfg *Config) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// GenerateCUE renders cfg in the config file format. Map keys are sorted so
// the output is stable.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// jlaunch configuration\n")
	sb.WriteString("// Every value here is a default; command line flags override it.\n\n")

	fmt.Fprintf(&sb, "executable: %q\n", cfg.Executable)
	if cfg.ClassPath != "" {
		fmt.Fprintf(&sb, "classpath: %q\n", cfg.ClassPath)
	}
	if len(cfg.Options) > 0 {
		quoted := make([]string, 0, len(cfg.Options))
		for _, o := range cfg.Options {
			quoted = append(quoted, fmt.Sprintf("%q", o))
		}
		fmt.Fprintf(&sb, "options: [%s]\n", strings.Join(quoted, ", "))
	}
	writeTable(&sb, "properties", cfg.Properties)
	writeTable(&sb, "environment", cfg.Environment)

	sb.WriteString("\njmx: {\n")
	fmt.Fprintf(&sb, "\tenabled: %v\n", cfg.JMX.Enabled)
	if cfg.JMX.Port != 0 {
		fmt.Fprintf(&sb, "\tport: %d\n", cfg.JMX.Port)
	}
	if cfg.JMX.PortRange != "" {
		fmt.Fprintf(&sb, "\tport_range: %q\n", cfg.JMX.PortRange)
	}
	fmt.Fprintf(&sb, "\tauthenticate: %v\n", cfg.JMX.Authenticate)
	sb.WriteString("}\n")

	fmt.Fprintf(&sb, "\nprefer_ipv4: %v\n", cfg.PreferIPv4)
	if cfg.RMIHostName != "" {
		fmt.Fprintf(&sb, "rmi_hostname: %q\n", cfg.RMIHostName)
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

func writeTable(sb *strings.Builder, name string, table map[string]any) {
	if len(table) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s: {\n", name)
	for _, key := range sortedKeys(table) {
		switch v := table[key].(type) {
		case string:
			fmt.Fprintf(sb, "\t%q: %q\n", key, v)
		default:
			fmt.Fprintf(sb, "\t%q: %v\n", key, v)
		}
	}
	sb.WriteString("}\n")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
