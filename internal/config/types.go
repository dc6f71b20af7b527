// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jlaunch/jlaunch/pkg/ports"
	"github.com/jlaunch/jlaunch/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark markdown style.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light markdown style.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the style used for markdown output.
	ColorScheme string

	// InvalidColorSchemeError wraps ErrInvalidColorScheme.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError collects field-level validation errors.
	// It wraps ErrInvalidConfig.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the user configuration. Properties and Environment are
	// decoded from CUE directly because their keys contain dots, which Viper
	// would treat as nesting.
	Config struct {
		// Executable replaces "java" when no --executable flag is given.
		Executable string `json:"executable" mapstructure:"executable"`
		// ClassPath is used when no --classpath flag is given; it takes
		// precedence over $CLASSPATH.
		ClassPath string `json:"classpath" mapstructure:"classpath"`
		// Options are added before any option given on the command line.
		Options []string `json:"options" mapstructure:"options"`
		// Properties are default system properties.
		Properties map[string]any `json:"properties,omitempty" mapstructure:"-"`
		// Environment holds default environment variables.
		Environment map[string]any `json:"environment,omitempty" mapstructure:"-"`
		JMX         JMXConfig      `json:"jmx" mapstructure:"jmx"`
		PreferIPv4  bool           `json:"prefer_ipv4" mapstructure:"prefer_ipv4"`
		RMIHostName string         `json:"rmi_hostname" mapstructure:"rmi_hostname"`
		UI          UIConfig       `json:"ui" mapstructure:"ui"`
	}

	// JMXConfig enables remote management by default. PortRange wins over
	// Port when both are set.
	JMXConfig struct {
		Enabled      bool   `json:"enabled" mapstructure:"enabled"`
		Port         int    `json:"port" mapstructure:"port"`
		PortRange    string `json:"port_range" mapstructure:"port_range"`
		Authenticate bool   `json:"authenticate" mapstructure:"authenticate"`
	}

	// UIConfig configures CLI output.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Executable: string(types.DefaultExecutable),
		Options:    []string{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid reports whether c is a known color scheme.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks the constraints that survive environment overrides, which
// bypass the CUE schema.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Executable) == "" {
		errs = append(errs, fmt.Errorf("executable: %w", types.ExecutableName(c.Executable).Validate()))
	}
	if c.JMX.Port != 0 {
		if err := types.ListenPort(c.JMX.Port).Validate(); err != nil {
			errs = append(errs, fmt.Errorf("jmx.port: %w", err))
		}
	}
	if c.JMX.PortRange != "" {
		if _, _, err := ports.ParseRange(c.JMX.PortRange); err != nil {
			errs = append(errs, fmt.Errorf("jmx.port_range: %w", err))
		}
	}
	if ok, schemeErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, schemeErrs...)
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}
