// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme ColorScheme
		want   bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"", false},
		{"AUTO", false},
		{"neon", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			t.Parallel()
			ok, errs := tt.scheme.IsValid()
			if ok != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, ok, tt.want)
			}
			if !tt.want && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidColorScheme)) {
				t.Errorf("ColorScheme(%q).IsValid() errors = %v, want ErrInvalidColorScheme", tt.scheme, errs)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Config { return DefaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr int
	}{
		{"defaults", func(*Config) {}, 0},
		{"blank executable", func(c *Config) { c.Executable = "  " }, 1},
		{"port too high", func(c *Config) { c.JMX.Port = 70000 }, 1},
		{"bad range", func(c *Config) { c.JMX.PortRange = "10-5" }, 1},
		{"everything wrong", func(c *Config) {
			c.Executable = ""
			c.JMX.Port = -1
			c.UI.ColorScheme = "neon"
		}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var cfgErr *InvalidConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *InvalidConfigError", err)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("error does not wrap ErrInvalidConfig")
			}
			if len(cfgErr.FieldErrors) != tt.wantErr {
				t.Errorf("FieldErrors = %v, want %d", cfgErr.FieldErrors, tt.wantErr)
			}
		})
	}
}
