// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"math"

	"github.com/jlaunch/jlaunch/pkg/jvm"
	"github.com/jlaunch/jlaunch/pkg/ports"
	"github.com/jlaunch/jlaunch/pkg/properties"
	"github.com/jlaunch/jlaunch/pkg/types"
)

// Apply adds the configured options to s and applies every other setting as
// a default, so values s already holds explicitly are kept. Executable and
// ClassPath are not applied; they are construction inputs.
func (c *Config) Apply(s *jvm.Schema) error {
	for _, opt := range c.Options {
		s.AddOption(opt)
	}

	for _, name := range sortedKeys(c.Properties) {
		v, err := tableValue(c.Properties[name])
		if err != nil {
			return fmt.Errorf("properties.%s: %w", name, err)
		}
		s.SetDefaultSystemProperty(name, v)
	}
	for _, name := range sortedKeys(c.Environment) {
		v, err := tableValue(c.Environment[name])
		if err != nil {
			return fmt.Errorf("environment.%s: %w", name, err)
		}
		s.SetDefaultEnvironmentVariable(name, v)
	}

	if c.JMX.Enabled {
		// Port and authentication go first so the toggle's own defaults
		// do not shadow them.
		switch {
		case c.JMX.PortRange != "":
			start, end, err := ports.ParseRange(c.JMX.PortRange)
			if err != nil {
				return fmt.Errorf("jmx.port_range: %w", err)
			}
			it, err := ports.NewAvailablePortIterator(start, end)
			if err != nil {
				return fmt.Errorf("jmx.port_range: %w", err)
			}
			s.SetDefaultSystemProperty(jvm.PropJMXRemotePort, it)
		case c.JMX.Port != 0:
			s.SetDefaultSystemProperty(jvm.PropJMXRemotePort, types.ListenPort(c.JMX.Port))
		}
		s.SetJMXAuthentication(c.JMX.Authenticate)
		s.SetJMXSupport(true)
	}
	if c.PreferIPv4 {
		s.SetPreferIPv4(true)
	}
	if c.RMIHostName != "" {
		s.SetRMIServerHostName(c.RMIHostName)
	}

	return s.Err()
}

// tableValue converts a decoded CUE scalar. Integers may arrive as float64
// depending on the decoder path.
func tableValue(v any) (properties.Value, error) {
	if f, ok := v.(float64); ok {
		if f != math.Trunc(f) {
			return properties.Value{}, &properties.UnsupportedValueError{Type: "non-integer number"}
		}
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		if f >= math.MaxInt64 || f < math.MinInt64 {
			return properties.Value{}, &properties.UnsupportedValueError{Type: "out of range number"}
		}
		return properties.Int(int64(f)), nil
	}
	return properties.ValueOf(v)
}
