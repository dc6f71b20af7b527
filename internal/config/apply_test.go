// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"math"
	"testing"

	"github.com/jlaunch/jlaunch/pkg/jvm"
	"github.com/jlaunch/jlaunch/pkg/ports"
	"github.com/jlaunch/jlaunch/pkg/properties"
)

func newSchema(t *testing.T) *jvm.Schema {
	t.Helper()
	s, err := jvm.NewWithClassPath("com.example.Main", "app.jar")
	if err != nil {
		t.Fatalf("jvm.NewWithClassPath() error = %v", err)
	}
	return s
}

func resolved(t *testing.T, s *jvm.Schema) map[string]string {
	t.Helper()
	list, err := s.SystemProperties().Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	out := make(map[string]string, len(list))
	for _, r := range list {
		out[r.Name] = r.Value
	}
	return out
}

func TestApply_ExplicitSettingsWin(t *testing.T) {
	t.Parallel()

	s := newSchema(t).
		SetSystemProperty("app.mode", "prod").
		SetJMXPort(9500).
		SetEnvironmentVariable("TZ", "Europe/Berlin")

	cfg := &Config{
		Options:     []string{"Xmx512m"},
		Properties:  map[string]any{"app.mode": "dev", "app.threads": 4},
		Environment: map[string]any{"TZ": "UTC", "LANG": "C"},
		JMX:         JMXConfig{Enabled: true, Port: 9010, Authenticate: true},
		PreferIPv4:  true,
		RMIHostName: "localhost",
	}
	if err := cfg.Apply(s); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	got := resolved(t, s)
	want := map[string]string{
		"app.mode":                    "prod",
		"app.threads":                 "4",
		jvm.PropJMXRemotePort:         "9500",
		jvm.PropJMXRemote:             "",
		jvm.PropJMXRemoteAuthenticate: "true",
		jvm.PropJMXRemoteSSL:          "false",
		jvm.PropPreferIPv4Stack:       "true",
		jvm.PropRMIServerHostName:     "localhost",
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s = %q, want %q", name, got[name], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("got %d properties, want %d: %v", len(got), len(want), got)
	}

	if s.SystemProperties().IsExplicit("app.threads") {
		t.Error("config property app.threads should have default origin")
	}
	if v, _ := s.Environment().Get("TZ"); v.String() != "Europe/Berlin" {
		t.Errorf("TZ = %v, want the explicit value", v)
	}
	if !s.Environment().Has("LANG") {
		t.Error("LANG default was not applied")
	}
	if opts := s.Options(); len(opts) != 1 || opts[0] != "Xmx512m" {
		t.Errorf("Options() = %v", opts)
	}
}

func TestApply_JMXPortFromConfig(t *testing.T) {
	t.Parallel()

	s := newSchema(t)
	if err := (&Config{JMX: JMXConfig{Enabled: true, Port: 9010}}).Apply(s); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := resolved(t, s)[jvm.PropJMXRemotePort]; got != "9010" {
		t.Errorf("port = %q, want 9010 instead of the toggle default", got)
	}
}

func TestApply_JMXPortRangeIsLazy(t *testing.T) {
	t.Parallel()

	s := newSchema(t)
	cfg := &Config{JMX: JMXConfig{Enabled: true, Port: 9010, PortRange: "9100-9200"}}
	if err := cfg.Apply(s); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	v, ok := s.SystemProperties().Get(jvm.PropJMXRemotePort)
	if !ok || v.Kind() != properties.KindPort {
		t.Fatalf("port value = %v, want a lazy port source", v)
	}
	src, _ := v.AsPort()
	it, ok := src.(*ports.AvailablePortIterator)
	if !ok || it.Remaining() != 101 {
		t.Errorf("port source = %#v, want iterator over 101 ports", src)
	}
}

func TestApply_DisabledJMXAddsNothing(t *testing.T) {
	t.Parallel()

	s := newSchema(t)
	if err := (&Config{JMX: JMXConfig{Port: 9010, Authenticate: true}}).Apply(s); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if n := s.SystemProperties().Len(); n != 0 {
		t.Errorf("SystemProperties().Len() = %d, want 0", n)
	}
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cfg    *Config
		target error
	}{
		{"unsupported property value", &Config{Properties: map[string]any{"x": 1.5}}, properties.ErrUnsupportedValue},
		{"bad port range", &Config{JMX: JMXConfig{Enabled: true, PortRange: "9-1"}}, ports.ErrInvalidPortRange},
		{"blank option", &Config{Options: []string{"-"}}, jvm.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.cfg.Apply(newSchema(t)); !errors.Is(err, tt.target) {
				t.Errorf("Apply() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestTableValue(t *testing.T) {
	t.Parallel()

	v, err := tableValue(float64(8))
	if n, ok := v.AsInt(); err != nil || !ok || n != 8 {
		t.Errorf("tableValue(8.0) = %v, %v; want Int(8)", v, err)
	}
	if _, err := tableValue(0.5); !errors.Is(err, properties.ErrUnsupportedValue) {
		t.Errorf("tableValue(0.5) error = %v, want ErrUnsupportedValue", err)
	}

	for _, f := range []float64{math.Exp2(63), -math.Exp2(64), math.Inf(1), math.NaN()} {
		if v, err := tableValue(f); !errors.Is(err, properties.ErrUnsupportedValue) {
			t.Errorf("tableValue(%g) = %v, %v; want ErrUnsupportedValue", f, v, err)
		}
	}
	v, err = tableValue(-math.Exp2(63))
	if n, ok := v.AsInt(); err != nil || !ok || n != math.MinInt64 {
		t.Errorf("tableValue(-2^63) = %v, %v; want Int(MinInt64)", v, err)
	}
}
