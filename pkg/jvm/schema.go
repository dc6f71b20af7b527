// SPDX-License-Identifier: MPL-2.0

package jvm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jlaunch/jlaunch/pkg/appschema"
	"github.com/jlaunch/jlaunch/pkg/classpath"
	"github.com/jlaunch/jlaunch/pkg/ports"
	"github.com/jlaunch/jlaunch/pkg/properties"
	"github.com/jlaunch/jlaunch/pkg/types"
)

// Well-known system property names used by the feature toggles.
const (
	PropJMXRemote             = "com.sun.management.jmxremote"
	PropJMXRemotePort         = "com.sun.management.jmxremote.port"
	PropJMXRemoteAuthenticate = "com.sun.management.jmxremote.authenticate"
	PropJMXRemoteSSL          = "com.sun.management.jmxremote.ssl"
	PropRMIServerHostName     = "java.rmi.server.hostname"
	PropPreferIPv4Stack       = "java.net.preferIPv4Stack"

	// DefaultJMXPort is the remote management port applied by SetJMXSupport.
	DefaultJMXPort = 9000

	// OptionMarker is the leading character stripped from option tokens.
	OptionMarker = "-"
)

// ErrInvalidArgument is wrapped by every rejected schema argument.
var ErrInvalidArgument = appschema.ErrInvalidArgument

// jmxProperties are removed together when JMX support is disabled.
var jmxProperties = []string{
	PropJMXRemote,
	PropJMXRemotePort,
	PropJMXRemoteAuthenticate,
	PropJMXRemoteSSL,
	PropRMIServerHostName,
}

// Schema describes how to launch a Java application.
//
// Setters do not return errors. The first rejected argument is recorded and
// later setters keep applying, so callers must check Validate (or Err)
// before handing the schema to a realizer; launcher.Realize refuses a schema
// with a recorded error.
type Schema struct {
	appschema.Base[*Schema]

	className  types.ClassName
	classPath  classpath.ClassPath
	options    []string
	properties *properties.Set
}

// New creates a schema for className running under the default executable
// with the class path inherited from the environment.
func New(className string) (*Schema, error) {
	return newSchema(types.DefaultExecutable, className, classpath.Current())
}

// NewWithClassPath creates a schema for className with an explicit class path.
func NewWithClassPath(className, classPath string) (*Schema, error) {
	return newSchema(types.DefaultExecutable, className, classpath.New(classPath))
}

// NewWithExecutable creates a schema with every identifying field explicit.
func NewWithExecutable(executable, className, classPath string) (*Schema, error) {
	return newSchema(types.ExecutableName(executable), className, classpath.New(classPath))
}

func newSchema(executable types.ExecutableName, className string, cp classpath.ClassPath) (*Schema, error) {
	name := types.ClassName(className)
	if err := name.Validate(); err != nil {
		return nil, &appschema.InvalidArgumentError{Op: "new schema", Err: err}
	}

	s := &Schema{
		className:  name,
		classPath:  cp,
		properties: properties.New(),
	}
	if err := s.Init(s, executable); err != nil {
		return nil, err
	}
	return s, nil
}

// ClassName returns the entry point.
func (s *Schema) ClassName() types.ClassName { return s.className }

// ClassPath returns the class path.
func (s *Schema) ClassPath() classpath.ClassPath { return s.classPath }

// SetClassPath replaces the class path with one parsed from pathList.
func (s *Schema) SetClassPath(pathList string) *Schema {
	s.classPath = classpath.New(pathList)
	return s
}

// SetClassPathValue replaces the class path.
func (s *Schema) SetClassPathValue(cp classpath.ClassPath) *Schema {
	s.classPath = cp
	return s
}

// SystemProperties returns the system property set. Mutating it directly
// bypasses error recording.
func (s *Schema) SystemProperties() *properties.Set { return s.properties }

// SetSystemProperty sets name to value, overriding any default or earlier
// explicit value.
func (s *Schema) SetSystemProperty(name string, value any) *Schema {
	v, err := properties.ValueOf(value)
	if err == nil {
		err = s.properties.Set(name, v)
	}
	s.RecordError("SetSystemProperty", err)
	return s
}

// SetDefaultSystemProperty sets name to value only if name has no value.
func (s *Schema) SetDefaultSystemProperty(name string, value any) *Schema {
	v, err := properties.ValueOf(value)
	if err == nil {
		_, err = s.properties.SetDefault(name, v)
	}
	s.RecordError("SetDefaultSystemProperty", err)
	return s
}

// SetSystemProperties merges props into the schema: explicit entries
// override, default entries fill gaps, and each entry keeps its origin.
func (s *Schema) SetSystemProperties(props *properties.Set) *Schema {
	s.properties.Merge(props)
	return s
}

// RemoveSystemProperty deletes name whatever its origin. Absent names are ignored.
func (s *Schema) RemoveSystemProperty(name string) *Schema {
	s.properties.Remove(name)
	return s
}

// AddOption appends a JVM option. One leading "-" is stripped, so "-Xmx1g"
// and "Xmx1g" are stored alike. Options are never deduplicated or reordered.
func (s *Schema) AddOption(option string) *Schema {
	normalized, err := normalizeOption(option)
	if err != nil {
		s.RecordError("AddOption", err)
		return s
	}
	s.options = append(s.options, normalized)
	return s
}

// SetOption is AddOption. Storage is append-only: setting the same flag
// twice passes both to the runtime, where the later one usually wins.
func (s *Schema) SetOption(option string) *Schema {
	return s.AddOption(option)
}

// Options returns a copy of the normalized options in order.
func (s *Schema) Options() []string { return slices.Clone(s.options) }

// SetJMXSupport enables or disables remote JMX management.
//
// Enabling applies defaults for the port (9000), the enablement flag,
// authentication (off) and SSL (off); values already present are kept.
// Disabling removes those four properties and the RMI server host name,
// including explicitly set ones.
func (s *Schema) SetJMXSupport(enabled bool) *Schema {
	if !enabled {
		for _, name := range jmxProperties {
			s.properties.Remove(name)
		}
		return s
	}
	return s.SetDefaultSystemProperty(PropJMXRemotePort, DefaultJMXPort).
		SetDefaultSystemProperty(PropJMXRemote, "").
		SetDefaultSystemProperty(PropJMXRemoteAuthenticate, false).
		SetDefaultSystemProperty(PropJMXRemoteSSL, false)
}

// SetPreferIPv4 defaults java.net.preferIPv4Stack to enabled.
func (s *Schema) SetPreferIPv4(enabled bool) *Schema {
	return s.SetDefaultSystemProperty(PropPreferIPv4Stack, enabled)
}

// SetJMXAuthentication defaults JMX authentication to enabled.
func (s *Schema) SetJMXAuthentication(enabled bool) *Schema {
	return s.SetDefaultSystemProperty(PropJMXRemoteAuthenticate, enabled)
}

// SetJMXPort sets the JMX remote port explicitly.
func (s *Schema) SetJMXPort(port int) *Schema {
	if err := types.ListenPort(port).Validate(); err != nil {
		s.RecordError("SetJMXPort", err)
		return s
	}
	return s.SetSystemProperty(PropJMXRemotePort, port)
}

// SetJMXPortSource sets the JMX remote port explicitly to a lazy source.
// The port is chosen when the schema is realized.
func (s *Schema) SetJMXPortSource(src ports.Source) *Schema {
	if ports.IsNil(src) {
		s.RecordError("SetJMXPortSource", fmt.Errorf("nil port source: %w", properties.ErrUnsupportedValue))
		return s
	}
	return s.SetSystemProperty(PropJMXRemotePort, properties.Port(src))
}

// SetRMIServerHostName defaults java.rmi.server.hostname.
func (s *Schema) SetRMIServerHostName(hostName string) *Schema {
	return s.SetDefaultSystemProperty(PropRMIServerHostName, hostName)
}

// Validate returns the first rejected argument, or nil.
func (s *Schema) Validate() error { return s.Err() }

func normalizeOption(option string) (string, error) {
	normalized := strings.TrimPrefix(option, OptionMarker)
	if strings.TrimSpace(normalized) == "" {
		return "", &InvalidOptionError{Value: option}
	}
	return normalized, nil
}
