// SPDX-License-Identifier: MPL-2.0

// Package propfile loads system properties and environment variables for a
// launch schema from TOML files.
//
// A property file has up to three tables:
//
//	[properties]            # explicit system properties
//	"app.name" = "demo"
//
//	[defaults]              # default system properties
//	app.threads = 4         # dotted keys and sub-tables flatten to "app.threads"
//
//	[environment]           # explicit environment variables
//	JAVA_HOME = "/opt/jdk"
//
// Values must be strings, booleans or integers. Keys within a table are
// applied in sorted order, since TOML tables are unordered.
package propfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jlaunch/jlaunch/pkg/properties"
)

// MaxFileSize bounds the size of a property file.
const MaxFileSize = 1 << 20

// ErrFileTooLarge is returned when a property file exceeds MaxFileSize.
var ErrFileTooLarge = errors.New("property file too large")

type (
	// File is a decoded property file.
	File struct {
		// Path is where the file was read from; empty for in-memory data.
		Path string
		// Properties holds both explicit ([properties]) and default
		// ([defaults]) system properties, tagged with their origin.
		Properties *properties.Set
		// Environment holds explicit environment variables.
		Environment *properties.Set
	}

	document struct {
		Properties  map[string]any `toml:"properties"`
		Defaults    map[string]any `toml:"defaults"`
		Environment map[string]any `toml:"environment"`
	}
)

// Load reads and parses the property file at path.
func Load(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading property file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s: %w (%d bytes, limit %d)", path, ErrFileTooLarge, info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading property file: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes property file content. path is only used in error messages.
func Parse(data []byte, path string) (*File, error) {
	if path == "" {
		path = "<input>"
	}

	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, formatDecodeError(err, path)
	}

	f := &File{
		Path:        path,
		Properties:  properties.New(),
		Environment: properties.New(),
	}

	if err := apply(flatten("", doc.Properties), path, "properties", func(name string, v properties.Value) error {
		return f.Properties.Set(name, v)
	}); err != nil {
		return nil, err
	}
	if err := apply(flatten("", doc.Defaults), path, "defaults", func(name string, v properties.Value) error {
		_, err := f.Properties.SetDefault(name, v)
		return err
	}); err != nil {
		return nil, err
	}
	if err := apply(flatten("", doc.Environment), path, "environment", func(name string, v properties.Value) error {
		return f.Environment.Set(name, v)
	}); err != nil {
		return nil, err
	}

	return f, nil
}

func apply(values map[string]any, path, table string, set func(string, properties.Value) error) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		v, err := properties.ValueOf(values[name])
		if err == nil {
			err = set(name, v)
		}
		if err != nil {
			return fmt.Errorf("%s: %s.%s: %w", path, table, name, err)
		}
	}
	return nil
}

// flatten turns nested tables into dotted names: {"a": {"b": 1}} -> {"a.b": 1}.
func flatten(prefix string, in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			for nk, nv := range flatten(name, nested) {
				out[nk] = nv
			}
			continue
		}
		out[name] = v
	}
	return out
}

func formatDecodeError(err error, path string) error {
	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		row, col := decErr.Position()
		return fmt.Errorf("%s:%d:%d: %s", path, row, col, strings.TrimSpace(decErr.Error()))
	}
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		return fmt.Errorf("%s: unknown table or key (want properties, defaults, environment): %w", path, err)
	}
	return fmt.Errorf("%s: %w", path, err)
}
