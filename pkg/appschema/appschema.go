// SPDX-License-Identifier: MPL-2.0

// Package appschema holds the executable-level part of a launch schema:
// executable name, application arguments, environment variables and working
// directory. Concrete schemas embed Base and pass themselves as the type
// parameter, so every inherited fluent method returns the concrete schema:
//
//	type Schema struct {
//		appschema.Base[*Schema]
//	}
//
//	s := &Schema{}
//	s.Init(s, "java")
//	s.AddArgument("--verbose").SetWorkingDirectory("/srv/app") // returns *Schema
package appschema

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jlaunch/jlaunch/pkg/properties"
	"github.com/jlaunch/jlaunch/pkg/types"
)

// ErrInvalidArgument is wrapped by every InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

type (
	// Base is the shared state of a launch schema. S is the concrete schema
	// type returned by fluent methods. Base is not safe for concurrent use.
	Base[S any] struct {
		self       S
		executable types.ExecutableName
		arguments  []string
		env        *properties.Set
		inheritEnv bool
		workDir    string
		err        error
	}

	// InvalidArgumentError describes a rejected schema mutation. It unwraps
	// to both ErrInvalidArgument and the underlying cause.
	InvalidArgumentError struct {
		// Op is the schema method that rejected the argument.
		Op string
		// Err is the validation failure.
		Err error
	}
)

// Init prepares b for use. self must be the schema embedding b. The
// environment is inherited by default.
func (b *Base[S]) Init(self S, executable types.ExecutableName) error {
	if err := executable.Validate(); err != nil {
		return &InvalidArgumentError{Op: "new schema", Err: err}
	}
	b.self = self
	b.executable = executable
	b.arguments = nil
	b.env = properties.New()
	b.inheritEnv = true
	b.workDir = ""
	b.err = nil
	return nil
}

// Self returns the concrete schema.
func (b *Base[S]) Self() S { return b.self }

// Executable returns the runtime executable.
func (b *Base[S]) Executable() types.ExecutableName { return b.executable }

// Arguments returns a copy of the application arguments.
func (b *Base[S]) Arguments() []string { return slices.Clone(b.arguments) }

// AddArgument appends one application argument.
func (b *Base[S]) AddArgument(arg string) S {
	b.arguments = append(b.arguments, arg)
	return b.self
}

// AddArguments appends application arguments in order.
func (b *Base[S]) AddArguments(args ...string) S {
	b.arguments = append(b.arguments, args...)
	return b.self
}

// SetArguments replaces all application arguments.
func (b *Base[S]) SetArguments(args ...string) S {
	b.arguments = slices.Clone(args)
	return b.self
}

// Environment returns the environment variable set. Mutating it directly
// bypasses error recording.
func (b *Base[S]) Environment() *properties.Set { return b.env }

// SetEnvironmentVariable sets an environment variable, replacing any value.
func (b *Base[S]) SetEnvironmentVariable(name string, value any) S {
	v, err := properties.ValueOf(value)
	if err != nil {
		b.RecordError("SetEnvironmentVariable", err)
		return b.self
	}
	b.RecordError("SetEnvironmentVariable", b.env.Set(name, v))
	return b.self
}

// SetDefaultEnvironmentVariable sets an environment variable only if it has
// no value yet.
func (b *Base[S]) SetDefaultEnvironmentVariable(name string, value any) S {
	v, err := properties.ValueOf(value)
	if err != nil {
		b.RecordError("SetDefaultEnvironmentVariable", err)
		return b.self
	}
	_, err = b.env.SetDefault(name, v)
	b.RecordError("SetDefaultEnvironmentVariable", err)
	return b.self
}

// RemoveEnvironmentVariable deletes an environment variable if present.
func (b *Base[S]) RemoveEnvironmentVariable(name string) S {
	b.env.Remove(name)
	return b.self
}

// SetEnvironmentVariables merges vars, keeping each entry's origin.
func (b *Base[S]) SetEnvironmentVariables(vars *properties.Set) S {
	b.env.Merge(vars)
	return b.self
}

// IsEnvironmentInherited reports whether the launched process starts from
// the caller's environment.
func (b *Base[S]) IsEnvironmentInherited() bool { return b.inheritEnv }

// SetEnvironmentInherited controls whether the caller's environment is the
// base for the launched process.
func (b *Base[S]) SetEnvironmentInherited(inherit bool) S {
	b.inheritEnv = inherit
	return b.self
}

// WorkingDirectory returns the working directory; empty means the caller's.
func (b *Base[S]) WorkingDirectory() string { return b.workDir }

// SetWorkingDirectory sets the working directory for the launched process.
func (b *Base[S]) SetWorkingDirectory(dir string) S {
	b.workDir = dir
	return b.self
}

// RecordError keeps the first rejected mutation. A nil err is ignored.
func (b *Base[S]) RecordError(op string, err error) {
	if err == nil || b.err != nil {
		return
	}
	b.err = &InvalidArgumentError{Op: op, Err: err}
}

// Err returns the first rejected mutation, or nil.
func (b *Base[S]) Err() error { return b.err }

// Error implements the error interface for InvalidArgumentError.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns both ErrInvalidArgument and the cause for errors.Is().
func (e *InvalidArgumentError) Unwrap() []error { return []error{ErrInvalidArgument, e.Err} }
