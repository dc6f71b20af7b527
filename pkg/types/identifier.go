// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultExecutable is the runtime launched when no executable is named.
	DefaultExecutable ExecutableName = "java"
)

var (
	// ErrInvalidExecutableName is the sentinel error wrapped by InvalidExecutableNameError.
	ErrInvalidExecutableName = errors.New("invalid executable name")
	// ErrInvalidClassName is the sentinel error wrapped by InvalidClassNameError.
	ErrInvalidClassName = errors.New("invalid class name")
	// ErrInvalidPropertyName is the sentinel error wrapped by InvalidPropertyNameError.
	ErrInvalidPropertyName = errors.New("invalid property name")
)

type (
	// ExecutableName identifies the runtime executable to launch, either a bare
	// name resolved through PATH ("java") or a path to a binary.
	// The zero value is invalid.
	ExecutableName string

	// ClassName is the fully-qualified name of the application entry point
	// passed to the runtime (e.g. "com.example.Main").
	// The zero value is invalid.
	ClassName string

	// PropertyName is the key of a system property or environment variable.
	// The zero value is invalid.
	PropertyName string

	// InvalidExecutableNameError is returned when an ExecutableName is empty
	// or whitespace-only.
	InvalidExecutableNameError struct {
		Value ExecutableName
	}

	// InvalidClassNameError is returned when a ClassName is empty or
	// whitespace-only.
	InvalidClassNameError struct {
		Value ClassName
	}

	// InvalidPropertyNameError is returned when a PropertyName is empty or
	// whitespace-only.
	InvalidPropertyNameError struct {
		Value PropertyName
	}
)

// String returns the string representation of the ExecutableName.
func (n ExecutableName) String() string { return string(n) }

// Validate returns an error if the ExecutableName is empty or whitespace-only.
func (n ExecutableName) Validate() error {
	if isBlank(string(n)) {
		return &InvalidExecutableNameError{Value: n}
	}
	return nil
}

// String returns the string representation of the ClassName.
func (n ClassName) String() string { return string(n) }

// Validate returns an error if the ClassName is empty or whitespace-only.
func (n ClassName) Validate() error {
	if isBlank(string(n)) {
		return &InvalidClassNameError{Value: n}
	}
	return nil
}

// String returns the string representation of the PropertyName.
func (n PropertyName) String() string { return string(n) }

// Validate returns an error if the PropertyName is empty or whitespace-only.
func (n PropertyName) Validate() error {
	if isBlank(string(n)) {
		return &InvalidPropertyNameError{Value: n}
	}
	return nil
}

// Error implements the error interface for InvalidExecutableNameError.
func (e *InvalidExecutableNameError) Error() string {
	return fmt.Sprintf("invalid executable name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidExecutableName for errors.Is() compatibility.
func (e *InvalidExecutableNameError) Unwrap() error { return ErrInvalidExecutableName }

// Error implements the error interface for InvalidClassNameError.
func (e *InvalidClassNameError) Error() string {
	return fmt.Sprintf("invalid class name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidClassName for errors.Is() compatibility.
func (e *InvalidClassNameError) Unwrap() error { return ErrInvalidClassName }

// Error implements the error interface for InvalidPropertyNameError.
func (e *InvalidPropertyNameError) Error() string {
	return fmt.Sprintf("invalid property name %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidPropertyName for errors.Is() compatibility.
func (e *InvalidPropertyNameError) Unwrap() error { return ErrInvalidPropertyName }

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
