// SPDX-License-Identifier: MPL-2.0

package jvm

import (
	"errors"
	"fmt"
)

// ErrInvalidOption is the sentinel error wrapped by InvalidOptionError.
var ErrInvalidOption = errors.New("invalid JVM option")

// InvalidOptionError is returned for option tokens that are empty or
// whitespace-only once the leading marker is stripped.
type InvalidOptionError struct {
	Value string
}

// Error implements the error interface for InvalidOptionError.
func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid JVM option %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidOption for errors.Is() compatibility.
func (e *InvalidOptionError) Unwrap() error { return ErrInvalidOption }
