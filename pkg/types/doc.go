// SPDX-License-Identifier: MPL-2.0

// Package types defines the value types shared by the launch schema packages
// (jvm, appschema, properties, ports). Each type carries its own validation
// and a typed error that wraps a package-level sentinel, so callers can use
// errors.Is for detection and errors.As to recover the offending value.
//
// This package is a leaf dependency: it imports only the standard library.
package types
