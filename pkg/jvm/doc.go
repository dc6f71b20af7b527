// SPDX-License-Identifier: MPL-2.0

// Package jvm builds launch schemas for Java applications: the class to run,
// its class path, JVM options and system properties.
//
// A Schema separates explicit settings from convenience defaults. Values set
// with SetSystemProperty always win; values set with SetDefaultSystemProperty
// and by the feature toggles (SetJMXSupport, SetPreferIPv4,
// SetJMXAuthentication, SetRMIServerHostName) only fill gaps. Toggles can
// therefore be called in any order relative to explicit settings:
//
//	schema, err := jvm.NewWithClassPath("com.example.Main", "app.jar")
//	if err != nil {
//		return err
//	}
//	schema.SetJMXPort(7091).SetJMXSupport(true) // port stays 7091
//
// Fluent setters cannot return errors. The first rejected argument is
// recorded, the offending call has no effect, and Err reports it.
//
// A Schema is a short-lived, single-owner value and is not safe for
// concurrent mutation.
package jvm
