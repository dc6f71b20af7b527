// SPDX-License-Identifier: MPL-2.0

// Package testutil holds helpers shared by jlaunch tests: fixture files,
// working directory changes, and container engine detection for
// integration tests.
package testutil
