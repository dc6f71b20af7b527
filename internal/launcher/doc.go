// SPDX-License-Identifier: MPL-2.0

// Package launcher realizes a jvm.Schema into a concrete command line: the
// argv, environment and working directory a process spawner needs. Lazy
// port sources are resolved here, once per realization.
//
// The package never starts a process. CommandLine.Cmd returns an unstarted
// *exec.Cmd for the caller to run.
package launcher
