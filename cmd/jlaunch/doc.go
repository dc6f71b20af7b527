// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the jlaunch CLI commands.
//
// jlaunch render builds a JVM launch schema from the user configuration,
// property files and flags, then prints the resolved command line as a shell
// line, JSON or rendered markdown. It never starts the process.
package cmd
