// SPDX-License-Identifier: MPL-2.0

// Package config loads jlaunch's user configuration with Viper, using CUE as
// the file format.
//
// The file is config.cue in the platform config directory
// ($XDG_CONFIG_HOME/jlaunch on Linux, ~/Library/Application Support/jlaunch
// on macOS, %APPDATA%\jlaunch on Windows), falling back to ./config.cue. It is
// validated against the embedded #Config schema. Scalar settings can be
// overridden with JLAUNCH_* environment variables (JLAUNCH_JMX_PORT and so
// on).
//
// Every value is applied to a launch schema as a default, so explicit
// settings made later always win.
package config
