// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles a user CUE file against an embedded schema
// definition, validates it and decodes it into a Go value.
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[Config](schema, data, "#Config",
//	    cueutil.WithFilename("config.cue"))
//
// Errors name the offending field in JSON path notation, e.g.
// "config.cue: jmx.port: invalid value 70000".
package cueutil
