// SPDX-License-Identifier: MPL-2.0

// Package properties implements a property set with default semantics.
//
// Every entry is tagged with the write mode that produced it. Set always
// overwrites and tags the entry explicit; SetDefault writes only when the
// name has no value at all. Once a name holds an explicit value no default
// can replace it, whatever the call order:
//
//	props := properties.New()
//	props.Set("app.mode", properties.String("prod"))
//	props.SetDefault("app.mode", properties.String("dev")) // ignored
//
// Values are a closed variant (string, bool, integer, lazy port source) so
// consumers can handle every case when realizing a launch command.
package properties
