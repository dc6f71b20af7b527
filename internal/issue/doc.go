// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of markdown
// remediation messages shown by the jlaunch CLI when a launch line cannot be
// built.
package issue
