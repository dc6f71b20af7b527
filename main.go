// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/jlaunch/jlaunch/cmd/jlaunch"

func main() {
	cmd.Execute()
}
