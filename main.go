// SPDX-License-Identifier: MPL-2.0

// Command usagegen generates typed argument records from docopt-style
// usage text.
package main

import cmd "github.com/zerosign/usagegen/cmd/usagegen"

func main() {
	cmd.Execute()
}
