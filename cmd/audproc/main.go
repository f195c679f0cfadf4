// SPDX-License-Identifier: EPL-2.0

package main

import "github.com/ik5/audproc/internal/cli"

func main() {
	cli.Execute()
}
