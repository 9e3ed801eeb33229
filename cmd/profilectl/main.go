/*
Copyright © 2025 profilekit authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import "github.com/profilekit/profilectl/pkg/cli"

func main() {
	cli.Execute()
}
