// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command vaout probes video acceleration drivers and plays synthetic
// streams through the video output.
package main

import "github.com/gogpu/vaout/internal/cli/cmd"

func main() {
	cmd.Execute()
}
