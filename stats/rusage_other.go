// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !unix

package stats

import (
	"errors"
	"time"
)

// ProcessCPUTime is unavailable on this platform.
func ProcessCPUTime() (time.Duration, error) {
	return 0, errors.New("stats: process CPU time not supported")
}
