// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build unix

package stats

import (
	"time"

	"golang.org/x/sys/unix"
)

// ProcessCPUTime returns the user and system time of the process and
// its waited-for children.
func ProcessCPUTime() (time.Duration, error) {
	var total time.Duration
	for _, who := range []int{unix.RUSAGE_SELF, unix.RUSAGE_CHILDREN} {
		var ru unix.Rusage
		if err := unix.Getrusage(who, &ru); err != nil {
			return 0, err
		}
		total += time.Duration(ru.Utime.Nano()) + time.Duration(ru.Stime.Nano())
	}
	return total, nil
}
