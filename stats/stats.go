// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package stats samples the CPU load of the player process and the CPU
// clock for the statistics overlay.
package stats

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Interval is the number of frames between two samples.
const Interval = 30

// Sample is one reading.
type Sample struct {
	// Usage is the share of one CPU used by the process since the
	// previous sample, in percent.
	Usage float64
	// MHz is the current CPU clock, 0 when unknown.
	MHz int
}

// Sampler takes a Sample every Interval frames. It is not safe for
// concurrent use.
type Sampler struct {
	cpuTime func() (time.Duration, error)
	now     func() time.Time
	cpuinfo string

	prevCPU  time.Duration
	prevWall time.Time
	started  bool

	total   float64
	samples int

	frames int
	last   Sample
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithCPUTime replaces the process CPU time source.
func WithCPUTime(f func() (time.Duration, error)) Option {
	return func(s *Sampler) { s.cpuTime = f }
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) { s.now = now }
}

// WithCPUInfo sets the path of the cpuinfo file.
func WithCPUInfo(path string) Option {
	return func(s *Sampler) { s.cpuinfo = path }
}

// New returns a sampler reading the process resource usage.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		cpuTime: ProcessCPUTime,
		now:     time.Now,
		cpuinfo: "/proc/cpuinfo",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Frame counts one presented frame and refreshes the sample on every
// Interval-th call. It reports whether a new sample was taken.
func (s *Sampler) Frame() bool {
	s.frames++
	if s.frames%Interval != 0 {
		return false
	}
	s.last = Sample{Usage: s.Usage(), MHz: s.Frequency()}
	return true
}

// Last returns the most recent sample.
func (s *Sampler) Last() Sample { return s.last }

// Usage returns the process CPU usage since the previous call in
// percent. The first call only records the starting point and returns 0.
func (s *Sampler) Usage() float64 {
	cpu, err := s.cpuTime()
	if err != nil {
		return 0
	}
	wall := s.now()
	var pct float64
	if s.started {
		if elapsed := wall.Sub(s.prevWall); elapsed > 0 {
			pct = 100 * float64(cpu-s.prevCPU) / float64(elapsed)
		}
	}
	s.prevCPU, s.prevWall, s.started = cpu, wall, true
	s.total += pct / 100
	s.samples++
	return pct
}

// Average returns the mean of every Usage reading so far.
func (s *Sampler) Average() float64 {
	if s.samples == 0 {
		return 0
	}
	return 100 * s.total / float64(s.samples)
}

// Frequency returns the CPU clock in MHz, 0 when it cannot be read.
func (s *Sampler) Frequency() int {
	f, err := os.Open(s.cpuinfo)
	if err != nil {
		return 0
	}
	defer f.Close()
	return ParseCPUInfo(f)
}

// ParseCPUInfo returns the last "cpu MHz" value of a /proc/cpuinfo
// listing, truncated to an integer.
func ParseCPUInfo(r io.Reader) int {
	mhz := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(key) != "cpu MHz" {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			mhz = int(f)
		}
	}
	return mhz
}
