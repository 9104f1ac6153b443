// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package timing provides the single blocking primitive the lock uses for
// every delay: button tick counting, sample cadence and LED patterns.
package timing

import "time"

// Clock blocks the caller for a fixed delay.
type Clock interface {
	Sleep(d time.Duration)
}

// Real sleeps on the wall clock.
type Real struct{}

func (Real) Sleep(d time.Duration) { time.Sleep(d) }

// Fake advances a virtual clock instead of blocking. OnSleep, if set, runs
// after each advance and lets tests drive inputs from elapsed time.
type Fake struct {
	Elapsed time.Duration
	Sleeps  int
	OnSleep func(elapsed time.Duration)
}

func (f *Fake) Sleep(d time.Duration) {
	f.Elapsed += d
	f.Sleeps++
	if f.OnSleep != nil {
		f.OnSleep(f.Elapsed)
	}
}
