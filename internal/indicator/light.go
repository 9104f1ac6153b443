// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package indicator defines the binary lights the lock uses for feedback.
package indicator

import (
	"time"

	"github.com/relabs-tech/gesture_lock/internal/timing"
)

// Light is a single binary output.
type Light interface {
	Set(on bool)
	Toggle()
}

// Panel groups the four lights on the lock.
type Panel struct {
	Listening Light // white: button held
	Capture   Light // blue: countdown and capture-complete
	Success   Light // green: access granted
	Fault     Light // red: access denied, sensor fault, self-test failure
}

// All returns the lights in sweep order.
func (p Panel) All() []Light {
	return []Light{p.Listening, p.Fault, p.Success, p.Capture}
}

// Off switches every light off.
func (p Panel) Off() {
	for _, l := range p.All() {
		l.Set(false)
	}
}

// Blink toggles l n times, waiting period after each toggle.
func Blink(l Light, clock timing.Clock, n int, period time.Duration) {
	for i := 0; i < n; i++ {
		l.Toggle()
		clock.Sleep(period)
	}
}

// Pulse switches l on for width, then off.
func Pulse(l Light, clock timing.Clock, width time.Duration) {
	l.Set(true)
	clock.Sleep(width)
	l.Set(false)
}
