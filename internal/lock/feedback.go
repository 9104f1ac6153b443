// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lock

import (
	"time"

	"github.com/relabs-tech/gesture_lock/internal/indicator"
	"github.com/relabs-tech/gesture_lock/internal/timing"
)

// Feedback holds the LED pattern timings.
type Feedback struct {
	SweepStep time.Duration

	EnrollCountdownToggles int
	EnrollCountdownPeriod  time.Duration

	VerifyCountdownToggles int
	VerifyCountdownPeriod  time.Duration
	VerifyCountdownPause   time.Duration

	CompletePulse time.Duration
	CompleteGap   time.Duration

	OutcomeToggles int // even, so the light ends where it started
	OutcomePeriod  time.Duration
}

// DefaultFeedback returns the timings of the lock hardware.
func DefaultFeedback() Feedback {
	return Feedback{
		SweepStep: time.Second,

		EnrollCountdownToggles: 6,
		EnrollCountdownPeriod:  500 * time.Millisecond,

		VerifyCountdownToggles: 26,
		VerifyCountdownPeriod:  100 * time.Millisecond,
		VerifyCountdownPause:   400 * time.Millisecond,

		CompletePulse: 50 * time.Millisecond,
		CompleteGap:   200 * time.Millisecond,

		OutcomeToggles: 6,
		OutcomePeriod:  500 * time.Millisecond,
	}
}

// signaler drives the panel with Feedback timings.
type signaler struct {
	panel indicator.Panel
	clock timing.Clock
	fb    Feedback
}

// sweep lights each LED in turn so a broken one is obvious at power-up.
func (s signaler) sweep() {
	p := s.panel
	p.Listening.Set(true)
	s.clock.Sleep(s.fb.SweepStep)
	p.Fault.Set(true)
	s.clock.Sleep(s.fb.SweepStep)
	p.Listening.Set(false)
	p.Success.Set(true)
	s.clock.Sleep(s.fb.SweepStep)
	p.Fault.Set(false)
	p.Capture.Set(true)
	s.clock.Sleep(s.fb.SweepStep)
	p.Success.Set(false)
	s.clock.Sleep(s.fb.SweepStep)
	p.Capture.Set(false)
}

func (s signaler) enrollCountdown() {
	s.panel.Capture.Set(false)
	indicator.Blink(s.panel.Capture, s.clock, s.fb.EnrollCountdownToggles, s.fb.EnrollCountdownPeriod)
}

func (s signaler) verifyCountdown() {
	s.panel.Capture.Set(false)
	indicator.Blink(s.panel.Capture, s.clock, s.fb.VerifyCountdownToggles, s.fb.VerifyCountdownPeriod)
	s.clock.Sleep(s.fb.VerifyCountdownPause)
}

// captureComplete gives two short blue pulses.
func (s signaler) captureComplete() {
	indicator.Pulse(s.panel.Capture, s.clock, s.fb.CompletePulse)
	s.clock.Sleep(s.fb.CompleteGap)
	indicator.Pulse(s.panel.Capture, s.clock, s.fb.CompletePulse)
}

// outcome gives three green pulses when granted, three red otherwise.
func (s signaler) outcome(granted bool) {
	l := s.panel.Fault
	if granted {
		l = s.panel.Success
	}
	l.Set(false)
	indicator.Blink(l, s.clock, s.fb.OutcomeToggles, s.fb.OutcomePeriod)
}
