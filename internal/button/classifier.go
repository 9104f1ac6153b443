// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package button turns the duration of a button hold into a user intent.
package button

import (
	"time"

	"github.com/relabs-tech/gesture_lock/internal/indicator"
	"github.com/relabs-tech/gesture_lock/internal/timing"
)

const (
	// Tick is the polling period while the button is held.
	Tick = 10 * time.Millisecond
	// EnrollThreshold is the hold length (in ticks) that must be exceeded
	// to request enrollment: more than 3 s.
	EnrollThreshold HoldDuration = 300
)

// HoldDuration counts the ticks the button stayed pressed.
type HoldDuration int

// Duration converts the tick count to wall time.
func (d HoldDuration) Duration() time.Duration {
	return time.Duration(d) * Tick
}

// Intent is what the user asked for with a button hold.
type Intent int

const (
	Noop Intent = iota
	Enroll
	Verify
)

func (i Intent) String() string {
	switch i {
	case Enroll:
		return "enroll"
	case Verify:
		return "verify"
	default:
		return "noop"
	}
}

// Input is a polled digital input with polarity already applied.
type Input interface {
	IsPressed() bool
}

// ClassifyHold maps a completed hold to an intent. A long hold always
// enrolls; a short hold verifies only when a password exists.
func ClassifyHold(held, threshold HoldDuration, hasPassword bool) Intent {
	switch {
	case held > threshold:
		return Enroll
	case hasPassword:
		return Verify
	default:
		return Noop
	}
}

// Classifier times button holds.
type Classifier struct {
	input     Input
	listening indicator.Light
	clock     timing.Clock
	threshold HoldDuration
}

// NewClassifier returns a classifier using EnrollThreshold. A threshold of
// zero or less falls back to the default.
func NewClassifier(input Input, listening indicator.Light, clock timing.Clock, threshold HoldDuration) *Classifier {
	if threshold <= 0 {
		threshold = EnrollThreshold
	}
	return &Classifier{input: input, listening: listening, clock: clock, threshold: threshold}
}

// Classify waits for the button to be released, counting ticks, and
// classifies the hold. The listening light is on for the whole hold.
func (c *Classifier) Classify(hasPassword bool) (Intent, HoldDuration) {
	c.listening.Set(true)
	var held HoldDuration
	for c.input.IsPressed() {
		held++
		c.clock.Sleep(Tick)
	}
	c.listening.Set(false)
	return ClassifyHold(held, c.threshold, hasPassword), held
}
