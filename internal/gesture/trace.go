// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package gesture records fixed-length motion traces and compares them.
package gesture

import (
	"time"

	"github.com/relabs-tech/gesture_lock/internal/motion"
)

const (
	// TraceLength is the number of samples in every trace.
	TraceLength = 200
	// SampleInterval is the delay after each sample read (~4 s per trace).
	SampleInterval = 20 * time.Millisecond
)

// Trace is one complete gesture capture. Enrollment and verification traces
// are only comparable because both are captured with the same length and
// cadence; there is no resampling.
type Trace [TraceLength]motion.Sample

// Uniform returns a trace with every sample set to s.
func Uniform(s motion.Sample) *Trace {
	var t Trace
	for i := range t {
		t[i] = s
	}
	return &t
}
