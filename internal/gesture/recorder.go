// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gesture

import (
	"time"

	"github.com/relabs-tech/gesture_lock/internal/motion"
	"github.com/relabs-tech/gesture_lock/internal/timing"
)

// Recorder captures traces from a motion source at a fixed cadence.
type Recorder struct {
	src      motion.Source
	clock    timing.Clock
	interval time.Duration
}

// NewRecorder returns a recorder sampling src every SampleInterval.
func NewRecorder(src motion.Source, clock timing.Clock) *Recorder {
	return &Recorder{src: src, clock: clock, interval: SampleInterval}
}

// Record reads exactly TraceLength samples. The first failed read aborts the
// capture: the partial buffer is dropped and a *motion.SensorFault is
// returned with the failing index.
func (r *Recorder) Record() (*Trace, error) {
	buf := new(Trace)
	for i := range buf {
		s, err := r.src.ReadSample()
		if err != nil {
			return nil, &motion.SensorFault{Index: i, Err: err}
		}
		buf[i] = s
		r.clock.Sleep(r.interval)
	}
	return buf, nil
}
