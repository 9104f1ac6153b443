// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gesture

import "github.com/relabs-tech/gesture_lock/internal/motion"

// Score is the number of sample indices where all three axes matched.
type Score int

// Tolerance holds the band constants used to compare an unlock attempt
// against the enrolled lock trace. The defaults are uncalibrated heuristics;
// changing them changes how easily the lock opens.
type Tolerance struct {
	Narrow      float64 // factor giving the bound closer to zero
	Wide        float64 // factor giving the bound further from zero
	Slack       float64 // additive noise allowance, m/s²
	AcceptAbove Score   // minimum score is AcceptAbove+1
}

// DefaultTolerance returns the stock lock tolerance: 0.7 / 1.4 / 0.75 and
// acceptance above half the trace.
func DefaultTolerance() Tolerance {
	return Tolerance{
		Narrow:      0.7,
		Wide:        1.4,
		Slack:       0.75,
		AcceptAbove: TraceLength / 2,
	}
}

// Band is an open interval (Low, High).
type Band struct {
	Low, High float64
}

// Contains reports whether Low < v < High.
func (b Band) Contains(v float64) bool {
	return b.Low < v && v < b.High
}

// Band returns the acceptance interval around a lock value. For a negative
// value the wide factor yields the lower bound, so the factors swap sides.
func (t Tolerance) Band(v float64) Band {
	if v >= 0 {
		return Band{Low: t.Narrow*v - t.Slack, High: t.Wide*v + t.Slack}
	}
	return Band{Low: t.Wide*v - t.Slack, High: t.Narrow*v + t.Slack}
}

// Within reports whether unlock lies inside the band of lock.
func (t Tolerance) Within(lock, unlock float64) bool {
	return t.Band(lock).Contains(unlock)
}

// SampleMatches reports whether every axis of unlock lies inside the band
// of the same axis of lock. Axes are never compared with each other.
func (t Tolerance) SampleMatches(lock, unlock motion.Sample) bool {
	return t.Within(lock.X, unlock.X) &&
		t.Within(lock.Y, unlock.Y) &&
		t.Within(lock.Z, unlock.Z)
}

// Score counts matching indices between two traces.
func (t Tolerance) Score(lock, unlock *Trace) Score {
	var n Score
	for i := range lock {
		if t.SampleMatches(lock[i], unlock[i]) {
			n++
		}
	}
	return n
}

// Accept reports whether a score opens the lock.
func (t Tolerance) Accept(s Score) bool {
	return s > t.AcceptAbove
}

// Compare scores unlock against lock and applies the acceptance rule.
func (t Tolerance) Compare(lock, unlock *Trace) (Score, bool) {
	s := t.Score(lock, unlock)
	return s, t.Accept(s)
}
