// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"math"
	"math/rand/v2"
)

// mockPeriod is the number of samples in one synthetic stroke. It divides
// the trace length so every capture starts at the same phase.
const mockPeriod = 50

type mockSource struct {
	n     int
	gain  float64
	noise float64
	rng   *rand.Rand
}

// NewMockSource creates a mock acceleration source that traces a smooth
// figure-eight stroke on top of gravity. gain scales the whole signal, so a
// gain of -1 produces the mirrored gesture. noise adds deterministic jitter
// of up to ±noise m/s² per axis.
func NewMockSource(gain, noise float64, seed uint64) Source {
	return &mockSource{
		gain:  gain,
		noise: noise,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (m *mockSource) ReadSample() (Sample, error) {
	phase := 2 * math.Pi * float64(m.n%mockPeriod) / mockPeriod
	m.n++

	s := Sample{
		X: 8 * math.Sin(phase),
		Y: 5 * math.Sin(2*phase),
		Z: 9.81 + 3*math.Cos(phase),
	}
	s.X = m.gain*s.X + m.jitter()
	s.Y = m.gain*s.Y + m.jitter()
	s.Z = m.gain*s.Z + m.jitter()
	return s, nil
}

func (m *mockSource) jitter() float64 {
	if m.noise == 0 {
		return 0
	}
	return (m.rng.Float64()*2 - 1) * m.noise
}
