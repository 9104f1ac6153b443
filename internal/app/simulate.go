// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/relabs-tech/gesture_lock/internal/button"
	"github.com/relabs-tech/gesture_lock/internal/config"
	"github.com/relabs-tech/gesture_lock/internal/events"
	"github.com/relabs-tech/gesture_lock/internal/gesture"
	"github.com/relabs-tech/gesture_lock/internal/indicator"
	"github.com/relabs-tech/gesture_lock/internal/lock"
	"github.com/relabs-tech/gesture_lock/internal/motion"
	"github.com/relabs-tech/gesture_lock/internal/timing"
)

// SimOptions tunes RunSimulation.
type SimOptions struct {
	Fast  bool    // virtual clock instead of real delays
	Noise float64 // per-axis jitter of the mock gesture, m/s²
	Seed  uint64
}

// SimStep is one scripted button interaction and its outcome.
type SimStep struct {
	Name    string
	Outcome lock.Outcome
}

// scriptedButton is pressed for the next pressFor polls, then released.
type scriptedButton struct {
	polls, pressFor int
}

func (b *scriptedButton) hold(ticks int) {
	b.polls = 0
	b.pressFor = ticks + 1 // the controller's own poll sees the first press
}

func (b *scriptedButton) IsPressed() bool {
	b.polls++
	return b.polls <= b.pressFor
}

// switchSource forwards to whichever source the script selected.
type switchSource struct {
	cur motion.Source
}

func (s *switchSource) ReadSample() (motion.Sample, error) { return s.cur.ReadSample() }

// unpluggedSource fails with a bus error after good reads.
type unpluggedSource struct {
	src  motion.Source
	good int
}

func (s *unpluggedSource) ReadSample() (motion.Sample, error) {
	if s.good == 0 {
		return motion.Sample{}, motion.ErrBusError
	}
	s.good--
	return s.src.ReadSample()
}

// RunSimulation runs the lock against mock hardware through a fixed script:
// a short press with nothing enrolled, an enrollment, a matching attempt, a
// mirrored attempt, a capture with the sensor unplugged, and a final
// matching attempt. Each step is reported to out.
func RunSimulation(cfg *config.Config, opts SimOptions, sink events.Sink, log *zap.Logger, out io.Writer) ([]SimStep, error) {
	var clock timing.Clock = timing.Real{}
	if opts.Fast {
		clock = &timing.Fake{}
	}
	if sink == nil {
		sink = events.Discard{}
	}

	panel, _ := indicator.NewMemoryPanel(log)
	btn := &scriptedButton{}
	src := &switchSource{}
	tol := cfg.Tolerance()
	hold := cfg.HoldEnrollTicks

	ctl := lock.New(lock.Options{
		Button:        btn,
		Source:        src,
		Panel:         panel,
		Clock:         clock,
		Tolerance:     &tol,
		HoldThreshold: button.HoldDuration(hold),
		Sink:          sink,
		Logger:        log,
	})
	if err := ctl.Startup(nil); err != nil {
		return nil, err
	}

	gestureFn := func(gain float64, seed uint64) motion.Source {
		return motion.NewMockSource(gain, opts.Noise, seed)
	}

	script := []struct {
		name  string
		ticks int
		src   motion.Source
	}{
		{"short press, nothing enrolled", 40, gestureFn(1, opts.Seed)},
		{"long hold, enroll figure-eight", hold + 20, gestureFn(1, opts.Seed)},
		{"short press, same gesture", 60, gestureFn(1, opts.Seed+1)},
		{"short press, mirrored gesture", 60, gestureFn(-1, opts.Seed+2)},
		{"short press, sensor unplugged", 60, &unpluggedSource{src: gestureFn(1, opts.Seed+3), good: gesture.TraceLength / 2}},
		{"short press, same gesture again", 60, gestureFn(1, opts.Seed+4)},
	}

	steps := make([]SimStep, 0, len(script))
	for i, s := range script {
		src.cur = s.src
		btn.hold(s.ticks)
		o := ctl.Poll()
		steps = append(steps, SimStep{Name: s.name, Outcome: o})

		fmt.Fprintf(out, "[SIM] %d %-32s hold=%4dms intent=%-6s result=%-8s",
			i+1, s.name, o.Hold.Duration().Milliseconds(), o.Intent, o.Result)
		if o.Result == lock.Granted || o.Result == lock.Denied {
			fmt.Fprintf(out, " score=%d/%d", o.Score, gesture.TraceLength)
		}
		if o.Err != nil {
			fmt.Fprintf(out, " fault=%v", o.Err)
		}
		fmt.Fprintln(out)
	}
	return steps, nil
}
