// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package lock sequences button intent, gesture capture and matching.
package lock

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/relabs-tech/gesture_lock/internal/button"
	"github.com/relabs-tech/gesture_lock/internal/events"
	"github.com/relabs-tech/gesture_lock/internal/gesture"
	"github.com/relabs-tech/gesture_lock/internal/indicator"
	"github.com/relabs-tech/gesture_lock/internal/motion"
	"github.com/relabs-tech/gesture_lock/internal/timing"
)

// State is the controller state.
type State int

const (
	Idle State = iota
	Enrolling
	Verifying
)

func (s State) String() string {
	switch s {
	case Enrolling:
		return "enrolling"
	case Verifying:
		return "verifying"
	default:
		return "idle"
	}
}

// Result is how an attempt ended.
type Result int

const (
	Ignored Result = iota
	Enrolled
	Granted
	Denied
	Faulted
)

func (r Result) String() string {
	switch r {
	case Enrolled:
		return "enrolled"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	case Faulted:
		return "faulted"
	default:
		return "ignored"
	}
}

// Outcome describes one completed intent-to-resolution cycle.
type Outcome struct {
	Intent button.Intent
	Hold   button.HoldDuration
	Result Result
	Score  gesture.Score
	Err    error
}

// IdentityCheck confirms the accelerometer is the part we expect. A nil
// error means the check passed.
type IdentityCheck interface {
	VerifyIdentity() error
}

// Options wires the controller to its collaborators. Clock, Tolerance,
// Feedback, Sink and Logger have defaults.
type Options struct {
	Button        button.Input
	Source        motion.Source
	Panel         indicator.Panel
	Clock         timing.Clock
	Tolerance     *gesture.Tolerance
	Feedback      *Feedback
	HoldThreshold button.HoldDuration
	Sink          events.Sink
	Logger        *zap.Logger
}

// Controller is the lock state machine. It is single-threaded: Poll, Handle
// and Run must not be called concurrently.
type Controller struct {
	input      button.Input
	classifier *button.Classifier
	recorder   *gesture.Recorder
	tolerance  gesture.Tolerance
	signal     signaler
	sink       events.Sink
	log        *zap.Logger

	state    State
	password *gesture.Trace

	// identityFault keeps the fault light on after a failed self-test.
	identityFault bool
}

// New builds a controller in the Idle state with no password enrolled.
func New(opts Options) *Controller {
	clock := opts.Clock
	if clock == nil {
		clock = timing.Real{}
	}
	tol := gesture.DefaultTolerance()
	if opts.Tolerance != nil {
		tol = *opts.Tolerance
	}
	fb := DefaultFeedback()
	if opts.Feedback != nil {
		fb = *opts.Feedback
	}
	sink := opts.Sink
	if sink == nil {
		sink = events.Discard{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Controller{
		input:      opts.Button,
		classifier: button.NewClassifier(opts.Button, opts.Panel.Listening, clock, opts.HoldThreshold),
		recorder:   gesture.NewRecorder(opts.Source, clock),
		tolerance:  tol,
		signal:     signaler{panel: opts.Panel, clock: clock, fb: fb},
		sink:       sink,
		log:        log,
		state:      Idle,
	}
}

// State returns the current state. Outside Handle it is always Idle.
func (c *Controller) State() State { return c.state }

// HasPassword reports whether a gesture has been enrolled.
func (c *Controller) HasPassword() bool { return c.password != nil }

// Password returns a copy of the stored trace, or nil.
func (c *Controller) Password() *gesture.Trace {
	if c.password == nil {
		return nil
	}
	cp := *c.password
	return &cp
}

// Startup runs the identity self-test and the LED sweep. A failed check
// only latches the fault light; the lock stays usable.
func (c *Controller) Startup(id IdentityCheck) error {
	var err error
	if id != nil {
		err = id.VerifyIdentity()
	}
	c.signal.sweep()

	ev := c.event("", events.KindStartup)
	if err != nil {
		c.identityFault = true
		c.signal.panel.Fault.Set(true)
		ev.Fault = err.Error()
		c.log.Warn("lock: accelerometer self-test failed, continuing", zap.Error(err))
	} else {
		c.log.Info("lock: startup complete")
	}
	c.publish(ev)
	return err
}

// Poll runs one iteration of the main loop. If the button is pressed it
// classifies the hold and handles the resulting intent; otherwise it
// returns an Ignored outcome straight away.
func (c *Controller) Poll() Outcome {
	if !c.input.IsPressed() {
		return Outcome{Intent: button.Noop, Result: Ignored}
	}
	intent, held := c.classifier.Classify(c.HasPassword())
	return c.handle(intent, held)
}

// Handle performs one full cycle for intent and returns to Idle.
func (c *Controller) Handle(intent button.Intent) Outcome {
	return c.handle(intent, 0)
}

func (c *Controller) handle(intent button.Intent, held button.HoldDuration) Outcome {
	var out Outcome
	switch {
	case intent == button.Enroll:
		out = c.enroll(held)
	case intent == button.Verify && c.password != nil:
		out = c.verify(held)
	default:
		// noop, or a verify with nothing enrolled
		out = Outcome{Intent: intent, Result: Ignored}
	}
	out.Hold = held
	return out
}

func (c *Controller) enroll(held button.HoldDuration) Outcome {
	attempt := events.NewAttempt()
	c.state = Enrolling
	c.publish(c.intentEvent(attempt, button.Enroll, held))

	c.signal.enrollCountdown()
	trace, err := c.recorder.Record()
	if err != nil {
		return c.fault(attempt, button.Enroll, err)
	}

	c.password = trace
	c.restoreFaultLight()
	c.signal.captureComplete()
	c.log.Info("lock: gesture enrolled")

	c.state = Idle
	c.publish(c.event(attempt, events.KindEnrolled))
	return Outcome{Intent: button.Enroll, Result: Enrolled}
}

func (c *Controller) verify(held button.HoldDuration) Outcome {
	attempt := events.NewAttempt()
	c.state = Verifying
	c.publish(c.intentEvent(attempt, button.Verify, held))

	c.signal.verifyCountdown()
	trace, err := c.recorder.Record()
	if err != nil {
		return c.fault(attempt, button.Verify, err)
	}

	score, ok := c.tolerance.Compare(c.password, trace)
	c.restoreFaultLight()
	c.signal.captureComplete()
	c.signal.outcome(ok)
	c.restoreFaultLight()

	res, kind := Denied, events.KindDenied
	if ok {
		res, kind = Granted, events.KindGranted
	}
	c.log.Info("lock: verification finished",
		zap.Stringer("result", res),
		zap.Int("score", int(score)),
		zap.Int("of", gesture.TraceLength))

	c.state = Idle
	ev := c.event(attempt, kind)
	ev.Score = int(score)
	c.publish(ev)
	return Outcome{Intent: button.Verify, Result: res, Score: score}
}

// fault abandons the attempt. The stored password is untouched.
func (c *Controller) fault(attempt string, intent button.Intent, err error) Outcome {
	c.signal.panel.Capture.Set(false)
	c.signal.panel.Fault.Set(true)

	index := -1
	var sf *motion.SensorFault
	if errors.As(err, &sf) {
		index = sf.Index
	}
	c.log.Warn("lock: capture aborted",
		zap.Stringer("intent", intent),
		zap.String("fault", motion.FaultKind(err)),
		zap.Int("sample", index),
		zap.Error(err))

	c.state = Idle
	ev := c.event(attempt, events.KindFault)
	ev.Intent = intent.String()
	ev.Fault = motion.FaultKind(err)
	ev.Message = err.Error()
	c.publish(ev)
	return Outcome{Intent: intent, Result: Faulted, Err: err}
}

// restoreFaultLight clears a capture fault but keeps a self-test fault lit.
func (c *Controller) restoreFaultLight() {
	c.signal.panel.Fault.Set(c.identityFault)
}

// Run polls until ctx is done. Cancellation is only observed between
// cycles; a capture in progress always completes.
func (c *Controller) Run(ctx context.Context) error {
	c.log.Info("lock: waiting for button")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		out := c.Poll()
		if out.Result == Ignored {
			c.signal.clock.Sleep(button.Tick)
		}
	}
}

func (c *Controller) intentEvent(attempt string, intent button.Intent, held button.HoldDuration) events.Event {
	ev := c.event(attempt, events.KindIntent)
	ev.Intent = intent.String()
	ev.HoldTicks = int(held)
	return ev
}

func (c *Controller) event(attempt string, kind events.Kind) events.Event {
	return events.Event{
		Attempt:  attempt,
		Time:     time.Now().UTC(),
		Kind:     kind,
		State:    c.state.String(),
		Enrolled: c.password != nil,
	}
}

func (c *Controller) publish(ev events.Event) {
	if err := c.sink.Publish(ev); err != nil {
		c.log.Warn("lock: event publish failed", zap.String("kind", string(ev.Kind)), zap.Error(err))
	}
}
