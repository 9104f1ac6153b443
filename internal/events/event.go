// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package events carries lock activity to observers: MQTT, a serial access
// panel, the status display. Observers never influence the lock itself.
package events

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind classifies an event.
type Kind string

const (
	KindStartup  Kind = "startup"
	KindIntent   Kind = "intent"
	KindEnrolled Kind = "enrolled"
	KindGranted  Kind = "granted"
	KindDenied   Kind = "denied"
	KindFault    Kind = "fault"
)

// Event is a single lock event suitable for JSON and MQTT.
type Event struct {
	Attempt   string    `json:"attempt,omitempty"` // shared by all events of one button interaction
	Time      time.Time `json:"time"`
	Kind      Kind      `json:"kind"`
	State     string    `json:"state"`
	Intent    string    `json:"intent,omitempty"`
	HoldTicks int       `json:"hold_ticks,omitempty"`
	Score     int       `json:"score,omitempty"`
	Enrolled  bool      `json:"enrolled"` // a password is stored after this event
	Fault     string    `json:"fault,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// NewAttempt returns a fresh attempt ID.
func NewAttempt() string {
	return uuid.NewString()
}

// Sink receives events.
type Sink interface {
	Publish(ev Event) error
}

// Multi fans an event out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Publish(ev Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(Event) error { return nil }

// Memory keeps every event in order.
type Memory struct {
	Events []Event
}

func (m *Memory) Publish(ev Event) error {
	m.Events = append(m.Events, ev)
	return nil
}

// Kinds returns the kinds of the recorded events in order.
func (m *Memory) Kinds() []Kind {
	out := make([]Kind, len(m.Events))
	for i, ev := range m.Events {
		out[i] = ev.Kind
	}
	return out
}

// Marshal encodes ev as JSON.
func Marshal(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

// Unmarshal decodes a JSON event.
func Unmarshal(payload []byte) (Event, error) {
	var ev Event
	err := json.Unmarshal(payload, &ev)
	return ev, err
}
