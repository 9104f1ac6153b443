// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady means the sensor had no new data when it was read.
	ErrNotReady = errors.New("accelerometer: no new data")
	// ErrBusError means the transport to the sensor failed.
	ErrBusError = errors.New("accelerometer: bus error")
)

// SensorFault reports the sample index at which a capture was aborted.
// Err wraps ErrNotReady or ErrBusError.
type SensorFault struct {
	Index int
	Err   error
}

func (f *SensorFault) Error() string {
	return fmt.Sprintf("sensor fault at sample %d: %v", f.Index, f.Err)
}

func (f *SensorFault) Unwrap() error { return f.Err }

// FaultKind returns a short label for logs and events: "not_ready",
// "bus_error" or "unknown".
func FaultKind(err error) string {
	switch {
	case errors.Is(err, ErrNotReady):
		return "not_ready"
	case errors.Is(err, ErrBusError):
		return "bus_error"
	default:
		return "unknown"
	}
}
