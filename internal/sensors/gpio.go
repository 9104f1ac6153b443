// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// Button is a polled push button. No debouncing is applied.
type Button struct {
	pin       gpio.PinIn
	activeLow bool
}

// OpenButton configures the named pin as an input. An active-low button
// gets the internal pull-up, an active-high one the pull-down.
func OpenButton(name string, activeLow bool) (*Button, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("button pin %q not found", name)
	}
	return newButton(pin, activeLow)
}

func newButton(pin gpio.PinIn, activeLow bool) (*Button, error) {
	pull := gpio.PullDown
	if activeLow {
		pull = gpio.PullUp
	}
	if err := pin.In(pull, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("button pin %s: %w", pin, err)
	}
	return &Button{pin: pin, activeLow: activeLow}, nil
}

func (b *Button) IsPressed() bool {
	level := b.pin.Read()
	if b.activeLow {
		return level == gpio.Low
	}
	return level == gpio.High
}

// LED is a GPIO-driven indicator light. Write failures are logged; a dead
// LED must not stop the lock.
type LED struct {
	name string
	pin  gpio.PinOut
	on   bool
	log  *zap.Logger
}

// OpenLED configures the named pin as an output, initially off.
func OpenLED(name string, log *zap.Logger) (*LED, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("LED pin %q not found", name)
	}
	return newLED(name, pin, log)
}

func newLED(name string, pin gpio.PinOut, log *zap.Logger) (*LED, error) {
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("LED pin %s: %w", name, err)
	}
	return &LED{name: name, pin: pin, log: log}, nil
}

func (l *LED) Set(on bool) {
	if err := l.pin.Out(gpio.Level(on)); err != nil {
		l.log.Warn("led: write failed", zap.String("pin", l.name), zap.Error(err))
		return
	}
	l.on = on
}

func (l *LED) Toggle() { l.Set(!l.on) }
