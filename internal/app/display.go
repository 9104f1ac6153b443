// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/relabs-tech/gesture_lock/internal/events"
	"github.com/relabs-tech/gesture_lock/internal/gesture"
)

// drawer is the part of *ssd1306.Dev the status display needs.
type drawer interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// StatusDisplay shows the latest lock event on a 128x64 OLED.
type StatusDisplay struct {
	dev drawer
}

func NewStatusDisplay(dev drawer) *StatusDisplay {
	return &StatusDisplay{dev: dev}
}

func (d *StatusDisplay) Publish(ev events.Event) error {
	img := renderStatus(ev, d.dev.Bounds())
	if err := d.dev.Draw(d.dev.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("display: draw: %w", err)
	}
	return nil
}

// statusLines returns the headline and detail line for ev.
func statusLines(ev events.Event) (string, string) {
	switch ev.Kind {
	case events.KindStartup:
		if ev.Fault != "" {
			return "SELF-TEST FAIL", "check sensor"
		}
		return "READY", ""
	case events.KindIntent:
		if ev.Intent == "enroll" {
			return "ENROLL", "move after blinks"
		}
		return "VERIFY", "move after blinks"
	case events.KindEnrolled:
		return "ENROLLED", ""
	case events.KindGranted:
		return "OPEN", fmt.Sprintf("score %d/%d", ev.Score, gesture.TraceLength)
	case events.KindDenied:
		return "DENIED", fmt.Sprintf("score %d/%d", ev.Score, gesture.TraceLength)
	case events.KindFault:
		return "SENSOR FAULT", ev.Fault
	default:
		return string(ev.Kind), ""
	}
}

func renderStatus(ev events.Event, bounds image.Rectangle) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(bounds)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	headline, detail := statusLines(ev)
	password := "no password"
	if ev.Enrolled {
		password = "password set"
	}

	drawer.Dot = fixed.P(0, 13)
	drawer.DrawString("GESTURE LOCK")
	drawer.Dot = fixed.P(0, 30)
	drawer.DrawString(headline)
	drawer.Dot = fixed.P(0, 45)
	drawer.DrawString(detail)
	drawer.Dot = fixed.P(0, 60)
	drawer.DrawString(password)

	return img
}
