// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/gesture_lock/internal/config"
	"github.com/relabs-tech/gesture_lock/internal/indicator"
)

// Hardware is everything the lock talks to on the board.
type Hardware struct {
	Bus    i2c.BusCloser
	Accel  *MMA8451
	Button *Button
	Panel  indicator.Panel
}

// Open initializes periph, the I2C bus, the accelerometer, the button and
// the four LEDs. The accelerometer is configured but its identity is not
// checked here; the lock does that at startup.
func Open(cfg *config.Config, log *zap.Logger) (*Hardware, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("i2c open %q: %w", cfg.I2CBus, err)
	}
	if err := bus.SetSpeed(physic.Frequency(cfg.I2CSpeedKHz) * physic.KiloHertz); err != nil {
		log.Warn("sensors: i2c speed not applied", zap.Int("khz", cfg.I2CSpeedKHz), zap.Error(err))
	}

	hw := &Hardware{Bus: bus}
	hw.Accel = NewMMA8451(&i2c.Dev{Bus: bus, Addr: cfg.AccelI2CAddr}, cfg.AccelCheckDataReady)
	if err := hw.Accel.Configure(); err != nil {
		// the self-test reports a dead sensor; keep going like the rest of the lock
		log.Warn("sensors: accelerometer configuration failed", zap.Error(err))
	}
	log.Info("sensors: accelerometer on i2c",
		zap.String("bus", bus.String()),
		zap.String("addr", fmt.Sprintf("0x%02X", cfg.AccelI2CAddr)),
		zap.Bool("check_data_ready", cfg.AccelCheckDataReady))

	if hw.Button, err = OpenButton(cfg.ButtonPin, cfg.ButtonActiveLow); err != nil {
		bus.Close()
		return nil, err
	}

	leds := make([]*LED, 4)
	for i, name := range []string{cfg.LEDWhitePin, cfg.LEDBluePin, cfg.LEDGreenPin, cfg.LEDRedPin} {
		if leds[i], err = OpenLED(name, log); err != nil {
			bus.Close()
			return nil, err
		}
	}
	hw.Panel = indicator.Panel{
		Listening: leds[0],
		Capture:   leds[1],
		Success:   leds[2],
		Fault:     leds[3],
	}
	log.Info("sensors: gpio ready",
		zap.String("button", cfg.ButtonPin),
		zap.Bool("active_low", cfg.ButtonActiveLow))

	return hw, nil
}

// Close switches the LEDs off and releases the bus.
func (h *Hardware) Close() error {
	h.Panel.Off()
	return h.Bus.Close()
}
