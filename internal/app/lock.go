// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"

	"github.com/relabs-tech/gesture_lock/internal/button"
	"github.com/relabs-tech/gesture_lock/internal/config"
	"github.com/relabs-tech/gesture_lock/internal/events"
	"github.com/relabs-tech/gesture_lock/internal/lock"
	"github.com/relabs-tech/gesture_lock/internal/sensors"
)

// RunLock drives the lock on real hardware until ctx is cancelled.
func RunLock(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	hw, err := sensors.Open(cfg, log)
	if err != nil {
		return err
	}
	defer hw.Close()

	sink, closeSinks := openSinks(cfg, hw.Bus, log)
	defer closeSinks()

	ctl := newController(cfg, hw, sink, log)
	// a failed self-test is already logged and latched on the fault LED
	_ = ctl.Startup(hw.Accel)

	if err := ctl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("lock: shutting down")
	return nil
}

// RunSelfTest checks the accelerometer identity and sweeps the LEDs once.
func RunSelfTest(cfg *config.Config, log *zap.Logger) error {
	hw, err := sensors.Open(cfg, log)
	if err != nil {
		return err
	}
	defer hw.Close()

	if err := newController(cfg, hw, events.Discard{}, log).Startup(hw.Accel); err != nil {
		return fmt.Errorf("self-test: %w", err)
	}
	s, err := hw.Accel.ReadSample()
	if err != nil {
		return fmt.Errorf("self-test: read sample: %w", err)
	}
	log.Info("self-test: passed",
		zap.Float64("x", s.X), zap.Float64("y", s.Y), zap.Float64("z", s.Z))
	return nil
}

func newController(cfg *config.Config, hw *sensors.Hardware, sink events.Sink, log *zap.Logger) *lock.Controller {
	tol := cfg.Tolerance()
	return lock.New(lock.Options{
		Button:        hw.Button,
		Source:        hw.Accel,
		Panel:         hw.Panel,
		Tolerance:     &tol,
		HoldThreshold: button.HoldDuration(cfg.HoldEnrollTicks),
		Sink:          sink,
		Logger:        log,
	})
}

// OpenSimulationSinks opens the MQTT and serial observers so a simulated
// run can feed the console and web tools without hardware.
func OpenSimulationSinks(cfg *config.Config, log *zap.Logger) (events.Sink, func()) {
	return openSinks(cfg, nil, log)
}

// openSinks opens every configured event observer. An observer that fails
// to open is skipped; the lock works without any of them. The display needs
// a bus and is skipped without one.
func openSinks(cfg *config.Config, bus i2c.Bus, log *zap.Logger) (events.Sink, func()) {
	var (
		sinks   events.Multi
		closers []func()
	)

	if cfg.MQTTBroker != "" {
		if client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDLock, log); err != nil {
			log.Warn("lock: mqtt disabled", zap.Error(err))
		} else {
			sinks = append(sinks, events.NewMQTTSink(client, cfg.TopicEvents))
			closers = append(closers, func() { client.Disconnect(250) })
			log.Info("lock: publishing events", zap.String("topic", cfg.TopicEvents))
		}
	}

	if cfg.SerialPort != "" {
		if port, err := openSerial(cfg.SerialPort, cfg.SerialBaudRate); err != nil {
			log.Warn("lock: serial panel disabled", zap.Error(err))
		} else {
			sinks = append(sinks, events.NewWriterSink(port))
			closers = append(closers, func() { port.Close() })
			log.Info("lock: serial panel open", zap.String("port", cfg.SerialPort), zap.Int("baud", cfg.SerialBaudRate))
		}
	}

	if cfg.DisplayEnabled && bus != nil {
		if dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts); err != nil {
			log.Warn("lock: status display disabled", zap.Error(err))
		} else {
			sinks = append(sinks, NewStatusDisplay(dev))
			closers = append(closers, func() { dev.Halt() })
			log.Info("lock: status display ready")
		}
	}

	return sinks, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}
