// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"

	"github.com/relabs-tech/gesture_lock/internal/motion"
)

// MMA8451 register map (subset used by the lock).
const (
	regStatus     = 0x00 // DR_STATUS
	regOutXMSB    = 0x01 // start of the 6-byte X/Y/Z burst
	regWhoAmI     = 0x0D
	regXYZDataCfg = 0x0E
	regCtrlReg1   = 0x2A

	whoAmIMMA8451 = 0x1A

	statusZYXDR = 0x08 // new X, Y and Z data available

	ctrl1Active = 0x01
	ctrl1ODR50  = 0x04 << 3 // DR = 100b: 50 Hz

	fsRange4G   = 0x01
	countsPerG  = 2048.0 // 14-bit output at ±4g
	standardG   = 9.80665
	sampleBytes = 6
)

// MMA8451 default 7-bit addresses (SA0 high / low).
const (
	MMA8451Addr    = 0x1D
	MMA8451AltAddr = 0x1C
)

// ErrIdentityMismatch means WHO_AM_I did not return the MMA8451 ID.
var ErrIdentityMismatch = errors.New("accelerometer identity mismatch")

// MMA8451 reads acceleration from an NXP MMA8451 over any register
// connection, normally an *i2c.Dev.
type MMA8451 struct {
	c          conn.Conn
	checkReady bool
}

// NewMMA8451 wraps c. When checkReady is set, ReadSample first consults the
// status register and reports motion.ErrNotReady if no new data is latched.
func NewMMA8451(c conn.Conn, checkReady bool) *MMA8451 {
	return &MMA8451{c: c, checkReady: checkReady}
}

// Configure selects ±4g and switches the part to active mode at 50 Hz.
// CTRL_REG1 may only be changed in standby, so standby is entered first.
func (m *MMA8451) Configure() error {
	if err := m.writeReg(regCtrlReg1, 0); err != nil {
		return fmt.Errorf("mma8451 standby: %w", err)
	}
	if err := m.writeReg(regXYZDataCfg, fsRange4G); err != nil {
		return fmt.Errorf("mma8451 range: %w", err)
	}
	if err := m.writeReg(regCtrlReg1, ctrl1ODR50|ctrl1Active); err != nil {
		return fmt.Errorf("mma8451 active mode: %w", err)
	}
	return nil
}

// VerifyIdentity checks WHO_AM_I.
func (m *MMA8451) VerifyIdentity() error {
	id, err := m.readReg(regWhoAmI)
	if err != nil {
		return fmt.Errorf("mma8451 who_am_i: %w", err)
	}
	if id != whoAmIMMA8451 {
		return fmt.Errorf("%w: WHO_AM_I=0x%02X, want 0x%02X", ErrIdentityMismatch, id, whoAmIMMA8451)
	}
	return nil
}

// ReadSample reads X, Y and Z in m/s². Transport failures wrap
// motion.ErrBusError.
func (m *MMA8451) ReadSample() (motion.Sample, error) {
	if m.checkReady {
		st, err := m.readReg(regStatus)
		if err != nil {
			return motion.Sample{}, fmt.Errorf("%w: status: %w", motion.ErrBusError, err)
		}
		if st&statusZYXDR == 0 {
			return motion.Sample{}, motion.ErrNotReady
		}
	}

	var buf [sampleBytes]byte
	if err := m.c.Tx([]byte{regOutXMSB}, buf[:]); err != nil {
		return motion.Sample{}, fmt.Errorf("%w: out_x_msb: %w", motion.ErrBusError, err)
	}
	return motion.Sample{
		X: toMS2(buf[0], buf[1]),
		Y: toMS2(buf[2], buf[3]),
		Z: toMS2(buf[4], buf[5]),
	}, nil
}

// toMS2 converts a left-justified 14-bit reading to m/s².
func toMS2(msb, lsb byte) float64 {
	raw := int16(uint16(msb)<<8|uint16(lsb)) >> 2
	return float64(raw) / countsPerG * standardG
}

func (m *MMA8451) readReg(reg byte) (byte, error) {
	var b [1]byte
	if err := m.c.Tx([]byte{reg}, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (m *MMA8451) writeReg(reg, value byte) error {
	return m.c.Tx([]byte{reg, value}, nil)
}
