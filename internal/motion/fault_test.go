package motion

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensorFault_Unwraps(t *testing.T) {
	err := fmt.Errorf("enroll: %w", &SensorFault{Index: 42, Err: ErrBusError})

	var fault *SensorFault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, 42, fault.Index)
	assert.ErrorIs(t, err, ErrBusError)
	assert.NotErrorIs(t, err, ErrNotReady)
	assert.Contains(t, err.Error(), "sample 42")
}

func TestFaultKind(t *testing.T) {
	assert.Equal(t, "not_ready", FaultKind(&SensorFault{Err: ErrNotReady}))
	assert.Equal(t, "bus_error", FaultKind(&SensorFault{Err: ErrBusError}))
	assert.Equal(t, "unknown", FaultKind(errors.New("boom")))
}

func TestMockSource_RepeatsEveryPeriod(t *testing.T) {
	src := NewMockSource(1, 0, 1)

	first := make([]Sample, mockPeriod)
	for i := range first {
		s, err := src.ReadSample()
		require.NoError(t, err)
		first[i] = s
	}
	for i := range first {
		s, err := src.ReadSample()
		require.NoError(t, err)
		assert.InDelta(t, first[i].X, s.X, 1e-9)
		assert.InDelta(t, first[i].Y, s.Y, 1e-9)
		assert.InDelta(t, first[i].Z, s.Z, 1e-9)
	}
}

func TestMockSource_NegativeGainMirrors(t *testing.T) {
	a := NewMockSource(1, 0, 7)
	b := NewMockSource(-1, 0, 7)
	for i := 0; i < 10; i++ {
		sa, _ := a.ReadSample()
		sb, _ := b.ReadSample()
		assert.Equal(t, sa.Negate(), sb)
	}
}
