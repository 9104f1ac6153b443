package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/relabs-tech/gesture_lock/internal/timing"
)

func TestBlink_EvenTogglesRestoreState(t *testing.T) {
	l := NewMemory("green", nil)
	clk := &timing.Fake{}

	Blink(l, clk, 6, 500*time.Millisecond)

	assert.False(t, l.On)
	assert.Equal(t, 6, l.Changes)
	assert.Equal(t, 3*time.Second, clk.Elapsed)
}

func TestPulse(t *testing.T) {
	l := NewMemory("blue", nil)
	var onDuring bool
	clk := &timing.Fake{OnSleep: func(time.Duration) { onDuring = l.On }}

	Pulse(l, clk, 50*time.Millisecond)

	assert.True(t, onDuring)
	assert.False(t, l.On)
	assert.Equal(t, 50*time.Millisecond, clk.Elapsed)
}

func TestPanel_Off(t *testing.T) {
	p, lights := NewMemoryPanel(nil)
	for _, l := range lights {
		l.Set(true)
	}
	p.Off()
	for name, l := range lights {
		assert.False(t, l.On, name)
	}
}

func TestMemory_SetSameValueIsNotAChange(t *testing.T) {
	l := NewMemory("red", nil)
	l.Set(false)
	l.Set(true)
	l.Set(true)
	assert.Equal(t, 1, l.Changes)
}
