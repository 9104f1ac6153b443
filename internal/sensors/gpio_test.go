package sensors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestButton_ActiveLow(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO17"}
	b, err := newButton(pin, true)
	require.NoError(t, err)
	assert.Equal(t, gpio.PullUp, pin.P)

	pin.L = gpio.High
	assert.False(t, b.IsPressed())
	pin.L = gpio.Low
	assert.True(t, b.IsPressed())
}

func TestButton_ActiveHigh(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO17"}
	b, err := newButton(pin, false)
	require.NoError(t, err)
	assert.Equal(t, gpio.PullDown, pin.P)

	pin.L = gpio.Low
	assert.False(t, b.IsPressed())
	pin.L = gpio.High
	assert.True(t, b.IsPressed())
}

func TestLED_SetAndToggle(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO5", L: gpio.High}
	l, err := newLED("GPIO5", pin, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, gpio.Low, pin.L, "starts off")

	l.Set(true)
	assert.Equal(t, gpio.High, pin.L)
	l.Toggle()
	assert.Equal(t, gpio.Low, pin.L)
	l.Toggle()
	assert.Equal(t, gpio.High, pin.L)
}

func TestOpenButton_UnknownPin(t *testing.T) {
	_, err := OpenButton("NO_SUCH_PIN_42", true)
	assert.ErrorContains(t, err, "not found")
}
