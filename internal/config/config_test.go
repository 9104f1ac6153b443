package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/gesture_lock/internal/gesture"
)

func TestParse_EmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, gesture.DefaultTolerance(), cfg.Tolerance())
	assert.Equal(t, 300, cfg.HoldEnrollTicks)
}

func TestParse_Values(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
# lock hardware
BUTTON_PIN = GPIO27
BUTTON_ACTIVE_LOW=false
ACCEL_I2C_ADDR=0x1C
ACCEL_CHECK_DATA_READY=true
I2C_BUS=1

MATCH_SLACK=0.5
MATCH_ACCEPT_ABOVE=150
HOLD_ENROLL_TICKS=200

MQTT_BROKER=tcp://localhost:1883
SERIAL_PORT=/dev/ttyAMA0
SERIAL_BAUD_RATE=115200
DISPLAY_ENABLED=1
`))
	require.NoError(t, err)

	assert.Equal(t, "GPIO27", cfg.ButtonPin)
	assert.False(t, cfg.ButtonActiveLow)
	assert.Equal(t, uint16(0x1C), cfg.AccelI2CAddr)
	assert.True(t, cfg.AccelCheckDataReady)
	assert.Equal(t, "1", cfg.I2CBus)
	assert.Equal(t, 200, cfg.HoldEnrollTicks)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTTBroker)
	assert.Equal(t, 115200, cfg.SerialBaudRate)
	assert.True(t, cfg.DisplayEnabled)

	tol := cfg.Tolerance()
	assert.Equal(t, 0.5, tol.Slack)
	assert.Equal(t, 0.7, tol.Narrow)
	assert.Equal(t, gesture.Score(150), tol.AcceptAbove)
}

func TestParse_Errors(t *testing.T) {
	for _, tc := range []struct {
		name, input, want string
	}{
		{"missing equals", "BUTTON_PIN", "invalid config line 1"},
		{"unknown key", "FOO=bar", `unknown config key: "FOO"`},
		{"bad int", "\nHOLD_ENROLL_TICKS=long", "config line 2: invalid HOLD_ENROLL_TICKS"},
		{"bad bool", "DISPLAY_ENABLED=maybe", "invalid DISPLAY_ENABLED"},
		{"bad float", "MATCH_WIDE=x", "invalid MATCH_WIDE"},
		{"10-bit address", "ACCEL_I2C_ADDR=0x3A0", "7-bit address"},
		{"zero hold", "HOLD_ENROLL_TICKS=0", "HOLD_ENROLL_TICKS must be positive"},
		{"inverted factors", "MATCH_NARROW=2", "MATCH_NARROW must be positive"},
		{"zero slack", "MATCH_SLACK=0", "MATCH_SLACK must be positive"},
		{"threshold too high", "MATCH_ACCEPT_ABOVE=200", "MATCH_ACCEPT_ABOVE must be 0-199"},
		{"empty button", "BUTTON_PIN=", "BUTTON_PIN is required"},
		{"serial without baud", "SERIAL_PORT=/dev/ttyS0\nSERIAL_BAUD_RATE=0", "SERIAL_BAUD_RATE is required"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gesture_lock_config.txt")
	require.NoError(t, os.WriteFile(path, []byte("TOPIC_EVENTS=lock/front_door\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lock/front_door", cfg.TopicEvents)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "failed to open config file")
}
