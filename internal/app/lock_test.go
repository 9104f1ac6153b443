package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/relabs-tech/gesture_lock/internal/config"
	"github.com/relabs-tech/gesture_lock/internal/events"
)

func TestOpenSimulationSinks_NothingConfigured(t *testing.T) {
	sink, closeSinks := OpenSimulationSinks(config.Default(), zap.NewNop())
	defer closeSinks()

	assert.Empty(t, sink)
	assert.NoError(t, sink.Publish(events.Event{Kind: events.KindStartup}))
}

func TestOpenSimulationSinks_SkipsUnavailableSerialPort(t *testing.T) {
	cfg := config.Default()
	cfg.SerialPort = filepath.Join(t.TempDir(), "no-such-tty")
	cfg.DisplayEnabled = true // no bus in simulation

	sink, closeSinks := OpenSimulationSinks(cfg, zap.NewNop())
	defer closeSinks()

	assert.Empty(t, sink)
}
