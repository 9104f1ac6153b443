package indicator

import "go.uber.org/zap"

// Memory is a light held in process memory. It backs the simulator and
// tests, and logs every change at debug level when a logger is set.
type Memory struct {
	Name    string
	On      bool
	Changes int

	log *zap.Logger
}

// NewMemory returns a switched-off light.
func NewMemory(name string, log *zap.Logger) *Memory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Memory{Name: name, log: log}
}

func (m *Memory) Set(on bool) {
	if m.On != on {
		m.Changes++
	}
	m.On = on
	m.log.Debug("light", zap.String("name", m.Name), zap.Bool("on", on))
}

func (m *Memory) Toggle() { m.Set(!m.On) }

// NewMemoryPanel returns a panel of four memory lights named after their
// colour.
func NewMemoryPanel(log *zap.Logger) (Panel, map[string]*Memory) {
	lights := map[string]*Memory{
		"white": NewMemory("white", log),
		"blue":  NewMemory("blue", log),
		"green": NewMemory("green", log),
		"red":   NewMemory("red", log),
	}
	return Panel{
		Listening: lights["white"],
		Capture:   lights["blue"],
		Success:   lights["green"],
		Fault:     lights["red"],
	}, lights
}
