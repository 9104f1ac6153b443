package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/relabs-tech/gesture_lock/internal/gesture"
)

// Config holds all application configuration values.
type Config struct {
	// GPIO
	ButtonPin       string
	ButtonActiveLow bool
	LEDWhitePin     string // listening
	LEDBluePin      string // countdown / capture complete
	LEDGreenPin     string // granted
	LEDRedPin       string // denied / fault

	// Accelerometer (MMA8451 on I2C)
	I2CBus              string // "" selects the first bus
	I2CSpeedKHz         int
	AccelI2CAddr        uint16
	AccelCheckDataReady bool

	// Lock behaviour
	HoldEnrollTicks  int // hold longer than this many 10ms ticks to enroll
	MatchNarrow      float64
	MatchWide        float64
	MatchSlack       float64
	MatchAcceptAbove int

	// MQTT (empty broker disables publishing)
	MQTTBroker          string
	MQTTClientIDLock    string
	MQTTClientIDConsole string
	MQTTClientIDWeb     string
	TopicEvents         string

	// Web Server
	WebServerPort int

	// Serial access panel (empty port disables it)
	SerialPort     string
	SerialBaudRate int

	// Status display (SSD1306 at 0x3C on the accelerometer bus)
	DisplayEnabled bool
}

// Default returns the configuration used for any key the file leaves out.
func Default() *Config {
	tol := gesture.DefaultTolerance()
	return &Config{
		ButtonPin:       "GPIO17",
		ButtonActiveLow: true,
		LEDWhitePin:     "GPIO5",
		LEDBluePin:      "GPIO6",
		LEDGreenPin:     "GPIO13",
		LEDRedPin:       "GPIO19",

		I2CBus:              "",
		I2CSpeedKHz:         100,
		AccelI2CAddr:        0x1D,
		AccelCheckDataReady: false,

		HoldEnrollTicks:  300,
		MatchNarrow:      tol.Narrow,
		MatchWide:        tol.Wide,
		MatchSlack:       tol.Slack,
		MatchAcceptAbove: int(tol.AcceptAbove),

		MQTTBroker:          "",
		MQTTClientIDLock:    "gesture-lock",
		MQTTClientIDConsole: "gesture-lock-console",
		MQTTClientIDWeb:     "gesture-lock-web",
		TopicEvents:         "gesture_lock/events",

		WebServerPort: 8080,

		SerialPort:     "",
		SerialBaudRate: 9600,

		DisplayEnabled: false,
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads KEY=VALUE lines on top of Default(). Blank lines and lines
// starting with # are skipped.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	var err error
	switch key {
	// GPIO
	case "BUTTON_PIN":
		c.ButtonPin = value
	case "BUTTON_ACTIVE_LOW":
		c.ButtonActiveLow, err = parseBool(key, value)
	case "LED_WHITE_PIN":
		c.LEDWhitePin = value
	case "LED_BLUE_PIN":
		c.LEDBluePin = value
	case "LED_GREEN_PIN":
		c.LEDGreenPin = value
	case "LED_RED_PIN":
		c.LEDRedPin = value

	// Accelerometer
	case "I2C_BUS":
		c.I2CBus = value
	case "I2C_SPEED_KHZ":
		c.I2CSpeedKHz, err = parseInt(key, value)
	case "ACCEL_I2C_ADDR":
		c.AccelI2CAddr, err = parseAddr(key, value)
	case "ACCEL_CHECK_DATA_READY":
		c.AccelCheckDataReady, err = parseBool(key, value)

	// Lock behaviour
	case "HOLD_ENROLL_TICKS":
		c.HoldEnrollTicks, err = parseInt(key, value)
	case "MATCH_NARROW":
		c.MatchNarrow, err = parseFloat(key, value)
	case "MATCH_WIDE":
		c.MatchWide, err = parseFloat(key, value)
	case "MATCH_SLACK":
		c.MatchSlack, err = parseFloat(key, value)
	case "MATCH_ACCEPT_ABOVE":
		c.MatchAcceptAbove, err = parseInt(key, value)

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_LOCK":
		c.MQTTClientIDLock = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "TOPIC_EVENTS":
		c.TopicEvents = value

	// Web Server
	case "WEB_SERVER_PORT":
		c.WebServerPort, err = parseInt(key, value)

	// Serial
	case "SERIAL_PORT":
		c.SerialPort = value
	case "SERIAL_BAUD_RATE":
		c.SerialBaudRate, err = parseInt(key, value)

	// Display
	case "DISPLAY_ENABLED":
		c.DisplayEnabled, err = parseBool(key, value)

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return err
}

func parseInt(key, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return v, nil
}

func parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return v, nil
}

func parseBool(key, value string) (bool, error) {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return v, nil
}

// parseAddr accepts decimal or 0x-prefixed 7-bit I2C addresses.
func parseAddr(key, value string) (uint16, error) {
	addr, err := strconv.ParseUint(value, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if addr > 0x7F {
		return 0, fmt.Errorf("%s must be a 7-bit address, got 0x%X", key, addr)
	}
	return uint16(addr), nil
}

// validate checks that all required fields are set and consistent.
func (c *Config) validate() error {
	if c.ButtonPin == "" {
		return fmt.Errorf("BUTTON_PIN is required")
	}
	if c.LEDWhitePin == "" || c.LEDBluePin == "" || c.LEDGreenPin == "" || c.LEDRedPin == "" {
		return fmt.Errorf("LED_WHITE_PIN, LED_BLUE_PIN, LED_GREEN_PIN and LED_RED_PIN are required")
	}
	if c.I2CSpeedKHz <= 0 {
		return fmt.Errorf("I2C_SPEED_KHZ must be positive, got %d", c.I2CSpeedKHz)
	}
	if c.HoldEnrollTicks <= 0 {
		return fmt.Errorf("HOLD_ENROLL_TICKS must be positive, got %d", c.HoldEnrollTicks)
	}
	if c.MatchNarrow <= 0 || c.MatchWide < c.MatchNarrow {
		return fmt.Errorf("MATCH_NARROW must be positive and not above MATCH_WIDE, got %g / %g", c.MatchNarrow, c.MatchWide)
	}
	if c.MatchSlack <= 0 {
		return fmt.Errorf("MATCH_SLACK must be positive, got %g", c.MatchSlack)
	}
	if c.MatchAcceptAbove < 0 || c.MatchAcceptAbove >= gesture.TraceLength {
		return fmt.Errorf("MATCH_ACCEPT_ABOVE must be 0-%d, got %d", gesture.TraceLength-1, c.MatchAcceptAbove)
	}
	if c.TopicEvents == "" {
		return fmt.Errorf("TOPIC_EVENTS is required")
	}
	if c.SerialPort != "" && c.SerialBaudRate <= 0 {
		return fmt.Errorf("SERIAL_BAUD_RATE is required when SERIAL_PORT is set")
	}
	return nil
}

// Tolerance returns the matcher constants.
func (c *Config) Tolerance() gesture.Tolerance {
	return gesture.Tolerance{
		Narrow:      c.MatchNarrow,
		Wide:        c.MatchWide,
		Slack:       c.MatchSlack,
		AcceptAbove: gesture.Score(c.MatchAcceptAbove),
	}
}
