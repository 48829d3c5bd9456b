package config

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/relabs-tech/pointer_computer/internal/tracker"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDTracker  string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string

	// Topics
	TopicQuat    string
	TopicPointer string
	TopicEuler   string

	// Screen geometry (pixels)
	ScreenWidth  float64
	ScreenHeight float64

	// Tracking engine
	// MaxTiltDegrees is the tilt that maps to the screen edge in absolute mode.
	MaxTiltDegrees float64
	// SmoothingAlpha in (0,1]; 1 disables exponential smoothing.
	SmoothingAlpha float64
	// SmoothingWindow is the delta-mode moving-average window (samples).
	SmoothingWindow int
	DeadzonePixels  float64
	DeadzoneAngle   float64
	Sensitivity     float64
	// Strategy: "euler", "direct", "rotmatrix", "spherical", "hybrid"
	Strategy string
	// TrackingMode: "absolute" (tilt position) or "relative" (mouse-like)
	TrackingMode          string
	HybridEulerWeight     float64
	HybridSphericalWeight float64

	// Sample source: "mock", "replay", or "serial"
	SampleSource   string
	ReplayFile     string
	SerialPort     string
	SerialBaudRate uint

	// Timing
	SampleInterval int // milliseconds

	// Web Server
	WebServerPort int
	// TrailLength bounds the number of recent positions kept for the web UI.
	TrailLength int
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported so other packages cannot access it directly.
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: RWMutex protects concurrent access across goroutines.
//
// External code must use InitGlobal() to set and Get() to read.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := defaults()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
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

// defaults returns a Config pre-filled with the engine's tuned defaults so a
// minimal config file only needs the MQTT and source settings.
func defaults() *Config {
	return &Config{
		TopicQuat:             "pointer/quat",
		TopicPointer:          "pointer/position",
		TopicEuler:            "pointer/euler",
		ScreenWidth:           800,
		ScreenHeight:          600,
		MaxTiltDegrees:        45,
		SmoothingAlpha:        0.7,
		SmoothingWindow:       5,
		DeadzonePixels:        10,
		DeadzoneAngle:         0.001,
		Sensitivity:           500,
		Strategy:              string(tracker.StrategyEuler),
		TrackingMode:          "absolute",
		HybridEulerWeight:     0.8,
		HybridSphericalWeight: 0.2,
		SampleSource:          "mock",
		SerialBaudRate:        115200,
		SampleInterval:        100,
		WebServerPort:         8080,
		TrailLength:           100,
	}
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_TRACKER":
		c.MQTTClientIDTracker = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value

	// Topics
	case "TOPIC_QUAT":
		c.TopicQuat = value
	case "TOPIC_POINTER":
		c.TopicPointer = value
	case "TOPIC_EULER":
		c.TopicEuler = value

	// Screen geometry
	case "SCREEN_WIDTH":
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid SCREEN_WIDTH %q: %w", value, err)
		}
		c.ScreenWidth = w
	case "SCREEN_HEIGHT":
		h, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid SCREEN_HEIGHT %q: %w", value, err)
		}
		c.ScreenHeight = h

	// Tracking engine
	case "MAX_TILT_DEGREES":
		deg, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_TILT_DEGREES %q: %w", value, err)
		}
		if deg <= 0 || deg > 90 {
			return fmt.Errorf("MAX_TILT_DEGREES must be in (0, 90], got %v", deg)
		}
		c.MaxTiltDegrees = deg
	case "SMOOTHING_ALPHA":
		a, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid SMOOTHING_ALPHA %q: %w", value, err)
		}
		if a <= 0 || a > 1 {
			return fmt.Errorf("SMOOTHING_ALPHA must be in (0, 1], got %v", a)
		}
		c.SmoothingAlpha = a
	case "SMOOTHING_WINDOW":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SMOOTHING_WINDOW %q: %w", value, err)
		}
		if n < 1 {
			return fmt.Errorf("SMOOTHING_WINDOW must be >= 1, got %d", n)
		}
		c.SmoothingWindow = n
	case "DEADZONE_PIXELS":
		d, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid DEADZONE_PIXELS %q: %w", value, err)
		}
		c.DeadzonePixels = d
	case "DEADZONE_ANGLE":
		d, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid DEADZONE_ANGLE %q: %w", value, err)
		}
		c.DeadzoneAngle = d
	case "SENSITIVITY":
		s, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid SENSITIVITY %q: %w", value, err)
		}
		c.Sensitivity = s
	case "STRATEGY":
		if _, err := tracker.ParseStrategy(value); err != nil {
			return err
		}
		c.Strategy = value
	case "TRACKING_MODE":
		if value != "absolute" && value != "relative" {
			return fmt.Errorf("TRACKING_MODE must be \"absolute\" or \"relative\", got %q", value)
		}
		c.TrackingMode = value
	case "HYBRID_EULER_WEIGHT":
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid HYBRID_EULER_WEIGHT %q: %w", value, err)
		}
		c.HybridEulerWeight = w
	case "HYBRID_SPHERICAL_WEIGHT":
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid HYBRID_SPHERICAL_WEIGHT %q: %w", value, err)
		}
		c.HybridSphericalWeight = w

	// Sample source
	case "SAMPLE_SOURCE":
		if value != "mock" && value != "replay" && value != "serial" {
			return fmt.Errorf("SAMPLE_SOURCE must be \"mock\", \"replay\" or \"serial\", got %q", value)
		}
		c.SampleSource = value
	case "REPLAY_FILE":
		c.ReplayFile = value
	case "SERIAL_PORT":
		c.SerialPort = value
	case "SERIAL_BAUD_RATE":
		rate, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid SERIAL_BAUD_RATE %q: %w", value, err)
		}
		c.SerialBaudRate = uint(rate)

	// Timing
	case "SAMPLE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_INTERVAL %q: %w", value, err)
		}
		c.SampleInterval = interval

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port
	case "TRAIL_LENGTH":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TRAIL_LENGTH %q: %w", value, err)
		}
		if n < 1 {
			return fmt.Errorf("TRAIL_LENGTH must be >= 1, got %d", n)
		}
		c.TrailLength = n

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set and consistent.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("SCREEN_WIDTH and SCREEN_HEIGHT must be positive")
	}
	if c.SampleInterval <= 0 {
		return fmt.Errorf("SAMPLE_INTERVAL must be positive")
	}
	if c.SampleSource == "replay" && c.ReplayFile == "" {
		return fmt.Errorf("REPLAY_FILE is required when SAMPLE_SOURCE=replay")
	}
	if c.SampleSource == "serial" && c.SerialPort == "" {
		return fmt.Errorf("SERIAL_PORT is required when SAMPLE_SOURCE=serial")
	}
	return nil
}

// Tracker builds the engine configuration from the loaded values.
func (c *Config) Tracker() tracker.Config {
	return tracker.Config{
		ScreenWidth:     c.ScreenWidth,
		ScreenHeight:    c.ScreenHeight,
		MaxTilt:         c.MaxTiltDegrees * math.Pi / 180,
		Alpha:           c.SmoothingAlpha,
		SmoothingWindow: c.SmoothingWindow,
		DeadzonePixels:  c.DeadzonePixels,
		DeadzoneAngle:   c.DeadzoneAngle,
		Sensitivity:     c.Sensitivity,
		EulerWeight:     c.HybridEulerWeight,
		SphericalWeight: c.HybridSphericalWeight,
	}
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
