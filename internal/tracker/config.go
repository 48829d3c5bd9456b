// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package tracker

import (
	"math"
)

// Point is a pointer position in device pixels, suitable for JSON and MQTT.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Config holds the per-session tracking parameters. It is constructed once
// and never mutated by the engine; sensitivity in delta mode is the only
// runtime-adjustable knob and lives on the DeltaTracker itself.
type Config struct {
	ScreenWidth  float64
	ScreenHeight float64

	// MaxTilt is the tilt angle (radians) that maps to the screen edge in
	// absolute mode.
	MaxTilt float64

	// Alpha is the exponential smoothing factor in (0, 1]; 1 disables
	// smoothing.
	Alpha float64

	// SmoothingWindow is the moving-average window used by the delta
	// tracker.
	SmoothingWindow int

	// DeadzonePixels suppresses absolute-mode displacements closer than
	// this to the screen center.
	DeadzonePixels float64

	// DeadzoneAngle suppresses delta-mode rotation components (radians)
	// smaller than this.
	DeadzoneAngle float64

	// Sensitivity scales delta-mode rotation angles to pixels.
	Sensitivity float64

	// Hybrid strategy blend weights. Inherited tuning, not derived from
	// data; kept configurable.
	EulerWeight     float64
	SphericalWeight float64
}

// DefaultConfig mirrors the defaults the system was tuned with: 800x600
// screen, 45° max tilt, light smoothing, small deadzones.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:     800,
		ScreenHeight:    600,
		MaxTilt:         45 * math.Pi / 180,
		Alpha:           0.7,
		SmoothingWindow: 5,
		DeadzonePixels:  10,
		DeadzoneAngle:   0.001,
		Sensitivity:     500,
		EulerWeight:     0.8,
		SphericalWeight: 0.2,
	}
}

// CenterX returns the horizontal screen center.
func (c Config) CenterX() float64 { return c.ScreenWidth / 2 }

// CenterY returns the vertical screen center.
func (c Config) CenterY() float64 { return c.ScreenHeight / 2 }

// SensitivityX is the pixels-per-radian scale so that ±MaxTilt spans the
// full screen width.
func (c Config) SensitivityX() float64 { return c.ScreenWidth / (2 * c.MaxTilt) }

// SensitivityY is the pixels-per-radian scale for the screen height.
func (c Config) SensitivityY() float64 { return c.ScreenHeight / (2 * c.MaxTilt) }

// clampTilt limits an angle to the configured tilt range.
func (c Config) clampTilt(angle float64) float64 {
	return math.Max(-c.MaxTilt, math.Min(c.MaxTilt, angle))
}
