// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package tracker

import (
	"math"

	"github.com/relabs-tech/pointer_computer/internal/quat"
)

// DeltaTracker accumulates a pointer position from relative rotation
// between consecutive samples, mouse-like, instead of mapping absolute
// tilt. Not safe for concurrent use; one goroutine owns an instance.
type DeltaTracker struct {
	cfg         Config
	sensitivity float64

	prev      *quat.Quaternion
	ring      *deltaRing
	x, y      float64
	lastEuler quat.EulerAngles
}

// NewDeltaTracker starts the pointer at the screen center with an empty
// history.
func NewDeltaTracker(cfg Config) *DeltaTracker {
	return &DeltaTracker{
		cfg:         cfg,
		sensitivity: cfg.Sensitivity,
		ring:        newDeltaRing(cfg.SmoothingWindow),
		x:           cfg.CenterX(),
		y:           cfg.CenterY(),
	}
}

// Update advances the pointer by the rotation since the previous sample.
// The first sample only establishes the reference orientation and produces
// no motion.
func (t *DeltaTracker) Update(q quat.Quaternion) Point {
	cur := quat.Normalize(q)

	if t.prev == nil {
		t.prev = &cur
		return Point{X: t.x, Y: t.y}
	}

	// Rotation from prev to cur.
	delta := quat.Normalize(quat.Multiply(cur, quat.Conjugate(*t.prev)))
	e := quat.ToEuler(delta)
	t.lastEuler = e

	// Per-component deadzone on the decomposed angles.
	dPitch := e.Pitch
	dYaw := e.Yaw
	if math.Abs(dPitch) < t.cfg.DeadzoneAngle {
		dPitch = 0
	}
	if math.Abs(dYaw) < t.cfg.DeadzoneAngle {
		dYaw = 0
	}

	// Yaw drives X; pitch drives Y, inverted so tilting up moves up.
	t.ring.push(dYaw*t.sensitivity, -dPitch*t.sensitivity)

	avgX, avgY := t.ring.average()
	t.x = math.Max(0, math.Min(t.cfg.ScreenWidth, t.x+avgX))
	t.y = math.Max(0, math.Min(t.cfg.ScreenHeight, t.y+avgY))

	t.prev = &cur
	return Point{X: t.x, Y: t.y}
}

// Position reports the current pointer position without consuming a sample.
func (t *DeltaTracker) Position() Point { return Point{X: t.x, Y: t.y} }

// LastEuler reports the Euler decomposition of the most recent delta
// rotation, for diagnostics.
func (t *DeltaTracker) LastEuler() quat.EulerAngles { return t.lastEuler }

// SetSensitivity adjusts the angle-to-pixel scale for future samples only;
// buffered history is never rescaled.
func (t *DeltaTracker) SetSensitivity(s float64) { t.sensitivity = s }

// Sensitivity returns the current angle-to-pixel scale.
func (t *DeltaTracker) Sensitivity() float64 { return t.sensitivity }

// Reset recenters the pointer and clears all history, so the next sample
// behaves exactly like the very first one. Safe to call at any time,
// idempotent.
func (t *DeltaTracker) Reset() {
	t.prev = nil
	t.ring.clear()
	t.x = t.cfg.CenterX()
	t.y = t.cfg.CenterY()
	t.lastEuler = quat.EulerAngles{}
}
