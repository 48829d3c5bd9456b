// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sample

import (
	"math"
	"time"

	"github.com/relabs-tech/pointer_computer/internal/quat"
)

// Sample is one raw orientation reading as it travels over the wire. The
// engine normalizes defensively, so producers are not required to emit
// unit quaternions.
type Sample struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion converts the wire sample to the engine's quaternion type.
func (s Sample) Quaternion() quat.Quaternion {
	return quat.Quaternion{W: s.W, X: s.X, Y: s.Y, Z: s.Z}
}

// FromQuaternion builds a wire sample from an engine quaternion.
func FromQuaternion(q quat.Quaternion) Sample {
	return Sample{W: q.W, X: q.X, Y: q.Y, Z: q.Z}
}

// Source is anything that can provide orientation samples over time:
// mock source, replay source from a recorded log, serial device, etc.
type Source interface {
	Next() (Sample, error)
}

type mockSource struct {
	start time.Time
}

// NewMockSource creates a mock orientation source that sweeps through
// smooth sinusoidal tilts, useful without any hardware attached.
func NewMockSource() Source {
	return &mockSource{start: time.Now()}
}

func (m *mockSource) Next() (Sample, error) {
	elapsed := time.Since(m.start).Seconds()

	pitch := 0.3 * math.Sin(elapsed*0.5)
	yaw := 0.4 * math.Sin(elapsed*0.7)
	roll := 0.1 * math.Sin(elapsed*1.2)

	return FromQuaternion(quat.FromEuler(roll, pitch, yaw)), nil
}
