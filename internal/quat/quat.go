// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package quat

import (
	"math"
)

// Quaternion is a rotation expressed as (w, x, y, z). The engine treats it
// as unit-length after Normalize; callers feeding non-unit values get
// undefined (but non-crashing) numeric drift.
type Quaternion struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// EulerAngles holds roll/pitch/yaw in radians (x/y/z axis rotations).
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// Identity is the no-rotation quaternion.
var Identity = Quaternion{W: 1}

// Normalize scales q to unit length. A zero-magnitude quaternion (e.g. a
// transient all-zero sensor reading) normalizes to the identity instead of
// dividing by zero.
func Normalize(q Quaternion) Quaternion {
	norm := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if norm == 0 {
		return Identity
	}
	return Quaternion{W: q.W / norm, X: q.X / norm, Y: q.Y / norm, Z: q.Z / norm}
}

// Conjugate negates the vector part. For unit quaternions this is the
// inverse rotation.
func Conjugate(q Quaternion) Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Multiply returns the Hamilton product q1*q2. Order matters: the delta
// rotation from prev to cur is Multiply(cur, Conjugate(prev)).
func Multiply(q1, q2 Quaternion) Quaternion {
	return Quaternion{
		W: q1.W*q2.W - q1.X*q2.X - q1.Y*q2.Y - q1.Z*q2.Z,
		X: q1.W*q2.X + q1.X*q2.W + q1.Y*q2.Z - q1.Z*q2.Y,
		Y: q1.W*q2.Y - q1.X*q2.Z + q1.Y*q2.W + q1.Z*q2.X,
		Z: q1.W*q2.Z + q1.X*q2.Y - q1.Y*q2.X + q1.Z*q2.W,
	}
}

// ToEuler decomposes q into roll/pitch/yaw. At the gimbal-lock boundary
// (|sin pitch| >= 1) pitch is clamped to ±π/2 with the sign preserved.
func ToEuler(q Quaternion) EulerAngles {
	sinrCosp := 2 * (q.W*q.X + q.Y*q.Z)
	cosrCosp := 1 - 2*(q.X*q.X+q.Y*q.Y)
	roll := math.Atan2(sinrCosp, cosrCosp)

	sinp := 2 * (q.W*q.Y - q.Z*q.X)
	var pitch float64
	if math.Abs(sinp) >= 1 {
		pitch = math.Copysign(math.Pi/2, sinp)
	} else {
		pitch = math.Asin(sinp)
	}

	sinyCosp := 2 * (q.W*q.Z + q.X*q.Y)
	cosyCosp := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	yaw := math.Atan2(sinyCosp, cosyCosp)

	return EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}
}

// ToRotationMatrix expands q into the standard 3x3 rotation matrix.
func ToRotationMatrix(q Quaternion) [3][3]float64 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return [3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}

// ToForwardVector returns the image of the unit forward axis (0,0,1) under
// the rotation q.
func ToForwardVector(q Quaternion) [3]float64 {
	return [3]float64{
		2 * (q.X*q.Z + q.W*q.Y),
		2 * (q.Y*q.Z - q.W*q.X),
		1 - 2*(q.X*q.X+q.Y*q.Y),
	}
}

// FromEuler builds the quaternion for the given roll/pitch/yaw. Used by the
// mock source and tests to synthesize orientation streams.
func FromEuler(roll, pitch, yaw float64) Quaternion {
	cr, sr := math.Cos(roll/2), math.Sin(roll/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)

	return Quaternion{
		W: cr*cp*cy + sr*sp*sy,
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}
}
