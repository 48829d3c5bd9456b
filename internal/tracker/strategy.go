// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package tracker

import (
	"fmt"
	"math"

	"github.com/relabs-tech/pointer_computer/internal/quat"
)

// Strategy selects how an absolute orientation maps to a planar
// displacement. The five strategies trade accuracy against speed and
// intuitiveness; Euler is the default.
type Strategy string

const (
	StrategyEuler          Strategy = "euler"
	StrategyDirect         Strategy = "direct"
	StrategyRotationMatrix Strategy = "rotmatrix"
	StrategySpherical      Strategy = "spherical"
	StrategyHybrid         Strategy = "hybrid"
)

// Strategies lists all projection strategies in comparison order.
var Strategies = []Strategy{
	StrategyEuler,
	StrategyDirect,
	StrategyRotationMatrix,
	StrategySpherical,
	StrategyHybrid,
}

// ParseStrategy maps a config value to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q", name)
}

// Project maps a normalized quaternion to an unclamped screen-space
// displacement using the given strategy. The caller is responsible for
// normalization; non-unit input drifts numerically but never crashes.
// The result still needs post-processing before it is a usable Point.
func Project(s Strategy, q quat.Quaternion, cfg Config) (x, y float64) {
	switch s {
	case StrategyDirect:
		return projectDirect(q, cfg)
	case StrategyRotationMatrix:
		return projectRotationMatrix(q, cfg)
	case StrategySpherical:
		return projectSpherical(q, cfg)
	case StrategyHybrid:
		return projectHybrid(q, cfg)
	default:
		return projectEuler(q, cfg)
	}
}

// projectEuler maps clamped roll to X and clamped pitch to Y. Pitch is
// inverted so tilting forward moves the pointer up.
func projectEuler(q quat.Quaternion, cfg Config) (float64, float64) {
	e := quat.ToEuler(q)
	x := cfg.CenterX() + cfg.clampTilt(e.Roll)*cfg.SensitivityX()
	y := cfg.CenterY() - cfg.clampTilt(e.Pitch)*cfg.SensitivityY()
	return x, y
}

// projectDirect scales the raw x/y quaternion components. Cheapest of the
// five and the least physically meaningful; kept as a speed baseline.
func projectDirect(q quat.Quaternion, cfg Config) (float64, float64) {
	x := cfg.CenterX() + q.X*cfg.SensitivityX()*2
	y := cfg.CenterY() + q.Y*cfg.SensitivityY()*2
	return x, y
}

// projectRotationMatrix pushes the reference vector (0,0,1) through the full
// rotation matrix and maps the rotated X/Y onto the screen. Most expensive,
// most faithful for compound rotations.
func projectRotationMatrix(q quat.Quaternion, cfg Config) (float64, float64) {
	m := quat.ToRotationMatrix(q)
	// R * (0,0,1) is just the third column.
	rx := m[0][2]
	ry := m[1][2]
	x := cfg.CenterX() + rx*cfg.SensitivityX()
	y := cfg.CenterY() - ry*cfg.SensitivityY()
	return x, y
}

// projectSpherical maps azimuth to X and elevation to Y, both clamped to the
// tilt range. Elevation uses the same singularity clamp as pitch.
func projectSpherical(q quat.Quaternion, cfg Config) (float64, float64) {
	azimuth := math.Atan2(2*(q.W*q.Z+q.X*q.Y), 1-2*(q.Y*q.Y+q.Z*q.Z))

	sinElev := 2 * (q.W*q.Y - q.Z*q.X)
	var elevation float64
	if math.Abs(sinElev) >= 1 {
		elevation = math.Copysign(math.Pi/2, sinElev)
	} else {
		elevation = math.Asin(sinElev)
	}

	x := cfg.CenterX() + cfg.clampTilt(azimuth)*cfg.SensitivityX()
	y := cfg.CenterY() - cfg.clampTilt(elevation)*cfg.SensitivityY()
	return x, y
}

// projectHybrid blends the Euler and spherical projections. The default
// 0.8/0.2 split favors Euler for normal use.
func projectHybrid(q quat.Quaternion, cfg Config) (float64, float64) {
	ex, ey := projectEuler(q, cfg)
	sx, sy := projectSpherical(q, cfg)
	x := ex*cfg.EulerWeight + sx*cfg.SphericalWeight
	y := ey*cfg.EulerWeight + sy*cfg.SphericalWeight
	return x, y
}

// Projector is the absolute-mode tracking engine: one strategy plus one
// post-processing pipeline. Not safe for concurrent use; one goroutine owns
// an instance.
type Projector struct {
	cfg       Config
	strategy  Strategy
	post      *PostProcessor
	lastEuler quat.EulerAngles
}

// NewProjector builds an absolute-mode engine with its own post-processor.
func NewProjector(cfg Config, s Strategy) *Projector {
	return &Projector{cfg: cfg, strategy: s, post: NewPostProcessor(cfg)}
}

// Update converts one orientation sample into a bounded screen point. The
// sample is normalized defensively before projection.
func (p *Projector) Update(q quat.Quaternion) Point {
	n := quat.Normalize(q)
	p.lastEuler = quat.ToEuler(n)
	x, y := Project(p.strategy, n, p.cfg)
	return p.post.Apply(x, y, p.cfg.Alpha < 1)
}

// LastEuler reports the Euler decomposition of the most recent sample, for
// diagnostics.
func (p *Projector) LastEuler() quat.EulerAngles { return p.lastEuler }

// Strategy returns the active projection strategy.
func (p *Projector) Strategy() Strategy { return p.strategy }

// SetStrategy switches the projection for future samples. Smoothing state
// carries over so the pointer does not jump on switch.
func (p *Projector) SetStrategy(s Strategy) { p.strategy = s }

// Reset returns the smoothing state to the screen center.
func (p *Projector) Reset() {
	p.post.Reset()
	p.lastEuler = quat.EulerAngles{}
}
