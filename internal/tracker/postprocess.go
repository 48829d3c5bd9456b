// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package tracker

import (
	"math"
)

// PostProcessor turns a raw, possibly unbounded displacement into a stable
// bounded screen point: deadzone, then exponential smoothing, then a hard
// clamp to [0,width]x[0,height]. It owns the previous smoothed point, so one
// instance serves one tracking session.
type PostProcessor struct {
	cfg   Config
	prevX float64
	prevY float64
}

// NewPostProcessor starts the smoothing state at the screen center.
func NewPostProcessor(cfg Config) *PostProcessor {
	return &PostProcessor{cfg: cfg, prevX: cfg.CenterX(), prevY: cfg.CenterY()}
}

// Apply runs the full pipeline on a raw point. Smoothing may be disabled per
// call (strategy comparison runs with it off); the clamp always applies.
func (p *PostProcessor) Apply(x, y float64, smooth bool) Point {
	cx, cy := p.cfg.CenterX(), p.cfg.CenterY()

	// Deadzone: snap low-amplitude jitter back to center.
	dx := x - cx
	dy := y - cy
	if math.Sqrt(dx*dx+dy*dy) < p.cfg.DeadzonePixels {
		x, y = cx, cy
	}

	if smooth {
		x = p.cfg.Alpha*x + (1-p.cfg.Alpha)*p.prevX
		y = p.cfg.Alpha*y + (1-p.cfg.Alpha)*p.prevY
		p.prevX = x
		p.prevY = y
	}

	return Point{
		X: math.Max(0, math.Min(p.cfg.ScreenWidth, x)),
		Y: math.Max(0, math.Min(p.cfg.ScreenHeight, y)),
	}
}

// Reset returns the smoothing state to the screen center.
func (p *PostProcessor) Reset() {
	p.prevX = p.cfg.CenterX()
	p.prevY = p.cfg.CenterY()
}
