// Package engine drives piece movement: rigid transforms, continuous
// rotation, the movement-restriction state machine, and deterministic
// coloring. All operations are synchronous and tick-driven by the host;
// the engine keeps no timers and does no I/O.
package engine

import (
	"math"

	"github.com/piwi3910/ShapeBoard/internal/model"
)

// Apply produces the world-space polygon for a local outline under t.
// The order is fixed: mirror local x when flipped, rotate about the local
// origin (the shape's anchor), then translate to the board position.
func Apply(outline model.Outline, t model.Transform) model.Outline {
	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)
	out := make(model.Outline, len(outline))
	for i, p := range outline {
		x := p.X
		if t.Flip {
			x = -x
		}
		out[i] = model.Point2D{
			X: t.X + x*cos - p.Y*sin,
			Y: t.Y + x*sin + p.Y*cos,
		}
	}
	if t.Flip {
		// Mirroring reverses winding; restore CCW for the kernel.
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// NormalizeAngle wraps an angle in degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Rotation speed limits in degrees per second.
const (
	MinRotationSpeed = 1.0
	MaxRotationSpeed = 180.0
)

// RotationConfig holds the two host-configurable angular speeds. SlowMode
// selects which one continuous rotation uses.
type RotationConfig struct {
	FastDegPerSec float64 `json:"fast_deg_per_sec"`
	SlowDegPerSec float64 `json:"slow_deg_per_sec"`
	SlowMode      bool    `json:"slow_mode"`
}

// DefaultRotationConfig returns the stock fast/slow speeds.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{
		FastDegPerSec: 180.0,
		SlowDegPerSec: 15.0,
	}
}

// ActiveSpeed returns the speed selected by SlowMode, clamped into the
// valid range.
func (c RotationConfig) ActiveSpeed() float64 {
	s := c.FastDegPerSec
	if c.SlowMode {
		s = c.SlowDegPerSec
	}
	return clampSpeed(s)
}

func clampSpeed(s float64) float64 {
	if s < MinRotationSpeed {
		return MinRotationSpeed
	}
	if s > MaxRotationSpeed {
		return MaxRotationSpeed
	}
	return s
}

// Advanced returns t rotated by speed*dt in direction dir (+1 counter-
// clockwise, -1 clockwise), wrapped into [0, 360). Pure function: the
// caller decides whether the result is committed.
func Advanced(t model.Transform, speedDegPerSec, dt, dir float64) model.Transform {
	t.Rotation = NormalizeAngle(t.Rotation + dir*speedDegPerSec*dt)
	return t
}
