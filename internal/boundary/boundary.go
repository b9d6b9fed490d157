// Package boundary provides the stability policies applied after each tick.
//
// Every policy implements [dynamo.Boundary]. A scenario picks exactly one:
//
//   - [Walls]: reflective box with optional damping
//   - [Room]: the earliest scenario's box, asymmetric on the vertical axis
//   - [Escape]: freezes bodies that leave a sphere around the origin
//   - [None]: leaves state untouched
package boundary

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/dynamo"
)

// None applies no policy.
type None struct{}

func (None) Apply([]dynamo.Body) {}

// Walls is an axis-aligned cube of half-width Limit centered on the origin.
// A coordinate outside [-Limit, Limit] is clamped to the wall it crossed and
// the matching velocity component is reversed and scaled by Damping.
type Walls struct {
	Limit   float64
	Damping float64
}

// NewWalls returns elastic walls.
func NewWalls(limit float64) *Walls {
	return &Walls{Limit: limit, Damping: 1.0}
}

func (w *Walls) Apply(bodies []dynamo.Body) {
	for i := range bodies {
		b := &bodies[i]
		for axis := 0; axis < 3; axis++ {
			switch {
			case b.Position[axis] > w.Limit:
				b.Position[axis] = w.Limit
				b.Velocity[axis] *= -w.Damping
			case b.Position[axis] < -w.Limit:
				b.Position[axis] = -w.Limit
				b.Velocity[axis] *= -w.Damping
			}
		}
	}
}

// Room reflects symmetrically on x but treats y asymmetrically: the floor
// pins the body to -Limit and reverses its vertical velocity, while the
// ceiling leaves the position alone and sends the body back down. With a
// positive CeilingSpeed the downward speed is exactly CeilingSpeed,
// otherwise the vertical velocity is reversed and scaled by CeilingDamping.
// The z axis is unbounded.
type Room struct {
	Limit          float64
	CeilingDamping float64
	CeilingSpeed   float64
}

func (r *Room) Apply(bodies []dynamo.Body) {
	for i := range bodies {
		b := &bodies[i]

		if b.Position[0] > r.Limit {
			b.Position[0] = r.Limit
			b.Velocity[0] *= -1
		}
		if b.Position[0] < -r.Limit {
			b.Position[0] = -r.Limit
			b.Velocity[0] *= -1
		}

		if b.Position[1] > r.Limit {
			b.Velocity[1] *= -r.CeilingDamping
			if r.CeilingSpeed > 0 {
				b.Velocity[1] = -r.CeilingSpeed
			}
		}
		if b.Position[1] < -r.Limit {
			b.Velocity[1] *= -1
			b.Position[1] = -r.Limit
		}
	}
}

// Escape stops any body farther than Radius from the origin by zeroing its
// velocity. Positions are left where they are.
type Escape struct {
	Radius float64
}

func NewEscape(radius float64) *Escape {
	return &Escape{Radius: radius}
}

func (e *Escape) Apply(bodies []dynamo.Body) {
	r2 := e.Radius * e.Radius
	for i := range bodies {
		if bodies[i].Position.LenSqr() > r2 {
			bodies[i].Velocity = mgl64.Vec3{}
		}
	}
}

// Escaped reports whether a body is outside the escape radius.
func (e *Escape) Escaped(b dynamo.Body) bool {
	return b.Position.LenSqr() > e.Radius*e.Radius
}
