package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/dynamo"
)

// KineticEnergy returns sum(m v^2 / 2).
func KineticEnergy(bodies []dynamo.Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Mass * b.Velocity.LenSqr()
	}
	return ke
}

// PotentialEnergy returns the pairwise gravitational potential energy,
// skipping the same coincident pairs the force evaluation skips.
func (g *Gravity) PotentialEnergy(bodies []dynamo.Body) float64 {
	pe := 0.0
	eps2 := g.Softening * g.Softening
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			dist := bodies[j].Position.Sub(bodies[i].Position).Len()
			if dist < g.Epsilon {
				continue
			}
			pe -= g.G * bodies[i].Mass * bodies[j].Mass / math.Sqrt(dist*dist+eps2)
		}
	}
	return pe
}

// Energy returns kinetic plus potential energy of the system.
func (g *Gravity) Energy(bodies []dynamo.Body) float64 {
	return KineticEnergy(bodies) + g.PotentialEnergy(bodies)
}

// PotentialEnergy returns -sum(m a.p) for the constant field.
func (u *UniformField) PotentialEnergy(bodies []dynamo.Body) float64 {
	pe := 0.0
	for _, b := range bodies {
		pe -= b.Mass * u.Field.Dot(b.Position)
	}
	return pe
}

func (u *UniformField) Energy(bodies []dynamo.Body) float64 {
	return KineticEnergy(bodies) + u.PotentialEnergy(bodies)
}

// Momentum returns the total linear momentum sum(m v).
func Momentum(bodies []dynamo.Body) mgl64.Vec3 {
	var p mgl64.Vec3
	for _, b := range bodies {
		p = p.Add(b.Velocity.Mul(b.Mass))
	}
	return p
}

// AngularMomentum returns sum(m r x v) about the origin.
func AngularMomentum(bodies []dynamo.Body) mgl64.Vec3 {
	var l mgl64.Vec3
	for _, b := range bodies {
		l = l.Add(b.Position.Cross(b.Velocity).Mul(b.Mass))
	}
	return l
}

// CenterOfMass returns the mass-weighted mean position.
func CenterOfMass(bodies []dynamo.Body) mgl64.Vec3 {
	var c mgl64.Vec3
	total := 0.0
	for _, b := range bodies {
		c = c.Add(b.Position.Mul(b.Mass))
		total += b.Mass
	}
	if total == 0 {
		return mgl64.Vec3{}
	}
	for k := range c {
		c[k] /= total
	}
	return c
}
