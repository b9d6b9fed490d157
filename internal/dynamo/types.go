package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a single simulated point mass.
type Body struct {
	Name         string
	Position     mgl64.Vec3
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3
	Mass         float64
}

// IsValid reports whether every kinematic component is finite.
func (b Body) IsValid() bool {
	for _, v := range [...]mgl64.Vec3{b.Position, b.Velocity, b.Acceleration} {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}

// ForceField fills in the acceleration of every body for the current
// configuration. Implementations zero each acceleration before summing.
type ForceField interface {
	Accelerate(bodies []Body)
}

// Coupled is implemented by force fields whose strength follows the
// scenario's gravitational constant.
type Coupled interface {
	Coupling() float64
	SetCoupling(g float64)
}

// Hamiltonian is implemented by force fields that can report the total
// energy of a configuration.
type Hamiltonian interface {
	Energy(bodies []Body) float64
}

// Integrator advances bodies by dt. Bodies whose pinned flag is set keep
// their position and velocity but still take part in force evaluation.
// A nil pinned slice pins nothing.
type Integrator interface {
	Step(field ForceField, bodies []Body, pinned []bool, dt float64)
}

// Boundary adjusts state after integration to keep the simulation bounded.
type Boundary interface {
	Apply(bodies []Body)
}

// Observer is notified after every tick that advanced the simulation.
type Observer interface {
	OnTick(bodies []Body, t float64)
}

// Seeding selects how Reset derives initial velocities.
type Seeding int

const (
	// SeedAuthored restores the velocities written in the seeds.
	SeedAuthored Seeding = iota
	// SeedOrbital derives velocities tangent to the radius from the anchor.
	SeedOrbital
)

func (s Seeding) String() string {
	switch s {
	case SeedAuthored:
		return "authored"
	case SeedOrbital:
		return "orbital"
	}
	return "unknown"
}

// Seed is the authored initial data for one body.
type Seed struct {
	Name     string
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Mass     float64
	// EccentricityFactor scales the circular orbit speed under orbital
	// seeding. Zero means a circular orbit.
	EccentricityFactor float64
}

func (s Seed) body() Body {
	return Body{
		Name:     s.Name,
		Position: s.Position,
		Velocity: s.Velocity,
		Mass:     s.Mass,
	}
}

// NoAnchor marks a store without a designated anchor body.
const NoAnchor = -1
