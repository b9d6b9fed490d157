package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/dynamo"
)

// DefaultEpsilon is the separation below which a pair contributes nothing.
const DefaultEpsilon = 1e-5

// AstronomicalG is G in AU^3 / (solar mass * year^2).
const AstronomicalG = 4 * math.Pi * math.Pi

// Gravity is pairwise Newtonian attraction between every pair of bodies.
type Gravity struct {
	G float64
	// Epsilon skips pairs closer than this distance.
	Epsilon float64
	// Softening is added in quadrature to the separation in the force
	// magnitude. Zero gives the exact inverse-square law.
	Softening float64
	// Backend, when set, evaluates the sum instead of the pairwise loop.
	Backend compute.Backend
}

// NewGravity creates a Gravity with the default coincidence threshold and no
// softening.
func NewGravity(g float64) *Gravity {
	return &Gravity{
		G:       g,
		Epsilon: DefaultEpsilon,
	}
}

// Accelerate zeroes every acceleration and accumulates F/m for each pair
// j > i, applying the reaction to j.
func (g *Gravity) Accelerate(bodies []dynamo.Body) {
	if g.Backend != nil {
		g.Backend.Accelerate(bodies, g.G, g.Epsilon, g.Softening)
		return
	}

	for i := range bodies {
		bodies[i].Acceleration = mgl64.Vec3{}
	}

	eps2 := g.Softening * g.Softening
	n := len(bodies)
	for i := 0; i < n; i++ {
		bi := &bodies[i]
		for j := i + 1; j < n; j++ {
			bj := &bodies[j]

			r := bj.Position.Sub(bi.Position)
			dist := r.Len()
			if dist < g.Epsilon {
				continue
			}

			dir := r.Mul(1 / dist)
			force := g.G * bi.Mass * bj.Mass / (dist*dist + eps2)

			bi.Acceleration = bi.Acceleration.Add(dir.Mul(force / bi.Mass))
			bj.Acceleration = bj.Acceleration.Sub(dir.Mul(force / bj.Mass))
		}
	}
}

// Coupling implements dynamo.Coupled
func (g *Gravity) Coupling() float64 { return g.G }

// SetCoupling implements dynamo.Coupled
func (g *Gravity) SetCoupling(v float64) { g.G = v }

// GetParams exposes the tunable parameters by name.
func (g *Gravity) GetParams() map[string]float64 {
	return map[string]float64{
		"g":         g.G,
		"epsilon":   g.Epsilon,
		"softening": g.Softening,
	}
}

// SetParam sets a parameter returned by GetParams.
func (g *Gravity) SetParam(name string, value float64) error {
	switch name {
	case "g":
		if !(value > 0) {
			return dynamo.ErrInvalidCoupling
		}
		g.G = value
	case "epsilon":
		g.Epsilon = math.Max(0, value)
	case "softening":
		g.Softening = math.Max(0, value)
	default:
		return fmt.Errorf("physics: unknown gravity parameter %q", name)
	}
	return nil
}
