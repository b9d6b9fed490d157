package integrators

import "github.com/san-kum/gravsim/internal/dynamo"

// Euler is semi-implicit Euler: the velocity is updated first and the new
// velocity moves the body.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(field dynamo.ForceField, bodies []dynamo.Body, pinned []bool, dt float64) {
	field.Accelerate(bodies)
	for i := range bodies {
		if isPinned(pinned, i) {
			continue
		}
		b := &bodies[i]
		b.Velocity = b.Velocity.Add(b.Acceleration.Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}
}
