package integrators

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/dynamo"
)

// Verlet is velocity Verlet: positions advance with a(t), velocities with
// the mean of a(t) and a(t+dt).
type Verlet struct {
	prevAcc []mgl64.Vec3
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) ensureScratch(n int) {
	if len(v.prevAcc) != n {
		v.prevAcc = make([]mgl64.Vec3, n)
	}
}

func (v *Verlet) Step(field dynamo.ForceField, bodies []dynamo.Body, pinned []bool, dt float64) {
	v.ensureScratch(len(bodies))

	field.Accelerate(bodies)
	for i := range bodies {
		v.prevAcc[i] = bodies[i].Acceleration
	}

	halfDt2 := 0.5 * dt * dt
	for i := range bodies {
		if isPinned(pinned, i) {
			continue
		}
		b := &bodies[i]
		b.Position = b.Position.Add(b.Velocity.Mul(dt)).Add(v.prevAcc[i].Mul(halfDt2))
	}

	field.Accelerate(bodies)

	halfDt := 0.5 * dt
	for i := range bodies {
		if isPinned(pinned, i) {
			continue
		}
		b := &bodies[i]
		b.Velocity = b.Velocity.Add(v.prevAcc[i].Add(b.Acceleration).Mul(halfDt))
	}
}

// Leapfrog is the kick-drift-kick form: half kick, full drift, half kick.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(field dynamo.ForceField, bodies []dynamo.Body, pinned []bool, dt float64) {
	halfDt := dt * 0.5

	field.Accelerate(bodies)
	for i := range bodies {
		if isPinned(pinned, i) {
			continue
		}
		b := &bodies[i]
		b.Velocity = b.Velocity.Add(b.Acceleration.Mul(halfDt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}

	field.Accelerate(bodies)
	for i := range bodies {
		if isPinned(pinned, i) {
			continue
		}
		b := &bodies[i]
		b.Velocity = b.Velocity.Add(b.Acceleration.Mul(halfDt))
	}
}

func isPinned(pinned []bool, i int) bool {
	return pinned != nil && pinned[i]
}
