package analysis

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent of a system from
// a reference engine and a copy whose initial state differs slightly. Both
// engines are advanced with dt for duration. After every step the separation
// is measured in position-velocity space, its log growth accumulated, and
// the perturbed engine pulled back to the initial separation.
func LyapunovExponent(ref, perturbed *dynamo.Engine, dt, duration float64) float64 {
	a := ref.Store().Bodies()
	b := perturbed.Store().Bodies()
	if len(a) != len(b) || len(a) == 0 || !(dt > 0) {
		return 0
	}

	d0 := separation(a, b)
	if d0 == 0 {
		return 0
	}

	steps := int(duration/dt + 1e-9)
	sumLog := 0.0
	for i := 0; i < steps; i++ {
		ref.Tick(dt, false)
		perturbed.Tick(dt, false)

		sep := separation(a, b)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for j := range b {
			b[j].Position = a[j].Position.Add(b[j].Position.Sub(a[j].Position).Mul(scale))
			b[j].Velocity = a[j].Velocity.Add(b[j].Velocity.Sub(a[j].Velocity).Mul(scale))
		}
	}

	if steps == 0 {
		return 0
	}
	return sumLog / (float64(steps) * dt)
}

func separation(a, b []dynamo.Body) float64 {
	sum := 0.0
	for i := range a {
		dp := b[i].Position.Sub(a[i].Position)
		dv := b[i].Velocity.Sub(a[i].Velocity)
		sum += dp.Dot(dp) + dv.Dot(dv)
	}
	return math.Sqrt(sum)
}
