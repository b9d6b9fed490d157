package analysis

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Elements are the osculating two-body elements of a body relative to its
// primary.
type Elements struct {
	SemiMajorAxis float64
	Eccentricity  float64
	// Period is Kepler's period for bound orbits and +Inf otherwise.
	Period float64
	// SpecificEnergy is v^2/2 - mu/r.
	SpecificEnergy float64
	Bound          bool
}

// OrbitalElements treats primary and body as an isolated pair under the
// gravitational constant g.
func OrbitalElements(primary, body dynamo.Body, g float64) Elements {
	mu := g * (primary.Mass + body.Mass)
	r := body.Position.Sub(primary.Position)
	v := body.Velocity.Sub(primary.Velocity)
	dist := r.Len()
	if dist == 0 || mu <= 0 {
		return Elements{Period: math.Inf(1)}
	}

	energy := v.Dot(v)/2 - mu/dist
	h := r.Cross(v)
	ecc := v.Cross(h).Mul(1 / mu).Sub(r.Mul(1 / dist))

	el := Elements{
		Eccentricity:   ecc.Len(),
		SpecificEnergy: energy,
		Period:         math.Inf(1),
	}
	if energy < 0 {
		el.Bound = true
		el.SemiMajorAxis = -mu / (2 * energy)
		el.Period = 2 * math.Pi * math.Sqrt(el.SemiMajorAxis*el.SemiMajorAxis*el.SemiMajorAxis/mu)
	} else {
		el.SemiMajorAxis = math.Inf(1)
	}
	return el
}

// OrbitPlane returns the two axes spanning the plane of orbits seeded
// around normal: the axes other than normal's largest component.
func OrbitPlane(normal [3]float64) [2]int {
	axis := 0
	for i := 1; i < 3; i++ {
		if math.Abs(normal[i]) > math.Abs(normal[axis]) {
			axis = i
		}
	}
	switch axis {
	case 0:
		return [2]int{1, 2}
	case 1:
		return [2]int{0, 2}
	}
	return [2]int{0, 1}
}

// UniformPrefix returns how many leading samples keep the spacing of the
// first two, and that spacing. A run cut short or ending between sample
// points leaves an irregular tail that spectral estimates must not see.
func UniformPrefix(times []float64) (int, float64) {
	if len(times) < 2 {
		return len(times), 0
	}
	dt := times[1] - times[0]
	if !(dt > 0) {
		return 1, 0
	}
	tol := 1e-6 * dt
	n := 2
	for n < len(times) && math.Abs(times[n]-times[n-1]-dt) <= tol {
		n++
	}
	return n, dt
}

// CoordinateSeries extracts one position coordinate of body from each
// snapshot, relative to the body at origin when origin is not NoAnchor.
func CoordinateSeries(snapshots [][]dynamo.Body, body, origin, axis int) []float64 {
	out := make([]float64, 0, len(snapshots))
	for _, s := range snapshots {
		p := s[body].Position
		if origin != dynamo.NoAnchor {
			p = p.Sub(s[origin].Position)
		}
		out = append(out, p[axis])
	}
	return out
}

// RadialSeries returns the distance between body and origin in each snapshot.
func RadialSeries(snapshots [][]dynamo.Body, body, origin int) []float64 {
	out := make([]float64, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, s[body].Position.Sub(s[origin].Position).Len())
	}
	return out
}
