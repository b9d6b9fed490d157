package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Containment is the fraction of observed states in which every body is
// within radius of the origin.
type Containment struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewContainment(radius float64) *Containment {
	return &Containment{
		name:   "containment",
		radius: radius,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(bodies []dynamo.Body, t float64) {
	c.samples++
	for _, b := range bodies {
		if b.Position.Len() > c.radius {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Escapes counts the bodies beyond radius in the latest observed state.
type Escapes struct {
	name   string
	radius float64
	count  int
}

func NewEscapes(radius float64) *Escapes {
	return &Escapes{name: "escapes", radius: radius}
}

func (e *Escapes) Name() string { return e.name }

func (e *Escapes) Observe(bodies []dynamo.Body, t float64) {
	e.count = 0
	for _, b := range bodies {
		if b.Position.Len() > e.radius {
			e.count++
		}
	}
}

func (e *Escapes) Value() float64 { return float64(e.count) }

func (e *Escapes) Reset() { e.count = 0 }

// MinSeparation is the closest approach between any two bodies over the run.
type MinSeparation struct {
	name string
	min  float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{name: "min_separation", min: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return m.name }

func (m *MinSeparation) Observe(bodies []dynamo.Body, t float64) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := bodies[j].Position.Sub(bodies[i].Position).Len()
			if d < m.min {
				m.min = d
			}
		}
	}
}

// Value returns +Inf until a state with at least two bodies is observed.
func (m *MinSeparation) Value() float64 { return m.min }

func (m *MinSeparation) Reset() { m.min = math.Inf(1) }
