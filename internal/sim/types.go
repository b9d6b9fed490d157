package sim

import "github.com/san-kum/gravsim/internal/dynamo"

// Metric accumulates a scalar over the states a run visits.
type Metric interface {
	Name() string
	Observe(bodies []dynamo.Body, t float64)
	Value() float64
	Reset()
}

type Config struct {
	Dt       float64
	Duration float64
	// SampleEvery keeps every n-th state in the result. Zero keeps only
	// the first and last.
	SampleEvery   int
	ValidateState bool
}

type Result struct {
	Snapshots     [][]dynamo.Body
	Times         []float64
	Metrics       map[string]float64
	EnergyDrift   float64
	MomentumDrift float64
	StepsTaken    int
	Errors        []error
}

// Final returns the last recorded snapshot.
func (r *Result) Final() []dynamo.Body {
	if len(r.Snapshots) == 0 {
		return nil
	}
	return r.Snapshots[len(r.Snapshots)-1]
}
