package automation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/sim"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// ParameterSweep runs a scenario across evenly spaced values of one parameter.
type ParameterSweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

// Values returns the swept values, Min and Max included.
func (p ParameterSweep) Values() []float64 {
	if p.Steps <= 1 {
		return []float64{p.Min}
	}
	step := (p.Max - p.Min) / float64(p.Steps-1)
	values := make([]float64, p.Steps)
	for i := range values {
		values[i] = p.Min + float64(i)*step
	}
	return values
}

// SweepResult holds the outcome of one swept value.
type SweepResult struct {
	Value         float64
	EnergyDrift   float64
	MomentumDrift float64
	MinSeparation float64
	Escapes       float64
	Err           error
}

// RunSweep runs every value concurrently. A value whose scenario fails to
// build or run keeps its error in the result; only cancellation aborts.
func RunSweep(ctx context.Context, base *config.Scenario, sweep ParameterSweep) ([]SweepResult, error) {
	values := sweep.Values()
	results := make([]SweepResult, len(values))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, v := range values {
		g.Go(func() error {
			results[i] = SweepResult{Value: v}

			s := base.Clone()
			if err := Apply(s, sweep.Param, v); err != nil {
				return err
			}
			result, err := run(ctx, s)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				results[i].Err = err
				return nil
			}

			results[i].EnergyDrift = result.Metrics["energy_drift"]
			results[i].MomentumDrift = result.Metrics["momentum_drift"]
			results[i].MinSeparation = result.Metrics["min_separation"]
			results[i].Escapes = result.Metrics["escapes"]
			if len(result.Errors) > 0 {
				results[i].Err = result.Errors[0]
			}
			klog.V(2).InfoS("sweep point done", "param", sweep.Param, "value", v)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func run(ctx context.Context, s *config.Scenario) (*sim.Result, error) {
	exp, err := experiment.New(s)
	if err != nil {
		return nil, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	return result, nil
}
