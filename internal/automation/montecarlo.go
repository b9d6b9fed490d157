package automation

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
)

// MonteCarloConfig perturbs the seed positions of a scenario and checks
// how many trials stay bound.
type MonteCarloConfig struct {
	// Perturbation is the half-width of the uniform offset added to each
	// position coordinate.
	Perturbation float64
	Trials       int
	// Seed makes runs repeatable. Zero seeds from the clock.
	Seed int64
}

// MonteCarloResult holds one trial.
type MonteCarloResult struct {
	Trial       int
	Positions   []mgl64.Vec3
	Final       []dynamo.Body
	EnergyDrift float64
	Stable      bool
}

// RunMonteCarlo runs the trials in order. A trial is stable when the run
// completed without invalid state and no body escaped.
func RunMonteCarlo(ctx context.Context, base *config.Scenario, cfg MonteCarloConfig) ([]MonteCarloResult, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	anchor := dynamo.NoAnchor
	if base.Anchor != nil {
		anchor = base.Anchor.Index
	}

	results := make([]MonteCarloResult, 0, cfg.Trials)
	for trial := 0; trial < cfg.Trials; trial++ {
		s := base.Clone()
		positions := make([]mgl64.Vec3, len(s.Bodies))
		for i := range s.Bodies {
			if i != anchor {
				for axis := 0; axis < 3; axis++ {
					s.Bodies[i].Position[axis] += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
				}
			}
			positions[i] = s.Bodies[i].Position
		}

		r := MonteCarloResult{Trial: trial, Positions: positions}
		result, err := run(ctx, s)
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		if err == nil {
			r.Final = result.Final()
			r.EnergyDrift = result.EnergyDrift
			r.Stable = len(result.Errors) == 0 && result.Metrics["escapes"] == 0
		}
		results = append(results, r)
	}

	return results, nil
}

// MonteCarloStats counts stable and unstable trials.
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
