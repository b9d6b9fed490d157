package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"k8s.io/klog/v2"
)

// Simulator drives an engine with a fixed step for a fixed duration.
type Simulator struct {
	engine  *dynamo.Engine
	metrics []Metric
}

func New(engine *dynamo.Engine) *Simulator {
	return &Simulator{
		engine:  engine,
		metrics: make([]Metric, 0),
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Simulator) Engine() *dynamo.Engine { return s.engine }

// Run advances the engine from its current state. It stops early when ctx
// is cancelled, returning the partial result with ctx.Err(), or when state
// validation fails, recording the error in the result.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 1e-9)
	capacity := 2
	if cfg.SampleEvery > 0 {
		capacity = steps/cfg.SampleEvery + 2
	}
	result := &Result{
		Snapshots: make([][]dynamo.Body, 0, capacity),
		Times:     make([]float64, 0, capacity),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	live := s.engine.Store().Bodies()
	initialEnergy := s.energy(live)
	initialMomentum := physics.Momentum(live)

	s.observe(live)
	result.record(s.engine)

	lastRecorded := 0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, initialEnergy, initialMomentum)
			return result, ctx.Err()
		default:
		}

		s.engine.Tick(cfg.Dt, false)
		result.StepsTaken++

		if cfg.ValidateState {
			if err := s.engine.Validate(); err != nil {
				klog.V(1).InfoS("stopping run on invalid state", "tick", s.engine.Ticks(), "err", err)
				result.Errors = append(result.Errors, err)
				break
			}
		}

		s.observe(live)

		if cfg.SampleEvery > 0 && result.StepsTaken%cfg.SampleEvery == 0 {
			result.record(s.engine)
			lastRecorded = result.StepsTaken
		}
	}

	if lastRecorded != result.StepsTaken {
		result.record(s.engine)
	}

	s.finish(result, initialEnergy, initialMomentum)
	klog.V(2).InfoS("run finished",
		"steps", result.StepsTaken,
		"time", s.engine.Time(),
		"energyDrift", result.EnergyDrift,
		"momentumDrift", result.MomentumDrift)
	return result, nil
}

func (s *Simulator) observe(bodies []dynamo.Body) {
	t := s.engine.Time()
	for _, m := range s.metrics {
		m.Observe(bodies, t)
	}
}

func (s *Simulator) finish(result *Result, initialEnergy float64, initialMomentum mgl64.Vec3) {
	live := s.engine.Store().Bodies()
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(s.energy(live)-initialEnergy) / math.Abs(initialEnergy)
	}

	// relative drift, or absolute when the system started at rest
	result.MomentumDrift = physics.Momentum(live).Sub(initialMomentum).Len()
	if n := initialMomentum.Len(); n > 0 {
		result.MomentumDrift /= n
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) energy(bodies []dynamo.Body) float64 {
	if h, ok := s.engine.Field().(dynamo.Hamiltonian); ok {
		return h.Energy(bodies)
	}
	return 0
}

func (r *Result) record(e *dynamo.Engine) {
	r.Snapshots = append(r.Snapshots, e.Bodies())
	r.Times = append(r.Times, e.Time())
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("sample every must not be negative, got %d", cfg.SampleEvery)
	}
	return nil
}
