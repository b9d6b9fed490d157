package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
	"k8s.io/klog/v2"
)

var defaultRegistry = NewRegistry()

// Build assembles a reset engine for a validated scenario.
func Build(s *config.Scenario) (*dynamo.Engine, error) {
	return defaultRegistry.Build(s)
}

func (r *Registry) Build(s *config.Scenario) (*dynamo.Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	field, err := r.GetField(s)
	if err != nil {
		return nil, err
	}
	integ, err := r.GetIntegrator(s.Integrator)
	if err != nil {
		return nil, err
	}
	bound, err := r.GetBoundary(s.Boundary)
	if err != nil {
		return nil, err
	}

	store, err := dynamo.NewStore(s.Seeds(), s.StoreOptions())
	if err != nil {
		return nil, err
	}

	engine := dynamo.New(store, field, integ, bound, s.EngineOptions())
	if err := engine.Reset(s.G); err != nil {
		return nil, err
	}

	klog.V(2).InfoS("built engine",
		"scenario", s.Name,
		"bodies", store.Len(),
		"field", s.Field.Kind,
		"integrator", s.Integrator,
		"boundary", s.Boundary.Kind,
		"seeding", store.Seeding())
	return engine, nil
}

// Experiment is one headless run of a scenario.
type Experiment struct {
	scenario  *config.Scenario
	engine    *dynamo.Engine
	simulator *sim.Simulator
}

// New builds the engine for s and attaches the default metrics.
func New(s *config.Scenario) (*Experiment, error) {
	engine, err := defaultRegistry.Build(s)
	if err != nil {
		return nil, err
	}

	simulator := sim.New(engine)
	for _, m := range defaultRegistry.DefaultMetrics(s, engine.Field()) {
		simulator.AddMetric(m)
	}

	return &Experiment{
		scenario:  s.Clone(),
		engine:    engine,
		simulator: simulator,
	}, nil
}

// Run advances the engine with the scenario's run settings.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not set up")
	}

	cfg := sim.Config{
		Dt:            e.scenario.Run.Dt,
		Duration:      e.scenario.Run.Duration,
		SampleEvery:   e.scenario.Run.SampleEvery,
		ValidateState: true,
	}
	return e.simulator.Run(ctx, cfg)
}

func (e *Experiment) Scenario() *config.Scenario { return e.scenario }

func (e *Experiment) Engine() *dynamo.Engine { return e.engine }

// GetSimulator returns the underlying simulator for adding metrics.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Compare builds one engine per integrator name for the same scenario and
// runs them concurrently.
func Compare(ctx context.Context, s *config.Scenario, names []string) ([]*sim.Result, error) {
	ens := sim.NewEnsemble(0)
	for _, name := range names {
		variant := s.Clone()
		variant.Integrator = name
		engine, err := defaultRegistry.Build(variant)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		ens.Add(name, engine, defaultRegistry.DefaultMetrics(variant, engine.Field())...)
	}

	return ens.Run(ctx, sim.Config{
		Dt:            s.Run.Dt,
		Duration:      s.Run.Duration,
		SampleEvery:   s.Run.SampleEvery,
		ValidateState: true,
	})
}
