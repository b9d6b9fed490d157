package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravsim/internal/boundary"
	"github.com/san-kum/gravsim/internal/compute"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

// DefaultEscapeRadius bounds the escape metric for scenarios without an
// escape boundary.
const DefaultEscapeRadius = 100.0

// Registry maps the names used in scenario files to constructors.
type Registry struct {
	fields      map[string]func(*config.Scenario) dynamo.ForceField
	integrators map[string]func() dynamo.Integrator
	boundaries  map[string]func(config.BoundaryConfig) dynamo.Boundary
}

func NewRegistry() *Registry {
	r := &Registry{
		fields:      make(map[string]func(*config.Scenario) dynamo.ForceField),
		integrators: make(map[string]func() dynamo.Integrator),
		boundaries:  make(map[string]func(config.BoundaryConfig) dynamo.Boundary),
	}

	r.fields[config.FieldGravity] = func(s *config.Scenario) dynamo.ForceField {
		g := physics.NewGravity(s.G)
		g.Epsilon = s.Field.Epsilon
		g.Softening = s.Field.Softening
		if s.Field.Parallel {
			g.Backend = compute.GetBackend()
		}
		return g
	}
	r.fields[config.FieldUniform] = func(s *config.Scenario) dynamo.ForceField {
		return physics.NewUniformField(s.Field.Uniform)
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }
	r.integrators["leapfrog"] = func() dynamo.Integrator { return integrators.NewLeapfrog() }

	r.boundaries[config.BoundaryNone] = func(config.BoundaryConfig) dynamo.Boundary { return boundary.None{} }
	r.boundaries[config.BoundaryWalls] = func(b config.BoundaryConfig) dynamo.Boundary {
		return &boundary.Walls{Limit: b.Limit, Damping: b.Damping}
	}
	r.boundaries[config.BoundaryRoom] = func(b config.BoundaryConfig) dynamo.Boundary {
		return &boundary.Room{Limit: b.Limit, CeilingDamping: b.CeilingDamping, CeilingSpeed: b.CeilingSpeed}
	}
	r.boundaries[config.BoundaryEscape] = func(b config.BoundaryConfig) dynamo.Boundary {
		return boundary.NewEscape(b.Radius)
	}

	return r
}

func (r *Registry) GetField(s *config.Scenario) (dynamo.ForceField, error) {
	fn, ok := r.fields[s.Field.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown field: %s", s.Field.Kind)
	}
	return fn(s), nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetBoundary(b config.BoundaryConfig) (dynamo.Boundary, error) {
	fn, ok := r.boundaries[b.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown boundary: %s", b.Kind)
	}
	return fn(b), nil
}

func (r *Registry) ListIntegrators() []string { return sortedKeys(r.integrators) }
func (r *Registry) ListBoundaries() []string  { return sortedKeys(r.boundaries) }
func (r *Registry) ListFields() []string      { return sortedKeys(r.fields) }

// DefaultMetrics returns fresh metrics for one run of the scenario. The
// escape radius also bounds containment; fields with an energy add its
// mean.
func (r *Registry) DefaultMetrics(s *config.Scenario, field dynamo.ForceField) []sim.Metric {
	radius := DefaultEscapeRadius
	if s.Boundary.Kind == config.BoundaryEscape {
		radius = s.Boundary.Radius
	}
	ms := []sim.Metric{
		metrics.NewEnergyDrift(field),
		metrics.NewMomentumDrift(),
		metrics.NewMinSeparation(),
		metrics.NewEscapes(radius),
		metrics.NewContainment(radius),
	}
	if h, ok := field.(dynamo.Hamiltonian); ok {
		ms = append(ms, metrics.NewEnergy(h))
	}
	return ms
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
