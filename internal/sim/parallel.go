package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/gravsim/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Member is one engine of an ensemble. Engines must not be shared between
// members; each is owned by the goroutine running it.
type Member struct {
	Name    string
	Engine  *dynamo.Engine
	Metrics []Metric
}

// Ensemble runs independent engines concurrently with the same config.
type Ensemble struct {
	members []Member
	limit   int
}

// NewEnsemble returns an ensemble running at most limit members at once.
// A limit of zero or less means no limit.
func NewEnsemble(limit int) *Ensemble {
	return &Ensemble{limit: limit}
}

func (e *Ensemble) Add(name string, engine *dynamo.Engine, metrics ...Metric) {
	e.members = append(e.members, Member{Name: name, Engine: engine, Metrics: metrics})
}

func (e *Ensemble) Len() int { return len(e.members) }

// Run returns results in the order members were added. The first failing
// member cancels the others.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	seen := make(map[string]bool, len(e.members))
	for _, m := range e.members {
		if seen[m.Name] {
			return nil, fmt.Errorf("duplicate ensemble member %q", m.Name)
		}
		seen[m.Name] = true
	}

	results := make([]*Result, len(e.members))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, m := range e.members {
		g.Go(func() error {
			sim := New(m.Engine)
			for _, metric := range m.Metrics {
				sim.AddMetric(metric)
			}
			res, err := sim.Run(ctx, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", m.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Names returns member names in order.
func (e *Ensemble) Names() []string {
	names := make([]string, len(e.members))
	for i, m := range e.members {
		names[i] = m.Name
	}
	return names
}
