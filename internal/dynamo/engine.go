package dynamo

import (
	"math"
)

// EngineOptions selects scenario-specific engine behavior.
type EngineOptions struct {
	// PinAnchor keeps the store's anchor body fixed in place. It still
	// attracts every other body.
	PinAnchor bool
	// G is the initial gravitational constant. Zero takes the coupling of
	// the force field when it has one.
	G float64
}

// Engine runs the per-tick pipeline: integrate under the force field, then
// apply the boundary policy.
type Engine struct {
	store      *Store
	field      ForceField
	integrator Integrator
	boundary   Boundary
	pinned     []bool
	observers  []Observer
	g          float64
	t          float64
	ticks      int
}

// New assembles an engine. A nil boundary applies no policy.
func New(store *Store, field ForceField, integrator Integrator, boundary Boundary, opts EngineOptions) *Engine {
	e := &Engine{
		store:      store,
		field:      field,
		integrator: integrator,
		boundary:   boundary,
		observers:  make([]Observer, 0),
		g:          opts.G,
	}
	if opts.PinAnchor && store.Anchor() != NoAnchor {
		e.pinned = make([]bool, store.Len())
		e.pinned[store.Anchor()] = true
	}
	if c, ok := field.(Coupled); ok {
		if e.g == 0 {
			e.g = c.Coupling()
		} else {
			c.SetCoupling(e.g)
		}
	}
	return e
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Tick advances the simulation by dt unless paused. Non-positive or
// non-finite steps leave the state untouched.
func (e *Engine) Tick(dt float64, paused bool) {
	if paused || !(dt > 0) || math.IsInf(dt, 0) {
		return
	}

	bodies := e.store.Bodies()
	e.integrator.Step(e.field, bodies, e.pinned, dt)
	if e.boundary != nil {
		e.boundary.Apply(bodies)
	}

	e.t += dt
	e.ticks++

	for _, obs := range e.observers {
		obs.OnTick(bodies, e.t)
	}
}

// Reset reinitializes every body from its seed using g, and retunes the
// force field to g. Time and tick count restart from zero.
func (e *Engine) Reset(g float64) error {
	if err := e.store.Reset(g); err != nil {
		return err
	}
	if c, ok := e.field.(Coupled); ok && g > 0 {
		c.SetCoupling(g)
	}
	if g > 0 {
		e.g = g
	}
	e.t = 0
	e.ticks = 0
	return nil
}

// Bodies returns a copy of the current bodies in store order.
func (e *Engine) Bodies() []Body { return e.store.Snapshot() }

// Validate returns a SimulationError for the first body holding NaN or Inf.
func (e *Engine) Validate() error {
	for _, b := range e.store.Bodies() {
		if !b.IsValid() {
			return &SimulationError{Tick: e.ticks, Time: e.t, Body: b.Name, Wrapped: ErrInvalidState}
		}
	}
	return nil
}

func (e *Engine) Store() *Store          { return e.store }
func (e *Engine) Field() ForceField      { return e.field }
func (e *Engine) Integrator() Integrator { return e.integrator }
func (e *Engine) Pinned(i int) bool      { return e.pinned != nil && e.pinned[i] }
func (e *Engine) G() float64             { return e.g }
func (e *Engine) Time() float64          { return e.t }
func (e *Engine) Ticks() int             { return e.ticks }
