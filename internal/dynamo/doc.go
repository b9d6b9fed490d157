// Package dynamo provides the core of the gravitational simulation engine.
//
// The package defines the body model and the seams the rest of the engine
// plugs into:
//
//   - [Body]: one point mass with position, velocity and acceleration
//   - [Store]: the fixed, ordered set of bodies and their authored seeds
//   - [ForceField]: fills per-body accelerations for a configuration
//   - [Integrator]: advances bodies by one timestep
//   - [Boundary]: keeps state inside a bounded domain
//   - [Engine]: runs the per-tick pipeline for a host
//
// # Example
//
//	store, _ := dynamo.NewStore(seeds, dynamo.StoreOptions{Anchor: 0, Seeding: dynamo.SeedOrbital})
//	eng := dynamo.New(store, physics.NewGravity(g), integrators.NewVerlet(), boundary.None{}, dynamo.EngineOptions{PinAnchor: true})
//	_ = eng.Reset(g)
//	for running {
//	    eng.Tick(clock.Delta(time.Now()), paused)
//	    draw(eng.Bodies())
//	}
//
// # Thread Safety
//
// Engine and Store are NOT thread-safe. One goroutine owns an engine for its
// whole lifetime; independent engines may run in parallel.
package dynamo
