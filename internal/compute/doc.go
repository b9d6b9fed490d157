// Package compute provides backends for whole-system gravity evaluation.
//
// The CPU backend runs the pairwise sum serially for small systems and
// splits it across goroutines from ParallelThreshold bodies up:
//
//	backend := compute.GetBackend()
//	backend.Accelerate(bodies, g, epsilon, softening)
//
// The shared backend is safe for concurrent engines. SetBackend swaps it,
// for example to cap the worker count, and GetBackend returns nil when the
// active backend is unavailable so callers fall back to the serial loop.
// physics.Gravity delegates to a backend when one is set.
package compute
