package compute

import (
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// ParallelThreshold is the body count from which the CPU backend splits
// work across goroutines.
const ParallelThreshold = 16

// CPUBackend is safe for concurrent use by independent engines; each
// parallel evaluation borrows its own scratch buffer.
type CPUBackend struct {
	workers int
	scratch sync.Pool
}

func NewCPUBackend() *CPUBackend {
	return NewCPUBackendWorkers(runtime.NumCPU())
}

// NewCPUBackendWorkers caps the goroutines used per evaluation.
func NewCPUBackendWorkers(workers int) *CPUBackend {
	if workers < 1 {
		workers = 1
	}
	return &CPUBackend{workers: workers}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

// Workers returns the goroutine cap.
func (c *CPUBackend) Workers() int { return c.workers }

func (c *CPUBackend) Accelerate(bodies []dynamo.Body, g, epsilon, softening float64) {
	if len(bodies) < ParallelThreshold || c.workers == 1 {
		accelerateSerial(bodies, g, epsilon, softening)
		return
	}
	c.accelerateParallel(bodies, g, epsilon, softening)
}

// accelerateSerial visits each pair once and applies the reaction to j.
func accelerateSerial(bodies []dynamo.Body, g, epsilon, softening float64) {
	for i := range bodies {
		bodies[i].Acceleration = mgl64.Vec3{}
	}

	eps2 := softening * softening
	n := len(bodies)
	for i := 0; i < n; i++ {
		bi := &bodies[i]
		for j := i + 1; j < n; j++ {
			bj := &bodies[j]

			r := bj.Position.Sub(bi.Position)
			dist := r.Len()
			if dist < epsilon {
				continue
			}

			// a = G m / (d^2 + s^2) along r/d
			k := g / ((dist*dist + eps2) * dist)
			bi.Acceleration = bi.Acceleration.Add(r.Mul(k * bj.Mass))
			bj.Acceleration = bj.Acceleration.Sub(r.Mul(k * bi.Mass))
		}
	}
}

// accelerateParallel gives each worker a contiguous block of bodies. Every
// worker reads all positions and writes only its own block.
func (c *CPUBackend) accelerateParallel(bodies []dynamo.Body, g, epsilon, softening float64) {
	n := len(bodies)
	buf, _ := c.scratch.Get().(*[]mgl64.Vec3)
	if buf == nil || cap(*buf) < n {
		s := make([]mgl64.Vec3, n)
		buf = &s
	}
	defer c.scratch.Put(buf)
	acc := (*buf)[:n]

	eps2 := softening * softening
	chunkSize := (n + c.workers - 1) / c.workers

	var group errgroup.Group
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		group.Go(func() error {
			for i := start; i < end; i++ {
				pi := bodies[i].Position
				var a mgl64.Vec3
				for j := 0; j < n; j++ {
					if i == j {
						continue
					}
					r := bodies[j].Position.Sub(pi)
					dist := r.Len()
					if dist < epsilon {
						continue
					}
					a = a.Add(r.Mul(g * bodies[j].Mass / ((dist*dist + eps2) * dist)))
				}
				acc[i] = a
			}
			return nil
		})
	}
	group.Wait()

	for i := range bodies {
		bodies[i].Acceleration = acc[i]
	}
}
