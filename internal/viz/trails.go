package viz

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/dynamo"
)

// Trails keeps the most recent positions of every body. Registered with
// Engine.AddObserver it records one point per advancing tick.
type Trails struct {
	capacity int
	paths    [][]mgl64.Vec3
}

func NewTrails(bodies, capacity int) *Trails {
	return &Trails{
		capacity: max(capacity, 1),
		paths:    make([][]mgl64.Vec3, bodies),
	}
}

func (t *Trails) OnTick(bodies []dynamo.Body, _ float64) { t.Record(bodies) }

// Record appends the current positions, dropping the oldest point of a
// full trail.
func (t *Trails) Record(bodies []dynamo.Body) {
	for i, b := range bodies {
		if i >= len(t.paths) {
			return
		}
		t.paths[i] = append(t.paths[i], b.Position)
		if len(t.paths[i]) > t.capacity {
			t.paths[i] = t.paths[i][1:]
		}
	}
}

func (t *Trails) Clear() {
	for i := range t.paths {
		t.paths[i] = t.paths[i][:0]
	}
}

// Paths returns one trail per body, oldest point first.
func (t *Trails) Paths() [][]mgl64.Vec3 { return t.paths }
