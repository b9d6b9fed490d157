package viz

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestTrailsCapacity(t *testing.T) {
	trails := NewTrails(2, 3)
	bodies := make([]dynamo.Body, 2)
	for i := 0; i < 5; i++ {
		bodies[0].Position = mgl64.Vec3{float64(i), 0, 0}
		trails.OnTick(bodies, float64(i))
	}

	path := trails.Paths()[0]
	if len(path) != 3 {
		t.Fatalf("expected 3 points, got %d", len(path))
	}
	if path[0][0] != 2 || path[2][0] != 4 {
		t.Errorf("expected the newest points 2..4, got %v", path)
	}

	trails.Clear()
	if len(trails.Paths()[0]) != 0 || len(trails.Paths()[1]) != 0 {
		t.Error("expected empty trails after clear")
	}
}

func TestTrailsIgnoresExtraBodies(t *testing.T) {
	trails := NewTrails(1, 4)
	trails.Record(make([]dynamo.Body, 3))
	if len(trails.Paths()) != 1 || len(trails.Paths()[0]) != 1 {
		t.Errorf("expected one trail with one point, got %v", trails.Paths())
	}
}
