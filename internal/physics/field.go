package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/dynamo"
)

// StandardGravity is the surface field used by the bouncing scenario.
var StandardGravity = mgl64.Vec3{0, -9.8, 0}

// UniformField gives every body the same constant acceleration, ignoring
// the other bodies.
type UniformField struct {
	Field mgl64.Vec3
}

func NewUniformField(field mgl64.Vec3) *UniformField {
	return &UniformField{Field: field}
}

func (u *UniformField) Accelerate(bodies []dynamo.Body) {
	for i := range bodies {
		bodies[i].Acceleration = u.Field
	}
}
