package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// maxPitch keeps the camera off the poles where LookAt degenerates.
const maxPitch = 1.4

var worldUp = mgl64.Vec3{0, 1, 0}

// Orbit is a camera circling Target at distance Radius. Yaw turns around
// the vertical axis, Pitch raises the camera above the horizontal plane.
type Orbit struct {
	Target               mgl64.Vec3
	Yaw, Pitch, Radius   float64
	FOV, Near, Far       float64
	MinRadius, MaxRadius float64
}

func NewOrbit(radius float64) *Orbit {
	return &Orbit{
		Yaw:       0.6,
		Pitch:     0.5,
		Radius:    radius,
		FOV:       mgl64.DegToRad(45),
		Near:      radius * 0.01,
		Far:       radius * 100,
		MinRadius: radius * 0.05,
		MaxRadius: radius * 20,
	}
}

// FitOrbit returns a camera aimed at the center of mass with every body in
// view.
func FitOrbit(bodies []dynamo.Body) *Orbit {
	center := physics.CenterOfMass(bodies)
	extent := 0.0
	for _, b := range bodies {
		extent = math.Max(extent, b.Position.Sub(center).Len())
	}
	if extent == 0 {
		extent = 1
	}
	o := NewOrbit(extent * 3)
	o.Target = center
	return o
}

func (o *Orbit) Rotate(dyaw, dpitch float64) {
	o.Yaw += dyaw
	o.Pitch = mgl64.Clamp(o.Pitch+dpitch, -maxPitch, maxPitch)
}

// Zoom scales the distance to the target by factor.
func (o *Orbit) Zoom(factor float64) {
	o.Radius = mgl64.Clamp(o.Radius*factor, o.MinRadius, o.MaxRadius)
}

func (o *Orbit) Eye() mgl64.Vec3 {
	cp := math.Cos(o.Pitch)
	offset := mgl64.Vec3{
		o.Radius * cp * math.Sin(o.Yaw),
		o.Radius * math.Sin(o.Pitch),
		o.Radius * cp * math.Cos(o.Yaw),
	}
	return o.Target.Add(offset)
}

// Matrix returns projection * view for the given aspect ratio.
func (o *Orbit) Matrix(aspect float64) mgl64.Mat4 {
	view := mgl64.LookAtV(o.Eye(), o.Target, worldUp)
	proj := mgl64.Perspective(o.FOV, aspect, o.Near, o.Far)
	return proj.Mul4(view)
}

// Project maps a world point onto a w x h pixel plane. depth is the
// normalized device depth; ok is false for points behind the camera or
// off screen.
func (o *Orbit) Project(p mgl64.Vec3, w, h int) (x, y int, depth float64, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, false
	}
	return project(o.Matrix(float64(w)/float64(h)), p, w, h)
}

func project(m mgl64.Mat4, p mgl64.Vec3, w, h int) (int, int, float64, bool) {
	clip := m.Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	x := int(math.Floor((ndc[0] + 1) / 2 * float64(w)))
	y := int(math.Floor((1 - ndc[1]) / 2 * float64(h)))
	visible := ndc[2] >= -1 && ndc[2] <= 1 && x >= 0 && x < w && y >= 0 && y < h
	return x, y, ndc[2], visible
}

// Edge is a world-space segment.
type Edge [2]mgl64.Vec3

// BoxEdges returns the twelve edges of the cube [-limit, limit]^3.
func BoxEdges(limit float64) []Edge {
	s := limit
	v := []mgl64.Vec3{{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s}, {-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	edges := make([]Edge, len(ei))
	for i, e := range ei {
		edges[i] = Edge{v[e[0]], v[e[1]]}
	}
	return edges
}

// SquareEdges returns the square [-limit, limit]^2 in the z=0 plane, for
// boundaries that leave z open.
func SquareEdges(limit float64) []Edge {
	s := limit
	v := []mgl64.Vec3{{-s, -s, 0}, {s, -s, 0}, {s, s, 0}, {-s, s, 0}}
	edges := make([]Edge, len(v))
	for i := range v {
		edges[i] = Edge{v[i], v[(i+1)%len(v)]}
	}
	return edges
}

// BoundaryEdges returns the outline drawn for a boundary, or nil.
func BoundaryEdges(b config.BoundaryConfig) []Edge {
	switch b.Kind {
	case config.BoundaryWalls:
		return BoxEdges(b.Limit)
	case config.BoundaryRoom:
		return SquareEdges(b.Limit)
	}
	return nil
}

// DrawEdges projects and draws edges far-to-near.
func DrawEdges(c *Canvas, edges []Edge, cam *Orbit) {
	if c == nil || cam == nil {
		return
	}
	w, h := c.PixelWidth(), c.PixelHeight()
	m := cam.Matrix(float64(w) / float64(h))

	type segment struct {
		x1, y1, x2, y2 int
		depth          float64
	}
	segs := make([]segment, 0, len(edges))
	for _, e := range edges {
		x1, y1, d1, v1 := project(m, e[0], w, h)
		x2, y2, d2, v2 := project(m, e[1], w, h)
		if v1 && v2 {
			segs = append(segs, segment{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].depth > segs[j].depth })
	for _, s := range segs {
		c.DrawLine(s.x1, s.y1, s.x2, s.y2)
	}
}
