package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Presets holds the built-in scenarios. Use GetPreset for a copy that is
// safe to modify.
var Presets = map[string]*Scenario{
	"bounce": {
		Name:        "bounce",
		Description: "four bodies falling in a uniform field inside a room",
		G:           1.0,
		Field:       FieldConfig{Kind: FieldUniform, Uniform: mgl64.Vec3{0, -9.8, 0}},
		Integrator:  "euler",
		Seeding:     SeedingAuthored,
		OrbitNormal: mgl64.Vec3{0, 0, 1},
		Boundary:    BoundaryConfig{Kind: BoundaryRoom, Limit: 1, CeilingDamping: 0.9, CeilingSpeed: 1},
		Clock:       ClockConfig{MaxDelta: 0.016, TimeScale: 1.0},
		Run:         RunConfig{Dt: 0.001, Duration: 5.0, SampleEvery: 10},
		Bodies: []BodyConfig{
			{Name: "Alpha", Mass: 1, Position: mgl64.Vec3{0, 0, 0}, Velocity: mgl64.Vec3{0, 1, 0}},
			{Name: "Beta", Mass: 1, Position: mgl64.Vec3{0.2, 0, 0}, Velocity: mgl64.Vec3{1, 2, 0}},
			{Name: "Gamma", Mass: 1, Position: mgl64.Vec3{-1, 0.5, 0}, Velocity: mgl64.Vec3{0.5, 0, 0}},
			{Name: "Delta", Mass: 1, Position: mgl64.Vec3{-0.3, 0.2, 0}, Velocity: mgl64.Vec3{2, 0.5, 0}},
		},
	},
	"cluster": {
		Name:        "cluster",
		Description: "mutually attracting bodies reflected by walls",
		G:           1.0,
		Field:       FieldConfig{Kind: FieldGravity, Epsilon: DefaultEpsilon, Softening: 0.05},
		Integrator:  "leapfrog",
		Seeding:     SeedingAuthored,
		OrbitNormal: mgl64.Vec3{0, 0, 1},
		Boundary:    BoundaryConfig{Kind: BoundaryWalls, Limit: 2.0, Damping: 1.0},
		Clock:       ClockConfig{MaxDelta: 0.016, TimeScale: 0.5},
		Run:         RunConfig{Dt: 0.001, Duration: 20.0, SampleEvery: 10},
		Bodies: []BodyConfig{
			{Name: "Alpha", Mass: 1, Position: mgl64.Vec3{0, 0, 0}, Velocity: mgl64.Vec3{0, 0.3, 0}},
			{Name: "Beta", Mass: 0.8, Position: mgl64.Vec3{1.0, 0, 0}, Velocity: mgl64.Vec3{0, -0.6, 0.1}},
			{Name: "Gamma", Mass: 0.6, Position: mgl64.Vec3{-1.0, 0.5, 0}, Velocity: mgl64.Vec3{0.4, 0, 0}},
			{Name: "Delta", Mass: 0.4, Position: mgl64.Vec3{-0.3, -1.0, 0.2}, Velocity: mgl64.Vec3{0.5, 0.5, 0}},
		},
	},
	"ring":       ring(32),
	"solar":      solarSystem("solar", true),
	"solar-free": solarSystem("solar-free", false),
}

// solarSystem uses astronomical units, years and solar masses, so G is 4*pi^2.
func solarSystem(name string, pinned bool) *Scenario {
	desc := "inner planets on near-circular orbits around a pinned sun"
	boundary := BoundaryConfig{Kind: BoundaryEscape, Radius: 50}
	if !pinned {
		desc = "inner planets around a free sun; total momentum is conserved"
		boundary = BoundaryConfig{Kind: BoundaryNone}
	}
	return &Scenario{
		Name:        name,
		Description: desc,
		G:           4 * math.Pi * math.Pi,
		Field:       FieldConfig{Kind: FieldGravity, Epsilon: DefaultEpsilon},
		Integrator:  "verlet",
		Seeding:     SeedingOrbital,
		OrbitNormal: mgl64.Vec3{0, 1, 0},
		Anchor:      &AnchorConfig{Index: 0, Pinned: pinned},
		Boundary:    boundary,
		Clock:       ClockConfig{MaxDelta: 0.008, TimeScale: 0.05},
		Run:         RunConfig{Dt: 0.0005, Duration: 5.0, SampleEvery: 20},
		Bodies: []BodyConfig{
			{Name: "Sun", Mass: 1},
			{Name: "Mercury", Mass: 3.3e-6, Position: mgl64.Vec3{0.39, 0, 0}, EccentricityFactor: 0.92},
			{Name: "Venus", Mass: 2.45e-6, Position: mgl64.Vec3{0.72, 0, 0}, EccentricityFactor: 0.9},
			{Name: "Earth", Mass: 3.0e-6, Position: mgl64.Vec3{1.0, 0, 0}, EccentricityFactor: 0.88},
			{Name: "Mars", Mass: 3.2e-7, Position: mgl64.Vec3{1.52, 0, 0}, EccentricityFactor: 0.85},
		},
	}
}

// ring surrounds a pinned star with n light bodies spread over radii 1 to
// 1.5 in the XZ plane. Gravity is evaluated in parallel.
func ring(n int) *Scenario {
	bodies := make([]BodyConfig, 0, n+1)
	bodies = append(bodies, BodyConfig{Name: "Star", Mass: 1})
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		radius := 1 + 0.5*float64(i)/float64(n)
		bodies = append(bodies, BodyConfig{
			Name:     fmt.Sprintf("P%02d", i),
			Mass:     1e-5,
			Position: mgl64.Vec3{radius * math.Cos(angle), 0, radius * math.Sin(angle)},
		})
	}

	return &Scenario{
		Name:        "ring",
		Description: "a disc of light bodies around a pinned star",
		G:           1.0,
		Field:       FieldConfig{Kind: FieldGravity, Epsilon: DefaultEpsilon, Softening: 0.01, Parallel: true},
		Integrator:  "verlet",
		Seeding:     SeedingOrbital,
		OrbitNormal: mgl64.Vec3{0, 1, 0},
		Anchor:      &AnchorConfig{Index: 0, Pinned: true},
		Boundary:    BoundaryConfig{Kind: BoundaryEscape, Radius: 20},
		Clock:       ClockConfig{MaxDelta: 0.016, TimeScale: 0.5},
		Run:         RunConfig{Dt: 0.001, Duration: 10.0, SampleEvery: 20},
		Bodies:      bodies,
	}
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scenario {
	s, ok := Presets[name]
	if !ok {
		return nil
	}
	return s.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
