package dynamo

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func solarSeeds() []Seed {
	return []Seed{
		{Name: "sun", Mass: 1},
		{Name: "mercury", Mass: 3.3e-6, Position: mgl64.Vec3{0.39, 0, 0}, EccentricityFactor: 0.92},
		{Name: "earth", Mass: 3e-6, Position: mgl64.Vec3{0, 1, 0}},
	}
}

func TestNewStoreErrors(t *testing.T) {
	tests := []struct {
		name  string
		seeds []Seed
		opts  StoreOptions
		want  error
	}{
		{"empty", nil, StoreOptions{Anchor: NoAnchor}, ErrEmptySystem},
		{"zero mass", []Seed{{Name: "a"}}, StoreOptions{Anchor: NoAnchor}, ErrInvalidMass},
		{"negative mass", []Seed{{Name: "a", Mass: -1}}, StoreOptions{Anchor: NoAnchor}, ErrInvalidMass},
		{"nan mass", []Seed{{Name: "a", Mass: math.NaN()}}, StoreOptions{Anchor: NoAnchor}, ErrInvalidMass},
		{"inf mass", []Seed{{Name: "a", Mass: math.Inf(1)}}, StoreOptions{Anchor: NoAnchor}, ErrInvalidMass},
		{"negative factor", []Seed{{Name: "a", Mass: 1, EccentricityFactor: -0.5}}, StoreOptions{Anchor: NoAnchor}, ErrInvalidFactor},
		{"anchor out of range", []Seed{{Name: "a", Mass: 1}}, StoreOptions{Anchor: 3}, ErrAnchorRange},
		{"orbital without anchor", solarSeeds(), StoreOptions{Anchor: NoAnchor, Seeding: SeedOrbital}, ErrNoAnchor},
		{
			"coincident with anchor",
			[]Seed{{Name: "sun", Mass: 1}, {Name: "twin", Mass: 1}},
			StoreOptions{Anchor: 0, Seeding: SeedOrbital},
			ErrCoincidentAnchor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.seeds, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected *ConfigError, got %T", err)
			}
		})
	}
}

func TestNewStoreKeepsAuthoredState(t *testing.T) {
	seeds := []Seed{
		{Name: "a", Mass: 2, Position: mgl64.Vec3{1, 2, 3}, Velocity: mgl64.Vec3{0.5, 0, 0}},
		{Name: "b", Mass: 1, Position: mgl64.Vec3{-1, 0, 0}},
	}
	s, err := NewStore(seeds, StoreOptions{Anchor: NoAnchor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Len() != 2 {
		t.Fatalf("expected 2 bodies, got %d", s.Len())
	}
	b := s.Bodies()[0]
	if b.Name != "a" || b.Mass != 2 || b.Position != seeds[0].Position || b.Velocity != seeds[0].Velocity {
		t.Errorf("expected authored body, got %+v", b)
	}

	seeds[0].Mass = 99
	if s.Seeds()[0].Mass != 2 {
		t.Error("expected store to copy seeds")
	}
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	s, err := NewStore(solarSeeds(), StoreOptions{Anchor: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := s.Snapshot()
	snap[1].Position = mgl64.Vec3{42, 0, 0}
	if s.Bodies()[1].Position == snap[1].Position {
		t.Error("expected snapshot mutation not to reach the store")
	}
}

func TestResetOrbitalSpeeds(t *testing.T) {
	g := 4 * math.Pi * math.Pi
	s, err := NewStore(solarSeeds(), StoreOptions{Anchor: 0, Seeding: SeedOrbital})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Reset(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bodies := s.Bodies()
	if bodies[0].Velocity != (mgl64.Vec3{}) {
		t.Errorf("expected anchor at rest, got %v", bodies[0].Velocity)
	}

	tests := []struct {
		index int
		want  float64
	}{
		{1, math.Sqrt(g/0.39) * 0.92},
		{2, math.Sqrt(g / 1)},
	}
	for _, tt := range tests {
		b := bodies[tt.index]
		if got := b.Velocity.Len(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: expected speed %f, got %f", b.Name, tt.want, got)
		}
		if dot := b.Velocity.Dot(b.Position); math.Abs(dot) > 1e-12 {
			t.Errorf("%s: expected velocity perpendicular to radius, dot=%g", b.Name, dot)
		}
		if math.Abs(b.Velocity.Z()) > 1e-12 {
			t.Errorf("%s: expected velocity in the XY plane, got %v", b.Name, b.Velocity)
		}
	}
}

func TestResetOrbitNormal(t *testing.T) {
	seeds := []Seed{
		{Name: "sun", Mass: 1},
		{Name: "planet", Mass: 1e-6, Position: mgl64.Vec3{1, 0, 0}},
		{Name: "polar", Mass: 1e-6, Position: mgl64.Vec3{0, 2, 0}},
	}
	s, err := NewStore(seeds, StoreOptions{Anchor: 0, Seeding: SeedOrbital, OrbitNormal: mgl64.Vec3{0, 3, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Reset(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := s.Bodies()[1].Velocity
	if math.Abs(v.Y()) > 1e-12 || math.Abs(v.Len()-1) > 1e-12 {
		t.Errorf("expected unit speed in the XZ plane, got %v", v)
	}
	if s.Bodies()[2].Velocity != (mgl64.Vec3{}) {
		t.Errorf("expected body on the normal axis to get no velocity, got %v", s.Bodies()[2].Velocity)
	}
}

func TestResetRestoresSeeds(t *testing.T) {
	s, err := NewStore(solarSeeds(), StoreOptions{Anchor: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Bodies()[1].Position = mgl64.Vec3{9, 9, 9}
	s.Bodies()[1].Acceleration = mgl64.Vec3{1, 1, 1}
	if err := s.Reset(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := s.Bodies()[1]
	if b.Position != (mgl64.Vec3{0.39, 0, 0}) {
		t.Errorf("expected seed position, got %v", b.Position)
	}
	if b.Acceleration != (mgl64.Vec3{}) {
		t.Errorf("expected cleared acceleration, got %v", b.Acceleration)
	}
}

func TestResetRejectsCoupling(t *testing.T) {
	s, err := NewStore(solarSeeds(), StoreOptions{Anchor: 0, Seeding: SeedOrbital})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, g := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := s.Reset(g); !errors.Is(err, ErrInvalidCoupling) {
			t.Errorf("g=%v: expected ErrInvalidCoupling, got %v", g, err)
		}
	}
}

func TestSeedingString(t *testing.T) {
	if SeedAuthored.String() != "authored" || SeedOrbital.String() != "orbital" {
		t.Errorf("unexpected names %q %q", SeedAuthored, SeedOrbital)
	}
	if Seeding(7).String() != "unknown" {
		t.Errorf("expected unknown, got %q", Seeding(7))
	}
}

func TestBodyIsValid(t *testing.T) {
	tests := []struct {
		name string
		body Body
		want bool
	}{
		{"zero", Body{}, true},
		{"nan position", Body{Position: mgl64.Vec3{math.NaN(), 0, 0}}, false},
		{"inf velocity", Body{Velocity: mgl64.Vec3{0, math.Inf(-1), 0}}, false},
		{"nan acceleration", Body{Acceleration: mgl64.Vec3{0, 0, math.NaN()}}, false},
	}
	for _, tt := range tests {
		if got := tt.body.IsValid(); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}
