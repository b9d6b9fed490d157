package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestDefaultScenario(t *testing.T) {
	s := DefaultScenario()

	if s.Integrator != "verlet" {
		t.Errorf("expected integrator verlet, got %s", s.Integrator)
	}
	if s.Field.Epsilon != DefaultEpsilon {
		t.Errorf("expected epsilon %g, got %g", DefaultEpsilon, s.Field.Epsilon)
	}
	if s.Run.Dt <= 0 {
		t.Error("dt should be positive")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestGetPreset(t *testing.T) {
	s := GetPreset("solar")
	if s == nil {
		t.Fatal("expected preset, got nil")
	}
	if math.Abs(s.G-4*math.Pi*math.Pi) > 1e-12 {
		t.Errorf("expected G 4pi^2, got %f", s.G)
	}
	if s.Anchor == nil || !s.Anchor.Pinned {
		t.Error("expected pinned anchor")
	}
	if len(s.Bodies) != 5 {
		t.Errorf("expected 5 bodies, got %d", len(s.Bodies))
	}
}

func TestGetPreset_Copy(t *testing.T) {
	s := GetPreset("bounce")
	s.Bodies[0].Mass = 42
	s.Name = "changed"

	again := GetPreset("bounce")
	if again.Bodies[0].Mass != 1 {
		t.Errorf("preset mutated through copy: mass %f", again.Bodies[0].Mass)
	}
	if again.Name != "bounce" {
		t.Errorf("expected name bounce, got %s", again.Name)
	}

	solar := GetPreset("solar")
	solar.Anchor.Pinned = false
	if !GetPreset("solar").Anchor.Pinned {
		t.Error("anchor mutated through copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	expected := []string{"bounce", "cluster", "ring", "solar", "solar-free"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d presets, got %d", len(expected), len(names))
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected %s at %d, got %s", expected[i], i, names[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scenario)
		target error
	}{
		{"empty", func(s *Scenario) { s.Bodies = nil }, dynamo.ErrEmptySystem},
		{"zero mass", func(s *Scenario) { s.Bodies[1].Mass = 0 }, dynamo.ErrInvalidMass},
		{"negative mass", func(s *Scenario) { s.Bodies[1].Mass = -1 }, dynamo.ErrInvalidMass},
		{"nan mass", func(s *Scenario) { s.Bodies[1].Mass = math.NaN() }, dynamo.ErrInvalidMass},
		{"negative factor", func(s *Scenario) { s.Bodies[1].EccentricityFactor = -0.1 }, dynamo.ErrInvalidFactor},
		{"zero g", func(s *Scenario) { s.G = 0 }, dynamo.ErrInvalidCoupling},
		{"anchor range", func(s *Scenario) { s.Anchor.Index = 9 }, dynamo.ErrAnchorRange},
		{"orbital without anchor", func(s *Scenario) { s.Anchor = nil }, dynamo.ErrNoAnchor},
		{"unknown field", func(s *Scenario) { s.Field.Kind = "magnetic" }, ErrInvalid},
		{"unknown seeding", func(s *Scenario) { s.Seeding = "random" }, ErrInvalid},
		{"unknown boundary", func(s *Scenario) { s.Boundary.Kind = "torus" }, ErrInvalid},
		{"escape radius", func(s *Scenario) { s.Boundary.Radius = 0 }, ErrInvalid},
		{"clock", func(s *Scenario) { s.Clock.MaxDelta = 0 }, ErrInvalid},
		{"time scale", func(s *Scenario) { s.Clock.TimeScale = -1 }, ErrInvalid},
		{"dt", func(s *Scenario) { s.Run.Dt = 0 }, ErrInvalid},
		{"duration", func(s *Scenario) { s.Run.Duration = -1 }, ErrInvalid},
		{"nan orbit normal", func(s *Scenario) { s.OrbitNormal[1] = math.NaN() }, ErrInvalid},
		{"inf orbit normal", func(s *Scenario) { s.OrbitNormal[2] = math.Inf(1) }, ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := GetPreset("solar")
			tt.mutate(s)
			err := s.Validate()
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestValidate_UniformIgnoresG(t *testing.T) {
	s := GetPreset("bounce")
	s.G = 0
	if err := s.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidate_WallsLimit(t *testing.T) {
	s := GetPreset("cluster")
	s.Boundary.Limit = 0
	if err := s.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate_DampingAboveOne(t *testing.T) {
	tests := []struct {
		name   string
		preset string
		mutate func(*Scenario)
	}{
		{"walls", "cluster", func(s *Scenario) { s.Boundary.Damping = 1.2 }},
		{"room ceiling", "bounce", func(s *Scenario) { s.Boundary.CeilingDamping = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := GetPreset(tt.preset)
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}

	s := GetPreset("cluster")
	s.Boundary.Damping = 1
	if err := s.Validate(); err != nil {
		t.Errorf("expected elastic walls to validate, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solar.yaml")
	s := GetPreset("solar")

	if err := Save(path, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Name != s.Name {
		t.Errorf("expected name %s, got %s", s.Name, loaded.Name)
	}
	if loaded.Anchor == nil || loaded.Anchor.Index != 0 || !loaded.Anchor.Pinned {
		t.Errorf("anchor not preserved: %+v", loaded.Anchor)
	}
	if len(loaded.Bodies) != len(s.Bodies) {
		t.Fatalf("expected %d bodies, got %d", len(s.Bodies), len(loaded.Bodies))
	}
	if loaded.Bodies[3].Position != s.Bodies[3].Position {
		t.Errorf("expected position %v, got %v", s.Bodies[3].Position, loaded.Bodies[3].Position)
	}
	if loaded.OrbitNormal != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("expected orbit normal +Y, got %v", loaded.OrbitNormal)
	}
}

func TestParse_Defaults(t *testing.T) {
	data := []byte(`
name: pair
g: 2
bodies:
  - name: a
    mass: 1
    position: [0, 0, 0]
  - name: b
    mass: 1
    position: [1, 0, 0]
    velocity: [0, 1, 0]
`)
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.G != 2 {
		t.Errorf("expected G 2, got %f", s.G)
	}
	if s.Integrator != DefaultIntegrator {
		t.Errorf("expected default integrator, got %s", s.Integrator)
	}
	if s.Boundary.Kind != BoundaryNone {
		t.Errorf("expected boundary none, got %s", s.Boundary.Kind)
	}
	if s.Bodies[1].Velocity != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("expected velocity (0,1,0), got %v", s.Bodies[1].Velocity)
	}
	if s.Anchor != nil {
		t.Error("expected no anchor")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("bodies: []\n")); !errors.Is(err, dynamo.ErrEmptySystem) {
		t.Errorf("expected ErrEmptySystem, got %v", err)
	}
	if _, err := Parse([]byte("bodies: [[")); err == nil {
		t.Error("expected yaml error")
	}
}

func TestStoreOptions(t *testing.T) {
	s := GetPreset("solar-free")
	opts := s.StoreOptions()
	if opts.Anchor != 0 {
		t.Errorf("expected anchor 0, got %d", opts.Anchor)
	}
	if opts.Seeding != dynamo.SeedOrbital {
		t.Errorf("expected orbital seeding, got %v", opts.Seeding)
	}
	if s.EngineOptions().PinAnchor {
		t.Error("solar-free should not pin the anchor")
	}

	b := GetPreset("bounce").StoreOptions()
	if b.Anchor != dynamo.NoAnchor {
		t.Errorf("expected no anchor, got %d", b.Anchor)
	}
}
