package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEpsilon     = 1e-5
	DefaultMaxDelta    = 0.016
	DefaultTimeScale   = 1.0
	DefaultDt          = 0.001
	DefaultDuration    = 10.0
	DefaultSampleEvery = 1
	DefaultIntegrator  = "verlet"
)

// Field kinds.
const (
	FieldGravity = "gravity"
	FieldUniform = "uniform"
)

// Boundary kinds.
const (
	BoundaryNone   = "none"
	BoundaryWalls  = "walls"
	BoundaryRoom   = "room"
	BoundaryEscape = "escape"
)

// Seeding modes.
const (
	SeedingAuthored = "authored"
	SeedingOrbital  = "orbital"
)

// ErrInvalid is wrapped by every scenario-level validation failure.
var ErrInvalid = errors.New("config: invalid scenario")

// Scenario is everything that distinguishes one simulation setup from
// another: constants, bodies and the choice of field, integrator and
// boundary policy.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	G           float64        `yaml:"g"`
	Field       FieldConfig    `yaml:"field"`
	Integrator  string         `yaml:"integrator"`
	Seeding     string         `yaml:"seeding"`
	OrbitNormal mgl64.Vec3     `yaml:"orbit_normal,flow"`
	Anchor      *AnchorConfig  `yaml:"anchor,omitempty"`
	Boundary    BoundaryConfig `yaml:"boundary"`
	Clock       ClockConfig    `yaml:"clock"`
	Run         RunConfig      `yaml:"run"`
	Bodies      []BodyConfig   `yaml:"bodies"`
}

type FieldConfig struct {
	Kind      string     `yaml:"kind"`
	Epsilon   float64    `yaml:"epsilon"`
	Softening float64    `yaml:"softening,omitempty"`
	Uniform   mgl64.Vec3 `yaml:"uniform,flow"`
	// Parallel evaluates gravity across goroutines for large systems.
	Parallel bool `yaml:"parallel,omitempty"`
}

type AnchorConfig struct {
	Index  int  `yaml:"index"`
	Pinned bool `yaml:"pinned"`
}

type BoundaryConfig struct {
	Kind           string  `yaml:"kind"`
	Limit          float64 `yaml:"limit,omitempty"`
	Damping        float64 `yaml:"damping,omitempty"`
	Radius         float64 `yaml:"radius,omitempty"`
	CeilingDamping float64 `yaml:"ceiling_damping,omitempty"`
	CeilingSpeed   float64 `yaml:"ceiling_speed,omitempty"`
}

// ClockConfig turns measured frame time into simulated time: the raw delta
// is clamped to MaxDelta seconds, then multiplied by TimeScale.
type ClockConfig struct {
	MaxDelta  float64 `yaml:"max_delta"`
	TimeScale float64 `yaml:"time_scale"`
}

// RunConfig drives headless runs with a fixed step.
type RunConfig struct {
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	SampleEvery int     `yaml:"sample_every"`
}

type BodyConfig struct {
	Name               string     `yaml:"name"`
	Mass               float64    `yaml:"mass"`
	Position           mgl64.Vec3 `yaml:"position,flow"`
	Velocity           mgl64.Vec3 `yaml:"velocity,flow"`
	EccentricityFactor float64    `yaml:"eccentricity_factor,omitempty"`
}

// DefaultScenario returns the scenario fields a file may leave out.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "custom",
		G:           1.0,
		Field:       FieldConfig{Kind: FieldGravity, Epsilon: DefaultEpsilon},
		Integrator:  DefaultIntegrator,
		Seeding:     SeedingAuthored,
		OrbitNormal: mgl64.Vec3{0, 0, 1},
		Boundary:    BoundaryConfig{Kind: BoundaryNone, Damping: 1, CeilingDamping: 1},
		Clock:       ClockConfig{MaxDelta: DefaultMaxDelta, TimeScale: DefaultTimeScale},
		Run:         RunConfig{Dt: DefaultDt, Duration: DefaultDuration, SampleEvery: DefaultSampleEvery},
	}
}

// Load reads a YAML scenario on top of the defaults and validates it.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML scenario on top of the defaults and validates it.
func Parse(data []byte) (*Scenario, error) {
	s := DefaultScenario()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects scenarios the engine cannot run. Body-level failures
// wrap the dynamo sentinel errors.
func (s *Scenario) Validate() error {
	if len(s.Bodies) == 0 {
		return &dynamo.ConfigError{Field: "bodies", Wrapped: dynamo.ErrEmptySystem}
	}
	for _, b := range s.Bodies {
		if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
			return &dynamo.ConfigError{Body: b.Name, Field: "mass", Wrapped: dynamo.ErrInvalidMass}
		}
		if !(b.EccentricityFactor >= 0) || math.IsInf(b.EccentricityFactor, 0) {
			return &dynamo.ConfigError{Body: b.Name, Field: "eccentricity_factor", Wrapped: dynamo.ErrInvalidFactor}
		}
	}

	switch s.Field.Kind {
	case FieldGravity:
		if !(s.G > 0) || math.IsInf(s.G, 0) {
			return &dynamo.ConfigError{Field: "g", Wrapped: dynamo.ErrInvalidCoupling}
		}
		if s.Field.Epsilon < 0 || s.Field.Softening < 0 {
			return fmt.Errorf("%w: epsilon and softening must be non-negative", ErrInvalid)
		}
	case FieldUniform:
	default:
		return fmt.Errorf("%w: unknown field kind %q", ErrInvalid, s.Field.Kind)
	}

	if s.Anchor != nil && (s.Anchor.Index < 0 || s.Anchor.Index >= len(s.Bodies)) {
		return &dynamo.ConfigError{Field: "anchor", Wrapped: dynamo.ErrAnchorRange}
	}

	for _, c := range s.OrbitNormal {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: orbit_normal must be finite, got %v", ErrInvalid, s.OrbitNormal)
		}
	}

	switch s.Seeding {
	case SeedingAuthored:
	case SeedingOrbital:
		if s.Anchor == nil {
			return &dynamo.ConfigError{Field: "seeding", Wrapped: dynamo.ErrNoAnchor}
		}
		if !(s.G > 0) {
			return &dynamo.ConfigError{Field: "g", Wrapped: dynamo.ErrInvalidCoupling}
		}
	default:
		return fmt.Errorf("%w: unknown seeding %q", ErrInvalid, s.Seeding)
	}

	if err := s.Boundary.validate(); err != nil {
		return err
	}

	if !(s.Clock.MaxDelta > 0) {
		return fmt.Errorf("%w: clock max_delta must be positive, got %f", ErrInvalid, s.Clock.MaxDelta)
	}
	if !(s.Clock.TimeScale > 0) {
		return fmt.Errorf("%w: clock time_scale must be positive, got %f", ErrInvalid, s.Clock.TimeScale)
	}
	if !(s.Run.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalid, s.Run.Dt)
	}
	if !(s.Run.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalid, s.Run.Duration)
	}
	if s.Run.SampleEvery < 0 {
		return fmt.Errorf("%w: sample_every must not be negative", ErrInvalid)
	}
	return nil
}

func (b BoundaryConfig) validate() error {
	switch b.Kind {
	case BoundaryNone:
	case BoundaryWalls, BoundaryRoom:
		if !(b.Limit > 0) {
			return fmt.Errorf("%w: %s boundary needs a positive limit", ErrInvalid, b.Kind)
		}
		if b.Damping < 0 || b.CeilingDamping < 0 || b.CeilingSpeed < 0 {
			return fmt.Errorf("%w: boundary damping and speed must be non-negative", ErrInvalid)
		}
		if b.Damping > 1 || b.CeilingDamping > 1 {
			return fmt.Errorf("%w: boundary damping above 1 adds energy", ErrInvalid)
		}
	case BoundaryEscape:
		if !(b.Radius > 0) {
			return fmt.Errorf("%w: escape boundary needs a positive radius", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown boundary kind %q", ErrInvalid, b.Kind)
	}
	return nil
}

// Seeds converts the body list into store seeds.
func (s *Scenario) Seeds() []dynamo.Seed {
	seeds := make([]dynamo.Seed, len(s.Bodies))
	for i, b := range s.Bodies {
		seeds[i] = dynamo.Seed{
			Name:               b.Name,
			Position:           b.Position,
			Velocity:           b.Velocity,
			Mass:               b.Mass,
			EccentricityFactor: b.EccentricityFactor,
		}
	}
	return seeds
}

func (s *Scenario) StoreOptions() dynamo.StoreOptions {
	opts := dynamo.StoreOptions{
		Anchor:      dynamo.NoAnchor,
		Seeding:     dynamo.SeedAuthored,
		OrbitNormal: s.OrbitNormal,
	}
	if s.Anchor != nil {
		opts.Anchor = s.Anchor.Index
	}
	if s.Seeding == SeedingOrbital {
		opts.Seeding = dynamo.SeedOrbital
	}
	return opts
}

func (s *Scenario) EngineOptions() dynamo.EngineOptions {
	return dynamo.EngineOptions{
		PinAnchor: s.Anchor != nil && s.Anchor.Pinned,
		G:         s.G,
	}
}

// Clone returns a deep copy.
func (s *Scenario) Clone() *Scenario {
	c := *s
	if s.Anchor != nil {
		a := *s.Anchor
		c.Anchor = &a
	}
	c.Bodies = make([]BodyConfig, len(s.Bodies))
	copy(c.Bodies, s.Bodies)
	return &c
}
