package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// coincidence is the radius below which a body counts as sitting on the anchor.
const coincidence = 1e-12

// StoreOptions configures how a Store seeds its bodies.
type StoreOptions struct {
	// Anchor is the index of the dominant body, or NoAnchor.
	Anchor  int
	Seeding Seeding
	// OrbitNormal is the normal of the plane orbits are seeded in.
	// The zero vector means +Z.
	OrbitNormal mgl64.Vec3
}

// Store holds the fixed, ordered set of bodies of one run.
type Store struct {
	seeds  []Seed
	bodies []Body
	anchor int
	mode   Seeding
	normal mgl64.Vec3
}

// NewStore validates the seeds and returns a store holding the authored
// positions, masses and velocities. Call Reset to apply orbital seeding.
func NewStore(seeds []Seed, opts StoreOptions) (*Store, error) {
	if len(seeds) == 0 {
		return nil, &ConfigError{Field: "bodies", Wrapped: ErrEmptySystem}
	}
	if opts.Anchor != NoAnchor && (opts.Anchor < 0 || opts.Anchor >= len(seeds)) {
		return nil, &ConfigError{Field: "anchor", Wrapped: ErrAnchorRange}
	}

	normal := opts.OrbitNormal
	if normal.LenSqr() == 0 {
		normal = mgl64.Vec3{0, 0, 1}
	}

	s := &Store{
		seeds:  make([]Seed, len(seeds)),
		bodies: make([]Body, len(seeds)),
		anchor: opts.Anchor,
		mode:   opts.Seeding,
		normal: normal.Normalize(),
	}
	copy(s.seeds, seeds)

	if err := s.validate(); err != nil {
		return nil, err
	}

	for i, seed := range s.seeds {
		s.bodies[i] = seed.body()
	}
	return s, nil
}

func (s *Store) validate() error {
	for _, seed := range s.seeds {
		if !(seed.Mass > 0) || math.IsInf(seed.Mass, 0) {
			return &ConfigError{Body: seed.Name, Field: "mass", Wrapped: ErrInvalidMass}
		}
		if !(seed.EccentricityFactor >= 0) || math.IsInf(seed.EccentricityFactor, 0) {
			return &ConfigError{Body: seed.Name, Field: "eccentricity_factor", Wrapped: ErrInvalidFactor}
		}
	}

	if s.mode != SeedOrbital {
		return nil
	}
	if s.anchor == NoAnchor {
		return &ConfigError{Field: "seeding", Wrapped: ErrNoAnchor}
	}
	origin := s.seeds[s.anchor].Position
	for i, seed := range s.seeds {
		if i == s.anchor {
			continue
		}
		if seed.Position.Sub(origin).Len() < coincidence {
			return &ConfigError{Body: seed.Name, Field: "position", Wrapped: ErrCoincidentAnchor}
		}
	}
	return nil
}

// Len returns the number of bodies.
func (s *Store) Len() int { return len(s.bodies) }

// Anchor returns the anchor index, or NoAnchor.
func (s *Store) Anchor() int { return s.anchor }

// Seeding returns the velocity seeding mode used by Reset.
func (s *Store) Seeding() Seeding { return s.mode }

// Bodies returns the live body slice. Only the engine phases that own the
// tick may mutate it.
func (s *Store) Bodies() []Body { return s.bodies }

// Snapshot returns a copy of the bodies for readers.
func (s *Store) Snapshot() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Seeds returns a copy of the authored seeds.
func (s *Store) Seeds() []Seed {
	out := make([]Seed, len(s.seeds))
	copy(out, s.seeds)
	return out
}

// Reset restores every body from its seed. Under orbital seeding the anchor
// is put at rest and every other body gets a velocity perpendicular to its
// radius from the anchor, scaled to the circular speed sqrt(G*M/|r|) times
// its eccentricity factor.
func (s *Store) Reset(g float64) error {
	if s.mode == SeedOrbital && (!(g > 0) || math.IsInf(g, 0)) {
		return &ConfigError{Field: "g", Wrapped: ErrInvalidCoupling}
	}
	if err := s.validate(); err != nil {
		return err
	}

	for i, seed := range s.seeds {
		s.bodies[i] = seed.body()
	}
	if s.mode != SeedOrbital {
		return nil
	}

	anchor := s.bodies[s.anchor]
	s.bodies[s.anchor].Velocity = mgl64.Vec3{}

	for i := range s.bodies {
		if i == s.anchor {
			continue
		}
		r := s.bodies[i].Position.Sub(anchor.Position)
		dist := r.Len()
		dir := s.normal.Cross(r)
		if dir.LenSqr() == 0 {
			// radius parallel to the orbit normal; no in-plane tangent exists
			s.bodies[i].Velocity = mgl64.Vec3{}
			continue
		}
		speed := math.Sqrt(g * anchor.Mass / dist)
		if f := s.seeds[i].EccentricityFactor; f > 0 {
			speed *= f
		}
		s.bodies[i].Velocity = dir.Normalize().Mul(speed)
	}
	return nil
}
