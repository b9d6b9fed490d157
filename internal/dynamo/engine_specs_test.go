package dynamo_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/boundary"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
)

func planets() []dynamo.Seed {
	return []dynamo.Seed{
		{Name: "sun", Mass: 1},
		{Name: "mercury", Mass: 3.3e-6, Position: mgl64.Vec3{0.39, 0, 0}, EccentricityFactor: 0.92},
		{Name: "venus", Mass: 2.45e-6, Position: mgl64.Vec3{0, 0, 0.72}, EccentricityFactor: 0.9},
		{Name: "earth", Mass: 3e-6, Position: mgl64.Vec3{-1, 0, 0}, EccentricityFactor: 0.88},
	}
}

func newEngine(pinned bool, b dynamo.Boundary) *dynamo.Engine {
	store, err := dynamo.NewStore(planets(), dynamo.StoreOptions{
		Anchor:      0,
		Seeding:     dynamo.SeedOrbital,
		OrbitNormal: mgl64.Vec3{0, 1, 0},
	})
	Expect(err).NotTo(HaveOccurred())

	e := dynamo.New(store, physics.NewGravity(physics.AstronomicalG), integrators.NewVerlet(), b,
		dynamo.EngineOptions{PinAnchor: pinned, G: physics.AstronomicalG})
	Expect(e.Reset(physics.AstronomicalG)).To(Succeed())
	return e
}

func run(e *dynamo.Engine, dt float64, steps int) {
	for i := 0; i < steps; i++ {
		e.Tick(dt, false)
	}
}

var _ = Describe("Engine", func() {
	Describe("orbital seeding", func() {
		It("gives each planet its scaled circular speed perpendicular to the radius", func() {
			e := newEngine(true, boundary.None{})
			mercury := e.Bodies()[1]

			want := math.Sqrt(physics.AstronomicalG/0.39) * 0.92
			Expect(mercury.Velocity.Len()).To(BeNumerically("~", want, 1e-9))
			Expect(mercury.Velocity.Dot(mercury.Position)).To(BeNumerically("~", 0, 1e-12))
			Expect(mercury.Velocity.Y()).To(BeNumerically("~", 0, 1e-12))
		})

		It("leaves the anchor at rest", func() {
			e := newEngine(false, boundary.None{})
			Expect(e.Bodies()[0].Velocity).To(Equal(mgl64.Vec3{}))
		})
	})

	Describe("conservation", func() {
		It("conserves total momentum when nothing is pinned", func() {
			e := newEngine(false, boundary.None{})
			p0 := physics.Momentum(e.Bodies())

			run(e, 0.0005, 4000)

			p1 := physics.Momentum(e.Bodies())
			Expect(p1.Sub(p0).Len()).To(BeNumerically("<", 1e-12))
		})

		It("keeps energy within a small drift under velocity verlet", func() {
			e := newEngine(false, boundary.None{})
			gravity := e.Field().(*physics.Gravity)
			e0 := gravity.Energy(e.Bodies())

			run(e, 0.0005, 4000)

			e1 := gravity.Energy(e.Bodies())
			Expect(math.Abs((e1 - e0) / e0)).To(BeNumerically("<", 1e-3))
		})
	})

	Describe("pinned anchor", func() {
		It("never moves", func() {
			e := newEngine(true, boundary.None{})
			run(e, 0.001, 500)

			sun := e.Bodies()[0]
			Expect(sun.Position).To(Equal(mgl64.Vec3{}))
			Expect(sun.Velocity).To(Equal(mgl64.Vec3{}))
		})
	})

	Describe("determinism", func() {
		It("produces identical trajectories for identical inputs", func() {
			a := newEngine(true, boundary.NewEscape(50))
			b := newEngine(true, boundary.NewEscape(50))

			run(a, 0.001, 1000)
			run(b, 0.001, 1000)

			Expect(cmp.Diff(a.Bodies(), b.Bodies())).To(BeEmpty())
		})
	})

	Describe("Reset", func() {
		It("is idempotent and restores the seeded state", func() {
			e := newEngine(true, boundary.None{})
			initial := e.Bodies()

			run(e, 0.001, 250)
			Expect(cmp.Diff(initial, e.Bodies())).NotTo(BeEmpty())

			Expect(e.Reset(physics.AstronomicalG)).To(Succeed())
			Expect(e.Reset(physics.AstronomicalG)).To(Succeed())
			Expect(cmp.Diff(initial, e.Bodies())).To(BeEmpty())
			Expect(e.Ticks()).To(BeZero())
		})

		It("rescales orbital speeds when G changes", func() {
			e := newEngine(true, boundary.None{})
			v := e.Bodies()[1].Velocity.Len()

			Expect(e.Reset(4 * physics.AstronomicalG)).To(Succeed())
			Expect(e.Bodies()[1].Velocity.Len()).To(BeNumerically("~", 2*v, 1e-9))
			Expect(e.Field().(*physics.Gravity).G).To(Equal(4 * physics.AstronomicalG))
		})
	})

	Describe("Tick", func() {
		DescribeTable("leaves state untouched",
			func(dt float64, paused bool) {
				e := newEngine(true, boundary.None{})
				before := e.Bodies()

				e.Tick(dt, paused)

				Expect(cmp.Diff(before, e.Bodies())).To(BeEmpty())
				Expect(e.Time()).To(BeZero())
			},
			Entry("when paused", 0.01, true),
			Entry("for zero dt", 0.0, false),
			Entry("for negative dt", -0.01, false),
			Entry("for NaN dt", math.NaN(), false),
			Entry("for infinite dt", math.Inf(1), false),
		)
	})

	Describe("degenerate pairs", func() {
		It("skips coincident bodies instead of producing NaN", func() {
			store, err := dynamo.NewStore([]dynamo.Seed{
				{Name: "a", Mass: 1, Position: mgl64.Vec3{1, 0, 0}},
				{Name: "b", Mass: 1, Position: mgl64.Vec3{1, 0, 0}},
				{Name: "c", Mass: 1, Position: mgl64.Vec3{-1, 0, 0}},
			}, dynamo.StoreOptions{Anchor: dynamo.NoAnchor})
			Expect(err).NotTo(HaveOccurred())

			e := dynamo.New(store, physics.NewGravity(1), integrators.NewVerlet(), nil, dynamo.EngineOptions{})
			e.Tick(0.001, false)

			Expect(e.Validate()).To(Succeed())
			bodies := e.Bodies()
			Expect(bodies[0].Acceleration).To(Equal(bodies[1].Acceleration))
			Expect(bodies[0].Acceleration.X()).To(BeNumerically("<", 0))
		})
	})

	Describe("walls", func() {
		It("keeps bodies inside the box", func() {
			store, err := dynamo.NewStore([]dynamo.Seed{
				{Name: "a", Mass: 1, Position: mgl64.Vec3{0.5, 0, 0}, Velocity: mgl64.Vec3{3, 0, 0}},
				{Name: "b", Mass: 1, Position: mgl64.Vec3{-0.5, 0, 0}, Velocity: mgl64.Vec3{0, -3, 0}},
			}, dynamo.StoreOptions{Anchor: dynamo.NoAnchor})
			Expect(err).NotTo(HaveOccurred())

			e := dynamo.New(store, physics.NewGravity(1), integrators.NewVerlet(), boundary.NewWalls(1), dynamo.EngineOptions{})
			for i := 0; i < 2000; i++ {
				e.Tick(0.005, false)
				for _, b := range e.Bodies() {
					for _, c := range b.Position {
						Expect(math.Abs(c)).To(BeNumerically("<=", 1))
					}
				}
			}
		})
	})
})
