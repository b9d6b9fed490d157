package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gravsim/internal/audio"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/viz"
	"k8s.io/klog/v2"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	trailLength  = 240
	orbitSpeed   = 1.2
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

// App hosts one engine in a raylib window. Keys are polled every frame and
// debounced, the frame time goes through the scenario clock.
type App struct {
	engine   *dynamo.Engine
	scenario *config.Scenario
	clock    *sim.Clock
	orbit    *viz.Orbit
	keys     *Debouncer
	paused   bool
	trails   *viz.Trails
	edges    []viz.Edge
	err      error

	// audio is nil unless enabled; baseKE is the kinetic energy after the
	// last reset.
	audio  *audio.Processor
	baseKE float64
}

// Options toggles optional window features.
type Options struct {
	// Audio plays a pad whose brightness follows kinetic energy.
	Audio bool
}

func NewApp(engine *dynamo.Engine, s *config.Scenario) *App {
	a := &App{
		engine:   engine,
		scenario: s,
		clock:    sim.NewClock(s.Clock.MaxDelta, s.Clock.TimeScale),
		orbit:    viz.FitOrbit(engine.Bodies()),
		keys:     NewDebouncer(DefaultCooldown),
		trails:   viz.NewTrails(engine.Store().Len(), trailLength),
		baseKE:   physics.KineticEnergy(engine.Store().Bodies()),
		edges:    viz.BoundaryEdges(s.Boundary),
	}
	if a.edges != nil {
		a.orbit = viz.NewOrbit(s.Boundary.Limit * 4)
	}
	engine.AddObserver(a.trails)
	return a
}

func initWindow(title string) {
	rl.InitWindow(screenWidth, screenHeight, title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed or Esc is pressed.
// A failing audio device is logged and the window runs silent.
func Run(engine *dynamo.Engine, s *config.Scenario, opts Options) {
	initWindow("gravsim: " + s.Name)
	defer rl.CloseWindow()

	a := NewApp(engine, s)
	if opts.Audio {
		proc := audio.NewProcessor()
		if err := proc.Start(); err != nil {
			klog.ErrorS(err, "audio unavailable")
		} else {
			a.audio = proc
			defer proc.Stop()
		}
	}
	a.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update(time.Now()) {
			return
		}
		a.Draw()
	}
}

// Update handles input and advances the engine. It returns false when the
// user asked to quit.
func (a *App) Update(now time.Time) bool {
	if rl.IsKeyDown(rl.KeyEscape) && a.keys.Allow(ActionQuit, now) {
		return false
	}
	if rl.IsKeyDown(rl.KeySpace) && a.keys.Allow(ActionPause, now) {
		a.paused = !a.paused
		klog.V(2).InfoS("pause toggled", "paused", a.paused)
	}
	if rl.IsKeyDown(rl.KeyR) && a.keys.Allow(ActionReset, now) {
		a.reset()
	}

	frame := float64(rl.GetFrameTime())
	if rl.IsKeyDown(rl.KeyLeft) {
		a.orbit.Rotate(-orbitSpeed*frame, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		a.orbit.Rotate(orbitSpeed*frame, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.orbit.Rotate(0, orbitSpeed*frame)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.orbit.Rotate(0, -orbitSpeed*frame)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.orbit.Zoom(1 - 0.1*float64(wheel))
	}

	dt := a.clock.Delta(now)
	before := a.engine.Ticks()
	a.engine.Tick(dt, a.paused)
	if a.audio != nil && a.engine.Ticks() != before {
		a.audio.SetLevel(audio.EnergyLevel(physics.KineticEnergy(a.engine.Store().Bodies()), a.baseKE))
	}
	return true
}

func (a *App) reset() {
	a.err = a.engine.Reset(a.scenario.G)
	if a.err != nil {
		klog.ErrorS(a.err, "reset failed", "scenario", a.scenario.Name)
	}
	a.clock.Restart()
	a.baseKE = physics.KineticEnergy(a.engine.Store().Bodies())
	a.trails.Clear()
}

func (a *App) camera() rl.Camera3D {
	return rl.NewCamera3D(
		vec(a.orbit.Eye()),
		vec(a.orbit.Target),
		rl.NewVector3(0, 1, 0),
		float32(mgl64.RadToDeg(a.orbit.FOV)),
		rl.CameraPerspective,
	)
}

func vec(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}
