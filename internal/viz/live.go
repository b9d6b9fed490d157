package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	width           = 72
	height          = 24
	historyCapacity = 600
	trailCapacity   = 160
	frameRate       = time.Second / 60
	rotateStep      = 0.1
	zoomStep        = 1.2
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model hosts one engine in the terminal. Every frame it turns the measured
// frame time into a step with the scenario's clock and ticks the engine.
type Model struct {
	engine        *dynamo.Engine
	scenario      *config.Scenario
	clock         *sim.Clock
	camera        *Orbit
	canvas        *Canvas
	edges         []Edge
	paused        bool
	trails        *Trails
	energyHistory []float64
	showHelp      bool
	err           error
}

func NewModel(engine *dynamo.Engine, s *config.Scenario) Model {
	m := Model{
		engine:        engine,
		scenario:      s,
		clock:         sim.NewClock(s.Clock.MaxDelta, s.Clock.TimeScale),
		camera:        FitOrbit(engine.Bodies()),
		canvas:        NewCanvas(width, height),
		trails:        NewTrails(engine.Store().Len(), trailCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.edges = BoundaryEdges(s.Boundary)
	if m.edges != nil {
		m.camera = NewOrbit(s.Boundary.Limit * 4)
	}
	engine.AddObserver(m.trails)
	m.trails.Record(engine.Store().Bodies())
	m.record()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.reset()
		case "left", "h":
			m.camera.Rotate(-rotateStep, 0)
		case "right", "l":
			m.camera.Rotate(rotateStep, 0)
		case "up", "k":
			m.camera.Rotate(0, rotateStep)
		case "down", "j":
			m.camera.Rotate(0, -rotateStep)
		case "+", "=":
			m.camera.Zoom(1 / zoomStep)
		case "-", "_":
			m.camera.Zoom(zoomStep)
		case "c":
			m.camera = FitOrbit(m.engine.Bodies())
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-52, 20)
		h := max(msg.Height-4, 8)
		m.canvas = NewCanvas(w, h)
	case TickMsg:
		dt := m.clock.Delta(time.Time(msg))
		before := m.engine.Ticks()
		m.engine.Tick(dt, m.paused)
		if m.engine.Ticks() != before {
			m.record()
		}
		return m, tick()
	}
	return m, nil
}

// Paused reports whether ticks are currently ignored.
func (m Model) Paused() bool { return m.paused }

func (m Model) Engine() *dynamo.Engine { return m.engine }

func (m Model) Camera() *Orbit { return m.camera }

func (m *Model) reset() {
	m.err = m.engine.Reset(m.scenario.G)
	m.clock.Restart()
	m.trails.Clear()
	m.trails.Record(m.engine.Store().Bodies())
	m.energyHistory = m.energyHistory[:0]
	m.record()
}

// record samples the energy chart; trails record themselves on tick.
func (m *Model) record() {
	bodies := m.engine.Store().Bodies()
	if h, ok := m.engine.Field().(dynamo.Hamiltonian); ok {
		m.energyHistory = append(m.energyHistory, h.Energy(bodies))
		if len(m.energyHistory) > historyCapacity {
			m.energyHistory = m.energyHistory[1:]
		}
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	DrawEdges(m.canvas, m.edges, m.camera)

	w, h := m.canvas.PixelWidth(), m.canvas.PixelHeight()
	mat := m.camera.Matrix(float64(w) / float64(h))

	for _, trail := range m.trails.Paths() {
		for _, p := range trail {
			if x, y, _, ok := project(mat, p, w, h); ok {
				m.canvas.Set(x, y)
			}
		}
	}

	anchor := m.engine.Store().Anchor()
	for i, b := range m.engine.Store().Bodies() {
		x, y, _, ok := project(mat, b.Position, w, h)
		if !ok {
			continue
		}
		r := 1
		if i == anchor {
			r = 2
		}
		m.canvas.Disc(x, y, r)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.scenario.Name)) + "\n")
	if m.paused {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4f", m.engine.Time())) + "\n")
	s.WriteString(labelStyle.Render("Ticks") + valueStyle.Render(fmt.Sprintf("%d", m.engine.Ticks())) + "\n")
	if n := len(m.energyHistory); n > 0 {
		s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.6g", m.energyHistory[n-1])) + "\n")
	}
	s.WriteString(labelStyle.Render("Integrator") + valueStyle.Render(m.scenario.Integrator) + "\n")
	s.WriteString(labelStyle.Render("Camera") + valueStyle.Render(fmt.Sprintf("yaw %.1f pitch %.1f", m.camera.Yaw, m.camera.Pitch)) + "\n")

	s.WriteString("\nBODIES\n")
	for i, b := range m.engine.Store().Bodies() {
		speed := b.Velocity.Len()
		line := fmt.Sprintf("%-8s |v| %-10.4g", b.Name, speed)
		if m.engine.Pinned(i) {
			line += " pinned"
		}
		s.WriteString(CurrentTheme.BodyStyle(i).Render("● ") + valueStyle.Render(line) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Render(m.err.Error()) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("\n" + Separator(36) +
			"\nSpace  pause/resume\nR      reset\nQ/Esc  quit\n←→↑↓   orbit camera\n+/-    zoom\nC      refit camera\nT      theme"))
	} else {
		s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit ?:Help"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
