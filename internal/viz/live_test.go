package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
)

func newLive(t *testing.T, preset string) Model {
	t.Helper()
	s := config.GetPreset(preset)
	e, err := experiment.Build(s)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return NewModel(e, s)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelTick(t *testing.T) {
	m := newLive(t, "bounce")
	start := time.Unix(100, 0)

	m, cmd := update(m, TickMsg(start))
	if cmd == nil {
		t.Error("expected next tick to be scheduled")
	}
	if m.Engine().Ticks() != 0 {
		t.Errorf("first frame only starts the clock, got %d ticks", m.Engine().Ticks())
	}

	m, _ = update(m, TickMsg(start.Add(10*time.Millisecond)))
	if m.Engine().Ticks() != 1 {
		t.Fatalf("expected 1 tick, got %d", m.Engine().Ticks())
	}
	if math.Abs(m.Engine().Time()-0.010) > 1e-9 {
		t.Errorf("expected t=0.010, got %f", m.Engine().Time())
	}

	// a stalled frame is clamped to the scenario's max delta
	m, _ = update(m, TickMsg(start.Add(2*time.Second)))
	if math.Abs(m.Engine().Time()-0.026) > 1e-9 {
		t.Errorf("expected clamped step to t=0.026, got %f", m.Engine().Time())
	}
}

func TestModelTrails(t *testing.T) {
	m := newLive(t, "bounce")
	if n := len(m.trails.Paths()[0]); n != 1 {
		t.Fatalf("expected the initial point, got %d", n)
	}
	if len(m.edges) != 4 {
		t.Errorf("expected the room drawn as a square, got %d edges", len(m.edges))
	}

	start := time.Unix(100, 0)
	m, _ = update(m, TickMsg(start))
	m, _ = update(m, TickMsg(start.Add(10*time.Millisecond)))
	m, _ = update(m, TickMsg(start.Add(20*time.Millisecond)))

	path := m.trails.Paths()[0]
	if len(path) != 3 {
		t.Fatalf("expected a point per tick, got %d", len(path))
	}
	if path[2] != m.Engine().Bodies()[0].Position {
		t.Errorf("expected latest point %v, got %v", m.Engine().Bodies()[0].Position, path[2])
	}

	m, _ = update(m, key("r"))
	if n := len(m.trails.Paths()[0]); n != 1 {
		t.Errorf("expected reset to restart the trail, got %d points", n)
	}
}

func TestModelPause(t *testing.T) {
	m := newLive(t, "solar")
	start := time.Unix(100, 0)

	m, _ = update(m, key(" "))
	if !m.Paused() {
		t.Fatal("expected paused after space")
	}

	m, _ = update(m, TickMsg(start))
	m, _ = update(m, TickMsg(start.Add(8*time.Millisecond)))
	if m.Engine().Ticks() != 0 {
		t.Errorf("paused engine advanced %d ticks", m.Engine().Ticks())
	}

	m, _ = update(m, key(" "))
	m, _ = update(m, TickMsg(start.Add(16*time.Millisecond)))
	if m.Engine().Ticks() != 1 {
		t.Errorf("expected 1 tick after resume, got %d", m.Engine().Ticks())
	}
}

func TestModelReset(t *testing.T) {
	m := newLive(t, "solar")
	initial := m.Engine().Bodies()
	start := time.Unix(100, 0)

	m, _ = update(m, TickMsg(start))
	for i := 1; i <= 5; i++ {
		m, _ = update(m, TickMsg(start.Add(time.Duration(i)*8*time.Millisecond)))
	}
	if m.Engine().Ticks() != 5 {
		t.Fatalf("expected 5 ticks, got %d", m.Engine().Ticks())
	}

	m, _ = update(m, key("r"))
	if m.Engine().Time() != 0 || m.Engine().Ticks() != 0 {
		t.Errorf("expected time reset, got t=%f ticks=%d", m.Engine().Time(), m.Engine().Ticks())
	}
	for i, b := range m.Engine().Bodies() {
		if b.Position != initial[i].Position || b.Velocity != initial[i].Velocity {
			t.Errorf("%s: state differs after reset", b.Name)
		}
	}
}

func TestModelQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		m := newLive(t, "cluster")
		_, cmd := update(m, key(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestModelCamera(t *testing.T) {
	m := newLive(t, "cluster")
	yaw := m.Camera().Yaw
	radius := m.Camera().Radius

	m, _ = update(m, key("left"))
	if m.Camera().Yaw >= yaw {
		t.Errorf("expected yaw to decrease from %f, got %f", yaw, m.Camera().Yaw)
	}
	m, _ = update(m, key("+"))
	if m.Camera().Radius >= radius {
		t.Errorf("expected zoom in from %f, got %f", radius, m.Camera().Radius)
	}
}

func TestModelView(t *testing.T) {
	m := newLive(t, "solar")
	view := m.View()

	for _, want := range []string{"SOLAR", "RUNNING", "Earth", "pinned"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestPicker(t *testing.T) {
	p := NewPicker()
	next, _ := p.Update(key("j"))
	p = next.(Picker)
	next, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = next.(Picker)

	if p.Chosen() != config.ListPresets()[1] {
		t.Errorf("expected %s, got %q", config.ListPresets()[1], p.Chosen())
	}
	if cmd == nil {
		t.Error("expected quit after choosing")
	}

	q := NewPicker()
	next, _ = q.Update(key("q"))
	if next.(Picker).Chosen() != "" {
		t.Error("expected no choice after quitting")
	}
}
