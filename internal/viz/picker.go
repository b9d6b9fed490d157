package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravsim/internal/config"
)

// Picker lists the built-in scenarios and records the one chosen.
type Picker struct {
	names  []string
	cursor int
	chosen string
}

func NewPicker() Picker {
	return Picker{names: config.ListPresets()}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.names) > 0 {
			p.chosen = p.names[p.cursor]
		}
		return p, tea.Quit
	}
	return p, nil
}

// Chosen returns the selected preset name, or "" if the picker was left.
func (p Picker) Chosen() string { return p.chosen }

func (p Picker) View() string {
	var s strings.Builder
	s.WriteString(headerStyle().Render("GRAVSIM") + "\n")
	for i, name := range p.names {
		desc := ""
		if preset := config.Presets[name]; preset != nil {
			desc = preset.Description
		}
		label := fmt.Sprintf("  %-12s", name)
		if i == p.cursor {
			label = Selected.Render(fmt.Sprintf("> %-12s", name))
		}
		s.WriteString(label + " " + Subtle.Render(desc) + "\n")
	}
	s.WriteString(helpStyle.Render("\n↑↓:Select Enter:Run Q:Quit"))
	return s.String()
}
