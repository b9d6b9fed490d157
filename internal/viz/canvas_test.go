package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Error("expected pixel (3,5) set")
	}
	if c.IsSet(2, 5) {
		t.Error("expected pixel (2,5) clear")
	}
	if c.Grid[1][1] != blank|0x10 {
		t.Errorf("expected braille dot 5 in cell (1,1), got %U", c.Grid[1][1])
	}

	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)
	if c.IsSet(-1, 0) || c.IsSet(8, 0) {
		t.Error("out-of-range pixels should be ignored")
	}

	c.Clear()
	if c.IsSet(3, 5) {
		t.Error("expected clear canvas")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)

	for _, p := range [][2]int{{0, 0}, {10, 10}, {19, 19}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected (%d,%d) on the diagonal", p[0], p[1])
		}
	}
	if c.IsSet(19, 0) {
		t.Error("unexpected pixel off the line")
	}
}

func TestCanvasDisc(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Disc(10, 10, 2)

	if !c.IsSet(10, 10) || !c.IsSet(12, 10) || !c.IsSet(10, 8) {
		t.Error("expected disc center and edge pixels set")
	}
	if c.IsSet(12, 12) {
		t.Error("corner outside radius should stay clear")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if len([]rune(lines[0])) != 3 {
		t.Errorf("expected 3 cells per row, got %d", len([]rune(lines[0])))
	}
}
