package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/gravsim/internal/config"
)

var bodyColors = []rl.Color{
	rl.NewColor(255, 220, 120, 255),
	rl.NewColor(200, 200, 255, 255),
	rl.NewColor(120, 255, 180, 255),
	rl.NewColor(255, 140, 140, 255),
	rl.NewColor(200, 160, 255, 255),
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.camera())
	a.drawBounds()
	a.drawTrails()
	a.drawBodies()
	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawBounds() {
	for _, e := range a.edges {
		rl.DrawLine3D(vec(e[0]), vec(e[1]), ColGrid)
	}
	if b := a.scenario.Boundary; b.Kind == config.BoundaryEscape {
		rl.DrawSphereWires(rl.NewVector3(0, 0, 0), float32(b.Radius), 8, 16, ColGrid)
	}
}

func (a *App) drawTrails() {
	for i, trail := range a.trails.Paths() {
		col := rl.ColorAlpha(bodyColors[i%len(bodyColors)], 0.4)
		for j := 1; j < len(trail); j++ {
			rl.DrawLine3D(vec(trail[j-1]), vec(trail[j]), col)
		}
	}
}

// bodyRadius grows with the log of mass so planets and stars share a view.
func (a *App) bodyRadius(mass float64) float32 {
	base := a.orbit.Radius * 0.01
	return float32(base * (1 + 0.15*math.Max(0, 7+math.Log10(mass))))
}

func (a *App) drawBodies() {
	for i, b := range a.engine.Store().Bodies() {
		rl.DrawSphere(vec(b.Position), a.bodyRadius(b.Mass), bodyColors[i%len(bodyColors)])
	}
}

func (a *App) drawHUD() {
	status := "RUNNING"
	if a.paused {
		status = "PAUSED"
	}
	rl.DrawText(fmt.Sprintf("%s  %s", a.scenario.Name, status), 20, 20, 20, ColAccent)
	rl.DrawText(fmt.Sprintf("t = %.4f   ticks = %d   %s", a.engine.Time(), a.engine.Ticks(), a.scenario.Integrator), 20, 46, 16, ColText)

	y := int32(80)
	for i, b := range a.engine.Store().Bodies() {
		rl.DrawText(fmt.Sprintf("%-8s |v| %.4g", b.Name, b.Velocity.Len()), 20, y, 14, bodyColors[i%len(bodyColors)])
		y += 18
	}

	if a.err != nil {
		rl.DrawText(a.err.Error(), 20, y+10, 14, rl.Red)
	}
	rl.DrawText("SPACE pause  R reset  ESC quit  arrows orbit  wheel zoom", 20, screenHeight-30, 14, ColTextDim)
	rl.DrawFPS(screenWidth-100, 20)
}
