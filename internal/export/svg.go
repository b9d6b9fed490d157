package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/viz"
)

// Plane selects the two coordinates a trajectory is drawn in.
type Plane [2]int

var (
	PlaneXY = Plane{0, 1}
	PlaneXZ = Plane{0, 2}
	PlaneYZ = Plane{1, 2}
)

// PlaneFor returns the plane that contains orbits seeded around normal.
func PlaneFor(normal [3]float64) Plane {
	return Plane(analysis.OrbitPlane(normal))
}

// TrajectoriesToSVG draws the path of every body across the snapshots, one
// stroke per body in the theme palette, with a dot at the final position.
func TrajectoriesToSVG(snapshots [][]dynamo.Body, plane Plane, width, height int, theme viz.Theme) string {
	if len(snapshots) == 0 || len(snapshots[0]) == 0 {
		return ""
	}

	// Find bounds
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, snap := range snapshots {
		for _, b := range snap {
			x, y := b.Position[plane[0]], b.Position[plane[1]]
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}

	// Equal scale on both axes so orbits keep their shape
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	size := math.Min(float64(width), float64(height))

	toPixel := func(p [3]float64) (float64, float64) {
		x := float64(width)/2 + (p[plane[0]]-cx)/span*size
		y := float64(height)/2 - (p[plane[1]]-cy)/span*size
		return x, y
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	final := snapshots[len(snapshots)-1]
	for i := range snapshots[0] {
		color := string(theme.Palette[i%len(theme.Palette)])

		if len(snapshots) > 1 {
			fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1" d="M`, color)
			for k, snap := range snapshots {
				x, y := toPixel(snap[i].Position)
				if k == 0 {
					fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
				} else {
					fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
				}
			}
			sb.WriteString("\"/>\n")
		}

		x, y := toPixel(final[i].Position)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s</title></circle>
`, x, y, color, final[i].Name)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// ExportSVG writes the trajectories to path.
func ExportSVG(path string, snapshots [][]dynamo.Body, plane Plane, width, height int) error {
	svg := TrajectoriesToSVG(snapshots, plane, width, height, viz.CurrentTheme)
	if svg == "" {
		return fmt.Errorf("no samples to draw")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
