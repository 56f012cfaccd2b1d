package meshio

import (
	"io"

	svg "github.com/ajstarks/svgo"
)

// ArrangementPlane is the 2D data needed to rasterize one supporting
// plane's arrangement for WriteArrangementSVG: its candidate face
// polygons and its alpha-shape triangles, both already projected to
// the plane's 2D frame.
type ArrangementPlane struct {
	Faces    [][][2]float64
	Selected []bool
	Alpha    [][3][2]float64
}

// WriteArrangementSVG rasterizes a plane's arrangement: every
// candidate face outlined (selected faces filled), with the alpha-shape
// triangles overlaid as a lighter fill underneath. This is a
// diagnostic export, not required by any invariant (spec.md §6.2).
func WriteArrangementSVG(w io.Writer, plane ArrangementPlane, width, height int, scale float64) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	cx, cy := width/2, height/2
	project := func(p [2]float64) (int, int) {
		return cx + int(p[0]*scale), cy - int(p[1]*scale)
	}

	for _, tri := range plane.Alpha {
		xs := make([]int, 3)
		ys := make([]int, 3)
		for i, v := range tri {
			xs[i], ys[i] = project(v)
		}
		canvas.Polygon(xs, ys, "fill:lightblue;stroke:none;fill-opacity:0.5")
	}

	for i, face := range plane.Faces {
		xs := make([]int, len(face))
		ys := make([]int, len(face))
		for k, v := range face {
			xs[k], ys[k] = project(v)
		}
		style := "fill:none;stroke:black;stroke-width:1"
		if i < len(plane.Selected) && plane.Selected[i] {
			style = "fill:orange;fill-opacity:0.3;stroke:black;stroke-width:2"
		}
		canvas.Polygon(xs, ys, style)
	}

	canvas.End()
}
