package geom

import (
	"math"

	"honnef.co/go/curve"
)

// DefaultTolerance is the flattening tolerance in working units.
const DefaultTolerance = 0.1

// Transform maps a working-unit point to another working-unit point.
type Transform func(curve.Point) curve.Point

// RotateAbout returns a transform rotating by deg degrees around (cx, cy),
// with the SVG convention that positive angles turn clockwise on screen.
// A zero angle returns nil.
func RotateAbout(deg, cx, cy float64) Transform {
	if deg == 0 || math.IsNaN(deg) {
		return nil
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return func(pt curve.Point) curve.Point {
		dx, dy := pt.X-cx, pt.Y-cy
		return curve.Point{
			X: cx + dx*cos - dy*sin,
			Y: cy + dx*sin + dy*cos,
		}
	}
}

// FromBezPath flattens bez into line segments and scales the result.
//
// Each MoveTo starts a new subpath. ClosePath appends the subpath's first
// point, so closed subpaths satisfy [Path.IsClosed]. Consecutive duplicate
// points are collapsed and degenerate subpaths are dropped. xf, when non-nil,
// is applied to every flattened point before scaling.
func FromBezPath(bez curve.BezPath, tolerance float64, xf Transform) Paths {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var (
		out     Paths
		current Path
		start   Point
	)
	flush := func() {
		if c := current.Compact(); !c.IsDegenerate() {
			out = append(out, c)
		}
		current = nil
	}
	scale := func(pt curve.Point) Point {
		if xf != nil {
			pt = xf(pt)
		}
		return Scale(pt.X, pt.Y)
	}

	for el := range bez.Flatten(tolerance) {
		switch el.Kind {
		case curve.MoveToKind:
			flush()
			start = scale(el.P0)
			current = Path{start}
		case curve.LineToKind:
			if current == nil {
				current = Path{start}
			}
			current = append(current, scale(el.P0))
		case curve.ClosePathKind:
			if len(current) > 0 {
				if current[len(current)-1] != start {
					current = append(current, start)
				}
				flush()
			}
		}
	}
	flush()
	return out
}

// Count returns the number of subpaths in bez, including degenerate ones.
func Count(bez curve.BezPath) int {
	n := 0
	for _, el := range bez {
		if el.Kind == curve.MoveToKind {
			n++
		}
	}
	return n
}
