// Package geom provides the scaled integer geometry shared by the offset
// pipeline.
//
// Working-unit coordinates are multiplied by [ScaleFactor] and rounded to
// integers before they reach the polygon engine. Integer coordinates keep the
// clipping and offsetting arithmetic robust; the path builder divides by the
// same factor on the way out.
package geom

import (
	"math"

	"golang.org/x/exp/constraints"
)

// ScaleFactor converts working units to engine units.
const ScaleFactor = 100

// Point is a scaled integer coordinate.
type Point struct {
	X, Y int64
}

// Scale converts a working-unit coordinate to a scaled Point.
// Values are rounded half away from zero.
func Scale(x, y float64) Point {
	return Point{X: roundScaled(x), Y: roundScaled(y)}
}

func roundScaled(v float64) int64 {
	return int64(math.Round(v * ScaleFactor))
}

// Unscale converts the point back to working units.
func (p Point) Unscale() (x, y float64) {
	return float64(p.X) / ScaleFactor, float64(p.Y) / ScaleFactor
}

// Path is an ordered sequence of scaled points.
type Path []Point

// Paths is a set of paths processed together.
type Paths []Path

// IsClosed reports whether the first and last points are identical.
func (p Path) IsClosed() bool {
	return len(p) > 0 && p[0] == p[len(p)-1]
}

// IsDegenerate reports whether the path has fewer than two distinct points.
// Degenerate paths have zero length and are never submitted to an engine.
func (p Path) IsDegenerate() bool {
	for i := 1; i < len(p); i++ {
		if p[i] != p[0] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Compact returns the path with consecutive duplicate points collapsed.
func (p Path) Compact() Path {
	if len(p) < 2 {
		return p.Clone()
	}
	out := make(Path, 0, len(p))
	out = append(out, p[0])
	for _, pt := range p[1:] {
		if pt != out[len(out)-1] {
			out = append(out, pt)
		}
	}
	return out
}

// NonEmpty returns the paths that have at least one point.
func (ps Paths) NonEmpty() Paths {
	out := make(Paths, 0, len(ps))
	for _, p := range ps {
		if len(p) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Abs returns the absolute value of v.
func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Sign returns -1, 0 or +1 according to the sign of v.
func Sign[T constraints.Signed | constraints.Float](v T) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
