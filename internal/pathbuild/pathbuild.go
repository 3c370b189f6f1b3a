// Package pathbuild turns scaled polygon loops into SVG path data.
package pathbuild

import (
	"log/slog"
	"math"
	"strings"

	"honnef.co/go/curve"

	"github.com/gogpu/offset/geom"
	"github.com/gogpu/offset/internal/parallel"
	"github.com/gogpu/offset/svgpath"
)

// DefaultPrecision is the number of decimals coordinates are rounded to
// before curve fitting.
const DefaultPrecision = 2

// Fitter approximates a point sequence with curve segments.
type Fitter interface {
	Fit(pts []curve.Point) curve.BezPath
}

// Options controls Build.
type Options struct {
	// Simplify enables curve fitting. Fitter must be set when it is true.
	Simplify bool
	Fitter   Fitter

	// Precision is the number of decimals kept in fitted output, for the
	// points handed to the fitter and the segments it returns. Zero selects
	// DefaultPrecision.
	Precision int

	// Pool fits loops concurrently when set.
	Pool *parallel.WorkerPool

	Logger *slog.Logger
}

// Build returns the path data for paths. Every path is a closed loop; a
// repeated closing point is dropped because Z closes the loop. Empty paths
// contribute nothing. Fragments are joined by a single space.
func Build(paths geom.Paths, opts Options) string {
	loops := make([][]curve.Point, 0, len(paths))
	for _, p := range paths {
		if pts := unscale(p); len(pts) > 0 {
			loops = append(loops, pts)
		}
	}

	var frags []string
	if opts.Simplify && opts.Fitter != nil {
		if opts.Precision <= 0 {
			opts.Precision = DefaultPrecision
		}
		if opts.Logger == nil {
			opts.Logger = slog.New(slog.DiscardHandler)
		}
		fit := func(pts []curve.Point) string { return simplified(pts, opts) }
		if opts.Pool != nil {
			frags = parallel.Map(opts.Pool, loops, fit)
		} else {
			frags = make([]string, len(loops))
			for i, pts := range loops {
				frags[i] = fit(pts)
			}
		}
	} else {
		frags = make([]string, len(loops))
		for i, pts := range loops {
			frags[i] = Literal(pts)
		}
	}
	return strings.TrimSpace(strings.Join(frags, " "))
}

// Literal emits "M x0,y0 L x1,y1 ... Z" for a loop.
func Literal(pts []curve.Point) string {
	if len(pts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('M')
	svgpath.AppendPoint(&b, pts[0])
	for _, pt := range pts[1:] {
		b.WriteString(" L")
		svgpath.AppendPoint(&b, pt)
	}
	b.WriteByte('Z')
	return b.String()
}

func simplified(pts []curve.Point, opts Options) string {
	rounded := make([]curve.Point, 0, len(pts)+1)
	for _, pt := range pts {
		rounded = append(rounded, roundPoint(pt, opts.Precision))
	}
	rounded = append(rounded, rounded[0])

	fitted := opts.Fitter.Fit(rounded)
	if drawingSegments(fitted) == 0 {
		opts.Logger.Warn("pathbuild: curve fit produced no segments, emitting lines",
			"points", len(pts))
		return Literal(pts)
	}
	for i := range fitted {
		el := &fitted[i]
		el.P0 = roundPoint(el.P0, opts.Precision)
		el.P1 = roundPoint(el.P1, opts.Precision)
		el.P2 = roundPoint(el.P2, opts.Precision)
	}
	return svgpath.Format(fitted) + "Z"
}

func drawingSegments(p curve.BezPath) int {
	n := 0
	for _, el := range p {
		switch el.Kind {
		case curve.LineToKind, curve.QuadToKind, curve.CubicToKind:
			n++
		}
	}
	return n
}

// unscale converts a loop to working units without its closing point.
func unscale(p geom.Path) []curve.Point {
	if len(p) > 1 && p.IsClosed() {
		p = p[:len(p)-1]
	}
	out := make([]curve.Point, len(p))
	for i, pt := range p {
		x, y := pt.Unscale()
		out[i] = curve.Point{X: x, Y: y}
	}
	return out
}

func roundPoint(pt curve.Point, decimals int) curve.Point {
	return curve.Point{X: round(pt.X, decimals), Y: round(pt.Y, decimals)}
}

func round(v float64, decimals int) float64 {
	s := math.Pow(10, float64(decimals))
	return math.Round(v*s) / s
}
