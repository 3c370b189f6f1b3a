package document

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"honnef.co/go/curve"

	"github.com/gogpu/offset/svgpath"
)

// ErrNoOutline is returned by PathData for elements without a derivable
// outline, such as raster images.
var ErrNoOutline = errors.New("document: element has no outline")

// kappa is the control point distance for a quarter circle of radius 1.
const kappa = 0.5522847498

// Geometry extracts outlines from elements in their local frame.
// The zero value is ready to use.
type Geometry struct{}

// PathData returns the outline of el in its local coordinate frame.
// Shape attributes are converted to path segments; path elements are parsed
// from their d attribute. Elements with no outline return ErrNoOutline.
func (Geometry) PathData(el *Element) (curve.BezPath, error) {
	if el == nil {
		return nil, ErrNoOutline
	}
	var p curve.BezPath
	switch el.Tag {
	case "path":
		bez, err := svgpath.Parse(el.Attr("d"))
		if err != nil {
			return nil, fmt.Errorf("document: element %q: %w", el.ID, err)
		}
		return bez, nil
	case "rect":
		x, y := el.Float("x", 0), el.Float("y", 0)
		w, h := el.Float("width", 0), el.Float("height", 0)
		if w <= 0 || h <= 0 {
			return nil, nil
		}
		rx, ry := el.Float("rx", -1), el.Float("ry", -1)
		if rx < 0 {
			rx = ry
		}
		if ry < 0 {
			ry = rx
		}
		rx, ry = math.Max(0, math.Min(rx, w/2)), math.Max(0, math.Min(ry, h/2))
		roundRect(&p, x, y, w, h, rx, ry)
	case "circle":
		r := el.Float("r", 0)
		if r <= 0 {
			return nil, nil
		}
		ellipse(&p, el.Float("cx", 0), el.Float("cy", 0), r, r)
	case "ellipse":
		rx, ry := el.Float("rx", 0), el.Float("ry", 0)
		if rx <= 0 || ry <= 0 {
			return nil, nil
		}
		ellipse(&p, el.Float("cx", 0), el.Float("cy", 0), rx, ry)
	case "line":
		p.MoveTo(curve.Point{X: el.Float("x1", 0), Y: el.Float("y1", 0)})
		p.LineTo(curve.Point{X: el.Float("x2", 0), Y: el.Float("y2", 0)})
	case "polyline", "polygon":
		pts, err := parsePoints(el.Attr("points"))
		if err != nil {
			return nil, fmt.Errorf("document: element %q: %w", el.ID, err)
		}
		for i, pt := range pts {
			if i == 0 {
				p.MoveTo(pt)
			} else {
				p.LineTo(pt)
			}
		}
		if el.Tag == "polygon" && len(pts) > 0 {
			p.ClosePath()
		}
	default:
		return nil, ErrNoOutline
	}
	return p, nil
}

// BBox returns the bounding box of el's outline in its local frame,
// computed from on-curve and control points.
func (g Geometry) BBox(el *Element) (Rect, error) {
	p, err := g.PathData(el)
	if err != nil {
		return Rect{}, err
	}
	first := true
	var r Rect
	add := func(pt curve.Point) {
		if first {
			r = Rect{MinX: pt.X, MinY: pt.Y, MaxX: pt.X, MaxY: pt.Y}
			first = false
			return
		}
		r.MinX, r.MinY = math.Min(r.MinX, pt.X), math.Min(r.MinY, pt.Y)
		r.MaxX, r.MaxY = math.Max(r.MaxX, pt.X), math.Max(r.MaxY, pt.Y)
	}
	for _, e := range p {
		switch e.Kind {
		case curve.MoveToKind, curve.LineToKind:
			add(e.P0)
		case curve.QuadToKind:
			add(e.P0)
			add(e.P1)
		case curve.CubicToKind:
			add(e.P0)
			add(e.P1)
			add(e.P2)
		}
	}
	return r, nil
}

var rotateRe = regexp.MustCompile(`rotate\(\s*([-+0-9.eE]+)(?:[\s,]+([-+0-9.eE]+)[\s,]+([-+0-9.eE]+))?\s*\)`)

// Rotation returns the rotation angle of el in degrees, taken from a
// rotate() entry of its transform attribute.
func (Geometry) Rotation(el *Element) float64 {
	m := rotateRe.FindStringSubmatch(el.Attr("transform"))
	if m == nil {
		return 0
	}
	deg, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return deg
}

// RotationCenter returns the point el rotates about: the centre given in
// rotate(a cx cy), or the origin for a bare rotate(a). ok is false when el
// has no parsable rotate() entry.
func (Geometry) RotationCenter(el *Element) (cx, cy float64, ok bool) {
	m := rotateRe.FindStringSubmatch(el.Attr("transform"))
	if m == nil {
		return 0, 0, false
	}
	if m[2] == "" {
		return 0, 0, true
	}
	cx, errX := strconv.ParseFloat(m[2], 64)
	cy, errY := strconv.ParseFloat(m[3], 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return cx, cy, true
}

func roundRect(p *curve.BezPath, x, y, w, h, rx, ry float64) {
	if rx == 0 || ry == 0 {
		p.MoveTo(curve.Point{X: x, Y: y})
		p.LineTo(curve.Point{X: x + w, Y: y})
		p.LineTo(curve.Point{X: x + w, Y: y + h})
		p.LineTo(curve.Point{X: x, Y: y + h})
		p.ClosePath()
		return
	}
	kx, ky := kappa*rx, kappa*ry
	pt := func(px, py float64) curve.Point { return curve.Point{X: px, Y: py} }

	p.MoveTo(pt(x+rx, y))
	p.LineTo(pt(x+w-rx, y))
	p.CubicTo(pt(x+w-rx+kx, y), pt(x+w, y+ry-ky), pt(x+w, y+ry))
	p.LineTo(pt(x+w, y+h-ry))
	p.CubicTo(pt(x+w, y+h-ry+ky), pt(x+w-rx+kx, y+h), pt(x+w-rx, y+h))
	p.LineTo(pt(x+rx, y+h))
	p.CubicTo(pt(x+rx-kx, y+h), pt(x, y+h-ry+ky), pt(x, y+h-ry))
	p.LineTo(pt(x, y+ry))
	p.CubicTo(pt(x, y+ry-ky), pt(x+rx-kx, y), pt(x+rx, y))
	p.ClosePath()
}

func ellipse(p *curve.BezPath, cx, cy, rx, ry float64) {
	kx, ky := kappa*rx, kappa*ry
	pt := func(px, py float64) curve.Point { return curve.Point{X: px, Y: py} }

	p.MoveTo(pt(cx+rx, cy))
	p.CubicTo(pt(cx+rx, cy+ky), pt(cx+kx, cy+ry), pt(cx, cy+ry))
	p.CubicTo(pt(cx-kx, cy+ry), pt(cx-rx, cy+ky), pt(cx-rx, cy))
	p.CubicTo(pt(cx-rx, cy-ky), pt(cx-kx, cy-ry), pt(cx, cy-ry))
	p.CubicTo(pt(cx+kx, cy-ry), pt(cx+rx, cy-ky), pt(cx+rx, cy))
	p.ClosePath()
}

// parsePoints parses a polyline/polygon points list.
func parsePoints(s string) ([]curve.Point, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in points %q", s)
	}
	pts := make([]curve.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("parse point x %q: %w", fields[i], err)
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("parse point y %q: %w", fields[i+1], err)
		}
		pts = append(pts, curve.Point{X: x, Y: y})
	}
	return pts, nil
}
