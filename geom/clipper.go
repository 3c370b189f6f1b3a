package geom

import (
	clipper "github.com/ctessum/go.clipper"
)

// ToClipper converts the path to the clipper representation.
// Each point gets its own IntPoint because clipper compares vertices by
// pointer.
func (p Path) ToClipper() clipper.Path {
	out := make(clipper.Path, len(p))
	for i, pt := range p {
		out[i] = &clipper.IntPoint{X: clipper.CInt(pt.X), Y: clipper.CInt(pt.Y)}
	}
	return out
}

// ToClipper converts every path to the clipper representation.
func (ps Paths) ToClipper() clipper.Paths {
	out := make(clipper.Paths, len(ps))
	for i, p := range ps {
		out[i] = p.ToClipper()
	}
	return out
}

// FromClipper converts a clipper path back to a Path.
func FromClipper(cp clipper.Path) Path {
	out := make(Path, 0, len(cp))
	for _, ip := range cp {
		if ip == nil {
			continue
		}
		out = append(out, Point{X: int64(ip.X), Y: int64(ip.Y)})
	}
	return out
}

// PathsFromClipper converts clipper paths back to Paths.
func PathsFromClipper(cps clipper.Paths) Paths {
	out := make(Paths, 0, len(cps))
	for _, cp := range cps {
		out = append(out, FromClipper(cp))
	}
	return out
}

// SignedArea returns the shoelace area of the polygon in scaled units
// squared. The sign follows clipper's orientation: positive when
// clipper.Orientation reports true.
func (p Path) SignedArea() float64 {
	return clipper.Area(p.ToClipper())
}

// Contains reports whether pt lies inside the polygon or on its boundary.
func (p Path) Contains(pt Point) bool {
	ip := &clipper.IntPoint{X: clipper.CInt(pt.X), Y: clipper.CInt(pt.Y)}
	return clipper.PointInPolygon(ip, p.ToClipper()) != 0
}

// ContainsAll reports whether every vertex of other is contained in p.
// This is a vertex test, not a full polygon-in-polygon test.
func (p Path) ContainsAll(other Path) bool {
	cp := p.ToClipper()
	for _, pt := range other {
		ip := &clipper.IntPoint{X: clipper.CInt(pt.X), Y: clipper.CInt(pt.Y)}
		if clipper.PointInPolygon(ip, cp) == 0 {
			return false
		}
	}
	return true
}
