package text

import (
	"errors"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"honnef.co/go/curve"
)

// appendGlyph appends the outline of glyph gid at size, translated to
// (x, y), to p. Glyphs without outline, such as spaces, append nothing.
func (c *Converter) appendGlyph(p *curve.BezPath, gid uint32, size, x, y float64) error {
	buf := c.bufPool.Get().(*sfnt.Buffer)
	defer c.bufPool.Put(buf)

	segments, err := c.outlines.LoadGlyph(buf, sfnt.GlyphIndex(gid), floatToFixed(size), nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrNotFound) {
			return nil
		}
		return &GlyphError{GID: gid, Err: err}
	}

	pt := func(fp fixed.Point26_6) curve.Point {
		return curve.Point{X: x + fixedToFloat(fp.X), Y: y + fixedToFloat(fp.Y)}
	}

	// sfnt contours are implicitly closed; close each one explicitly.
	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.ClosePath()
			}
			p.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p.QuadTo(pt(seg.Args[0]), pt(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			p.CubicTo(pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2]))
		}
	}
	if open {
		p.ClosePath()
	}
	return nil
}
