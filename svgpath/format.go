package svgpath

import (
	"strconv"
	"strings"

	"honnef.co/go/curve"
)

// FormatNumber formats v with the fewest digits that parse back to v.
// Negative zero is written as 0.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AppendPoint appends "x,y" to b.
func AppendPoint(b *strings.Builder, pt curve.Point) {
	b.WriteString(FormatNumber(pt.X))
	b.WriteByte(',')
	b.WriteString(FormatNumber(pt.Y))
}

// Format writes p as absolute SVG path data. Commands are separated by a
// single space and Z is attached to the preceding command.
func Format(p curve.BezPath) string {
	var b strings.Builder
	for _, el := range p {
		if el.Kind == curve.ClosePathKind {
			b.WriteByte('Z')
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch el.Kind {
		case curve.MoveToKind:
			b.WriteByte('M')
			AppendPoint(&b, el.P0)
		case curve.LineToKind:
			b.WriteByte('L')
			AppendPoint(&b, el.P0)
		case curve.QuadToKind:
			b.WriteByte('Q')
			AppendPoint(&b, el.P0)
			b.WriteByte(' ')
			AppendPoint(&b, el.P1)
		case curve.CubicToKind:
			b.WriteByte('C')
			AppendPoint(&b, el.P0)
			b.WriteByte(' ')
			AppendPoint(&b, el.P1)
			b.WriteByte(' ')
			AppendPoint(&b, el.P2)
		}
	}
	return b.String()
}
