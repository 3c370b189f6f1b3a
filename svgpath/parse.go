// Package svgpath parses SVG path data into Bézier paths.
//
// All commands of the SVG 1.1 path grammar are accepted, absolute and
// relative. Quadratic and cubic curves are kept as curves; elliptical arcs
// are approximated by cubic Béziers.
package svgpath

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
	"honnef.co/go/curve"
)

// ErrNoCommand is returned when path data does not start with a command.
var ErrNoCommand = errors.New("svgpath: path data must start with a command")

// SyntaxError reports malformed path data.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("svgpath: %s at offset %d", e.Msg, e.Offset)
}

var argCount = map[byte]int{
	'M': 2, 'Z': 0, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7,
}

// MustParse is like Parse but panics on error.
func MustParse(d string) curve.BezPath {
	p, err := Parse(d)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse parses SVG path data. An empty string yields an empty path.
func Parse(d string) (curve.BezPath, error) {
	s := []byte(d)
	i := skipSeparators(s)
	if i >= len(s) {
		return nil, nil
	}
	if !isCommand(s[i]) {
		return nil, ErrNoCommand
	}

	var (
		p       curve.BezPath
		args    [7]float64
		cur     curve.Point // current point
		start   curve.Point // start of current subpath
		ctrl    curve.Point // last cubic control point, for S/s
		qctrl   curve.Point // last quadratic control point, for T/t
		prevCmd byte
		cmd     byte
	)

	for {
		i += skipSeparators(s[i:])
		if i >= len(s) {
			break
		}

		if isCommand(s[i]) {
			cmd = s[i]
			i++
		} else if cmd == 0 || cmd == 'Z' || cmd == 'z' {
			return nil, &SyntaxError{Offset: i, Msg: fmt.Sprintf("unexpected %q", s[i])}
		}

		upper := cmd &^ 0x20
		n, ok := argCount[upper]
		if !ok {
			return nil, &SyntaxError{Offset: i - 1, Msg: fmt.Sprintf("unknown command %q", cmd)}
		}
		for j := range n {
			i += skipSeparators(s[i:])
			if upper == 'A' && (j == 3 || j == 4) {
				if i >= len(s) || (s[i] != '0' && s[i] != '1') {
					return nil, &SyntaxError{Offset: i, Msg: "arc flag must be 0 or 1"}
				}
				args[j] = float64(s[i] - '0')
				i++
				continue
			}
			v, w := strconv.ParseFloat(s[i:])
			if w == 0 {
				return nil, &SyntaxError{Offset: i, Msg: fmt.Sprintf("command %q expects %d numbers", cmd, n)}
			}
			args[j] = v
			i += w
		}

		rel := cmd != upper
		abs := func(x, y float64) curve.Point {
			if rel {
				return curve.Point{X: cur.X + x, Y: cur.Y + y}
			}
			return curve.Point{X: x, Y: y}
		}

		switch upper {
		case 'M':
			cur = abs(args[0], args[1])
			p.MoveTo(cur)
			start = cur
			// extra coordinate pairs after a moveto are implicit linetos
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z':
			p.ClosePath()
			cur = start
		case 'L':
			cur = abs(args[0], args[1])
			p.LineTo(cur)
		case 'H':
			x := args[0]
			if rel {
				x += cur.X
			}
			cur.X = x
			p.LineTo(cur)
		case 'V':
			y := args[0]
			if rel {
				y += cur.Y
			}
			cur.Y = y
			p.LineTo(cur)
		case 'C':
			c1 := abs(args[0], args[1])
			c2 := abs(args[2], args[3])
			end := abs(args[4], args[5])
			p.CubicTo(c1, c2, end)
			ctrl, cur = c2, end
		case 'S':
			c1 := cur
			if u := prevCmd &^ 0x20; u == 'C' || u == 'S' {
				c1 = reflect(ctrl, cur)
			}
			c2 := abs(args[0], args[1])
			end := abs(args[2], args[3])
			p.CubicTo(c1, c2, end)
			ctrl, cur = c2, end
		case 'Q':
			c := abs(args[0], args[1])
			end := abs(args[2], args[3])
			p.QuadTo(c, end)
			qctrl, cur = c, end
		case 'T':
			c := cur
			if u := prevCmd &^ 0x20; u == 'Q' || u == 'T' {
				c = reflect(qctrl, cur)
			}
			end := abs(args[0], args[1])
			p.QuadTo(c, end)
			qctrl, cur = c, end
		case 'A':
			end := abs(args[5], args[6])
			arcTo(&p, cur, args[0], args[1], args[2], args[3] != 0, args[4] != 0, end)
			cur = end
		}
		prevCmd = cmd
	}
	return p, nil
}

func reflect(c, about curve.Point) curve.Point {
	return curve.Point{X: 2*about.X - c.X, Y: 2*about.Y - c.Y}
}

func isCommand(c byte) bool {
	_, ok := argCount[c&^0x20]
	return ok && (c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z')
}

func skipSeparators(s []byte) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == ',' || s[i] == '\n' || s[i] == '\r' || s[i] == '\t') {
		i++
	}
	return i
}
