// Package fit approximates polylines with piecewise cubic Bézier curves.
//
// The fitter follows Philip J. Schneider's algorithm from Graphics Gems:
// chord-length parameterization, a least-squares cubic with fixed end
// tangents, Newton-Raphson reparameterization, and recursive splitting at the
// point of maximum error.
package fit

import (
	"math"

	"honnef.co/go/curve"
)

// DefaultTolerance is the maximum distance, in working units, between the
// input points and the fitted curve.
const DefaultTolerance = 0.5

const maxIterations = 4

// Fitter fits cubic Béziers to point sequences.
type Fitter struct {
	tolerance float64
}

// Option configures a Fitter.
type Option func(*Fitter)

// WithTolerance sets the maximum fitting error.
// Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(f *Fitter) {
		if tol > 0 {
			f.tolerance = tol
		}
	}
}

// New creates a Fitter.
func New(opts ...Option) *Fitter {
	f := &Fitter{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Default is a Fitter with DefaultTolerance.
var Default = New()

// Tolerance returns the configured maximum fitting error.
func (f *Fitter) Tolerance() float64 { return f.tolerance }

// Fit returns a path made of one MoveTo followed by CubicTo segments that
// approximates pts. Fewer than two distinct points yield an empty path.
func (f *Fitter) Fit(pts []curve.Point) curve.BezPath {
	d := dedupe(pts)
	if len(d) < 2 {
		return nil
	}
	var p curve.BezPath
	p.MoveTo(d[0].point())

	t1 := d[1].sub(d[0]).normalize()
	t2 := d[len(d)-2].sub(d[len(d)-1]).normalize()
	f.fitCubic(&p, d, t1, t2, f.tolerance*f.tolerance)
	return p
}

func (f *Fitter) fitCubic(out *curve.BezPath, d []vec, t1, t2 vec, errSq float64) {
	if len(d) == 2 {
		dist := d[0].dist(d[1]) / 3
		emit(out, [4]vec{d[0], d[0].add(t1.mul(dist)), d[1].add(t2.mul(dist)), d[1]})
		return
	}

	u := chordLength(d)
	bez := generate(d, u, t1, t2)
	maxErr, split := maxError(d, bez, u)
	if maxErr < errSq {
		emit(out, bez)
		return
	}

	if maxErr < errSq*4 {
		for range maxIterations {
			u = reparameterize(d, u, bez)
			bez = generate(d, u, t1, t2)
			maxErr, split = maxError(d, bez, u)
			if maxErr < errSq {
				emit(out, bez)
				return
			}
		}
	}

	center := d[split-1].sub(d[split+1]).normalize()
	if center == (vec{}) {
		center = d[split-1].sub(d[split]).normalize()
	}
	f.fitCubic(out, d[:split+1], t1, center, errSq)
	f.fitCubic(out, d[split:], center.mul(-1), t2, errSq)
}

func emit(out *curve.BezPath, b [4]vec) {
	out.CubicTo(b[1].point(), b[2].point(), b[3].point())
}

// generate solves the least-squares problem for the inner control points
// with the end tangents fixed.
func generate(d []vec, u []float64, t1, t2 vec) [4]vec {
	first, last := d[0], d[len(d)-1]

	var c [2][2]float64
	var x [2]float64
	for i, ui := range u {
		a0 := t1.mul(b1(ui))
		a1 := t2.mul(b2(ui))
		c[0][0] += a0.dot(a0)
		c[0][1] += a0.dot(a1)
		c[1][1] += a1.dot(a1)

		tmp := d[i].sub(first.mul(b0(ui) + b1(ui)).add(last.mul(b2(ui) + b3(ui))))
		x[0] += a0.dot(tmp)
		x[1] += a1.dot(tmp)
	}
	c[1][0] = c[0][1]

	detC := c[0][0]*c[1][1] - c[1][0]*c[0][1]
	var alpha1, alpha2 float64
	if detC != 0 {
		alpha1 = (x[0]*c[1][1] - c[0][1]*x[1]) / detC
		alpha2 = (c[0][0]*x[1] - c[1][0]*x[0]) / detC
	}

	segLen := first.dist(last)
	eps := 1e-6 * segLen
	if alpha1 < eps || alpha2 < eps {
		alpha1, alpha2 = segLen/3, segLen/3
	}
	return [4]vec{first, first.add(t1.mul(alpha1)), last.add(t2.mul(alpha2)), last}
}

func reparameterize(d []vec, u []float64, bez [4]vec) []float64 {
	out := make([]float64, len(u))
	for i, ui := range u {
		out[i] = newtonRoot(bez, d[i], ui)
	}
	return out
}

// newtonRoot improves the parameter u of point p on curve q.
func newtonRoot(q [4]vec, p vec, u float64) float64 {
	var q1 [3]vec
	for i := range q1 {
		q1[i] = q[i+1].sub(q[i]).mul(3)
	}
	var q2 [2]vec
	for i := range q2 {
		q2[i] = q1[i+1].sub(q1[i]).mul(2)
	}

	qu := bezier(q[:], u)
	q1u := bezier(q1[:], u)
	q2u := bezier(q2[:], u)

	diff := qu.sub(p)
	num := diff.dot(q1u)
	den := q1u.dot(q1u) + diff.dot(q2u)
	if den == 0 {
		return u
	}
	return u - num/den
}

func maxError(d []vec, bez [4]vec, u []float64) (float64, int) {
	maxDist := 0.0
	split := len(d) / 2
	for i := 1; i < len(d)-1; i++ {
		dist := bezier(bez[:], u[i]).sub(d[i]).lenSq()
		if dist >= maxDist {
			maxDist = dist
			split = i
		}
	}
	return maxDist, split
}

func chordLength(d []vec) []float64 {
	u := make([]float64, len(d))
	for i := 1; i < len(d); i++ {
		u[i] = u[i-1] + d[i].dist(d[i-1])
	}
	total := u[len(u)-1]
	for i := range u {
		u[i] /= total
	}
	return u
}

// bezier evaluates a Bézier curve of any degree with de Casteljau's method.
func bezier(ctrl []vec, t float64) vec {
	tmp := make([]vec, len(ctrl))
	copy(tmp, ctrl)
	for i := 1; i < len(tmp); i++ {
		for j := 0; j < len(tmp)-i; j++ {
			tmp[j] = tmp[j].mul(1 - t).add(tmp[j+1].mul(t))
		}
	}
	return tmp[0]
}

// Bernstein basis polynomials of degree 3.
func b0(u float64) float64 { return (1 - u) * (1 - u) * (1 - u) }
func b1(u float64) float64 { return 3 * u * (1 - u) * (1 - u) }
func b2(u float64) float64 { return 3 * u * u * (1 - u) }
func b3(u float64) float64 { return u * u * u }

func dedupe(pts []curve.Point) []vec {
	out := make([]vec, 0, len(pts))
	for _, p := range pts {
		v := vec{p.X, p.Y}
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}

type vec struct{ x, y float64 }

func (a vec) add(b vec) vec { return vec{a.x + b.x, a.y + b.y} }
func (a vec) sub(b vec) vec { return vec{a.x - b.x, a.y - b.y} }
func (a vec) mul(s float64) vec { return vec{a.x * s, a.y * s} }
func (a vec) dot(b vec) float64 { return a.x*b.x + a.y*b.y }
func (a vec) lenSq() float64 { return a.dot(a) }
func (a vec) dist(b vec) float64 { return math.Sqrt(a.sub(b).lenSq()) }
func (a vec) point() curve.Point { return curve.Point{X: a.x, Y: a.y} }

func (a vec) normalize() vec {
	l := math.Sqrt(a.lenSq())
	if l == 0 {
		return vec{}
	}
	return vec{a.x / l, a.y / l}
}
