package svgpath

import (
	"math"

	"honnef.co/go/curve"
)

// arcTo appends an SVG elliptical arc from p0 to p1 as cubic Béziers,
// each spanning at most a quarter turn.
func arcTo(p *curve.BezPath, p0 curve.Point, rx, ry, rotDeg float64, large, sweep bool, p1 curve.Point) {
	if p0 == p1 {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(p1)
		return
	}

	sinPhi, cosPhi := math.Sincos(rotDeg * math.Pi / 180)

	// endpoint to centre parameterization
	dx2, dy2 := (p0.X-p1.X)/2, (p0.Y-p1.Y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// scale radii up when the ellipse cannot reach the endpoint
	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (p0.X+p1.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (p0.Y+p1.Y)/2

	theta1 := vecAngle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dtheta := vecAngle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	} else if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(dtheta) / (math.Pi / 2)))
	if n == 0 {
		p.LineTo(p1)
		return
	}
	step := dtheta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	point := func(theta float64) (curve.Point, float64, float64) {
		sin, cos := math.Sincos(theta)
		x := rx * cos
		y := ry * sin
		// derivative direction
		dx := -rx * sin
		dy := ry * cos
		return curve.Point{
				X: cosPhi*x - sinPhi*y + cx,
				Y: sinPhi*x + cosPhi*y + cy,
			},
			cosPhi*dx - sinPhi*dy,
			sinPhi*dx + cosPhi*dy
	}

	theta := theta1
	start, sdx, sdy := point(theta)
	for i := range n {
		next := theta + step
		end, edx, edy := point(next)
		if i == n-1 {
			end = p1
		}
		c1 := curve.Point{X: start.X + k*sdx, Y: start.Y + k*sdy}
		c2 := curve.Point{X: end.X - k*edx, Y: end.Y - k*edy}
		p.CubicTo(c1, c2, end)
		start, sdx, sdy = end, edx, edy
		theta = next
	}
}

// vecAngle returns the signed angle from (ux, uy) to (vx, vy).
func vecAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
