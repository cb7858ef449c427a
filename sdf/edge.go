package sdf

import "math"

// EdgeColor selects which of the R, G, B channels an edge feeds. Corners
// get distinct colors on each side so the per-channel median keeps them
// sharp.
type EdgeColor uint8

const (
	ColorRed EdgeColor = 1 << iota
	ColorGreen
	ColorBlue

	ColorYellow  = ColorRed | ColorGreen
	ColorCyan    = ColorGreen | ColorBlue
	ColorMagenta = ColorRed | ColorBlue
	ColorWhite   = ColorRed | ColorGreen | ColorBlue
)

// EdgeType classifies an edge by its curve degree.
type EdgeType int

const (
	EdgeLinear EdgeType = iota
	EdgeQuadratic
	EdgeCubic
)

// Edge is one segment of a contour. Points holds the start, any control
// points and the end, in order; unused slots are zero.
type Edge struct {
	Type   EdgeType
	Points [4]Point
	Color  EdgeColor
}

// Linear returns a straight edge.
func Linear(a, b Point) Edge {
	return Edge{Type: EdgeLinear, Points: [4]Point{a, b}, Color: ColorWhite}
}

// Quadratic returns a quadratic Bezier edge.
func Quadratic(a, c, b Point) Edge {
	return Edge{Type: EdgeQuadratic, Points: [4]Point{a, c, b}, Color: ColorWhite}
}

// Cubic returns a cubic Bezier edge.
func Cubic(a, c1, c2, b Point) Edge {
	return Edge{Type: EdgeCubic, Points: [4]Point{a, c1, c2, b}, Color: ColorWhite}
}

// Start returns the first point of the edge.
func (e *Edge) Start() Point { return e.Points[0] }

// End returns the last point of the edge.
func (e *Edge) End() Point {
	switch e.Type {
	case EdgeLinear:
		return e.Points[1]
	case EdgeQuadratic:
		return e.Points[2]
	default:
		return e.Points[3]
	}
}

// At evaluates the edge at parameter t in [0, 1].
func (e *Edge) At(t float64) Point {
	switch e.Type {
	case EdgeLinear:
		return e.Points[0].Lerp(e.Points[1], t)
	case EdgeQuadratic:
		return evalQuad(e.Points[0], e.Points[1], e.Points[2], t)
	default:
		return evalCubic(e.Points[0], e.Points[1], e.Points[2], e.Points[3], t)
	}
}

// Direction returns the tangent at parameter t.
func (e *Edge) Direction(t float64) Point {
	switch e.Type {
	case EdgeLinear:
		return e.Points[1].Sub(e.Points[0])
	case EdgeQuadratic:
		return quadDeriv(e.Points[0], e.Points[1], e.Points[2], t)
	default:
		return cubicDeriv(e.Points[0], e.Points[1], e.Points[2], e.Points[3], t)
	}
}

// Distance returns the signed distance from p to the edge. The sign
// follows edge orientation; callers that need a fill-correct sign use the
// shape winding instead.
func (e *Edge) Distance(p Point) SignedDistance {
	switch e.Type {
	case EdgeLinear:
		return lineDistance(e.Points[0], e.Points[1], p)
	case EdgeQuadratic:
		return quadDistance(e.Points[0], e.Points[1], e.Points[2], p)
	default:
		return cubicDistance(e.Points[0], e.Points[1], e.Points[2], e.Points[3], p)
	}
}

// Bounds returns the bounding box of the edge including curve extrema.
func (e *Edge) Bounds() Rect {
	switch e.Type {
	case EdgeLinear:
		return segmentBounds(e.Points[0], e.Points[1])
	case EdgeQuadratic:
		return quadBounds(e.Points[0], e.Points[1], e.Points[2])
	default:
		return cubicBounds(e.Points[0], e.Points[1], e.Points[2], e.Points[3])
	}
}

func evalQuad(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	return Point{
		u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

func evalCubic(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	u2, t2 := u*u, t*t
	return Point{
		u*u2*p0.X + 3*u2*t*p1.X + 3*u*t2*p2.X + t*t2*p3.X,
		u*u2*p0.Y + 3*u2*t*p1.Y + 3*u*t2*p2.Y + t*t2*p3.Y,
	}
}

func quadDeriv(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	return Point{
		2*u*(p1.X-p0.X) + 2*t*(p2.X-p1.X),
		2*u*(p1.Y-p0.Y) + 2*t*(p2.Y-p1.Y),
	}
}

func cubicDeriv(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	return Point{
		3*u*u*(p1.X-p0.X) + 6*u*t*(p2.X-p1.X) + 3*t*t*(p3.X-p2.X),
		3*u*u*(p1.Y-p0.Y) + 6*u*t*(p2.Y-p1.Y) + 3*t*t*(p3.Y-p2.Y),
	}
}

func cubicDeriv2(p0, p1, p2, p3 Point, t float64) Point {
	a := p2.Sub(p1.Mul(2)).Add(p0)
	b := p3.Sub(p2.Mul(2)).Add(p1)
	return a.Mul(6 * (1 - t)).Add(b.Mul(6 * t))
}

func lineDistance(a, b, p Point) SignedDistance {
	ab := b.Sub(a)
	ap := p.Sub(a)
	lenSq := ab.LengthSquared()
	if lenSq == 0 {
		return SignedDistance{Distance: ap.Length()}
	}
	t := ap.Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	diff := p.Sub(a.Add(ab.Mul(t)))
	dist := diff.Length()
	if ab.Cross(ap) < 0 {
		dist = -dist
	}
	var dot float64
	if t == 0 || t == 1 {
		dot = math.Abs(ab.Normalized().Dot(diff.Normalized()))
	}
	return SignedDistance{Distance: dist, Dot: dot}
}

// quadDistance finds the closest point analytically: the derivative of the
// squared distance is a cubic in t, solved with Cardano's method.
func quadDistance(p0, p1, p2, p Point) SignedDistance {
	qa := p0.Sub(p)
	qb := p1.Sub(p)
	qc := p2.Sub(p)
	a := qa.Sub(qb.Mul(2)).Add(qc)
	b := qb.Sub(qa).Mul(2)
	c := qa

	best := Infinite()
	consider := func(t float64) {
		if t < 0 || t > 1 {
			return
		}
		pt := evalQuad(p0, p1, p2, t)
		diff := p.Sub(pt)
		dist := diff.Length()
		tangent := quadDeriv(p0, p1, p2, t)
		if tangent.Cross(diff) < 0 {
			dist = -dist
		}
		var dot float64
		if t == 0 || t == 1 {
			dot = math.Abs(tangent.Normalized().Dot(diff.Normalized()))
		}
		best = best.Combine(SignedDistance{Distance: dist, Dot: dot})
	}

	consider(0)
	consider(1)
	for _, t := range solveCubic(2*a.Dot(a), 3*a.Dot(b), 2*a.Dot(c)+b.Dot(b), b.Dot(c)) {
		consider(t)
	}
	return best
}

// cubicDistance samples the curve and refines each sample with Newton
// iterations; the closest-point equation is quintic, so there is no
// closed form.
func cubicDistance(p0, p1, p2, p3, p Point) SignedDistance {
	best := Infinite()
	consider := func(t float64) {
		if t < 0 || t > 1 {
			return
		}
		pt := evalCubic(p0, p1, p2, p3, t)
		diff := p.Sub(pt)
		dist := diff.Length()
		tangent := cubicDeriv(p0, p1, p2, p3, t)
		if tangent.Cross(diff) < 0 {
			dist = -dist
		}
		var dot float64
		if t == 0 || t == 1 {
			dot = math.Abs(tangent.Normalized().Dot(diff.Normalized()))
		}
		best = best.Combine(SignedDistance{Distance: dist, Dot: dot})
	}

	consider(0)
	consider(1)
	const samples = 8
	for i := 0; i <= samples; i++ {
		consider(refineCubic(p0, p1, p2, p3, p, float64(i)/samples))
	}
	return best
}

func refineCubic(p0, p1, p2, p3, p Point, t float64) float64 {
	const (
		maxIter = 8
		eps     = 1e-10
	)
	for i := 0; i < maxIter; i++ {
		diff := evalCubic(p0, p1, p2, p3, t).Sub(p)
		d1 := cubicDeriv(p0, p1, p2, p3, t)
		d2 := cubicDeriv2(p0, p1, p2, p3, t)
		f := diff.Dot(d1)
		fp := d1.Dot(d1) + diff.Dot(d2)
		if math.Abs(fp) < eps {
			break
		}
		dt := -f / fp
		if math.Abs(dt) < eps {
			break
		}
		t += dt
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return t
}

// solveCubic returns the real roots of a*t^3 + b*t^2 + c*t + d in [0, 1].
func solveCubic(a, b, c, d float64) []float64 {
	if math.Abs(a) < 1e-14 {
		return solveQuadratic(b, c, d)
	}
	b /= a
	c /= a
	d /= a
	p := c - b*b/3
	q := d - b*c/3 + 2*b*b*b/27
	disc := q*q/4 + p*p*p/27

	var roots []float64
	keep := func(t float64) {
		if t >= 0 && t <= 1 {
			for _, r := range roots {
				if math.Abs(r-t) < 1e-10 {
					return
				}
			}
			roots = append(roots, t)
		}
	}
	switch {
	case disc > 1e-14:
		s := math.Sqrt(disc)
		keep(cbrt(-q/2+s) + cbrt(-q/2-s) - b/3)
	case disc < -1e-14:
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(-q / (2 * r))
		m := 2 * math.Pow(r, 1.0/3.0)
		for k := 0; k < 3; k++ {
			keep(m*math.Cos((phi+float64(2*k)*math.Pi)/3) - b/3)
		}
	default:
		u := cbrt(-q / 2)
		keep(2*u - b/3)
		keep(-u - b/3)
	}
	return roots
}

// solveQuadratic returns the real roots of a*t^2 + b*t + c in [0, 1].
func solveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < 1e-14 {
		if math.Abs(b) < 1e-14 {
			return nil
		}
		if t := -c / b; t >= 0 && t <= 1 {
			return []float64{t}
		}
		return nil
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	s := math.Sqrt(disc)
	var roots []float64
	for _, t := range [2]float64{(-b + s) / (2 * a), (-b - s) / (2 * a)} {
		if t >= 0 && t <= 1 {
			if len(roots) == 1 && math.Abs(roots[0]-t) < 1e-10 {
				continue
			}
			roots = append(roots, t)
		}
	}
	return roots
}

func cbrt(x float64) float64 {
	if x < 0 {
		return -math.Pow(-x, 1.0/3.0)
	}
	return math.Pow(x, 1.0/3.0)
}

func segmentBounds(a, b Point) Rect {
	return Rect{
		MinX: min(a.X, b.X),
		MinY: min(a.Y, b.Y),
		MaxX: max(a.X, b.X),
		MaxY: max(a.Y, b.Y),
	}
}

func quadBounds(p0, p1, p2 Point) Rect {
	r := segmentBounds(p0, p2)
	if dx := p0.X - 2*p1.X + p2.X; math.Abs(dx) > 1e-10 {
		if t := (p0.X - p1.X) / dx; t > 0 && t < 1 {
			x := evalQuad(p0, p1, p2, t).X
			r.MinX = min(r.MinX, x)
			r.MaxX = max(r.MaxX, x)
		}
	}
	if dy := p0.Y - 2*p1.Y + p2.Y; math.Abs(dy) > 1e-10 {
		if t := (p0.Y - p1.Y) / dy; t > 0 && t < 1 {
			y := evalQuad(p0, p1, p2, t).Y
			r.MinY = min(r.MinY, y)
			r.MaxY = max(r.MaxY, y)
		}
	}
	return r
}

func cubicBounds(p0, p1, p2, p3 Point) Rect {
	r := segmentBounds(p0, p3)
	for _, t := range solveQuadratic(-p0.X+3*p1.X-3*p2.X+p3.X, 2*p0.X-4*p1.X+2*p2.X, -p0.X+p1.X) {
		if t > 0 && t < 1 {
			x := evalCubic(p0, p1, p2, p3, t).X
			r.MinX = min(r.MinX, x)
			r.MaxX = max(r.MaxX, x)
		}
	}
	for _, t := range solveQuadratic(-p0.Y+3*p1.Y-3*p2.Y+p3.Y, 2*p0.Y-4*p1.Y+2*p2.Y, -p0.Y+p1.Y) {
		if t > 0 && t < 1 {
			y := evalCubic(p0, p1, p2, p3, t).Y
			r.MinY = min(r.MinY, y)
			r.MaxY = max(r.MaxY, y)
		}
	}
	return r
}
