package sdf

import "math"

// Point is a 2D point in bitmap pixel space.
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z component of the 3D cross product.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Length returns the Euclidean length.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// LengthSquared returns the squared length.
func (p Point) LengthSquared() float64 { return p.X*p.X + p.Y*p.Y }

// Normalized returns a unit vector, or the zero vector for zero input.
func (p Point) Normalized() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Lerp returns p + t*(q-p).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + t*(q.X-p.X), p.Y + t*(q.Y-p.Y)}
}

// AngleBetween returns the angle between two vectors in [0, pi].
func AngleBetween(a, b Point) float64 {
	la, lb := a.Length(), b.Length()
	if la == 0 || lb == 0 {
		return 0
	}
	c := a.Dot(b) / (la * lb)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// Rect is an axis-aligned box in bitmap pixel space.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// IsEmpty reports whether the box has no area.
func (r Rect) IsEmpty() bool { return r.MinX >= r.MaxX || r.MinY >= r.MaxY }

// Union returns the smallest box containing both r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		MinX: min(r.MinX, s.MinX),
		MinY: min(r.MinY, s.MinY),
		MaxX: max(r.MaxX, s.MaxX),
		MaxY: max(r.MaxY, s.MaxY),
	}
}

// SignedDistance is a distance with a tie-break term: when two edges are
// equally far, the one whose tangent is more orthogonal to the query
// direction wins.
type SignedDistance struct {
	Distance float64
	Dot      float64
}

// Infinite returns the farthest possible distance.
func Infinite() SignedDistance {
	return SignedDistance{Distance: math.MaxFloat64}
}

// IsCloserThan reports whether d beats other.
func (d SignedDistance) IsCloserThan(other SignedDistance) bool {
	ad, ao := math.Abs(d.Distance), math.Abs(other.Distance)
	if ad != ao {
		return ad < ao
	}
	return d.Dot < other.Dot
}

// Combine returns the closer of the two.
func (d SignedDistance) Combine(other SignedDistance) SignedDistance {
	if d.IsCloserThan(other) {
		return d
	}
	return other
}
