package sdf

import (
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// Contour is a closed loop of edges.
type Contour struct {
	Edges []Edge

	// flat is the polyline approximation used for the winding test.
	flat []Point
}

// Shape is a glyph outline converted to colored edges in bitmap pixel
// space.
type Shape struct {
	Contours []Contour
	Bounds   Rect
}

// Frame maps font-unit outline coordinates into bitmap pixel space: x
// grows right, y grows down, the glyph baseline origin sits Origin pixels
// from the left and bottom edges of a Size-pixel bitmap.
type Frame struct {
	Scale  float64 // pixels per font unit
	Origin float64
	Size   int
}

// Map transforms one outline point.
func (f Frame) Map(x, y float32) Point {
	return Point{
		X: f.Origin + float64(x)*f.Scale,
		Y: float64(f.Size) - (f.Origin + float64(y)*f.Scale),
	}
}

// FromOutline converts a go-text glyph outline into a Shape under the
// given frame. Degenerate zero-length line segments are dropped.
func FromOutline(outline font.GlyphOutline, frame Frame) *Shape {
	shape := &Shape{}
	var cur Contour
	var pos Point

	flush := func() {
		if len(cur.Edges) > 0 {
			shape.Contours = append(shape.Contours, cur)
		}
		cur = Contour{}
	}

	for _, seg := range outline.Segments {
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			flush()
			pos = frame.Map(seg.Args[0].X, seg.Args[0].Y)
		case opentype.SegmentOpLineTo:
			end := frame.Map(seg.Args[0].X, seg.Args[0].Y)
			if end.Sub(pos).LengthSquared() > 1e-12 {
				cur.Edges = append(cur.Edges, Linear(pos, end))
			}
			pos = end
		case opentype.SegmentOpQuadTo:
			ctrl := frame.Map(seg.Args[0].X, seg.Args[0].Y)
			end := frame.Map(seg.Args[1].X, seg.Args[1].Y)
			cur.Edges = append(cur.Edges, Quadratic(pos, ctrl, end))
			pos = end
		case opentype.SegmentOpCubeTo:
			c1 := frame.Map(seg.Args[0].X, seg.Args[0].Y)
			c2 := frame.Map(seg.Args[1].X, seg.Args[1].Y)
			end := frame.Map(seg.Args[2].X, seg.Args[2].Y)
			cur.Edges = append(cur.Edges, Cubic(pos, c1, c2, end))
			pos = end
		}
	}
	flush()

	for i := range shape.Contours {
		shape.Contours[i].flatten()
	}
	shape.computeBounds()
	return shape
}

// EdgeCount returns the total number of edges.
func (s *Shape) EdgeCount() int {
	n := 0
	for i := range s.Contours {
		n += len(s.Contours[i].Edges)
	}
	return n
}

func (s *Shape) computeBounds() {
	first := true
	for i := range s.Contours {
		for j := range s.Contours[i].Edges {
			b := s.Contours[i].Edges[j].Bounds()
			if first {
				s.Bounds = b
				first = false
			} else {
				s.Bounds = s.Bounds.Union(b)
			}
		}
	}
}

// flatten builds the polyline used by Contains. Curves are subdivided
// finely enough for a stable nonzero winding test; distance queries still
// use the exact curves.
func (c *Contour) flatten() {
	const curveSteps = 16
	c.flat = c.flat[:0]
	for i := range c.Edges {
		e := &c.Edges[i]
		switch e.Type {
		case EdgeLinear:
			c.flat = append(c.flat, e.Points[0])
		default:
			for s := 0; s < curveSteps; s++ {
				c.flat = append(c.flat, e.At(float64(s)/curveSteps))
			}
		}
	}
	if n := len(c.Edges); n > 0 {
		c.flat = append(c.flat, c.Edges[n-1].End())
	}
}

// Contains reports whether p is inside the filled shape, using the
// nonzero winding rule over all contours. Unlike an edge-orientation
// sign, this stays correct regardless of contour direction conventions
// or the y flip applied by Frame.
func (s *Shape) Contains(p Point) bool {
	winding := 0
	for i := range s.Contours {
		flat := s.Contours[i].flat
		n := len(flat)
		for j := 0; j < n; j++ {
			a := flat[j]
			b := flat[(j+1)%n]
			if a.Y <= p.Y {
				if b.Y > p.Y && b.Sub(a).Cross(p.Sub(a)) > 0 {
					winding++
				}
			} else {
				if b.Y <= p.Y && b.Sub(a).Cross(p.Sub(a)) < 0 {
					winding--
				}
			}
		}
	}
	return winding != 0
}

// AssignColors distributes channel colors so corners sharper than
// angleThreshold lie between edges of different colors.
func (s *Shape) AssignColors(angleThreshold float64) {
	for i := range s.Contours {
		colorContour(&s.Contours[i], angleThreshold)
	}
}

func colorContour(c *Contour, angleThreshold float64) {
	n := len(c.Edges)
	if n == 0 {
		return
	}
	if n == 1 {
		c.Edges[0].Color = ColorWhite
		return
	}

	var corners []int
	for i := 0; i < n; i++ {
		out := c.Edges[i].Direction(1).Normalized()
		in := c.Edges[(i+1)%n].Direction(0).Normalized()
		if AngleBetween(out, in) > angleThreshold {
			corners = append(corners, i)
		}
	}

	if len(corners) == 0 {
		// A smooth contour (like an "o") needs no channel separation.
		for i := range c.Edges {
			c.Edges[i].Color = ColorWhite
		}
		return
	}

	// Runs between corners cycle through three colors, and each corner
	// edge takes the union of its neighbors so both channels agree on
	// the corner position.
	palette := [3]EdgeColor{ColorCyan, ColorMagenta, ColorYellow}
	next := 0
	for i, start := range corners {
		end := corners[(i+1)%len(corners)]
		if end <= start {
			end += n
		}
		color := palette[next%len(palette)]
		next++
		for j := start + 1; j <= end; j++ {
			c.Edges[j%n].Color = color
		}
	}
	for _, ci := range corners {
		a := c.Edges[ci].Color
		b := c.Edges[(ci+1)%n].Color
		if a == b {
			c.Edges[ci].Color = ColorWhite
		} else {
			c.Edges[ci].Color = a | b
		}
	}
}
