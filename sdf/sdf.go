// Package sdf renders glyph outlines into multi-channel signed distance
// fields at a fixed working resolution.
//
// Each output pixel stores four channels. R, G and B hold per-channel
// pseudo-distances with corner-aware edge coloring, so the median of the
// three reconstructs sharp corners. A holds the true signed distance.
// Values are mapped so 128 sits on the outline, larger is inside.
//
// Unlike a fit-to-cell generator, the frame here is metric: a fixed
// pixels-per-em scale with the baseline origin at a fixed inset, so every
// glyph of a face renders at a consistent scale and the ink bounds can be
// cropped per glyph afterwards.
package sdf

import (
	"math"

	"github.com/go-text/typesetting/font"
)

// Config holds generation parameters.
type Config struct {
	// Size is the square working bitmap size in pixels.
	Size int

	// EmScale is the rendering scale in pixels per em.
	EmScale float64

	// Origin is the baseline origin inset from the left and bottom
	// bitmap edges, in pixels. Glyphs with modest overhang stay inside
	// the bitmap.
	Origin float64

	// Range is the distance field range in pixels: the distance that
	// maps to a full channel swing.
	Range float64

	// AngleThreshold is the corner detection angle in radians.
	AngleThreshold float64
}

// DefaultConfig returns the standard working setup: a 128px bitmap at
// 64px/em with the origin half an em in from the bottom-left and a 2px
// field range.
func DefaultConfig() Config {
	return Config{
		Size:           128,
		EmScale:        64,
		Origin:         32,
		Range:          2,
		AngleThreshold: math.Pi / 3,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Size < 8 || c.Size > 4096 {
		return &ConfigError{Field: "Size", Reason: "must be in [8, 4096]"}
	}
	if c.EmScale <= 0 {
		return &ConfigError{Field: "EmScale", Reason: "must be positive"}
	}
	if c.Origin < 0 || c.Origin >= float64(c.Size) {
		return &ConfigError{Field: "Origin", Reason: "must be inside the bitmap"}
	}
	if c.Range <= 0 {
		return &ConfigError{Field: "Range", Reason: "must be positive"}
	}
	if c.AngleThreshold <= 0 || c.AngleThreshold > math.Pi {
		return &ConfigError{Field: "AngleThreshold", Reason: "must be in (0, pi]"}
	}
	return nil
}

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "sdf: invalid config." + e.Field + ": " + e.Reason
}

// Field is a generated distance field bitmap.
type Field struct {
	// Pix is RGBA data, 4 bytes per pixel, row-major, y down.
	Pix []byte

	// Size is the bitmap width and height in pixels.
	Size int

	// Ink is the tight bounding box of the outline in bitmap pixels,
	// empty for blank glyphs.
	Ink Rect
}

// SetPixel stores one pixel.
func (f *Field) SetPixel(x, y int, r, g, b, a byte) {
	off := (y*f.Size + x) * 4
	f.Pix[off] = r
	f.Pix[off+1] = g
	f.Pix[off+2] = b
	f.Pix[off+3] = a
}

// Pixel loads one pixel.
func (f *Field) Pixel(x, y int) (r, g, b, a byte) {
	off := (y*f.Size + x) * 4
	return f.Pix[off], f.Pix[off+1], f.Pix[off+2], f.Pix[off+3]
}

// Generator renders outlines into Fields.
type Generator struct {
	cfg Config
}

// NewGenerator returns a generator for the given configuration.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Config returns the generator configuration.
func (g *Generator) Config() Config { return g.cfg }

// Generate renders one outline. upem is the font's units per em. Empty
// outlines produce a fully-outside field with empty ink bounds.
func (g *Generator) Generate(outline font.GlyphOutline, upem float64) (*Field, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	if upem <= 0 {
		return nil, &ConfigError{Field: "upem", Reason: "must be positive"}
	}

	f := &Field{
		Pix:  make([]byte, g.cfg.Size*g.cfg.Size*4),
		Size: g.cfg.Size,
	}

	frame := Frame{
		Scale:  g.cfg.EmScale / upem,
		Origin: g.cfg.Origin,
		Size:   g.cfg.Size,
	}
	shape := FromOutline(outline, frame)
	if shape.EdgeCount() == 0 {
		return f, nil
	}
	shape.AssignColors(g.cfg.AngleThreshold)
	f.Ink = shape.Bounds

	g.fill(f, shape)
	return f, nil
}

func (g *Generator) fill(f *Field, shape *Shape) {
	// Pixels beyond the ink box plus the field range are fully outside;
	// skipping them keeps the per-glyph cost proportional to ink size.
	margin := g.cfg.Range + 1
	x0 := clampPx(shape.Bounds.MinX-margin, f.Size)
	x1 := clampPx(shape.Bounds.MaxX+margin, f.Size)
	y0 := clampPx(shape.Bounds.MinY-margin, f.Size)
	y1 := clampPx(shape.Bounds.MaxY+margin, f.Size)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			inside := shape.Contains(p)
			r := channelDistance(shape, p, ColorRed)
			gr := channelDistance(shape, p, ColorGreen)
			b := channelDistance(shape, p, ColorBlue)
			a := trueDistance(shape, p)
			f.SetPixel(x, y,
				g.toByte(r, inside),
				g.toByte(gr, inside),
				g.toByte(b, inside),
				g.toByte(a, inside))
		}
	}
}

// channelDistance is the minimum distance over edges feeding the channel.
func channelDistance(shape *Shape, p Point, channel EdgeColor) float64 {
	best := Infinite()
	for i := range shape.Contours {
		for j := range shape.Contours[i].Edges {
			e := &shape.Contours[i].Edges[j]
			if e.Color&channel == 0 {
				continue
			}
			best = best.Combine(e.Distance(p))
		}
	}
	if best.Distance == math.MaxFloat64 {
		return trueDistance(shape, p)
	}
	return math.Abs(best.Distance)
}

func trueDistance(shape *Shape, p Point) float64 {
	best := Infinite()
	for i := range shape.Contours {
		for j := range shape.Contours[i].Edges {
			best = best.Combine(shape.Contours[i].Edges[j].Distance(p))
		}
	}
	return math.Abs(best.Distance)
}

// toByte maps a distance magnitude and fill side to a channel value:
// 128 on the outline, 255 at Range inside, 0 at Range outside.
func (g *Generator) toByte(mag float64, inside bool) byte {
	d := mag
	if !inside {
		d = -d
	}
	v := 0.5 + d/(2*g.cfg.Range)
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return byte(math.Round(v * 255))
}

func clampPx(v float64, size int) int {
	i := int(math.Floor(v))
	if i < 0 {
		return 0
	}
	if i > size-1 {
		return size - 1
	}
	return i
}
