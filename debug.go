package textc

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/textc/shape"
)

// writeDebugPages renders every shaped page's ink boxes to
// <OutDir>/<key>.<page>.png so layout can be eyeballed without a
// renderer. Purely diagnostic output.
func (c *Compiler) writeDebugPages(shaped []shapedString) error {
	for _, ss := range shaped {
		for i, pg := range ss.pages {
			name := fmt.Sprintf("%s.%d.png", ss.str.Key, i)
			path := filepath.Join(c.opts.OutDir, name)
			if err := writeDebugPage(path, pg, shape.Box{
				Width:  ss.str.Width,
				Height: ss.str.Height,
			}); err != nil {
				return fmt.Errorf("debug page %s: %w", name, err)
			}
		}
	}
	return nil
}

func writeDebugPage(path string, pg shape.Page, box shape.Box) error {
	w, h := box.Width, box.Height
	for _, g := range pg.Glyphs {
		if x := int(math.Ceil(float64(g.X1))); x > w {
			w = x
		}
		if y := int(math.Ceil(float64(g.Y1))); y > h {
			h = y
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	for _, g := range pg.Glyphs {
		fillBox(img, g.X0, g.Y0, g.X1, g.Y1)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fillBox paints a glyph ink box: light interior, full-white outline.
func fillBox(img *image.Gray, x0, y0, x1, y1 float32) {
	b := img.Bounds()
	r := image.Rect(int(x0), int(y0), int(math.Ceil(float64(x1))), int(math.Ceil(float64(y1)))).Intersect(b)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := uint8(0x60)
			if x == r.Min.X || x == r.Max.X-1 || y == r.Min.Y || y == r.Max.Y-1 {
				v = 0xFF
			}
			img.Pix[img.PixOffset(x, y)] = v
		}
	}
}
