package atlas

import (
	"fmt"
	"image"
	"math"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/textc/fontcat"
	"github.com/gogpu/textc/sdf"
)

// SDFRasterizer renders glyphs as multi-channel signed distance fields.
// It is safe for concurrent use: the catalog is read-only after load and
// the generator is stateless per call.
type SDFRasterizer struct {
	catalog *fontcat.Catalog
	gen     *sdf.Generator
	padding int
}

// NewSDFRasterizer returns a rasterizer over the catalog using the
// default field configuration and the given padding border.
func NewSDFRasterizer(catalog *fontcat.Catalog, padding int) *SDFRasterizer {
	return &SDFRasterizer{
		catalog: catalog,
		gen:     sdf.NewGenerator(sdf.DefaultConfig()),
		padding: padding,
	}
}

// Rasterize renders one glyph. Glyphs without a vector outline (bitmap
// or SVG glyphs) fail with ErrNoOutline.
func (r *SDFRasterizer) Rasterize(face string, gid uint32) (*Bitmap, error) {
	f, err := r.catalog.Resolve(face)
	if err != nil {
		return nil, err
	}
	outline, ok := f.Face.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%d", ErrNoOutline, face, gid)
	}

	field, err := r.gen.Generate(outline, float64(f.Face.Upem()))
	if err != nil {
		return nil, err
	}

	return &Bitmap{
		Pix:  field.Pix,
		Size: field.Size,
		Ink:  r.inkRect(field),
	}, nil
}

// inkRect pads and clamps the field's ink bounds to whole pixels. Blank
// glyphs get a minimal padding-only rect so packing stays uniform.
func (r *SDFRasterizer) inkRect(field *sdf.Field) image.Rectangle {
	if field.Ink.IsEmpty() {
		return image.Rect(0, 0, 2*r.padding, 2*r.padding)
	}
	rect := image.Rect(
		int(math.Floor(field.Ink.MinX))-r.padding,
		int(math.Floor(field.Ink.MinY))-r.padding,
		int(math.Ceil(field.Ink.MaxX))+r.padding,
		int(math.Ceil(field.Ink.MaxY))+r.padding,
	)
	return rect.Intersect(image.Rect(0, 0, field.Size, field.Size))
}
