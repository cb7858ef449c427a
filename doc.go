// Package textc compiles styled text tables into renderable text meshes.
//
// # Overview
//
// textc is an offline compiler: it reads a style table and a string table
// (CSV), compiles the markup of every string into pages, shapes each page
// with HarfBuzz (go-text/typesetting), rasterizes every distinct glyph
// once as a multi-channel signed distance field, packs the fields into a
// square power-of-two atlas and emits a compact binary mesh plus the
// atlas image.
//
// # Quick Start
//
//	c, err := textc.New(textc.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := c.Build("en")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.SkippedBuild {
//	    log.Print("inputs unchanged, nothing to do")
//	}
//
// # Pipeline
//
//   - table: parse the style and string tables, hash the raw input bytes
//   - markup: compile markup source into pages of spans and tag ranges
//   - shape: shape each page, filter unrenderable glyphs, collect the
//     glyph identity set
//   - atlas: rasterize the set (sdf) and shelf-pack it
//   - encode: write the mesh file
//
// Two hashes gate the expensive stages: an input hash over the raw table
// bytes skips the whole build, and a glyph-set hash skips rasterization
// and packing when only the text layout changed.
//
// # Logging
//
// textc is silent by default. Call SetLogger to enable structured
// logging for the whole pipeline.
package textc
