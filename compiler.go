package textc

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gogpu/textc/atlas"
	"github.com/gogpu/textc/cache"
	"github.com/gogpu/textc/encode"
	"github.com/gogpu/textc/fontcat"
	"github.com/gogpu/textc/glyphset"
	"github.com/gogpu/textc/markup"
	"github.com/gogpu/textc/shape"
	"github.com/gogpu/textc/table"
)

const (
	meshFile  = "strings.txtc"
	atlasFile = "atlas.png"

	// sdfPadding matches the atlas baker's UV inset so the distance
	// range around each glyph survives the crop.
	sdfPadding = 2
)

// Compiler runs the full build pipeline: tables, markup, shaping, atlas
// and mesh encoding, gated by the persisted build record.
type Compiler struct {
	opts Options

	// Collaborators, settable before Build. Nil fields get the
	// production implementations (go-text shaping, sdf rasterization,
	// a catalog loaded from Options.FontDir).
	Shaper     shape.Shaper
	Rasterizer atlas.Rasterizer
	Catalog    *fontcat.Catalog
}

// New validates opts and returns a Compiler.
func New(opts Options) (*Compiler, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Compiler{opts: opts}, nil
}

// Result summarizes one Build.
type Result struct {
	// SkippedBuild means the input hash matched the stored record and
	// nothing was shaped or written.
	SkippedBuild bool

	// AtlasReused means the glyph set hash matched, so rasterization
	// and packing were skipped and the previous atlas entries reused.
	AtlasReused bool

	// Strings and Pages count what went into the mesh file. Glyphs
	// counts distinct glyph identities across all shaped strings.
	Strings int
	Pages   int
	Glyphs  int
}

// shapedString pairs a string-table row with its shaped pages.
type shapedString struct {
	str   table.String
	pages []shape.Page
}

// Build compiles the tables for one language. On success the mesh file,
// the atlas image (when rebaked) and the cache record are written; on
// any error no output file is touched.
func (c *Compiler) Build(lang string) (*Result, error) {
	log := Logger()

	tables, err := table.Load(c.opts.StylesPath, c.opts.StringsPath)
	if err != nil {
		return nil, err
	}

	rec, err := cache.Load(c.opts.CachePath)
	if err != nil {
		log.Warn("discarding unreadable cache record",
			"path", c.opts.CachePath, "err", err)
		rec = nil
	}
	if rec != nil && rec.InputHash == tables.InputHash {
		log.Info("input tables unchanged, skipping build",
			"hash", tables.InputHash)
		return &Result{SkippedBuild: true}, nil
	}

	li, err := tables.LanguageIndex(lang)
	if err != nil {
		return nil, &UsageError{Reason: "cannot select language", Err: err}
	}
	log.Info("building", "language", tables.Languages[li],
		"strings", len(tables.Strings), "styles", len(tables.Styles))

	catalog := c.Catalog
	if catalog == nil {
		catalog, err = fontcat.LoadDir(c.opts.FontDir)
		if err != nil {
			return nil, err
		}
	}
	shaper := c.Shaper
	if shaper == nil {
		shaper = shape.NewGoTextShaper()
	}

	reg := glyphset.NewRegistry()
	adapter, err := shape.NewAdapter(shaper, reg, tables.Styles, catalog)
	if err != nil {
		return nil, err
	}

	shaped, err := c.shapeAll(adapter, tables, li)
	if err != nil {
		return nil, err
	}

	sorted := reg.Sorted()
	glyphHash := reg.Hash()

	entries := make(map[glyphset.UID]atlas.Entry, len(sorted))
	var baked *atlas.Atlas
	reused := rec != nil && rec.GlyphHash == glyphHash &&
		len(rec.Entries) == len(sorted)
	if reused {
		for i, e := range rec.Entries {
			entries[sorted[i].UID] = atlas.Entry{
				UID: sorted[i].UID,
				U0:  e[0], V0: e[1], U1: e[2], V1: e[3],
			}
		}
		log.Info("glyph set unchanged, reusing atlas", "glyphs", len(sorted))
	} else {
		ras := c.Rasterizer
		if ras == nil {
			ras = atlas.NewSDFRasterizer(catalog, sdfPadding)
		}
		baker := atlas.NewBaker(ras)
		baker.Workers = c.opts.Workers
		baked, err = baker.Bake(sorted)
		if err != nil {
			return nil, err
		}
		for _, e := range baked.Entries {
			entries[e.UID] = e
		}
		log.Info("baked atlas", "glyphs", len(sorted), "size", baked.Size)
	}

	res := &Result{AtlasReused: reused, Glyphs: len(sorted)}
	out := make([]encode.String, 0, len(shaped))
	for _, ss := range shaped {
		if ss.str.Width <= 0 {
			continue
		}
		es := encode.String{
			Name:   ss.str.Key,
			Width:  uint32(ss.str.Width),
			Height: uint32(ss.str.Height),
			Pages:  make([]encode.Page, len(ss.pages)),
		}
		for i, pg := range ss.pages {
			es.Pages[i] = meshPage(pg, entries)
		}
		res.Pages += len(es.Pages)
		out = append(out, es)
	}
	res.Strings = len(out)

	record := &cache.Record{
		InputHash: tables.InputHash,
		GlyphHash: glyphHash,
		Entries:   make([][4]float32, len(sorted)),
	}
	for i, id := range sorted {
		e := entries[id.UID]
		record.Entries[i] = [4]float32{e.U0, e.V0, e.U1, e.V1}
	}

	if err := c.writeOutputs(out, baked, record); err != nil {
		return nil, err
	}
	if c.opts.DebugPages {
		if err := c.writeDebugPages(shaped); err != nil {
			return nil, err
		}
	}
	log.Info("wrote mesh", "strings", res.Strings, "pages", res.Pages)
	return res, nil
}

// shapeAll compiles and shapes every string, including zero-width ones,
// so the glyph set covers the whole table.
func (c *Compiler) shapeAll(adapter *shape.Adapter, tables *table.Tables, li int) ([]shapedString, error) {
	styles := tables.StyleNames()
	shaped := make([]shapedString, 0, len(tables.Strings))
	for _, str := range tables.Strings {
		pages, err := markup.Compile(str.Text[li], styles)
		if err != nil {
			return nil, fmt.Errorf("string %q: %w", str.Key, err)
		}
		box := shape.Box{Width: str.Width, Height: str.Height}
		sp := make([]shape.Page, 0, len(pages))
		for i, pg := range pages {
			out, err := adapter.ShapePage(pg, box)
			if err != nil {
				return nil, fmt.Errorf("string %q page %d: %w", str.Key, i, err)
			}
			sp = append(sp, out)
		}
		Logger().Debug("shaped string", "key", str.Key, "pages", len(sp))
		shaped = append(shaped, shapedString{str: str, pages: sp})
	}
	return shaped, nil
}

// meshPage turns a shaped page into its tag list and vertex stream, one
// quad per glyph wound (x0,y0) (x0,y1) (x1,y1) (x1,y0) with matching UV
// corners.
func meshPage(pg shape.Page, entries map[glyphset.UID]atlas.Entry) encode.Page {
	out := encode.Page{
		Tags:     make([]encode.Tag, len(pg.Tags)),
		Vertices: make([]float32, 0, len(pg.Glyphs)*encode.VertsPerQuad*4),
	}
	for i, tg := range pg.Tags {
		out.Tags[i] = encode.Tag{
			Value: tg.Value,
			Start: uint32(tg.Start),
			End:   uint32(tg.End),
		}
	}
	for _, g := range pg.Glyphs {
		e := entries[g.UID]
		out.Vertices = append(out.Vertices,
			g.X0, g.Y0, e.U0, e.V0,
			g.X0, g.Y1, e.U0, e.V1,
			g.X1, g.Y1, e.U1, e.V1,
			g.X1, g.Y0, e.U1, e.V0,
		)
	}
	return out
}

// writeOutputs persists the mesh, the atlas image (only when rebaked)
// and the cache record. Called only after every stage succeeded.
func (c *Compiler) writeOutputs(strs []encode.String, baked *atlas.Atlas, record *cache.Record) error {
	if err := os.MkdirAll(c.opts.OutDir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(c.opts.OutDir, meshFile))
	if err != nil {
		return err
	}
	if err := encode.Write(f, strs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if baked != nil {
		af, err := os.Create(filepath.Join(c.opts.OutDir, atlasFile))
		if err != nil {
			return err
		}
		if err := png.Encode(af, baked.Image); err != nil {
			af.Close()
			return err
		}
		if err := af.Close(); err != nil {
			return err
		}
	}

	return record.Store(c.opts.CachePath)
}
