package shape

import (
	"fmt"
	"sort"

	"github.com/gogpu/textc/fontcat"
	"github.com/gogpu/textc/glyphset"
	"github.com/gogpu/textc/markup"
	"github.com/gogpu/textc/table"
)

// Typeset is a placed glyph ready for meshing: its identity, its quad in
// page pixels and the byte offset it came from.
type Typeset struct {
	UID glyphset.UID

	X0, Y0, X1, Y1 float32

	Source int
}

// Page is one shaped page. Tags reuse markup.Tag but Start and End are
// glyph indices into Glyphs, not text offsets.
type Page struct {
	Glyphs []Typeset
	Tags   []markup.Tag
}

// Adapter drives a Shaper over markup pages, filtering glyphs that cannot
// render, registering identities and remapping tag spans. Not safe for
// concurrent use: it reuses working buffers across pages.
type Adapter struct {
	shaper   Shaper
	registry *glyphset.Registry
	styles   map[string]StyleSpan

	work  []Typeset
	index []int
}

// NewAdapter resolves every style's face up front, so face errors surface
// before any shaping happens.
func NewAdapter(shaper Shaper, reg *glyphset.Registry, styles []table.Style, cat *fontcat.Catalog) (*Adapter, error) {
	a := &Adapter{
		shaper:   shaper,
		registry: reg,
		styles:   make(map[string]StyleSpan, len(styles)),
	}
	for _, st := range styles {
		f, err := cat.Resolve(st.Face)
		if err != nil {
			return nil, fmt.Errorf("shape: style %q: %w", st.Name, err)
		}
		a.styles[st.Name] = StyleSpan{Font: f, Size: st.Size, LineHeight: st.LineHeight}
	}
	return a, nil
}

// ShapePage shapes one markup page into placed glyphs.
//
// Glyphs with a zero glyph id (tofu) or with ink narrower or shorter than
// one pixel are discarded before identity registration, so the registry
// only ever sees glyphs that will occupy atlas space. Survivors are
// ordered by source offset; the returned slices are fresh copies.
func (a *Adapter) ShapePage(pg markup.Page, box Box) (Page, error) {
	spans := make([]StyleSpan, len(pg.Spans))
	for i, sp := range pg.Spans {
		tmpl, ok := a.styles[sp.Style]
		if !ok {
			return Page{}, fmt.Errorf("%w: %q", ErrUnknownStyle, sp.Style)
		}
		tmpl.Start, tmpl.End = sp.Start, sp.End
		spans[i] = tmpl
	}

	seq, err := a.shaper.Shape(Request{Text: pg.Text, Spans: spans, Box: box})
	if err != nil {
		return Page{}, err
	}

	work := a.work[:0]
	for g := range seq {
		if g.Tofu {
			continue
		}
		if g.X1-g.X0 <= 1 || g.Y1-g.Y0 <= 1 {
			continue
		}
		uid := a.registry.LookupOrInsert(g.Face, g.GID)
		work = append(work, Typeset{
			UID: uid,
			X0:  g.X0, Y0: g.Y0, X1: g.X1, Y1: g.Y1,
			Source: g.Source,
		})
	}
	sort.SliceStable(work, func(i, j int) bool { return work[i].Source < work[j].Source })
	a.work = work

	a.index = indexMapInto(a.index, work, len(pg.Text))
	var tags []markup.Tag
	if len(pg.Tags) > 0 {
		tags = make([]markup.Tag, len(pg.Tags))
		for i, tg := range pg.Tags {
			tags[i] = markup.Tag{Value: tg.Value, Start: a.index[tg.Start], End: a.index[tg.End]}
		}
	}

	out := Page{Tags: tags}
	if len(work) > 0 {
		out.Glyphs = append([]Typeset(nil), work...)
	}
	return out, nil
}

// IndexMap builds the fill-forward map from text byte offsets to glyph
// indices for glyphs sorted by source offset. It has textLen+1 entries:
// an offset with a glyph maps to the first glyph at that offset, an
// offset without one inherits the preceding resolved entry, leading
// unresolved offsets map to zero, and the end-of-text entry is the glyph
// count, so a tag closed at end of text covers every remaining glyph.
func IndexMap(glyphs []Typeset, textLen int) []int {
	return indexMapInto(nil, glyphs, textLen)
}

func indexMapInto(m []int, glyphs []Typeset, textLen int) []int {
	if cap(m) < textLen+1 {
		m = make([]int, textLen+1)
	}
	m = m[:textLen+1]
	for i := range m {
		m[i] = -1
	}
	for i, g := range glyphs {
		if g.Source >= 0 && g.Source < textLen && m[g.Source] < 0 {
			m[g.Source] = i
		}
	}
	prev := 0
	for j := 0; j < textLen; j++ {
		if m[j] < 0 {
			m[j] = prev
		} else {
			prev = m[j]
		}
	}
	m[textLen] = len(glyphs)
	return m
}
