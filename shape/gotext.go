package shape

import (
	"fmt"
	"iter"
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// unboundedWidth stands in for "no wrapping" when the box width is zero.
const unboundedWidth = 1 << 21

// GoTextShaper is the production Shaper built on go-text/typesetting:
// HarfBuzz shaping per style run, segmenter splitting, paragraph line
// wrapping to the box width. Not safe for concurrent use.
type GoTextShaper struct {
	shaper   shaping.HarfbuzzShaper
	wrapper  shaping.LineWrapper
	splitter shaping.Segmenter

	outBuf []shaping.Output
}

// NewGoTextShaper returns a ready shaper.
func NewGoTextShaper() *GoTextShaper {
	s := &GoTextShaper{}
	s.shaper.SetFontCacheSize(32)
	return s
}

// singleFace satisfies shaping.Fontmap with one fixed face, so the
// segmenter never substitutes fonts: unsupported runes shape to tofu and
// are filtered downstream.
type singleFace struct {
	face *font.Face
}

func (f singleFace) ResolveFace(r rune) *font.Face { return f.face }

// Shape shapes one page. Glyphs are yielded in line order, left to right,
// with ink boxes positioned in page pixels (y down, first baseline at the
// tallest ascent of the first line). Lines whose baseline falls below a
// positive box height are dropped.
func (s *GoTextShaper) Shape(req Request) (iter.Seq[Glyph], error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	runes := []rune(req.Text)
	// Byte offset of each rune, one extra entry for end-of-text.
	runeByte := make([]int, len(runes)+1)
	byteRune := make(map[int]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		runeByte[i] = b
		byteRune[b] = i
		b += utf8.RuneLen(r)
	}
	runeByte[len(runes)] = len(req.Text)
	byteRune[len(req.Text)] = len(runes)

	// Spans in rune space, parallel to req.Spans, for per-run style
	// lookup after wrapping.
	runeSpans := make([]StyleSpan, len(req.Spans))
	outs := s.outBuf[:0]
	for i, sp := range req.Spans {
		rs, ok0 := byteRune[sp.Start]
		re, ok1 := byteRune[sp.End]
		if !ok0 || !ok1 {
			return nil, fmt.Errorf("shape: %w: span [%d,%d) splits a rune", ErrBadSpans, sp.Start, sp.End)
		}
		runeSpans[i] = sp
		runeSpans[i].Start, runeSpans[i].End = rs, re

		in := shaping.Input{
			Text:      runes,
			RunStart:  rs,
			RunEnd:    re,
			Direction: di.DirectionLTR,
			Face:      sp.Font.Face,
			Size:      fixed.Int26_6(math.Round(sp.Size * 64)),
			Script:    scriptFor(runes[rs:re]),
			Language:  language.DefaultLanguage(),
		}
		for _, run := range s.splitter.Split(in, singleFace{sp.Font.Face}) {
			outs = append(outs, s.shaper.Shape(run))
		}
	}
	s.outBuf = outs

	maxWidth := req.Box.Width
	if maxWidth <= 0 {
		maxWidth = unboundedWidth
	}
	cfg := shaping.WrapConfig{Direction: di.DirectionLTR}
	lines, _ := s.wrapper.WrapParagraph(cfg, maxWidth, runes, shaping.NewSliceIterator(outs))

	seq := func(yield func(Glyph) bool) {
		baseline := 0.0
		for li, line := range lines {
			ascent, advance := 0.0, 0.0
			for _, out := range line {
				sp := spanForRune(runeSpans, out.Runes.Offset)
				advance = math.Max(advance, sp.LineHeight*sp.Size)
				ascent = math.Max(ascent, fromFixed(out.LineBounds.Ascent))
			}
			if li == 0 {
				baseline = ascent
			} else {
				baseline += advance
			}
			if req.Box.Height > 0 && baseline > float64(req.Box.Height) {
				return
			}
			penX := 0.0
			for _, out := range line {
				face := spanForRune(runeSpans, out.Runes.Offset).Font.Name
				for _, g := range out.Glyphs {
					x0 := penX + fromFixed(g.XOffset) + fromFixed(g.XBearing)
					y0 := baseline - fromFixed(g.YOffset) - fromFixed(g.YBearing)
					w := fromFixed(g.Width)
					h := -fromFixed(g.Height)
					gl := Glyph{
						Face:   face,
						GID:    uint32(g.GlyphID),
						X0:     float32(x0),
						Y0:     float32(y0),
						X1:     float32(x0 + w),
						Y1:     float32(y0 + h),
						Source: runeByte[g.ClusterIndex],
						Tofu:   g.GlyphID == 0,
					}
					if !yield(gl) {
						return
					}
					penX += fromFixed(g.XAdvance)
				}
			}
		}
	}
	return seq, nil
}

func validateRequest(req Request) error {
	pos := 0
	for _, sp := range req.Spans {
		if sp.Start != pos || sp.End <= sp.Start {
			return fmt.Errorf("shape: %w: span [%d,%d) at position %d", ErrBadSpans, sp.Start, sp.End, pos)
		}
		if sp.Font == nil || sp.Font.Face == nil {
			return fmt.Errorf("shape: %w: span [%d,%d)", ErrNoFace, sp.Start, sp.End)
		}
		if sp.Size <= 0 {
			return fmt.Errorf("shape: %w: size %v", ErrBadSpans, sp.Size)
		}
		pos = sp.End
	}
	if pos != len(req.Text) {
		return fmt.Errorf("shape: %w: spans cover [0,%d) of %d bytes", ErrBadSpans, pos, len(req.Text))
	}
	return nil
}

// spanForRune returns the span containing rune index r. Spans are
// contiguous, so a linear scan is fine at table scale.
func spanForRune(spans []StyleSpan, r int) StyleSpan {
	for _, sp := range spans {
		if r >= sp.Start && r < sp.End {
			return sp
		}
	}
	return spans[len(spans)-1]
}

// scriptFor picks the script of the first letter in the run, defaulting
// to Latin for runs of digits and punctuation.
func scriptFor(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsLetter(r) {
			return language.LookupScript(r)
		}
	}
	return language.LookupScript('a')
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
