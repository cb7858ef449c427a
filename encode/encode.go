// Package encode reads and writes the compiled text mesh container.
//
// All integers and floats are little-endian. The layout:
//
//	magic "TXT", version byte
//	vertex_size u32 (bytes per vertex, 16)
//	index_size  u32 (bytes per index, 2)
//	num_strings u32
//	per string: name (padded), width u32, height u32, num_pages u32
//	per page:   num_tags u32, tags (value padded, start u32, end u32),
//	            num_vertices u32, vertices (4 x f32 each)
//
// A padded string is a length byte followed by the bytes, zero-padded so
// the total (length byte included) is a multiple of four. Vertices are
// interleaved x, y, u, v. Quads are wound top-left, bottom-left,
// bottom-right, top-right; QuadIndices derives the index buffer, so no
// indices are stored.
package encode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	// Magic starts every mesh file.
	Magic = "TXT"
	// Version is the current container version.
	Version = 1

	// VertexSize is the byte stride of one vertex: x, y, u, v as f32.
	VertexSize = 16
	// IndexSize is the byte width of one index as consumed with
	// QuadIndices output.
	IndexSize = 2

	// VertsPerQuad vertices yield IndicesPerQuad indices.
	VertsPerQuad   = 4
	IndicesPerQuad = 6
)

// Tag is a user tag span in glyph-index space: it covers quads
// [Start, End) of its page.
type Tag struct {
	Value string
	Start uint32
	End   uint32
}

// Page is one page of a compiled string: its tag spans and its vertex
// stream, four vertices per glyph quad.
type Page struct {
	Tags     []Tag
	Vertices []float32
}

// String is one compiled string.
type String struct {
	Name   string
	Width  uint32
	Height uint32
	Pages  []Page
}

// Write encodes strs to w.
func Write(w io.Writer, strs []String) error {
	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.WriteByte(Version)
	putU32(&buf, VertexSize)
	putU32(&buf, IndexSize)
	putU32(&buf, uint32(len(strs)))
	for _, s := range strs {
		if err := putPadded(&buf, s.Name); err != nil {
			return err
		}
		putU32(&buf, s.Width)
		putU32(&buf, s.Height)
		putU32(&buf, uint32(len(s.Pages)))
		for _, pg := range s.Pages {
			putU32(&buf, uint32(len(pg.Tags)))
			for _, tg := range pg.Tags {
				if err := putPadded(&buf, tg.Value); err != nil {
					return err
				}
				putU32(&buf, tg.Start)
				putU32(&buf, tg.End)
			}
			if len(pg.Vertices)%4 != 0 {
				return fmt.Errorf("encode: %s: vertex stream length %d is not a multiple of 4", s.Name, len(pg.Vertices))
			}
			putU32(&buf, uint32(len(pg.Vertices)/4))
			for _, f := range pg.Vertices {
				putU32(&buf, math.Float32bits(f))
			}
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Read decodes a mesh file written by Write.
func Read(r io.Reader) ([]String, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	d := &decoder{data: data}
	if string(d.take(3)) != Magic {
		return nil, ErrBadMagic
	}
	if v := d.take(1); d.err == nil && v[0] != Version {
		return nil, fmt.Errorf("encode: %w: version %d", ErrBadVersion, v[0])
	}
	if vs := d.u32(); d.err == nil && vs != VertexSize {
		return nil, fmt.Errorf("encode: unsupported vertex size %d", vs)
	}
	if is := d.u32(); d.err == nil && is != IndexSize {
		return nil, fmt.Errorf("encode: unsupported index size %d", is)
	}
	n := d.u32()
	var strs []String
	for i := uint32(0); i < n && d.err == nil; i++ {
		var s String
		s.Name = d.padded()
		s.Width = d.u32()
		s.Height = d.u32()
		np := d.u32()
		for p := uint32(0); p < np && d.err == nil; p++ {
			var pg Page
			nt := d.u32()
			for t := uint32(0); t < nt && d.err == nil; t++ {
				var tg Tag
				tg.Value = d.padded()
				tg.Start = d.u32()
				tg.End = d.u32()
				pg.Tags = append(pg.Tags, tg)
			}
			nv := d.u32()
			for v := uint32(0); v < nv*4 && d.err == nil; v++ {
				pg.Vertices = append(pg.Vertices, math.Float32frombits(d.u32()))
			}
			s.Pages = append(s.Pages, pg)
		}
		strs = append(strs, s)
	}
	if d.err != nil {
		return nil, d.err
	}
	return strs, nil
}

// QuadIndices derives the index buffer for a page with vertexCount
// vertices: two triangles per quad, pattern {0,1,2, 2,3,0} advancing by
// four. vertexCount must be a multiple of four and small enough for
// 16-bit indices.
func QuadIndices(vertexCount int) ([]uint16, error) {
	if vertexCount%VertsPerQuad != 0 {
		return nil, fmt.Errorf("encode: vertex count %d is not a multiple of %d", vertexCount, VertsPerQuad)
	}
	if vertexCount > math.MaxUint16+1 {
		return nil, fmt.Errorf("encode: vertex count %d overflows 16-bit indices", vertexCount)
	}
	out := make([]uint16, 0, vertexCount/VertsPerQuad*IndicesPerQuad)
	for base := 0; base < vertexCount; base += VertsPerQuad {
		b := uint16(base)
		out = append(out, b, b+1, b+2, b+2, b+3, b)
	}
	return out, nil
}

func putU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// putPadded writes a length-prefixed string zero-padded to a four-byte
// boundary.
func putPadded(buf *bytes.Buffer, s string) error {
	if len(s) > 255 {
		return fmt.Errorf("encode: string %q longer than 255 bytes", s[:16]+"...")
	}
	buf.WriteByte(byte(len(s)))
	buf.WriteString(s)
	for pad := (4 - (len(s)+1)%4) % 4; pad > 0; pad-- {
		buf.WriteByte(0)
	}
	return nil
}

type decoder struct {
	data []byte
	off  int
	err  error
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if d.off+n > len(d.data) {
		d.err = ErrTruncated
		return nil
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) u32() uint32 {
	b := d.take(4)
	if d.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *decoder) padded() string {
	lb := d.take(1)
	if d.err != nil {
		return ""
	}
	n := int(lb[0])
	b := d.take(n)
	if d.err != nil {
		return ""
	}
	d.take((4 - (n+1)%4) % 4)
	return string(b)
}
