package encode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

func sampleStrings() []String {
	return []String{
		{
			Name:   "title",
			Width:  512,
			Height: 64,
			Pages: []Page{
				{
					Tags: []Tag{{Value: "hl", Start: 1, End: 3}},
					Vertices: []float32{
						// one quad: tl, bl, br, tr
						0, 0, 0.1, 0.1,
						0, 10, 0.1, 0.9,
						8, 10, 0.9, 0.9,
						8, 0, 0.9, 0.1,
					},
				},
			},
		},
		{
			Name:  "multi",
			Width: 256,
			Pages: []Page{
				{Vertices: nil},
				{Tags: []Tag{{Value: "a", Start: 0, End: 0}, {Value: "longer-tag-name", Start: 2, End: 5}}},
			},
		},
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	if string(b[:3]) != Magic {
		t.Errorf("magic = %q", b[:3])
	}
	if b[3] != Version {
		t.Errorf("version = %d", b[3])
	}
	if got := binary.LittleEndian.Uint32(b[4:]); got != VertexSize {
		t.Errorf("vertex_size = %d, want %d", got, VertexSize)
	}
	if got := binary.LittleEndian.Uint32(b[8:]); got != IndexSize {
		t.Errorf("index_size = %d, want %d", got, IndexSize)
	}
	if got := binary.LittleEndian.Uint32(b[12:]); got != 0 {
		t.Errorf("num_strings = %d, want 0", got)
	}
}

func TestRoundTrip(t *testing.T) {
	want := sampleStrings()
	var buf bytes.Buffer
	if err := Write(&buf, want); err != nil {
		t.Fatal(err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestPaddedStringAlignment(t *testing.T) {
	// Each name length must land records on 4-byte boundaries.
	for _, name := range []string{"", "a", "ab", "abc", "abcd", "abcde"} {
		var buf bytes.Buffer
		if err := Write(&buf, []String{{Name: name}}); err != nil {
			t.Fatal(err)
		}
		if buf.Len()%4 != 0 {
			t.Errorf("name %q: file length %d is not 4-aligned", name, buf.Len())
		}
		got, err := Read(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("name %q: %v", name, err)
		}
		if got[0].Name != name {
			t.Errorf("name round trip = %q, want %q", got[0].Name, name)
		}
	}
}

func TestReadBadMagic(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("NOP\x01")))
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("err = %v, want ErrBadMagic", err)
	}
}

func TestReadTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleStrings()); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	for _, n := range []int{4, 16, len(b) - 3} {
		if _, err := Read(bytes.NewReader(b[:n])); !errors.Is(err, ErrTruncated) {
			t.Errorf("truncated at %d: err = %v, want ErrTruncated", n, err)
		}
	}
}

func TestQuadIndices(t *testing.T) {
	got, err := QuadIndices(8)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint16{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("QuadIndices(8) = %v, want %v", got, want)
	}

	if got, err := QuadIndices(0); err != nil || len(got) != 0 {
		t.Errorf("QuadIndices(0) = %v, %v", got, err)
	}
	if _, err := QuadIndices(6); err == nil {
		t.Error("QuadIndices(6) should reject non-quad counts")
	}
	if _, err := QuadIndices(1 << 17); err == nil {
		t.Error("QuadIndices should reject counts beyond 16-bit indices")
	}
}

func TestQuadIndicesLaw(t *testing.T) {
	for _, quads := range []int{1, 2, 7, 100} {
		idx, err := QuadIndices(quads * VertsPerQuad)
		if err != nil {
			t.Fatal(err)
		}
		if len(idx) != quads*IndicesPerQuad {
			t.Fatalf("%d quads: %d indices, want %d", quads, len(idx), quads*IndicesPerQuad)
		}
		for q := 0; q < quads; q++ {
			base := uint16(q * VertsPerQuad)
			tri := idx[q*IndicesPerQuad : (q+1)*IndicesPerQuad]
			want := []uint16{base, base + 1, base + 2, base + 2, base + 3, base}
			if !reflect.DeepEqual(tri, want) {
				t.Errorf("quad %d indices = %v, want %v", q, tri, want)
			}
		}
	}
}
