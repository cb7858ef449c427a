package textc

import (
	"errors"
	"image"
	"iter"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gogpu/textc/atlas"
	"github.com/gogpu/textc/encode"
	"github.com/gogpu/textc/fontcat"
	"github.com/gogpu/textc/shape"
)

// charShaper emits one glyph per text byte (gid = byte value) with a
// fixed-size ink box, so glyph identities track the distinct characters.
type charShaper struct {
	calls atomic.Int64
}

func (s *charShaper) Shape(req shape.Request) (iter.Seq[shape.Glyph], error) {
	s.calls.Add(1)
	text := req.Text
	return func(yield func(shape.Glyph) bool) {
		for i := 0; i < len(text); i++ {
			g := shape.Glyph{
				Face:   "sans",
				GID:    uint32(text[i]),
				X0:     float32(i * 10),
				Y0:     0,
				X1:     float32(i*10 + 8),
				Y1:     12,
				Source: i,
			}
			if !yield(g) {
				return
			}
		}
	}, nil
}

// fixedRasterizer returns a constant bitmap and counts invocations.
type fixedRasterizer struct {
	calls atomic.Int64
}

func (r *fixedRasterizer) Rasterize(face string, gid uint32) (*atlas.Bitmap, error) {
	r.calls.Add(1)
	return &atlas.Bitmap{
		Pix:  make([]byte, 32*32*4),
		Size: 32,
		Ink:  image.Rect(2, 2, 18, 18),
	}, nil
}

// testInputs writes the two tables into dir and returns ready Options.
func testInputs(t *testing.T, visibleText string) Options {
	t.Helper()
	dir := t.TempDir()
	opts := Options{
		StylesPath:  filepath.Join(dir, "styles.csv"),
		StringsPath: filepath.Join(dir, "strings.csv"),
		FontDir:     dir,
		OutDir:      filepath.Join(dir, "bin"),
		CachePath:   filepath.Join(dir, ".cache"),
	}
	writeFile(t, opts.StylesPath, "name,face,size,line_height\nbase,sans,24,1.2\n")
	writeStrings(t, opts.StringsPath, visibleText)
	return opts
}

func writeStrings(t *testing.T, path, visibleText string) {
	t.Helper()
	writeFile(t, path, "key,width,height,en\ntitle,200,100,"+visibleText+"\nhidden,0,0,Hz\n")
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testCompiler(t *testing.T, opts Options, sh *charShaper, ras *fixedRasterizer) *Compiler {
	t.Helper()
	c, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	c.Shaper = sh
	c.Rasterizer = ras
	c.Catalog = fontcat.NewCatalog(&fontcat.Font{Name: "sans"})
	return c
}

func TestBuildEndToEnd(t *testing.T) {
	opts := testInputs(t, "Hello")
	sh := &charShaper{}
	ras := &fixedRasterizer{}
	c := testCompiler(t, opts, sh, ras)

	res, err := c.Build("en")
	if err != nil {
		t.Fatal(err)
	}
	if res.SkippedBuild || res.AtlasReused {
		t.Errorf("first build must run fully: %+v", res)
	}
	if res.Strings != 1 {
		t.Errorf("Strings = %d, want 1 (zero-width string excluded)", res.Strings)
	}
	// Distinct characters across both strings: H e l o z.
	if res.Glyphs != 5 {
		t.Errorf("Glyphs = %d, want 5", res.Glyphs)
	}
	if got := ras.calls.Load(); got != 5 {
		t.Errorf("rasterized %d glyphs, want one per identity (5)", got)
	}

	f, err := os.Open(filepath.Join(opts.OutDir, "strings.txtc"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	strs, err := encode.Read(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(strs) != 1 || strs[0].Name != "title" {
		t.Fatalf("mesh strings = %+v", strs)
	}
	if strs[0].Width != 200 || strs[0].Height != 100 {
		t.Errorf("box = %dx%d, want 200x100", strs[0].Width, strs[0].Height)
	}
	if len(strs[0].Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(strs[0].Pages))
	}
	// 5 shaped glyphs, 4 vertices of 4 floats each.
	if got := len(strs[0].Pages[0].Vertices); got != 5*16 {
		t.Errorf("vertex floats = %d, want 80", got)
	}

	if _, err := os.Stat(filepath.Join(opts.OutDir, "atlas.png")); err != nil {
		t.Errorf("atlas image missing: %v", err)
	}
	if _, err := os.Stat(opts.CachePath); err != nil {
		t.Errorf("cache record missing: %v", err)
	}
}

func TestBuildSkipsWhenInputsUnchanged(t *testing.T) {
	opts := testInputs(t, "Hello")
	sh := &charShaper{}
	ras := &fixedRasterizer{}

	if _, err := testCompiler(t, opts, sh, ras).Build("en"); err != nil {
		t.Fatal(err)
	}
	shapedOnce := sh.calls.Load()

	res, err := testCompiler(t, opts, sh, ras).Build("en")
	if err != nil {
		t.Fatal(err)
	}
	if !res.SkippedBuild {
		t.Error("unchanged inputs must skip the build")
	}
	if got := sh.calls.Load(); got != shapedOnce {
		t.Errorf("skipped build still shaped: %d calls, want %d", got, shapedOnce)
	}
}

func TestBuildReusesAtlasWhenGlyphSetUnchanged(t *testing.T) {
	opts := testInputs(t, "Hello")
	sh := &charShaper{}
	ras := &fixedRasterizer{}

	if _, err := testCompiler(t, opts, sh, ras).Build("en"); err != nil {
		t.Fatal(err)
	}
	bakedOnce := ras.calls.Load()

	// Same characters, different order: input hash changes, glyph set
	// does not.
	writeStrings(t, opts.StringsPath, "olleH")
	res, err := testCompiler(t, opts, sh, ras).Build("en")
	if err != nil {
		t.Fatal(err)
	}
	if res.SkippedBuild {
		t.Fatal("changed inputs must rebuild")
	}
	if !res.AtlasReused {
		t.Error("unchanged glyph set must reuse the atlas")
	}
	if got := ras.calls.Load(); got != bakedOnce {
		t.Errorf("atlas reuse still rasterized: %d calls, want %d", got, bakedOnce)
	}
}

func TestBuildRebakesWhenGlyphSetChanges(t *testing.T) {
	opts := testInputs(t, "Hello")
	sh := &charShaper{}
	ras := &fixedRasterizer{}

	if _, err := testCompiler(t, opts, sh, ras).Build("en"); err != nil {
		t.Fatal(err)
	}

	writeStrings(t, opts.StringsPath, "Hexagon")
	res, err := testCompiler(t, opts, sh, ras).Build("en")
	if err != nil {
		t.Fatal(err)
	}
	if res.AtlasReused {
		t.Error("new characters must rebake the atlas")
	}
}

func TestBuildUnknownLanguage(t *testing.T) {
	opts := testInputs(t, "Hello")
	_, err := testCompiler(t, opts, &charShaper{}, &fixedRasterizer{}).Build("xx")
	var ue *UsageError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want *UsageError", err)
	}
}

func TestBuildCorruptCacheIsMiss(t *testing.T) {
	opts := testInputs(t, "Hello")
	writeFile(t, opts.CachePath, "garbage")
	res, err := testCompiler(t, opts, &charShaper{}, &fixedRasterizer{}).Build("en")
	if err != nil {
		t.Fatal(err)
	}
	if res.SkippedBuild {
		t.Error("corrupt cache must not skip the build")
	}
}

func TestBuildDebugPages(t *testing.T) {
	opts := testInputs(t, "Hello")
	opts.DebugPages = true
	if _, err := testCompiler(t, opts, &charShaper{}, &fixedRasterizer{}).Build("en"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"title.0.png", "hidden.0.png"} {
		if _, err := os.Stat(filepath.Join(opts.OutDir, name)); err != nil {
			t.Errorf("debug page missing: %v", err)
		}
	}
}

func TestNewValidatesOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.StylesPath = ""
	_, err := New(opts)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
	if ce.Field != "StylesPath" {
		t.Errorf("Field = %q, want StylesPath", ce.Field)
	}
}
