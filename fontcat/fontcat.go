// Package fontcat enumerates and parses the font files a build may use.
//
// Faces are named by file stem: fonts/NotoSans.ttf becomes face "NotoSans".
// That name is what style tables reference and what glyph identity UIDs
// hash, so renaming a font file changes every UID minted from it.
package fontcat

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-text/typesetting/font"
)

// Font is one parsed face.
type Font struct {
	// Name is the face name, the font file stem.
	Name string
	// Face is the parsed go-text face. Nil only for catalogs built by
	// tests through NewCatalog.
	Face *font.Face
}

// Catalog is the set of available faces, resolvable by name.
type Catalog struct {
	fonts  []*Font
	byName map[string]*Font
}

// NewCatalog builds a catalog from already-constructed fonts. Production
// code uses LoadDir; this constructor exists for tests and embedders that
// source faces elsewhere.
func NewCatalog(fonts ...*Font) *Catalog {
	c := &Catalog{byName: make(map[string]*Font, len(fonts))}
	for _, f := range fonts {
		if _, dup := c.byName[f.Name]; dup {
			continue
		}
		c.fonts = append(c.fonts, f)
		c.byName[f.Name] = f
	}
	return c
}

// LoadDir parses every .ttf file directly under dir. File order does not
// matter; faces are kept sorted by name.
func LoadDir(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fontcat: %w", err)
	}
	var fonts []*Font
	for _, ent := range entries {
		if ent.IsDir() || !strings.EqualFold(filepath.Ext(ent.Name()), ".ttf") {
			continue
		}
		path := filepath.Join(dir, ent.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("fontcat: %w", err)
		}
		face, err := font.ParseTTF(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("fontcat: parsing %s: %w", path, err)
		}
		name := strings.TrimSuffix(ent.Name(), filepath.Ext(ent.Name()))
		fonts = append(fonts, &Font{Name: name, Face: face})
	}
	if len(fonts) == 0 {
		return nil, &ResolveError{Dir: dir}
	}
	sort.Slice(fonts, func(i, j int) bool { return fonts[i].Name < fonts[j].Name })
	return NewCatalog(fonts...), nil
}

// Resolve returns the named face. An unknown face is fatal to the build,
// so the error carries enough context to fix the style table.
func (c *Catalog) Resolve(name string) (*Font, error) {
	if f, ok := c.byName[name]; ok {
		return f, nil
	}
	return nil, &ResolveError{Face: name, Known: c.Names()}
}

// Names returns the face names in sorted catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.fonts))
	for i, f := range c.fonts {
		names[i] = f.Name
	}
	return names
}

// Fonts returns all faces.
func (c *Catalog) Fonts() []*Font { return c.fonts }
