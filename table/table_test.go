package table

import (
	"errors"
	"testing"
)

const stylesCSV = `name,face,size,line_height
base,sans,24,1.2
em,sans-italic,24,1.2
big,serif,48,1.0
`

const stringsCSV = `key,width,height,en,de
title,512,0,Hello,Hallo
body,512,256,"Some, text","Etwas, Text"
hidden,0,0,glyphs only,nur Glyphen
`

func parseTestTables(t *testing.T) *Tables {
	t.Helper()
	tb, err := Parse([]byte(stylesCSV), []byte(stringsCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tb
}

func TestParseStyles(t *testing.T) {
	tb := parseTestTables(t)
	if len(tb.Styles) != 3 {
		t.Fatalf("got %d styles, want 3", len(tb.Styles))
	}
	want := Style{Name: "base", Face: "sans", Size: 24, LineHeight: 1.2}
	if tb.Styles[0] != want {
		t.Errorf("Styles[0] = %+v, want %+v", tb.Styles[0], want)
	}
	if got := tb.StyleNames(); got[0] != "base" || got[2] != "big" {
		t.Errorf("StyleNames() = %v", got)
	}
}

func TestParseStrings(t *testing.T) {
	tb := parseTestTables(t)
	if len(tb.Strings) != 3 {
		t.Fatalf("got %d strings, want 3", len(tb.Strings))
	}
	if got, want := len(tb.Languages), 2; got != want {
		t.Fatalf("got %d languages, want %d", got, want)
	}
	s := tb.Strings[1]
	if s.Key != "body" || s.Width != 512 || s.Height != 256 {
		t.Errorf("Strings[1] = %+v", s)
	}
	if s.Text[0] != "Some, text" || s.Text[1] != "Etwas, Text" {
		t.Errorf("quoted text fields = %q", s.Text)
	}
}

func TestStyleLookup(t *testing.T) {
	tb := parseTestTables(t)
	if s, ok := tb.Style("em"); !ok || s.Face != "sans-italic" {
		t.Errorf("Style(em) = %+v, %v", s, ok)
	}
	if _, ok := tb.Style("nope"); ok {
		t.Error("Style(nope) should not exist")
	}
}

func TestInputHashChangesWithBytes(t *testing.T) {
	a, err := Parse([]byte(stylesCSV), []byte(stringsCSV))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse([]byte(stylesCSV), []byte(stringsCSV))
	if err != nil {
		t.Fatal(err)
	}
	if a.InputHash != b.InputHash {
		t.Error("identical bytes must hash identically")
	}
	// A pure whitespace edit still invalidates: the hash covers raw bytes.
	c, err := Parse([]byte(stylesCSV), []byte(stringsCSV+"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if a.InputHash == c.InputHash {
		t.Error("raw byte change must change the input hash")
	}
}

func TestLanguageIndex(t *testing.T) {
	tb := parseTestTables(t)
	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"en", 0, true},
		{"de", 1, true},
		{"en-US", 0, true}, // BCP 47 narrowing matches the en column
		{"fr", -1, false},
		{"not a tag", -1, false},
	}
	for _, tt := range tests {
		got, err := tb.LanguageIndex(tt.key)
		if tt.ok {
			if err != nil || got != tt.want {
				t.Errorf("LanguageIndex(%q) = %d, %v, want %d", tt.key, got, err, tt.want)
			}
			continue
		}
		var le *LanguageError
		if !errors.As(err, &le) {
			t.Errorf("LanguageIndex(%q) err = %v, want *LanguageError", tt.key, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		styles  string
		strings string
	}{
		{"empty styles", "", stringsCSV},
		{"styles bad column count", "name,face,size\nbase,sans,24\n", stringsCSV},
		{"styles bad size", "name,face,size,line_height\nbase,sans,big,1.2\n", stringsCSV},
		{"styles zero line height", "name,face,size,line_height\nbase,sans,24,0\n", stringsCSV},
		{"duplicate style", "name,face,size,line_height\nbase,sans,24,1\nbase,serif,24,1\n", stringsCSV},
		{"strings no language column", stylesCSV, "key,width,height\n"},
		{"strings ragged row", stylesCSV, "key,width,height,en\ntitle,512,0\n"},
		{"strings bad width", stylesCSV, "key,width,height,en\ntitle,wide,0,x\n"},
		{"strings negative height", stylesCSV, "key,width,height,en\ntitle,512,-1,x\n"},
		{"duplicate key", stylesCSV, "key,width,height,en\na,1,1,x\na,1,1,y\n"},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.styles), []byte(tt.strings))
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("%s: err = %v, want *FormatError", tt.name, err)
		}
	}
}

func TestSkipBlankAndCommentRows(t *testing.T) {
	styles := "name,face,size,line_height\n\nbase,sans,24,1.2\n,skipped row\n"
	tb, err := Parse([]byte(styles), []byte(stringsCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tb.Styles) != 1 {
		t.Errorf("got %d styles, want 1", len(tb.Styles))
	}
}
