// Package table loads the style and string tables that drive a build.
//
// Both tables are CSV files with a header row. The style table has the
// fixed columns name, face, size, line_height. The string table has the
// fixed columns key, width, height followed by one text column per
// language; the header names the language keys.
//
// The input hash covers the raw bytes of both files, so any edit,
// including whitespace or comments, invalidates the build cache.
package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/gogpu/textc/internal/hash"
)

// Style is one row of the style table. Size is the font size in pixels,
// LineHeight a multiplier applied to Size for the baseline advance.
type Style struct {
	Name       string
	Face       string
	Size       float64
	LineHeight float64
}

// String is one row of the string table. Text holds the markup source per
// language, indexed like Tables.Languages. Width and Height give the
// target box in pixels; zero means unconstrained on that axis, and strings
// with zero Width are shaped but excluded from the mesh output.
type String struct {
	Key    string
	Width  int
	Height int
	Text   []string
}

// Tables is the parsed pair of input tables.
type Tables struct {
	Styles    []Style
	Strings   []String
	Languages []string

	// InputHash is the rolling hash over the raw style table bytes
	// followed by the raw string table bytes.
	InputHash uint32
}

// Load reads and parses the two table files.
func Load(stylesPath, stringsPath string) (*Tables, error) {
	stylesData, err := os.ReadFile(stylesPath)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	stringsData, err := os.ReadFile(stringsPath)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	t, err := Parse(stylesData, stringsData)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Parse parses the style and string tables from raw bytes.
func Parse(stylesData, stringsData []byte) (*Tables, error) {
	t := &Tables{}
	if err := t.parseStyles(stylesData); err != nil {
		return nil, err
	}
	if err := t.parseStrings(stringsData); err != nil {
		return nil, err
	}
	d := hash.New()
	d.Write(stylesData)
	d.Write(stringsData)
	t.InputHash = d.Sum32()
	return t, nil
}

func (t *Tables) parseStyles(data []byte) error {
	records, err := readCSV(data, "styles")
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return &FormatError{File: "styles", Line: 1, Reason: "missing header row"}
	}
	if len(records[0].fields) != 4 {
		return &FormatError{File: "styles", Line: records[0].line,
			Reason: fmt.Sprintf("header has %d columns, want name,face,size,line_height", len(records[0].fields))}
	}
	seen := map[string]bool{}
	for _, rec := range records[1:] {
		if len(rec.fields) != 4 {
			return &FormatError{File: "styles", Line: rec.line,
				Reason: fmt.Sprintf("row has %d columns, want 4", len(rec.fields))}
		}
		name := rec.fields[0]
		if seen[name] {
			return &FormatError{File: "styles", Line: rec.line, Reason: "duplicate style " + strconv.Quote(name)}
		}
		seen[name] = true
		size, err := strconv.ParseFloat(strings.TrimSpace(rec.fields[2]), 64)
		if err != nil || size <= 0 {
			return &FormatError{File: "styles", Line: rec.line, Reason: "invalid size " + strconv.Quote(rec.fields[2])}
		}
		lh, err := strconv.ParseFloat(strings.TrimSpace(rec.fields[3]), 64)
		if err != nil || lh <= 0 {
			return &FormatError{File: "styles", Line: rec.line, Reason: "invalid line_height " + strconv.Quote(rec.fields[3])}
		}
		t.Styles = append(t.Styles, Style{Name: name, Face: rec.fields[1], Size: size, LineHeight: lh})
	}
	if len(t.Styles) == 0 {
		return &FormatError{File: "styles", Line: 1, Reason: "no styles defined"}
	}
	return nil
}

func (t *Tables) parseStrings(data []byte) error {
	records, err := readCSV(data, "strings")
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return &FormatError{File: "strings", Line: 1, Reason: "missing header row"}
	}
	header := records[0]
	if len(header.fields) < 4 {
		return &FormatError{File: "strings", Line: header.line,
			Reason: "header needs key,width,height and at least one language column"}
	}
	t.Languages = append(t.Languages, header.fields[3:]...)

	seen := map[string]bool{}
	for _, rec := range records[1:] {
		if len(rec.fields) != len(header.fields) {
			return &FormatError{File: "strings", Line: rec.line,
				Reason: fmt.Sprintf("row has %d columns, header has %d", len(rec.fields), len(header.fields))}
		}
		key := rec.fields[0]
		if seen[key] {
			return &FormatError{File: "strings", Line: rec.line, Reason: "duplicate key " + strconv.Quote(key)}
		}
		seen[key] = true
		w, err := strconv.Atoi(strings.TrimSpace(rec.fields[1]))
		if err != nil || w < 0 {
			return &FormatError{File: "strings", Line: rec.line, Reason: "invalid width " + strconv.Quote(rec.fields[1])}
		}
		h, err := strconv.Atoi(strings.TrimSpace(rec.fields[2]))
		if err != nil || h < 0 {
			return &FormatError{File: "strings", Line: rec.line, Reason: "invalid height " + strconv.Quote(rec.fields[2])}
		}
		text := make([]string, len(t.Languages))
		copy(text, rec.fields[3:])
		t.Strings = append(t.Strings, String{Key: key, Width: w, Height: h, Text: text})
	}
	return nil
}

type record struct {
	line   int
	fields []string
}

// readCSV tokenizes data, dropping blank lines and rows whose first field
// is empty (comment rows by convention).
func readCSV(data []byte, file string) ([]record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	var out []record
	for {
		fields, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &FormatError{File: file, Line: pe.Line, Reason: pe.Err.Error()}
			}
			return nil, fmt.Errorf("table: reading %s: %w", file, err)
		}
		line, _ := r.FieldPos(0)
		if len(fields) == 0 || fields[0] == "" {
			continue
		}
		out = append(out, record{line: line, fields: fields})
	}
	return out, nil
}

// Style returns the named style.
func (t *Tables) Style(name string) (Style, bool) {
	for _, s := range t.Styles {
		if s.Name == name {
			return s, true
		}
	}
	return Style{}, false
}

// StyleNames returns the style names in table order. The first name is the
// default style applied at the start of every string.
func (t *Tables) StyleNames() []string {
	names := make([]string, len(t.Styles))
	for i, s := range t.Styles {
		names[i] = s.Name
	}
	return names
}

// LanguageIndex resolves key against the language columns. Exact header
// matches win; otherwise key is matched as a BCP 47 tag against the
// headers that parse as tags, accepting high-confidence matches such as
// "en-US" against an "en" column.
func (t *Tables) LanguageIndex(key string) (int, error) {
	for i, l := range t.Languages {
		if l == key {
			return i, nil
		}
	}
	if want, err := language.Parse(key); err == nil {
		var tags []language.Tag
		var idx []int
		for i, l := range t.Languages {
			if tg, err := language.Parse(l); err == nil {
				tags = append(tags, tg)
				idx = append(idx, i)
			}
		}
		if len(tags) > 0 {
			m := language.NewMatcher(tags)
			if _, j, conf := m.Match(want); conf >= language.High {
				return idx[j], nil
			}
		}
	}
	return -1, &LanguageError{Key: key, Known: t.Languages}
}
