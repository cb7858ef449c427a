package textc

// Options configures a Compiler. Zero-value fields are rejected by
// Validate; start from DefaultOptions and override what differs.
type Options struct {
	// StylesPath and StringsPath locate the two input tables.
	StylesPath  string
	StringsPath string

	// FontDir is scanned for .ttf files before shaping begins.
	FontDir string

	// OutDir receives strings.txtc and atlas.png.
	OutDir string

	// CachePath is the persisted build record. A missing or corrupt
	// file means a full rebuild, never an error.
	CachePath string

	// DebugPages additionally renders each shaped page's ink boxes to
	// <OutDir>/<key>.<page>.png. Never affects the mesh output.
	DebugPages bool

	// Workers bounds concurrent glyph rasterization; zero means
	// GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the conventional file layout: tables and fonts
// next to the working directory, outputs under bin/.
func DefaultOptions() Options {
	return Options{
		StylesPath:  "styles.csv",
		StringsPath: "strings.csv",
		FontDir:     "fonts",
		OutDir:      "bin",
		CachePath:   ".cache",
	}
}

// Validate reports the first invalid field as a *ConfigError.
func (o *Options) Validate() error {
	switch {
	case o.StylesPath == "":
		return &ConfigError{Field: "StylesPath", Reason: "must not be empty"}
	case o.StringsPath == "":
		return &ConfigError{Field: "StringsPath", Reason: "must not be empty"}
	case o.FontDir == "":
		return &ConfigError{Field: "FontDir", Reason: "must not be empty"}
	case o.OutDir == "":
		return &ConfigError{Field: "OutDir", Reason: "must not be empty"}
	case o.CachePath == "":
		return &ConfigError{Field: "CachePath", Reason: "must not be empty"}
	case o.Workers < 0:
		return &ConfigError{Field: "Workers", Reason: "must not be negative"}
	}
	return nil
}
