// Command textc compiles styled text tables into a mesh file and a
// glyph atlas.
//
// Usage:
//
//	textc [flags] <language>
//
// The language argument selects a column of the string table, matched
// with BCP-47 language matching when the column headers are language
// tags. Exit code 2 marks a usage problem, 1 any other failure.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/textc"
)

func main() {
	os.Exit(run())
}

func run() int {
	defaults := textc.DefaultOptions()
	var (
		styles  = flag.String("styles", defaults.StylesPath, "style table CSV")
		strs    = flag.String("strings", defaults.StringsPath, "string table CSV")
		fonts   = flag.String("fonts", defaults.FontDir, "directory of .ttf files")
		out     = flag.String("out", defaults.OutDir, "output directory")
		cache   = flag.String("cache", defaults.CachePath, "build cache record")
		debug   = flag.Bool("debug-pages", false, "render each page's ink boxes to PNG")
		verbose = flag.Bool("v", false, "verbose logging to stderr")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return 2
	}
	lang := flag.Arg(0)

	if *verbose {
		textc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	c, err := textc.New(textc.Options{
		StylesPath:  *styles,
		StringsPath: *strs,
		FontDir:     *fonts,
		OutDir:      *out,
		CachePath:   *cache,
		DebugPages:  *debug,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	res, err := c.Build(lang)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ue *textc.UsageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}

	switch {
	case res.SkippedBuild:
		fmt.Println("textc: inputs unchanged, nothing to do")
	case res.AtlasReused:
		fmt.Printf("textc: wrote %d strings (%d pages), atlas reused\n", res.Strings, res.Pages)
	default:
		fmt.Printf("textc: wrote %d strings (%d pages), %d glyphs baked\n", res.Strings, res.Pages, res.Glyphs)
	}
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: textc [flags] <language>\n\nFlags:\n")
	flag.PrintDefaults()
}
