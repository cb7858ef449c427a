// Package markup compiles the inline markup language used by string tables
// into pages of plain text with style ranges and user tag spans.
//
// The language has five tokens, all written in square brackets:
//
//	[#name]  push the current style and switch to style "name"
//	[#]      pop the style history
//	[#.]     page break
//	[tag]    open a user tag span
//	[/]      close the innermost open user tag span
//	[[#      escape, emits the literal text "[#"
//
// Everything else is copied through verbatim, including bare "]" bytes.
// All offsets produced by this package are byte offsets into the page text.
package markup

import "strings"

// Span is a run of page text rendered in a single style.
type Span struct {
	Style string
	Start int
	End   int
}

// Tag is a user tag span over page text, open [tag] to close [/].
type Tag struct {
	Value string
	Start int
	End   int
}

// Page is one page of compiled output. Spans cover Text exactly, in order,
// with no gaps or overlaps. Tags appear in close order.
type Page struct {
	Text  string
	Spans []Span
	Tags  []Tag
}

type compiler struct {
	known map[string]bool

	buf       []byte
	spans     []Span
	tags      []Tag
	spanStart int

	style   string
	history []string
	open    []Tag

	pages []Page
}

// Compile runs the state machine over src. styles lists the known style
// names; styles[0] is the current style at the start of input. Style state
// carries across page breaks. A style token naming an unknown style is
// ignored. Compile always produces at least one page.
func Compile(src string, styles []string) ([]Page, error) {
	if len(styles) == 0 {
		return nil, ErrNoStyles
	}
	known := make(map[string]bool, len(styles))
	for _, s := range styles {
		known[s] = true
	}
	c := &compiler{known: known, style: styles[0]}

	i := 0
	for i < len(src) {
		if strings.HasPrefix(src[i:], "[[#") {
			c.buf = append(c.buf, '[', '#')
			i += 3
			continue
		}
		if src[i] != '[' {
			c.buf = append(c.buf, src[i])
			i++
			continue
		}
		end := strings.IndexByte(src[i:], ']')
		if end < 0 {
			return nil, &SyntaxError{Offset: i, Token: src[i:min(i+12, len(src))]}
		}
		body := src[i+1 : i+end]
		i += end + 1

		switch {
		case body == "#.":
			if err := c.flushPage(); err != nil {
				return nil, err
			}
		case body == "#":
			c.popStyle()
		case strings.HasPrefix(body, "#"):
			c.pushStyle(body[1:])
		case body == "/":
			c.closeTag()
		default:
			c.open = append(c.open, Tag{Value: body, Start: len(c.buf)})
		}
	}
	if err := c.flushPage(); err != nil {
		return nil, err
	}
	return c.pages, nil
}

// flushSpan closes the span accumulated under the current style. Zero-width
// spans are dropped so spans always partition the text.
func (c *compiler) flushSpan() {
	if len(c.buf) > c.spanStart {
		c.spans = append(c.spans, Span{Style: c.style, Start: c.spanStart, End: len(c.buf)})
	}
	c.spanStart = len(c.buf)
}

func (c *compiler) pushStyle(name string) {
	if !c.known[name] {
		return
	}
	c.history = append(c.history, c.style)
	if name != c.style {
		c.flushSpan()
		c.style = name
	}
}

func (c *compiler) popStyle() {
	n := len(c.history)
	if n == 0 {
		return
	}
	prev := c.history[n-1]
	c.history = c.history[:n-1]
	if prev != c.style {
		c.flushSpan()
		c.style = prev
	}
}

func (c *compiler) closeTag() {
	n := len(c.open)
	if n == 0 {
		return
	}
	tg := c.open[n-1]
	c.open = c.open[:n-1]
	tg.End = len(c.buf)
	c.tags = append(c.tags, tg)
}

func (c *compiler) flushPage() error {
	if n := len(c.open); n > 0 {
		return &TagError{Value: c.open[n-1].Value}
	}
	c.flushSpan()
	c.pages = append(c.pages, Page{Text: string(c.buf), Spans: c.spans, Tags: c.tags})
	c.buf = c.buf[:0]
	c.spans = nil
	c.tags = nil
	c.spanStart = 0
	return nil
}

// Escape quotes s so that Compile reproduces it verbatim: every literal
// "[#" becomes the escape token. Compiling the result of Escape yields a
// single page whose text equals s.
func Escape(s string) string {
	return strings.ReplaceAll(s, "[#", "[[#")
}
