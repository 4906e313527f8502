// Package markdown converts a constrained subset of Markdown into HTML,
// synthesizing page metadata (title and description) from the document's own
// content as it goes.
//
// The converter is a single forward pass over the input lines: each line is
// classified into a block kind, a per-kind assembler consumes one or more
// lines and produces one complete HTML fragment, and fragments accumulate in
// source order. Conversion is total; no input string fails.
package markdown

import (
	"strings"

	"github.com/alecthomas/chroma"
)

// FallbackTitle is used when the document contains no heading.
const FallbackTitle = "Untitled"

// maxDescription is the rune budget for the synthesized meta description.
const maxDescription = 160

// A Document is the result of one conversion.
type Document struct {
	// Title is the raw text of the first heading, or FallbackTitle.
	Title string
	// Description is the plain text of the first paragraph, truncated to
	// 160 runes with a trailing ellipsis. Empty when the document has no
	// paragraph.
	Description string
	// Body holds the rendered block fragments joined by newlines.
	Body string
}

// An Option configures a Converter.
type Option func(*Converter)

// WithHighlighting makes the converter render fenced code blocks through
// chroma using the given style instead of emitting plain escaped
// <pre><code> elements. A nil style leaves highlighting off.
func WithHighlighting(style *chroma.Style) Option {
	return func(c *Converter) {
		c.highlight = style
	}
}

// A Converter turns Markdown text into Documents. The zero value converts
// with default settings; Converters are stateless across calls and safe for
// concurrent use.
type Converter struct {
	highlight *chroma.Style
}

// New creates a Converter with the given options applied.
func New(options ...Option) *Converter {
	c := &Converter{}
	for _, o := range options {
		o(c)
	}
	return c
}

var defaultConverter = New()

// Convert renders source with a default Converter.
func Convert(source string) Document {
	return defaultConverter.Convert(source)
}

// Convert renders source into a Document. The line cursor only moves
// forward: every assembler consumes at least one line and no line is
// visited twice. Title and description are captured from the first heading
// and first paragraph respectively.
func (c *Converter) Convert(source string) Document {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")

	var (
		fragments       []string
		title           string
		description     string
		haveTitle       bool
		haveDescription bool
	)

	i := 0
	for i < len(lines) {
		var fragment string
		switch classify(rightTrim(lines[i])) {
		case kindBlank:
			i++
			continue
		case kindFence:
			fragment, i = c.assembleFence(lines, i)
			if fragment == "" {
				// Unclosed fence; its content is dropped.
				continue
			}
		case kindHeading:
			var raw string
			fragment, raw, i = assembleHeading(lines, i)
			if !haveTitle {
				title, haveTitle = raw, true
			}
		case kindList:
			fragment, i = assembleList(lines, i)
		case kindTable:
			fragment, i = assembleTable(lines, i)
		case kindBlockquote:
			fragment, i = assembleBlockquote(lines, i)
		case kindRule:
			fragment = "<hr>"
			i++
		default:
			var plain string
			fragment, plain, i = assembleParagraph(lines, i)
			if !haveDescription {
				description, haveDescription = truncateDescription(plain), true
			}
		}
		fragments = append(fragments, fragment)
	}

	if !haveTitle {
		title = FallbackTitle
	}
	return Document{
		Title:       title,
		Description: description,
		Body:        strings.Join(fragments, "\n"),
	}
}

func truncateDescription(plain string) string {
	runes := []rune(plain)
	if len(runes) <= maxDescription {
		return plain
	}
	return string(runes[:maxDescription-3]) + "..."
}
