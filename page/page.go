// Package page composes a converted Document into a complete HTML page with
// head metadata for search engines and social cards.
package page

import (
	"fmt"
	"html"
	"strings"

	"mdpage/markdown"
)

// An Option configures page rendering.
type Option func(*options)

type options struct {
	stylesheet string
	canonical  string
}

// WithStylesheet adds a stylesheet <link> with the given href.
func WithStylesheet(href string) Option {
	return func(o *options) {
		o.stylesheet = href
	}
}

// WithCanonical adds a canonical <link> with the given URL.
func WithCanonical(url string) Option {
	return func(o *options) {
		o.canonical = url
	}
}

// Render wraps a Document in a full HTML page: title, meta description,
// robots directive, optional canonical and stylesheet links, Open Graph
// article tags, a Twitter summary card, and the body inside <main>.
func Render(doc markdown.Document, opts ...Option) string {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	title := html.EscapeString(doc.Title)
	description := html.EscapeString(doc.Description)

	var b strings.Builder
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", title)
	fmt.Fprintf(&b, "<meta name=\"description\" content=\"%s\">\n", description)
	b.WriteString("<meta name=\"robots\" content=\"index, follow\">\n")
	if o.canonical != "" {
		fmt.Fprintf(&b, "<link rel=\"canonical\" href=\"%s\">\n", html.EscapeString(o.canonical))
	}
	if o.stylesheet != "" {
		fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=\"%s\">\n", html.EscapeString(o.stylesheet))
	}
	fmt.Fprintf(&b, "<meta property=\"og:title\" content=\"%s\">\n", title)
	fmt.Fprintf(&b, "<meta property=\"og:description\" content=\"%s\">\n", description)
	b.WriteString("<meta property=\"og:type\" content=\"article\">\n")
	b.WriteString("<meta name=\"twitter:card\" content=\"summary\">\n")
	b.WriteString("</head>\n\n<body>\n<main>\n")
	b.WriteString(doc.Body)
	b.WriteString("\n</main>\n</body>\n\n</html>")
	return b.String()
}
