package markdown

import (
	"html"
	"regexp"
	"strings"
)

var (
	imageRegexp  = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkRegexp   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	codeRegexp   = regexp.MustCompile("`([^`]+)`")
	boldRegexp   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRegexp = regexp.MustCompile(`\*(.+?)\*`)
	strikeRegexp = regexp.MustCompile(`~~(.+?)~~`)

	tagRegexp = regexp.MustCompile(`<.*?>`)
)

// escape replaces HTML metacharacters with entities. Markdown marker
// characters pass through untouched so that the inline substitutions can
// still match them.
func escape(text string) string {
	return html.EscapeString(text)
}

// renderInline substitutes inline spans in text. The input must already be
// escaped; each substitution is a global, non-greedy, leftmost-first replace
// over the result of the previous one, in a fixed order: images, links,
// inline code, bold, italic, strikethrough.
//
// Inline code content is not exempted from the later passes, so markup
// characters inside a code span still get substituted (`a*b*c` gains an
// <em>). This matches the long-standing behavior of the converter and is
// kept deliberately.
func renderInline(text string) string {
	text = imageRegexp.ReplaceAllStringFunc(text, func(m string) string {
		groups := imageRegexp.FindStringSubmatch(m)
		return `<img src="` + escape(groups[2]) + `" alt="` + escape(groups[1]) + `" loading="lazy">`
	})
	text = linkRegexp.ReplaceAllStringFunc(text, func(m string) string {
		groups := linkRegexp.FindStringSubmatch(m)
		return `<a href="` + escape(groups[2]) + `">` + escape(groups[1]) + `</a>`
	})
	text = codeRegexp.ReplaceAllString(text, "<code>$1</code>")
	text = boldRegexp.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicRegexp.ReplaceAllString(text, "<em>$1</em>")
	text = strikeRegexp.ReplaceAllString(text, "<del>$1</del>")
	return text
}

// plainText strips tags from a rendered fragment and resolves entities,
// yielding the visible text. Used to synthesize the meta description.
func plainText(rendered string) string {
	return strings.TrimSpace(html.UnescapeString(tagRegexp.ReplaceAllString(rendered, "")))
}
