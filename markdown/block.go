package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	headingRegexp    = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	fenceRegexp      = regexp.MustCompile("^\\s*```(.*)$")
	ulItemRegexp     = regexp.MustCompile(`^\s*[-+*]\s+(.*)$`)
	olItemRegexp     = regexp.MustCompile(`^\s*(\d+)[.)]\s+(.*)$`)
	tableRowRegexp   = regexp.MustCompile(`^\s*\|.+\|\s*$`)
	blockquoteRegexp = regexp.MustCompile(`^>\s?(.*)$`)
	ruleRegexp       = regexp.MustCompile(`^\s*((?:-{3,})|(?:\*{3,})|(?:_{3,}))\s*$`)
)

type blockKind int

const (
	kindBlank blockKind = iota
	kindFence
	kindHeading
	kindList
	kindTable
	kindBlockquote
	kindRule
	kindParagraph
)

// classify names the block kind started by a right-trimmed line. The tests
// are ordered by priority: a fence marker wins over everything, and any line
// that matches nothing else is a paragraph.
func classify(line string) blockKind {
	switch {
	case fenceRegexp.MatchString(line):
		return kindFence
	case strings.TrimSpace(line) == "":
		return kindBlank
	case headingRegexp.MatchString(line):
		return kindHeading
	case ulItemRegexp.MatchString(line) || olItemRegexp.MatchString(line):
		return kindList
	case tableRowRegexp.MatchString(line):
		return kindTable
	case blockquoteRegexp.MatchString(line):
		return kindBlockquote
	case ruleRegexp.MatchString(line):
		return kindRule
	default:
		return kindParagraph
	}
}

func rightTrim(line string) string {
	return strings.TrimRight(line, " \t\r")
}

// indentWidth measures leading whitespace in columns, expanding tabs to the
// next multiple of four.
func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4 - width%4
		default:
			return width
		}
	}
	return width
}

// matchListItem reports whether a line is a list item, and if so its list
// tag ("ul" or "ol"), indentation width, and trimmed content.
func matchListItem(line string) (tag string, indent int, content string, ok bool) {
	if m := ulItemRegexp.FindStringSubmatch(line); m != nil {
		return "ul", indentWidth(line), strings.TrimSpace(m[1]), true
	}
	if m := olItemRegexp.FindStringSubmatch(line); m != nil {
		return "ol", indentWidth(line), strings.TrimSpace(m[2]), true
	}
	return "", 0, "", false
}

// assembleHeading renders a single heading line. It also returns the raw
// heading text so the driver can capture the document title.
func assembleHeading(lines []string, i int) (fragment, raw string, next int) {
	m := headingRegexp.FindStringSubmatch(rightTrim(lines[i]))
	level := len(m[1])
	raw = strings.TrimSpace(m[2])
	fragment = fmt.Sprintf("<h%d>%s</h%d>", level, renderInline(escape(raw)), level)
	return fragment, raw, i + 1
}

// listFrame is one level of list nesting: the indentation column at which
// its items sit and the tag that closes it.
type listFrame struct {
	indent int
	tag    string
}

// assembleList consumes a maximal run of list-item lines, mixed ordered and
// unordered, nesting by indentation. The closing tag of each <li> is
// deferred until its successor is known (next sibling, dedent, or run end),
// so a nested list can open inside the still-open item; fragments are never
// rewritten after being emitted. The final unwind closes every open item and
// list, deepest first, so the fragment is always balanced.
func assembleList(lines []string, i int) (fragment string, next int) {
	var b strings.Builder
	var stack []listFrame
	for ; i < len(lines); i++ {
		tag, indent, content, ok := matchListItem(rightTrim(lines[i]))
		if !ok {
			break
		}
		item := renderInline(escape(content))
		switch {
		case len(stack) == 0:
			b.WriteString("<" + tag + ">\n<li>" + item)
			stack = append(stack, listFrame{indent, tag})
		case indent > stack[len(stack)-1].indent:
			// Nested list opens inside the still-open parent item.
			b.WriteString("<" + tag + ">\n<li>" + item)
			stack = append(stack, listFrame{indent, tag})
		case indent == stack[len(stack)-1].indent:
			b.WriteString("</li>\n<li>" + item)
		default:
			// Dedent: close the current item, then every frame deeper than
			// the new indent along with the parent item that held it. An
			// indent matching no open frame lands on the nearest enclosing
			// frame; the outermost frame is never popped.
			b.WriteString("</li>\n")
			for len(stack) > 1 && stack[len(stack)-1].indent > indent {
				frame := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				b.WriteString("</" + frame.tag + "></li>\n")
			}
			b.WriteString("<li>" + item)
		}
	}
	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b.WriteString("</li>\n</" + frame.tag + ">")
	}
	return b.String(), i
}

// assembleTable consumes a maximal run of pipe-delimited lines. The first
// row is the header; with more than two rows the second is assumed to be an
// alignment separator and discarded. Cell counts are whatever splitting
// produces; header and body are not reconciled.
func assembleTable(lines []string, i int) (fragment string, next int) {
	var rows [][]string
	for ; i < len(lines) && tableRowRegexp.MatchString(rightTrim(lines[i])); i++ {
		row := strings.TrimSpace(lines[i])
		row = strings.TrimPrefix(row, "|")
		row = strings.TrimSuffix(row, "|")
		cells := strings.Split(row, "|")
		for k := range cells {
			cells[k] = strings.TrimSpace(cells[k])
		}
		rows = append(rows, cells)
	}

	var b strings.Builder
	b.WriteString("<table>\n<thead><tr>")
	for _, cell := range rows[0] {
		b.WriteString("<th>" + renderInline(escape(cell)) + "</th>")
	}
	b.WriteString("</tr></thead>\n<tbody>")
	body := rows[1:]
	if len(rows) > 2 {
		body = rows[2:]
	}
	for _, row := range body {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + renderInline(escape(cell)) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String(), i
}

// assembleBlockquote consumes contiguous quoted lines and joins their
// rendered contents with single spaces inside one <blockquote>. Paragraph
// breaks within the quote are not preserved; this simplification is kept.
func assembleBlockquote(lines []string, i int) (fragment string, next int) {
	var parts []string
	for ; i < len(lines); i++ {
		m := blockquoteRegexp.FindStringSubmatch(rightTrim(lines[i]))
		if m == nil {
			break
		}
		parts = append(parts, renderInline(escape(strings.TrimSpace(m[1]))))
	}
	return "<blockquote>" + strings.Join(parts, " ") + "</blockquote>", i
}

// assembleFence consumes an opening fence line, the raw lines that follow,
// and the closing fence. A fence that never closes consumes the rest of the
// input and emits nothing.
func (c *Converter) assembleFence(lines []string, i int) (fragment string, next int) {
	m := fenceRegexp.FindStringSubmatch(rightTrim(lines[i]))
	language := strings.TrimSpace(m[1])
	var body []string
	for j := i + 1; j < len(lines); j++ {
		if fenceRegexp.MatchString(rightTrim(lines[j])) {
			return c.renderFence(language, body), j + 1
		}
		body = append(body, lines[j])
	}
	return "", len(lines)
}

func (c *Converter) renderFence(language string, body []string) string {
	code := strings.Join(body, "\n")
	if c.highlight != nil {
		if fragment, err := highlightFence(c.highlight, language, code); err == nil {
			return fragment
		}
	}
	escaped := make([]string, len(body))
	for i, line := range body {
		escaped[i] = escape(line)
	}
	class := ""
	if language != "" {
		class = ` class="language-` + escape(language) + `"`
	}
	return "<pre><code" + class + ">" + strings.Join(escaped, "\n") + "\n</code></pre>"
}

// assembleParagraph collects lines until a blank line, heading, list item,
// or fence marker. Blockquotes, rules, and table rows do not interrupt a
// paragraph in progress. A collected line ending in two spaces has them
// stripped and an explicit <br> appended; other lines are joined with single
// spaces. The plain text of the rendered paragraph is returned for the meta
// description.
func assembleParagraph(lines []string, i int) (fragment, plain string, next int) {
	collected := []string{lines[i]}
	for i++; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" ||
			headingRegexp.MatchString(line) ||
			ulItemRegexp.MatchString(line) ||
			olItemRegexp.MatchString(line) ||
			fenceRegexp.MatchString(line) {
			break
		}
		collected = append(collected, line)
	}

	var b strings.Builder
	for idx, line := range collected {
		if strings.HasSuffix(line, "  ") {
			b.WriteString(renderInline(escape(line[:len(line)-2])))
			b.WriteString("<br>")
		} else {
			b.WriteString(renderInline(escape(line)))
			if idx != len(collected)-1 {
				b.WriteString(" ")
			}
		}
	}
	rendered := strings.TrimSpace(b.String())
	return "<p>" + rendered + "</p>", plainText(rendered), i
}
