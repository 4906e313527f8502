package markdown

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		line string
		kind blockKind
	}{
		{"```go", kindFence},
		{"  ```", kindFence},
		{"", kindBlank},
		{"   ", kindBlank},
		{"# Title", kindHeading},
		{"###### Deep", kindHeading},
		{"#hello", kindParagraph},
		{"####### Seven", kindParagraph},
		{"- item", kindList},
		{"+ item", kindList},
		{"* item", kindList},
		{"1. item", kindList},
		{"12) item", kindList},
		{"| a | b |", kindTable},
		{"> quoted", kindBlockquote},
		{">", kindBlockquote},
		{"---", kindRule},
		{"*****", kindRule},
		{"___", kindRule},
		{"plain text", kindParagraph},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, classify(c.line), "line %q", c.line)
	}
}

func TestIndentWidth(t *testing.T) {
	assert.Equal(t, 0, indentWidth("a"))
	assert.Equal(t, 2, indentWidth("  a"))
	assert.Equal(t, 4, indentWidth("\ta"))
	assert.Equal(t, 4, indentWidth("  \ta"))
	assert.Equal(t, 5, indentWidth("\t a"))
}

func TestAssembleHeading(t *testing.T) {
	fragment, raw, next := assembleHeading([]string{"## A *b*"}, 0)
	assert.Equal(t, "<h2>A <em>b</em></h2>", fragment)
	assert.Equal(t, "A *b*", raw)
	assert.Equal(t, 1, next)
}

func TestAssembleListFlat(t *testing.T) {
	fragment, next := assembleList([]string{"- one", "- two"}, 0)
	assert.Equal(t, "<ul>\n<li>one</li>\n<li>two</li>\n</ul>", fragment)
	assert.Equal(t, 2, next)
}

func TestAssembleListOrdered(t *testing.T) {
	fragment, next := assembleList([]string{"1. one", "2) two"}, 0)
	assert.Equal(t, "<ol>\n<li>one</li>\n<li>two</li>\n</ol>", fragment)
	assert.Equal(t, 2, next)
}

func TestAssembleListNested(t *testing.T) {
	fragment, next := assembleList([]string{"- a", "  - b", "- c"}, 0)
	assert.Equal(t, "<ul>\n<li>a<ul>\n<li>b</li>\n</ul></li>\n<li>c</li>\n</ul>", fragment)
	assert.Equal(t, 3, next)
	assertBalanced(t, fragment)
}

func TestAssembleListNestedOrderedInUnordered(t *testing.T) {
	fragment, _ := assembleList([]string{"- a", "    1. b", "    2. c"}, 0)
	assert.Equal(t, "<ul>\n<li>a<ol>\n<li>b</li>\n<li>c</li>\n</ol></li>\n</ul>", fragment)
	assertBalanced(t, fragment)
}

func TestAssembleListDeepUnwind(t *testing.T) {
	// Every open item and list closes at run end, deepest first.
	fragment, _ := assembleList([]string{"- a", "  - b", "    - c"}, 0)
	assertBalanced(t, fragment)
	assert.True(t, strings.HasSuffix(fragment, "</li>\n</ul></li>\n</ul></li>\n</ul>"))
}

func TestAssembleListMismatchedDedent(t *testing.T) {
	// An indent matching no open frame dedents to the nearest enclosing
	// frame with indent at or below it; here that is the outermost list.
	fragment, _ := assembleList([]string{"- a", "    - b", "  - c"}, 0)
	assert.Equal(t, "<ul>\n<li>a<ul>\n<li>b</li>\n</ul></li>\n<li>c</li>\n</ul>", fragment)
	assertBalanced(t, fragment)
}

func TestAssembleListStopsAtNonItem(t *testing.T) {
	fragment, next := assembleList([]string{"- one", "plain"}, 0)
	assert.Equal(t, "<ul>\n<li>one</li>\n</ul>", fragment)
	assert.Equal(t, 1, next)
}

func TestAssembleTable(t *testing.T) {
	fragment, next := assembleTable([]string{"| A | B |", "| - | - |", "| 1 | 2 |"}, 0)
	expected := "<table>\n<thead><tr><th>A</th><th>B</th></tr></thead>\n" +
		"<tbody><tr><td>1</td><td>2</td></tr></tbody></table>"
	assert.Equal(t, expected, fragment)
	assert.Equal(t, 3, next)
}

func TestAssembleTableTwoRowsKeepsSecond(t *testing.T) {
	fragment, _ := assembleTable([]string{"| A |", "| 1 |"}, 0)
	assert.Contains(t, fragment, "<td>1</td>")
}

func TestAssembleTableEscapesCells(t *testing.T) {
	fragment, _ := assembleTable([]string{"| <b>x</b> |", "| - |", "| *y* |"}, 0)
	assert.NotContains(t, fragment, "<b>")
	assert.Contains(t, fragment, "<td><em>y</em></td>")
}

func TestAssembleBlockquote(t *testing.T) {
	fragment, next := assembleBlockquote([]string{"> first", "> second", "after"}, 0)
	assert.Equal(t, "<blockquote>first second</blockquote>", fragment)
	assert.Equal(t, 2, next)
}

func TestAssembleFence(t *testing.T) {
	var c Converter
	fragment, next := c.assembleFence([]string{"```go", `fmt.Println("hi")`, "```"}, 0)
	assert.Equal(t, "<pre><code class=\"language-go\">fmt.Println(&#34;hi&#34;)\n</code></pre>", fragment)
	assert.Equal(t, 3, next)
}

func TestAssembleFenceNoLanguage(t *testing.T) {
	var c Converter
	fragment, _ := c.assembleFence([]string{"```", "x < y", "```"}, 0)
	assert.Equal(t, "<pre><code>x &lt; y\n</code></pre>", fragment)
}

func TestAssembleFenceUnclosed(t *testing.T) {
	var c Converter
	fragment, next := c.assembleFence([]string{"```", "lost line"}, 0)
	assert.Empty(t, fragment)
	assert.Equal(t, 2, next)
}

func TestAssembleParagraph(t *testing.T) {
	fragment, plain, next := assembleParagraph([]string{"line one", "line two", ""}, 0)
	assert.Equal(t, "<p>line one line two</p>", fragment)
	assert.Equal(t, "line one line two", plain)
	assert.Equal(t, 2, next)
}

func TestAssembleParagraphLineBreak(t *testing.T) {
	fragment, _, _ := assembleParagraph([]string{"line one  ", "line two"}, 0)
	assert.Equal(t, "<p>line one<br>line two</p>", fragment)
}

func TestAssembleParagraphLineBreakStripsExactlyTwoSpaces(t *testing.T) {
	// Three trailing spaces: two are the break marker, the third survives.
	fragment, _, _ := assembleParagraph([]string{"line one   ", "line two"}, 0)
	assert.Equal(t, "<p>line one <br>line two</p>", fragment)
}

func TestAssembleParagraphInterruptedByHeading(t *testing.T) {
	fragment, _, next := assembleParagraph([]string{"text", "# heading"}, 0)
	assert.Equal(t, "<p>text</p>", fragment)
	assert.Equal(t, 1, next)
}

func TestAssembleParagraphNotInterruptedByQuoteOrRule(t *testing.T) {
	// Blockquotes, rules, and table rows join a paragraph in progress.
	fragment, _, next := assembleParagraph([]string{"text", "> quote", "---"}, 0)
	assert.Equal(t, 3, next)
	assert.Contains(t, fragment, "&gt; quote")
}

// voidElements never receive end tags; the tokenizer reports them as plain
// start tags, so balance counting skips them.
var voidElements = map[string]bool{"br": true, "hr": true, "img": true}

func assertBalanced(t *testing.T, fragment string) {
	t.Helper()
	counts := map[string]int{}
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			require.Equal(t, io.EOF, z.Err())
			break
		}
		name, _ := z.TagName()
		if voidElements[string(name)] {
			continue
		}
		switch tt {
		case html.StartTagToken:
			counts[string(name)]++
		case html.EndTagToken:
			counts[string(name)]--
		}
	}
	for tag, n := range counts {
		assert.Zero(t, n, "unbalanced <%s>", tag)
	}
}
