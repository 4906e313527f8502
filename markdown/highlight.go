package markdown

import (
	"strings"

	"github.com/alecthomas/chroma"
	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
)

// highlightFence renders a fenced code block through chroma. When no
// language was declared the lexer is chosen by content analysis.
func highlightFence(style *chroma.Style, language, code string) (string, error) {
	var lexer chroma.Lexer
	if language == "" {
		lexer = lexers.Analyse(code)
	} else {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code+"\n")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := chromahtml.New().Format(&b, style, iterator); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
