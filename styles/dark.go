// Package styles registers chroma styles used for fenced-code highlighting
// in generated pages.
package styles

import (
	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/styles"
)

// Dark matches the palette of the interactive form page.
var Dark = styles.Register(chroma.MustNewStyle("dark", chroma.StyleEntries{
	chroma.Text:                "#d4d4d4",
	chroma.Error:               "#d75f5f",
	chroma.Comment:             "#8a8a8a",
	chroma.Keyword:             "#46a143",
	chroma.Operator:            "#5fafd7",
	chroma.Punctuation:         "#a8a8a8",
	chroma.Name:                "#d4d4d4",
	chroma.NameAttribute:       "#87d7ff",
	chroma.NameFunction:        "#87d7ff",
	chroma.NameTag:             "#46a143",
	chroma.Literal:             "#00d7af",
	chroma.LiteralNumber:       "#87ffaf",
	chroma.LiteralString:       "#ffaf5f",
	chroma.LiteralStringEscape: "#5f5f87",
	chroma.GenericDeleted:      "#d75f5f",
	chroma.GenericEmph:         "italic",
	chroma.GenericHeading:      "#46a143 bold",
	chroma.GenericInserted:     "#5f875f",
	chroma.GenericStrong:       "bold",
	chroma.GenericSubheading:   "#46a143",
	chroma.Background:          "bg:#1f1f1f",
}))
