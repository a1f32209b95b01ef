// Package markdown converts editor content between markdown, HTML, plain
// text and DOCX, and resolves [Placeholder] tokens.
package markdown

import (
	"strings"

	"github.com/russross/blackfriday/v2"
)

const extensions = blackfriday.CommonExtensions

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}

func parse(md string) *blackfriday.Node {
	return blackfriday.New(blackfriday.WithExtensions(extensions)).Parse([]byte(normalizeNewlines(md)))
}

// ToHTML renders markdown as an XHTML fragment. Smart punctuation is off so
// that FromHTML gives back the characters the user typed.
func ToHTML(md string) string {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.UseXHTML,
	})
	out := blackfriday.Run([]byte(normalizeNewlines(md)),
		blackfriday.WithExtensions(extensions),
		blackfriday.WithRenderer(renderer),
	)
	return strings.TrimSpace(string(out))
}
