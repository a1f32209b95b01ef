package markdown

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// PlainText strips markdown markers and keeps the readable text, one blank
// line between blocks. List items keep a bullet or their number.
func PlainText(md string) string {
	var b strings.Builder

	parse(md).Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch n.Type {
		case blackfriday.Text, blackfriday.Code:
			b.Write(n.Literal)
		case blackfriday.HTMLSpan:
			b.WriteString(stripTags(n.Literal))
		case blackfriday.HTMLBlock:
			if text := strings.TrimSpace(stripTags(n.Literal)); text != "" {
				b.WriteString(text)
				b.WriteString("\n\n")
			}
		case blackfriday.Hardbreak, blackfriday.Softbreak:
			b.WriteString("\n")
		case blackfriday.CodeBlock:
			b.WriteString(strings.TrimRight(string(n.Literal), "\n"))
			b.WriteString("\n\n")
		case blackfriday.HorizontalRule:
			b.WriteString("\n")
		case blackfriday.Item:
			if entering {
				b.WriteString(strings.Repeat("  ", itemDepth(n)-1))
				b.WriteString(itemMarker(n))
			}
		case blackfriday.Paragraph:
			if !entering {
				if n.Parent != nil && n.Parent.Type == blackfriday.Item {
					b.WriteString("\n")
				} else {
					b.WriteString("\n\n")
				}
			}
		case blackfriday.Heading:
			if !entering {
				b.WriteString("\n\n")
			}
		case blackfriday.List:
			if !entering && itemDepth(n) == 0 {
				b.WriteString("\n")
			}
		case blackfriday.TableCell:
			if !entering {
				b.WriteString("\t")
			}
		case blackfriday.TableRow:
			if !entering {
				b.WriteString("\n")
			}
		case blackfriday.Table:
			if !entering {
				b.WriteString("\n")
			}
		}
		return blackfriday.GoToNext
	})

	out := blankLines.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(out)
}

// stripTags keeps the text of raw HTML, dropping tags, comments and
// script or style bodies.
func stripTags(raw []byte) string {
	var b strings.Builder
	z := html.NewTokenizer(bytes.NewReader(raw))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawTextTag(name []byte) bool {
	return string(name) == "script" || string(name) == "style"
}

// itemDepth counts the list items enclosing n, n included.
func itemDepth(n *blackfriday.Node) int {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		if p.Type == blackfriday.Item {
			depth++
		}
	}
	return depth
}

func itemMarker(item *blackfriday.Node) string {
	if item.ListFlags&blackfriday.ListTypeOrdered == 0 {
		return "• "
	}
	index := 1
	for p := item.Prev; p != nil; p = p.Prev {
		index++
	}
	return strconv.Itoa(index) + ". "
}
