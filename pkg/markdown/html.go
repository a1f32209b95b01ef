package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	spaceRun      = regexp.MustCompile(`[ \t]+`)

	// text that would otherwise start a heading, list, quote, table or
	// definition when it opens a line
	blockMarker   = regexp.MustCompile(`^[#+\->|:]`)
	orderedMarker = regexp.MustCompile(`^(\d+)([.)])`)
	htmlOpen      = regexp.MustCompile(`<([A-Za-z/!?])`)

	inlineEscaper = strings.NewReplacer(
		`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
		"[", `\[`, "]", `\]`, "~", `\~`,
	)
)

// lineBreak stands in for <br> until the inline text is finished, so
// space collapsing does not eat the markdown hard break.
const lineBreak = "\x00"

var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Main: true, atom.Body: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Blockquote: true, atom.Pre: true, atom.Hr: true,
	atom.Table: true,
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

// FromHTML converts an editor HTML fragment back to markdown.
func FromHTML(src string) (string, error) {
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(src), root)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	return strings.Join(blocks(root), "\n\n"), nil
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blockAtoms[n.DataAtom]
}

// blocks renders the children of parent as markdown blocks. Runs of inline
// content between block elements become paragraphs.
func blocks(parent *html.Node) []string {
	var out []string
	var pending strings.Builder

	flush := func() {
		if text := escapeLineStarts(finishInline(pending.String())); text != "" {
			out = append(out, text)
		}
		pending.Reset()
	}

	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if isBlock(c) {
			flush()
			out = append(out, block(c)...)
			continue
		}
		pending.WriteString(inline(c))
	}
	flush()

	return out
}

func block(n *html.Node) []string {
	if level, ok := headingLevels[n.DataAtom]; ok {
		text := inlineText(n)
		if text == "" {
			return nil
		}
		return []string{strings.Repeat("#", level) + " " + text}
	}

	switch n.DataAtom {
	case atom.P:
		if text := escapeLineStarts(inlineText(n)); text != "" {
			return []string{text}
		}
		return nil
	case atom.Ul, atom.Ol:
		if out := list(n, ""); out != "" {
			return []string{out}
		}
		return nil
	case atom.Blockquote:
		inner := strings.Join(blocks(n), "\n\n")
		if inner == "" {
			return nil
		}
		lines := strings.Split(inner, "\n")
		for i, l := range lines {
			if l == "" {
				lines[i] = ">"
			} else {
				lines[i] = "> " + l
			}
		}
		return []string{strings.Join(lines, "\n")}
	case atom.Pre:
		return []string{codeBlock(n)}
	case atom.Hr:
		return []string{"---"}
	case atom.Table:
		if out := table(n); out != "" {
			return []string{out}
		}
		return nil
	default:
		return blocks(n)
	}
}

func list(n *html.Node, indent string) string {
	ordered := n.DataAtom == atom.Ol
	index := 1
	if start, err := strconv.Atoi(attr(n, "start")); err == nil && ordered {
		index = start
	}

	var lines []string
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}

		marker := "- "
		if ordered {
			marker = strconv.Itoa(index) + ". "
			index++
		}

		var text strings.Builder
		var nested []string
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
				nested = append(nested, list(c, indent+strings.Repeat(" ", len(marker))))
				continue
			}
			if isBlock(c) && text.Len() > 0 {
				text.WriteString(" ")
			}
			text.WriteString(inline(c))
		}

		lines = append(lines, indent+marker+escapeLineStarts(finishInline(text.String())))
		lines = append(lines, nested...)
	}

	return strings.Join(lines, "\n")
}

func codeBlock(pre *html.Node) string {
	code := pre
	lang := ""
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Code {
			code = c
			for _, class := range strings.Fields(attr(c, "class")) {
				if strings.HasPrefix(class, "language-") {
					lang = strings.TrimPrefix(class, "language-")
				}
			}
			break
		}
	}

	return "```" + lang + "\n" + strings.TrimRight(textContent(code), "\n") + "\n```"
}

func table(n *html.Node) string {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.DataAtom == atom.Tr {
				var cells []string
				for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
					if cell.Type == html.ElementNode && (cell.DataAtom == atom.Td || cell.DataAtom == atom.Th) {
						cells = append(cells, inlineText(cell))
					}
				}
				rows = append(rows, cells)
				continue
			}
			walk(c)
		}
	}
	walk(n)

	if len(rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows)+1)
	for i, cells := range rows {
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		if i == 0 {
			sep := make([]string, len(cells))
			for j := range sep {
				sep[j] = "---"
			}
			lines = append(lines, "| "+strings.Join(sep, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n")
}

func inlineText(n *html.Node) string {
	return finishInline(inlineChildren(n))
}

func finishInline(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " "+lineBreak, lineBreak)
	s = strings.ReplaceAll(s, lineBreak+" ", lineBreak)
	s = strings.Trim(strings.TrimSpace(s), lineBreak)
	return strings.ReplaceAll(s, lineBreak, "  \n")
}

func inlineChildren(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(inline(c))
	}
	return b.String()
}

func inline(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return escapeText(whitespaceRun.ReplaceAllString(n.Data, " "))
	case html.ElementNode:
	default:
		return ""
	}

	switch n.DataAtom {
	case atom.Em, atom.I:
		return wrap("*", inlineChildren(n))
	case atom.Strong, atom.B:
		return wrap("**", inlineChildren(n))
	case atom.Del, atom.S, atom.Strike:
		return wrap("~~", inlineChildren(n))
	case atom.Code:
		return "`" + textContent(n) + "`"
	case atom.A:
		text := strings.TrimSpace(inlineChildren(n))
		href := attr(n, "href")
		if href == "" {
			return text
		}
		return "[" + text + "](" + href + ")"
	case atom.Img:
		return "![" + attr(n, "alt") + "](" + attr(n, "src") + ")"
	case atom.Br:
		return lineBreak
	default:
		return inlineChildren(n)
	}
}

// escapeText backslash-escapes characters that markdown would read as
// inline markup. Code spans and blocks take their text raw.
func escapeText(s string) string {
	return htmlOpen.ReplaceAllString(inlineEscaper.Replace(s), `\<$1`)
}

// escapeLineStarts escapes block markers at the start of each line of a
// finished paragraph.
func escapeLineStarts(s string) string {
	if s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		switch {
		case blockMarker.MatchString(l):
			lines[i] = `\` + l
		case orderedMarker.MatchString(l):
			lines[i] = orderedMarker.ReplaceAllString(l, `$1\$2`)
		}
	}
	return strings.Join(lines, "\n")
}

// wrap puts marker around inner, keeping surrounding spaces outside the
// markers so "<em> word </em>" does not become "* word *".
func wrap(marker, inner string) string {
	trimmed := strings.TrimSpace(inner)
	if trimmed == "" {
		return inner
	}
	lead := inner[:len(inner)-len(strings.TrimLeftFunc(inner, unicode.IsSpace))]
	trail := inner[len(strings.TrimRightFunc(inner, unicode.IsSpace)):]
	return lead + marker + trimmed + marker + trail
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
