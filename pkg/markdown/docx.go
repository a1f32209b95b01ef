package markdown

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/russross/blackfriday/v2"
)

const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type docxRun struct {
	text   string
	bold   bool
	italic bool
	strike bool
	code   bool
	brk    bool
}

type docxParagraph struct {
	style  string
	indent int
	prefix string
	runs   []docxRun
}

type docxBuilder struct {
	paragraphs []*docxParagraph
	current    *docxParagraph

	bold, italic, strike int
	quote                int
}

// ToDOCX renders a titled markdown document as a Word document.
func ToDOCX(title, md string) ([]byte, error) {
	b := &docxBuilder{}
	if title = strings.TrimSpace(title); title != "" {
		b.paragraphs = append(b.paragraphs, &docxParagraph{style: "Title", runs: []docxRun{{text: title}}})
	}

	parse(md).Walk(b.visit)
	b.finish()

	return b.pack()
}

func (b *docxBuilder) start(style string) {
	b.finish()
	b.current = &docxParagraph{style: style}
}

func (b *docxBuilder) finish() {
	if b.current != nil {
		b.paragraphs = append(b.paragraphs, b.current)
		b.current = nil
	}
}

func (b *docxBuilder) add(run docxRun) {
	if b.current == nil {
		b.start("")
	}
	run.bold = run.bold || b.bold > 0
	run.italic = run.italic || b.italic > 0
	run.strike = run.strike || b.strike > 0
	b.current.runs = append(b.current.runs, run)
}

func (b *docxBuilder) visit(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	switch n.Type {
	case blackfriday.Heading:
		if entering {
			b.start("Heading" + strconv.Itoa(n.Level))
		} else {
			b.finish()
		}
	case blackfriday.Paragraph:
		if !entering {
			b.finish()
			break
		}
		style := ""
		if b.quote > 0 {
			style = "Quote"
		}
		b.start(style)
		if item := n.Parent; item != nil && item.Type == blackfriday.Item {
			b.current.indent = itemDepth(item)
			if item.FirstChild == n {
				b.current.prefix = itemMarker(item)
			}
		}
	case blackfriday.BlockQuote:
		if entering {
			b.quote++
		} else {
			b.quote--
		}
	case blackfriday.Strong:
		b.bold += counterStep(entering)
	case blackfriday.Emph:
		b.italic += counterStep(entering)
	case blackfriday.Del:
		b.strike += counterStep(entering)
	case blackfriday.Text, blackfriday.HTMLSpan:
		if len(n.Literal) > 0 {
			b.add(docxRun{text: strings.ReplaceAll(string(n.Literal), "\n", " ")})
		}
	case blackfriday.Code:
		b.add(docxRun{text: string(n.Literal), code: true})
	case blackfriday.Hardbreak, blackfriday.Softbreak:
		b.add(docxRun{brk: true})
	case blackfriday.CodeBlock:
		for _, line := range strings.Split(strings.TrimRight(string(n.Literal), "\n"), "\n") {
			b.start("Code")
			b.add(docxRun{text: line, code: true})
		}
		b.finish()
	case blackfriday.HorizontalRule:
		b.start("")
		b.add(docxRun{text: "———"})
		b.finish()
	case blackfriday.TableCell:
		if entering && b.current != nil && len(b.current.runs) > 0 {
			b.add(docxRun{text: " | "})
		}
	case blackfriday.TableRow:
		if entering {
			b.start("")
		} else {
			b.finish()
		}
	}
	return blackfriday.GoToNext
}

func counterStep(entering bool) int {
	if entering {
		return 1
	}
	return -1
}

func (b *docxBuilder) pack() ([]byte, error) {
	var body strings.Builder
	for _, p := range b.paragraphs {
		p.write(&body)
	}

	files := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", documentHeader + body.String() + documentFooter},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("docx %s: %w", f.name, err)
		}
		if _, err := w.Write([]byte(f.content)); err != nil {
			return nil, fmt.Errorf("docx %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx close: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *docxParagraph) write(b *strings.Builder) {
	b.WriteString("<w:p>")
	if p.style != "" || p.indent > 0 {
		b.WriteString("<w:pPr>")
		if p.style != "" {
			fmt.Fprintf(b, `<w:pStyle w:val="%s"/>`, p.style)
		}
		if p.indent > 0 {
			fmt.Fprintf(b, `<w:ind w:left="%d"/>`, 360*p.indent)
		}
		b.WriteString("</w:pPr>")
	}
	if p.prefix != "" {
		writeRun(b, docxRun{text: p.prefix})
	}
	for _, r := range p.runs {
		writeRun(b, r)
	}
	b.WriteString("</w:p>")
}

func writeRun(b *strings.Builder, r docxRun) {
	b.WriteString("<w:r>")
	if r.bold || r.italic || r.strike || r.code {
		b.WriteString("<w:rPr>")
		if r.code {
			b.WriteString(`<w:rFonts w:ascii="Consolas" w:hAnsi="Consolas" w:cs="Consolas"/>`)
		}
		if r.bold {
			b.WriteString("<w:b/>")
		}
		if r.italic {
			b.WriteString("<w:i/>")
		}
		if r.strike {
			b.WriteString("<w:strike/>")
		}
		b.WriteString("</w:rPr>")
	}
	if r.brk {
		b.WriteString("<w:br/>")
	} else {
		b.WriteString(`<w:t xml:space="preserve">`)
		_ = xml.EscapeText(b, []byte(r.text))
		b.WriteString("</w:t>")
	}
	b.WriteString("</w:r>")
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentFooter = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr></w:body></w:document>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="22"/></w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="259" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="48"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="36"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="1"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="2"/></w:pPr><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading4"><w:name w:val="heading 4"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="3"/></w:pPr><w:rPr><w:b/><w:sz w:val="24"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading5"><w:name w:val="heading 5"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="4"/></w:pPr><w:rPr><w:b/><w:i/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading6"><w:name w:val="heading 6"/><w:basedOn w:val="Normal"/><w:pPr><w:outlineLvl w:val="5"/></w:pPr><w:rPr><w:i/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Quote"><w:name w:val="Quote"/><w:basedOn w:val="Normal"/><w:pPr><w:ind w:left="720"/></w:pPr><w:rPr><w:i/><w:color w:val="595959"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Code"><w:name w:val="Code"/><w:basedOn w:val="Normal"/><w:pPr><w:spacing w:after="0"/><w:shd w:val="clear" w:color="auto" w:fill="F2F2F2"/></w:pPr><w:rPr><w:rFonts w:ascii="Consolas" w:hAnsi="Consolas" w:cs="Consolas"/><w:sz w:val="20"/></w:rPr></w:style>
</w:styles>`
