package markdown

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDocumentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	var body string
	for _, f := range zr.File {
		names = append(names, f.Name)
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			raw, err := io.ReadAll(rc)
			require.NoError(t, err)
			_ = rc.Close()
			body = string(raw)
		}
	}
	assert.Contains(t, names, "[Content_Types].xml")
	assert.Contains(t, names, "word/styles.xml")
	require.NotEmpty(t, body)
	return body
}

func TestToDOCXStructure(t *testing.T) {
	data, err := ToDOCX("Hello", "## Intro\n\nPlain **strong** *soft* & `code`\n\n- alpha\n- beta\n\n> quoted\n\n```\nline one\nline two\n```")
	require.NoError(t, err)

	body := readDocumentXML(t, data)
	assert.Contains(t, body, `<w:pStyle w:val="Title"/>`)
	assert.Contains(t, body, `>Hello</w:t>`)
	assert.Contains(t, body, `<w:pStyle w:val="Heading2"/>`)
	assert.Contains(t, body, `<w:rPr><w:b/></w:rPr><w:t xml:space="preserve">strong</w:t>`)
	assert.Contains(t, body, `<w:rPr><w:i/></w:rPr><w:t xml:space="preserve">soft</w:t>`)
	assert.Contains(t, body, `&amp;`)
	assert.Contains(t, body, `>• </w:t>`)
	assert.Contains(t, body, `>alpha</w:t>`)
	assert.Contains(t, body, `<w:pStyle w:val="Quote"/>`)
	assert.Contains(t, body, `<w:pStyle w:val="Code"/>`)
	assert.Contains(t, body, `>line two</w:t>`)
}

func TestToDOCXWithoutTitle(t *testing.T) {
	data, err := ToDOCX("  ", "World")
	require.NoError(t, err)

	body := readDocumentXML(t, data)
	assert.NotContains(t, body, `w:val="Title"`)
	assert.Contains(t, body, `>World</w:t>`)
}
