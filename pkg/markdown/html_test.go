package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = "# Launch Notes\n\n" +
	"Our *new* product is **ready** for `beta` users.\n\n" +
	"## Highlights\n\n" +
	"- Faster exports\n" +
	"- Cleaner ~~old~~ layout\n\n" +
	"Next steps:\n\n" +
	"1. Draft\n" +
	"2. Review\n\n" +
	"> Ship it today.\n\n" +
	"Read the [docs](https://example.com/docs).\n\n" +
	"```go\nfmt.Println(\"hi\")\n```"

func TestMarkdownHTMLRoundTrip(t *testing.T) {
	html := ToHTML(sampleDocument)
	assert.Contains(t, html, "<h1>Launch Notes</h1>")
	assert.Contains(t, html, "<em>new</em>")
	assert.Contains(t, html, "<blockquote>")

	back, err := FromHTML(html)
	require.NoError(t, err)
	assert.Equal(t, sampleDocument, back)
}

func TestFromHTMLEditorMarkup(t *testing.T) {
	got, err := FromHTML(`<div><h2>Offer</h2><p>Save <b>20%</b> with <i> code </i>today<br>only.</p>` +
		`<ul><li><p>One</p><ul><li>Nested</li></ul></li><li>Two</li></ul><hr></div>`)
	require.NoError(t, err)

	assert.Equal(t, "## Offer\n\nSave **20%** with *code* today  \nonly.\n\n- One\n  - Nested\n- Two\n\n---", got)
}

func TestFromHTMLLooseTextBecomesParagraphs(t *testing.T) {
	got, err := FromHTML("Intro text <strong>bold</strong><p>Second</p>tail")
	require.NoError(t, err)
	assert.Equal(t, "Intro text **bold**\n\nSecond\n\ntail", got)
}

func TestFromHTMLOrderedStart(t *testing.T) {
	got, err := FromHTML(`<ol start="3"><li>three</li><li>four</li></ol>`)
	require.NoError(t, err)
	assert.Equal(t, "3. three\n4. four", got)
}

func TestFromHTMLDecodesEntities(t *testing.T) {
	got, err := FromHTML(ToHTML("Fish & chips < 5 dollars"))
	require.NoError(t, err)
	assert.Equal(t, "Fish & chips < 5 dollars", got)
}

func TestFromHTMLEmpty(t *testing.T) {
	got, err := FromHTML("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestFromHTMLEscapesLiteralMarkup(t *testing.T) {
	cases := []struct {
		name string
		html string
		md   string
	}{
		{"hash", "<p># not a heading</p>", `\# not a heading`},
		{"ordered", "<p>1. not a list</p>", `1\. not a list`},
		{"bullet", "<p>- not a bullet</p>", `\- not a bullet`},
		{"quote", "<p>&gt; not a quote</p>", `\> not a quote`},
		{"emphasis", "<p>2 * 3 * 4 is *not* emphasis</p>", `2 \* 3 \* 4 is \*not\* emphasis`},
		{"brackets", "<p>see [Name] and snake_case</p>", `see \[Name\] and snake\_case`},
		{"tag", "<p>type &lt;b&gt; here</p>", `type \<b> here`},
		{"after break", "<p>first<br/>- second</p>", "first  \n\\- second"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			md, err := FromHTML(tc.html)
			require.NoError(t, err)
			assert.Equal(t, tc.md, md)
		})
	}
}

func TestFromHTMLLiteralTextRoundTrips(t *testing.T) {
	for _, src := range []string{
		"<p># not a heading</p>",
		"<p>1. not a list</p>",
		"<p>2 * 3 * 4 is *not* emphasis</p>",
	} {
		md, err := FromHTML(src)
		require.NoError(t, err)
		assert.Equal(t, src, ToHTML(md))
	}
}

func TestFromHTMLLeavesCodeUnescaped(t *testing.T) {
	got, err := FromHTML("<p>run <code>a*b_[c]</code></p><pre><code># keep *this*\n</code></pre>")
	require.NoError(t, err)
	assert.Equal(t, "run `a*b_[c]`\n\n```\n# keep *this*\n```", got)
}
