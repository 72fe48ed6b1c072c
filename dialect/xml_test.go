package dialect

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/annodoc/docerrors"
	"github.com/erraggy/annodoc/extract"
)

func TestXMLParser(t *testing.T) {
	block := extract.Block{
		File: "users.go",
		Line: 10,
		Text: `<api method="GET" summary="list users">
  <description type="html"><![CDATA[<span style="color:red">list description</span>]]></description>
  <path path="/users/{id}">
    <param name="id" type="number" summary="user id" />
    <query name="state" type="string" array="true" default="[normal,lock]" />
  </path>
  <!-- grouping -->
  <tag>users</tag>
</api>`,
	}

	root, err := XMLParser{}.Parse(block)
	require.NoError(t, err)

	want := `api method="GET" summary="list users"
  description type="html" html text="<span style=\"color:red\">list description</span>"
  path path="/users/{id}"
    param name="id" type="number" summary="user id"
    query name="state" type="string" array="true" default="[normal,lock]"
  tag text="users"
`
	assert.Equal(t, want, root.String())

	assert.Equal(t, 10, root.Line)
	desc := root.Find("description")
	require.NotNil(t, desc)
	assert.True(t, desc.TextIsHTML)
	assert.Equal(t, `<span style="color:red">list description</span>`, desc.TextValue())
	assert.Equal(t, 11, desc.Line)
	assert.Equal(t, 13, root.Find("path").Find("param").Line)
	assert.Equal(t, 17, root.Find("tag").Line)
}

func TestXMLParserText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantText string
		wantHTML bool
	}{
		{
			name:     "cdata keeps newlines and markup",
			text:     "<api><description><![CDATA[line1\n  <b>x</b>\n]]></description></api>",
			wantText: "line1\n  <b>x</b>\n",
		},
		{
			name:     "html type is case insensitive",
			text:     `<api><description type="HTML"><![CDATA[<p>x</p>]]></description></api>`,
			wantText: "<p>x</p>",
			wantHTML: true,
		},
		{
			name:     "character data is trimmed and unescaped",
			text:     "<api><description>\n   a &amp; b &lt;c&gt; &#65;&#x42; &bogus; &\n</description></api>",
			wantText: "a & b <c> AB &bogus; &",
		},
		{
			name:     "text around a comment",
			text:     "<api><description>one<!-- skip -->two</description></api>",
			wantText: "onetwo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := XMLParser{}.Parse(extract.Block{File: "a.go", Line: 1, Text: tt.text})
			require.NoError(t, err)
			desc := root.Find("description")
			require.NotNil(t, desc)
			assert.Equal(t, tt.wantText, desc.TextValue())
			assert.Equal(t, tt.wantHTML, desc.TextIsHTML)
		})
	}
}

func TestXMLParserAttributes(t *testing.T) {
	root, err := XMLParser{}.Parse(extract.Block{
		Line: 1,
		Text: `<?xml version="1.0"?><api method='GET' summary="a &quot;quoted&quot; &amp; 'single'" />`,
	})
	require.NoError(t, err)
	assert.Equal(t, "GET", root.Attr("method"))
	assert.Equal(t, `a "quoted" & 'single'`, root.Attr("summary"))
	assert.Empty(t, root.Children)
}

func TestXMLParserErrors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		line    int
		column  int
		message string
	}{
		{
			name:    "unterminated cdata",
			text:    "<api method=\"GET\">\n<description><![CDATA[oops\n</api>",
			line:    6,
			column:  14,
			message: "unterminated CDATA section",
		},
		{
			name:    "unbalanced tags report the opening tag",
			text:    "<api method=\"GET\">\n  <path path=\"/x\">\n</api>",
			line:    6,
			column:  3,
			message: "element <path> closed by </api> at line 7",
		},
		{
			name:    "never closed",
			text:    "<api method=\"GET\">\n  <tag>x</tag>",
			line:    5,
			column:  1,
			message: "element <api> is never closed",
		},
		{
			name:    "wrong root",
			text:    `<path path="/x"/>`,
			line:    5,
			column:  1,
			message: "root element must be <api>",
		},
		{
			name:    "trailing content",
			text:    "<api></api>\ntrailing",
			line:    6,
			column:  1,
			message: "unexpected content after </api>",
		},
		{
			name:    "duplicate attribute",
			text:    `<api method="GET" method="POST"></api>`,
			line:    5,
			column:  19,
			message: "duplicate attribute method on <api>",
		},
		{
			name:    "unquoted attribute",
			text:    `<api method=GET></api>`,
			line:    5,
			column:  6,
			message: "value of attribute method must be quoted",
		},
		{
			name:    "attribute without value",
			text:    `<api deprecated></api>`,
			line:    5,
			column:  6,
			message: "attribute deprecated of <api> has no value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := XMLParser{}.Parse(extract.Block{File: "api.go", Line: 5, Text: tt.text})
			require.Error(t, err)
			assert.ErrorIs(t, err, docerrors.ErrLex)

			var lexErr *docerrors.LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, "api.go", lexErr.File)
			assert.Equal(t, tt.line, lexErr.Line)
			assert.Equal(t, tt.column, lexErr.Column)
			assert.Contains(t, lexErr.Message, tt.message)
		})
	}
}

func TestXMLParserLinesInLargeBlock(t *testing.T) {
	const tags = 5000
	var sb strings.Builder
	sb.WriteString("<api method=\"GET\">\n")
	for i := range tags {
		sb.WriteString("  <tag>t" + strconv.Itoa(i) + "</tag>\n")
	}
	sb.WriteString("</api>")

	root, err := XMLParser{}.Parse(extract.Block{File: "big.go", Line: 100, Text: sb.String()})
	require.NoError(t, err)
	require.Len(t, root.Children, tags)
	assert.Equal(t, 100, root.Line)
	assert.Equal(t, 101, root.Children[0].Line)
	assert.Equal(t, 100+tags, root.Children[tags-1].Line)

	sb.Reset()
	sb.WriteString("<api method=\"GET\">\n")
	for range tags {
		sb.WriteString("  <tag>t</tag>\n")
	}
	sb.WriteString("  <tag oops></tag>\n</api>")

	_, err = XMLParser{}.Parse(extract.Block{File: "big.go", Line: 1, Text: sb.String()})
	var lexErr *docerrors.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, tags+2, lexErr.Line)
	assert.Equal(t, 8, lexErr.Column)
}
