package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrs(t *testing.T) {
	n := New("query", 3)
	n.Set("name", "state")
	n.Set("type", "string")
	n.Set("name", "page")

	assert.Equal(t, []Attr{{Key: "name", Value: "page"}, {Key: "type", Value: "string"}}, n.Attrs)
	assert.Equal(t, "string", n.Attr("type"))

	v, ok := n.Get("default")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestFind(t *testing.T) {
	api := New("api", 1).Append(
		New("tag", 2),
		New("path", 3),
		New("tag", 4),
	)

	assert.Equal(t, 3, api.Find("path").Line)
	assert.Nil(t, api.Find("request"))
	assert.Len(t, api.FindAll("tag"), 2)
	assert.Empty(t, api.FindAll("server"))
}

func TestText(t *testing.T) {
	n := New("description", 1)
	assert.Nil(t, n.Text)
	assert.Equal(t, "", n.TextValue())

	n.SetText("<p>hi</p>")
	assert.Equal(t, "<p>hi</p>", n.TextValue())
}

func TestString(t *testing.T) {
	d := New("description", 2)
	d.SetText("a")
	d.TextIsHTML = true
	api := New("api", 1)
	api.Set("method", "GET")
	api.Append(d)

	assert.Equal(t, "api method=\"GET\"\n  description html text=\"a\"\n", api.String())
}
