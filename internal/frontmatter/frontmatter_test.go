package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = "---\ntitle: \"Hello\"\ntags:\n  - a\n  - 'b'\nempty:\n---\n# Body\n"

func TestLocate(t *testing.T) {
	blk, ok := Locate(doc)
	require.True(t, ok)

	assert.Equal(t, "---\n", doc[blk.Start:blk.InnerStart])
	assert.Equal(t, "---\n", doc[blk.Close:blk.End])
	assert.Equal(t, "# Body\n", blk.Body(doc))
}

func TestLocateRejects(t *testing.T) {
	cases := map[string]string{
		"no marker":       "# Title\n",
		"no close":        "---\ntitle: x\n",
		"marker only":     "---",
		"dashes in line":  "----\ntitle: x\n---\n",
		"close with text": "---\ntitle: x\n--- more\n",
	}
	for name, in := range cases {
		_, ok := Locate(in)
		assert.False(t, ok, name)
	}
}

func TestLocateCloseAtEOF(t *testing.T) {
	text := "---\ntitle: x\n---"
	blk, ok := Locate(text)
	require.True(t, ok)
	assert.Equal(t, len(text), blk.End)
	assert.Equal(t, "", blk.Body(text))
}

func TestLocateCRLF(t *testing.T) {
	text := "---\r\ntitle: x\r\n---\r\nbody"
	blk, ok := Locate(text)
	require.True(t, ok)
	assert.Equal(t, "body", blk.Body(text))

	v, ok := Scalar(blk.Lines(text), "title")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestScalarAndList(t *testing.T) {
	blk, ok := Locate(doc)
	require.True(t, ok)
	lines := blk.Lines(doc)

	title, ok := Scalar(lines, "title")
	assert.True(t, ok)
	assert.Equal(t, "Hello", title)

	_, ok = Scalar(lines, "empty")
	assert.False(t, ok)
	_, ok = Scalar(lines, "missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, List(lines, "tags"))
	assert.Equal(t, []string{}, List(lines, "empty"))
	assert.Equal(t, []string{}, List(lines, "missing"))
}

func TestListItemsBounds(t *testing.T) {
	lines := SplitLines("tags:\n  - x\n\t- y\nnext: 1\n", 0)
	idx, ok := ListKey(lines, "tags")
	require.True(t, ok)

	items, end := ListItems(lines, idx)
	assert.Equal(t, []string{"x", "y"}, items)
	assert.Equal(t, 3, end)
	assert.Equal(t, "next: 1", lines[end].Text)
}

func TestItem(t *testing.T) {
	v, ok := Item(`  - "Fábio Porchat"`)
	assert.True(t, ok)
	assert.Equal(t, "Fábio Porchat", v)

	v, ok = Item("  -")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	for _, in := range []string{"- top level", "  -nospace", "  text"} {
		_, ok := Item(in)
		assert.False(t, ok, in)
	}
}

func TestSplitLinesOffsets(t *testing.T) {
	lines := SplitLines("ab\ncd", 10)
	require.Len(t, lines, 2)
	assert.Equal(t, Line{Text: "ab", Start: 10, Next: 13}, lines[0])
	assert.Equal(t, Line{Text: "cd", Start: 13, Next: 15}, lines[1])
}

func TestUnquote(t *testing.T) {
	cases := map[string]string{
		`"Foo"`:       "Foo",
		`"Foo`:        "Foo",
		`Foo"`:        "Foo",
		` "Foo Bar" `: "Foo Bar",
		`'b'`:         "b",
		`'b`:          "'b",
		`plain`:       "plain",
		`"`:           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Unquote(in), in)
	}
}

func TestScalarUnbalancedQuote(t *testing.T) {
	blk, ok := Locate("---\ntitle: \"Foo\npodcast: Bar\"\n---\n")
	require.True(t, ok)
	lines := blk.Lines("---\ntitle: \"Foo\npodcast: Bar\"\n---\n")

	title, _ := Scalar(lines, "title")
	show, _ := Scalar(lines, "podcast")
	assert.Equal(t, "Foo", title)
	assert.Equal(t, "Bar", show)
}
