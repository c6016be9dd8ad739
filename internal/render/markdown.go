package render

import (
	"bytes"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type Outliner struct {
	md goldmark.Markdown
}

func NewOutliner() *Outliner {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
	)
	return &Outliner{md: md}
}

// Heading is one ATX or setext heading. Start and Next are the byte offsets of
// the (first) line holding the heading text and of the line after it.
type Heading struct {
	Level int
	Text  string
	Start int
	Next  int
}

// Outline lists the headings of src in document order. Headings inside code
// blocks are not headings and are never reported.
func (o *Outliner) Outline(src []byte) []Heading {
	doc := o.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	var heads []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		seg := h.Lines().At(0)
		start := bytes.LastIndexByte(src[:seg.Start], '\n') + 1
		next := len(src)
		if i := bytes.IndexByte(src[seg.Start:], '\n'); i >= 0 {
			next = seg.Start + i + 1
		}

		var textBuf bytes.Buffer
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				textBuf.Write(t.Segment.Value(src))
			}
		}
		heads = append(heads, Heading{
			Level: h.Level,
			Text:  textBuf.String(),
			Start: start,
			Next:  next,
		})
		return ast.WalkSkipChildren, nil
	})
	return heads
}

// FirstTitle finds the first "# " heading line that starts at column zero.
func (o *Outliner) FirstTitle(src []byte) (Heading, bool) {
	for _, h := range o.Outline(src) {
		if h.Level == 1 && bytes.HasPrefix(src[h.Start:], []byte("# ")) {
			return h, true
		}
	}
	return Heading{}, false
}
