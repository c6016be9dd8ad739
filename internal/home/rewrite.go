// Package home regenerates the two managed regions of the home index
// document: the tag list in its header block and the recent publications
// section. Everything else in the document is left byte-for-byte intact, and
// rewriting an already rewritten document with the same inputs is a no-op.
// A document whose section would sit directly above a "- " list is refused
// with ErrListAfterSection instead of being rewritten.
package home

import (
	"fmt"
	"strings"

	"github.com/thluiz/vox/internal/domain/content"
	"github.com/thluiz/vox/internal/frontmatter"
	"github.com/thluiz/vox/internal/render"
)

type ItemRenderer interface {
	RenderItems(posts []content.RecentPost) ([]string, error)
}

type Rewriter struct {
	heading string
	items   ItemRenderer
	outline *render.Outliner
}

func NewRewriter(heading string, items ItemRenderer) *Rewriter {
	return &Rewriter{
		heading: heading,
		items:   items,
		outline: render.NewOutliner(),
	}
}

// Rewrite returns current with the header tag list set to topTags and the
// recent publications section regenerated from recent.
func (rw *Rewriter) Rewrite(current string, recent []content.RecentPost, topTags []string) (string, error) {
	section, err := rw.Section(recent)
	if err != nil {
		return "", err
	}
	text := RewriteTags(current, topTags)
	return rw.ReplaceSection(text, section)
}

// Section renders the full section: heading, blank line, one line per post,
// trailing blank line.
func (rw *Rewriter) Section(recent []content.RecentPost) (string, error) {
	lines, err := rw.items.RenderItems(recent)
	if err != nil {
		return "", fmt.Errorf("render recent section: %w", err)
	}
	var b strings.Builder
	b.WriteString(rw.heading)
	b.WriteString("\n\n")
	for _, ln := range lines {
		b.WriteString(ln)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String(), nil
}

// TagsBlock renders the header tag list.
func TagsBlock(tags []string) string {
	var b strings.Builder
	b.WriteString("tags:\n")
	for _, t := range tags {
		b.WriteString("  - ")
		b.WriteString(t)
		b.WriteByte('\n')
	}
	return b.String()
}

type span struct {
	start, end int
}

func splice(text string, s span, repl string) string {
	return text[:s.start] + repl + text[s.end:]
}

// RewriteTags replaces the tag list of the header block, appends one when the
// header has none, and prepends a new header when the document has none.
func RewriteTags(text string, tags []string) string {
	block := TagsBlock(tags)

	blk, ok := frontmatter.Locate(text)
	if !ok {
		return frontmatter.Marker + "\n" + block + frontmatter.Marker + "\n\n" + text
	}
	if s, found := locateTags(text, blk); found {
		return splice(text, s, block)
	}
	return splice(text, span{blk.Close, blk.Close}, block)
}

// locateTags covers the "tags:" line and the list items under it. A line with
// an inline value ("tags: [a]") is replaced as well so the key never repeats.
func locateTags(text string, blk frontmatter.Block) (span, bool) {
	lines := blk.Lines(text)
	for i, ln := range lines {
		if !strings.HasPrefix(ln.Text, "tags:") {
			continue
		}
		_, end := frontmatter.ListItems(lines, i)
		return span{lines[i].Start, lines[end-1].Next}, true
	}
	return span{}, false
}
