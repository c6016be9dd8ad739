package home

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thluiz/vox/internal/domain/content"
	"github.com/thluiz/vox/internal/render"
)

const heading = "## Publicações Recentes"

func newRewriter(t *testing.T) *Rewriter {
	t.Helper()
	items, err := render.NewItemRenderer("- [[{{.Link}}|{{.Title}}]] — {{.Published}}")
	require.NoError(t, err)
	return NewRewriter(heading, items)
}

var recent = []content.RecentPost{
	{Link: "2024/c", Title: "Some Episode", Published: "2024-03-20"},
	{Link: "2024/a", Title: "Other", Published: "2024-01-01"},
}

const recentSection = heading + "\n\n" +
	"- [[2024/c|Some Episode]] — 2024-03-20\n" +
	"- [[2024/a|Other]] — 2024-01-01\n\n"

func rewrite(t *testing.T, rw *Rewriter, in string, posts []content.RecentPost, tags []string) string {
	t.Helper()
	out, err := rw.Rewrite(in, posts, tags)
	require.NoError(t, err)
	return out
}

func TestRewriteFullDocument(t *testing.T) {
	in := "---\ntitle: Vox\ntags:\n  - old\n  - stale\ncssclasses:\n  - home\n---\n# Vox\nWelcome.\n\n## Sobre\n\nText.\n"
	out := rewrite(t, newRewriter(t), in, recent, []string{"comedia", "humor"})

	want := "---\ntitle: Vox\ntags:\n  - comedia\n  - humor\ncssclasses:\n  - home\n---\n# Vox\n\n" +
		recentSection +
		"Welcome.\n\n## Sobre\n\nText.\n"
	assert.Equal(t, want, out)
}

func TestRewriteIsIdempotent(t *testing.T) {
	docs := map[string]string{
		"full":         "---\ntitle: Vox\n---\n# Vox\n\nWelcome.\n",
		"no header":    "# Vox\nWelcome.\n",
		"no title":     "---\ntitle: Vox\n---\nWelcome.\n",
		"bare":         "Just text",
		"empty":        "",
		"title at eof": "---\n---\n# Vox",
		"blank lines":  "---\n---\n# Vox\n\n\n\nWelcome.\n",
		"middle":       "# Vox\nintro\n\n" + heading + "\n\n- [[x|y]] — 2020-01-01\n\nmore\n",
		"crlf":         "---\r\ntitle: Vox\r\n---\r\n# Vox\r\n\r\nWelcome.\r\n",
		"heading eof":  "# Vox\n\n" + heading,
	}
	for name, in := range docs {
		rw := newRewriter(t)
		once := rewrite(t, rw, in, recent, []string{"a", "b"})
		twice := rewrite(t, rw, once, recent, []string{"a", "b"})
		assert.Equal(t, once, twice, name)
		assert.Equal(t, 1, strings.Count(twice, heading), name)
	}
}

func TestRewriteSynthesizesHeader(t *testing.T) {
	out := rewrite(t, newRewriter(t), "# Vox\n\nWelcome.\n", recent, []string{"a", "b"})

	assert.True(t, strings.HasPrefix(out, "---\ntags:\n  - a\n  - b\n---\n"), out)
	assert.Equal(t, "---\ntags:\n  - a\n  - b\n---\n\n# Vox\n\n"+recentSection+"Welcome.\n", out)
}

func TestRewriteAppendsTagsToHeaderWithoutThem(t *testing.T) {
	out := RewriteTags("---\ntitle: Vox\ncssclasses:\n  - home\n---\nbody\n", []string{"a"})
	assert.Equal(t, "---\ntitle: Vox\ncssclasses:\n  - home\ntags:\n  - a\n---\nbody\n", out)
}

func TestRewriteTagsReplacesInlineList(t *testing.T) {
	out := RewriteTags("---\ntags: [x, y]\ntitle: Vox\n---\n", []string{"a"})
	assert.Equal(t, "---\ntags:\n  - a\ntitle: Vox\n---\n", out)
}

func TestRewriteTagsEmptyList(t *testing.T) {
	once := RewriteTags("---\ntags:\n  - x\n---\n", nil)
	assert.Equal(t, "---\ntags:\n---\n", once)
	assert.Equal(t, once, RewriteTags(once, nil))
}

func TestRewriteLeavesBodyTagsAlone(t *testing.T) {
	in := "---\ntitle: Vox\n---\n# Vox\n\ntags:\n  - not header\n"
	out := RewriteTags(in, []string{"a"})
	assert.Equal(t, "---\ntitle: Vox\ntags:\n  - a\n---\n# Vox\n\ntags:\n  - not header\n", out)
}

func TestRewriteRelocatesSection(t *testing.T) {
	in := "---\ntitle: Vox\n---\n# Vox\n\nIntro paragraph.\n\n" +
		heading + "\n\n- [[2019/old|Old]] — 2019-01-01\n\n## Sobre\n\nText.\n"
	out := rewrite(t, newRewriter(t), in, recent, []string{"a"})

	want := "---\ntitle: Vox\ntags:\n  - a\n---\n# Vox\n\n" + recentSection +
		"Intro paragraph.\n\n## Sobre\n\nText.\n"
	assert.Equal(t, want, out)
	assert.NotContains(t, out, "2019/old")
}

func TestRewriteRemovesEverySection(t *testing.T) {
	in := "# Vox\n" + heading + "\n- a b\n" + "Middle\n" + heading + "\n\n\n- c d\n"
	out := rewrite(t, newRewriter(t), in, recent, nil)

	assert.Equal(t, 1, strings.Count(out, heading))
	assert.NotContains(t, out, "- a b")
	assert.NotContains(t, out, "- c d")
	assert.Contains(t, out, "Middle\n")
}

func TestRewriteWithoutTitleInsertsAfterHeader(t *testing.T) {
	out := rewrite(t, newRewriter(t), "---\ntitle: Vox\n---\nWelcome.\n", recent, []string{"a"})
	assert.Equal(t, "---\ntitle: Vox\ntags:\n  - a\n---\n\n"+recentSection+"Welcome.\n", out)
}

func TestRewriteIgnoresTitleInCodeFence(t *testing.T) {
	in := "---\n---\n```\n# not a title\n```\n# Vox\n"
	out := rewrite(t, newRewriter(t), in, recent, nil)
	assert.Equal(t, "---\ntags:\n---\n```\n# not a title\n```\n# Vox\n\n"+recentSection, out)
}

func TestRewriteTitleWithoutNewline(t *testing.T) {
	out := rewrite(t, newRewriter(t), "---\n---\n# Vox", recent, nil)
	assert.Equal(t, "---\ntags:\n---\n# Vox\n\n"+recentSection, out)
}

func TestRewriteEmptyRecent(t *testing.T) {
	out := rewrite(t, newRewriter(t), "# Vox\n", nil, nil)
	assert.Equal(t, "---\ntags:\n---\n\n# Vox\n\n"+heading+"\n\n\n", out)
}

func TestReplaceSectionPrependsWithoutHeaderOrTitle(t *testing.T) {
	rw := newRewriter(t)
	section, err := rw.Section(recent)
	require.NoError(t, err)

	out, err := rw.ReplaceSection("\nplain text\n", section)
	require.NoError(t, err)
	assert.Equal(t, "\n"+recentSection+"plain text\n", out)

	again, err := rw.ReplaceSection(out, section)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRewriteRefusesListAfterTitle(t *testing.T) {
	docs := []string{
		"# Vox\n- keep me\n- and me\n",
		"# Vox\n\n- keep me\n\nText.\n",
		"---\ntitle: Vox\n---\n\n- keep me\n",
		"- keep me\n",
	}
	for _, in := range docs {
		_, err := newRewriter(t).Rewrite(in, recent, []string{"a"})
		assert.ErrorIs(t, err, ErrListAfterSection, in)
	}
}

func TestRewriteKeepsListAfterParagraph(t *testing.T) {
	rw := newRewriter(t)
	in := "# Vox\n\nIntro.\n\n- keep me\n"
	once := rewrite(t, rw, in, recent, nil)
	twice := rewrite(t, rw, once, recent, nil)

	assert.Equal(t, once, twice)
	assert.Contains(t, twice, "Intro.\n\n- keep me\n")
}

type failingItems struct{}

func (failingItems) RenderItems([]content.RecentPost) ([]string, error) {
	return nil, errors.New("boom")
}

func TestRewritePropagatesRenderError(t *testing.T) {
	rw := NewRewriter(heading, failingItems{})
	_, err := rw.Rewrite("# Vox\n", recent, nil)
	assert.Error(t, err)
}
