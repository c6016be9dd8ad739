package ingest

import (
	"context"
	"fmt"
	"github.com/thluiz/vox/internal/domain/content"
	"github.com/thluiz/vox/internal/frontmatter"
	"io/fs"
	"sort"
)

type Warning struct {
	Path string
	Msg  string
}

type Options struct {
	Extension string
}

// Corpus is the aggregate view of every published article.
type Corpus struct {
	Posts    []content.PostSummary
	Tags     *content.TagFrequency
	Excluded content.ExcludedTagSet
	Drafts   int
	Warnings []Warning
	// Hash covers the published sources, in enumeration order.
	Hash string
}

// Collect reads the whole corpus. Any read or listing failure aborts the run;
// per-article anomalies only produce warnings.
func Collect(ctx context.Context, fsys fs.FS, opt Options) (*Corpus, error) {
	if opt.Extension == "" {
		opt.Extension = ".md"
	}
	files, err := DiscoverSource(fsys, opt.Extension)
	if err != nil {
		return nil, err
	}

	c := &Corpus{
		Tags:     content.NewTagFrequency(),
		Excluded: content.ExcludedTagSet{},
	}
	hashes := make([]byte, 0, len(files)*64)

	for _, sf := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := fs.ReadFile(fsys, sf.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", sf.Path, err)
		}
		text := string(raw)
		rec, _ := ParseHeader(text)
		if rec.IsDraft() {
			c.Drafts++
			msg := "no published date, skipped as draft"
			if _, ok := frontmatter.Locate(text); !ok {
				msg = "no header block, skipped as draft"
			}
			c.Warnings = append(c.Warnings, Warning{Path: sf.Path, Msg: msg})
			continue
		}

		hashes = append(hashes, sf.Path...)
		hashes = append(hashes, HashBytes(raw)...)

		title := rec.Title
		if title == "" {
			title = sf.Stem
			c.Warnings = append(c.Warnings, Warning{Path: sf.Path, Msg: "title is empty, using file name"})
		}
		c.Posts = append(c.Posts, content.PostSummary{
			Link:      sf.Link(),
			Title:     title,
			Published: rec.Published,
		})

		for _, tag := range rec.Tags {
			c.Tags.Add(tag)
		}
		for _, name := range rec.Participants {
			c.Excluded.Add(NormalizeName(name))
		}
		if rec.Show != "" {
			c.Excluded.Add(NormalizeName(rec.Show))
		}
	}

	sort.SliceStable(c.Posts, func(i, j int) bool {
		return c.Posts[i].Published > c.Posts[j].Published
	})
	c.Hash = HashBytes(hashes)
	return c, nil
}
