package ingest

import (
	"github.com/thluiz/vox/internal/domain/content"
	"github.com/thluiz/vox/internal/frontmatter"
)

// Header keys recognized in article headers. Anything else is ignored.
const (
	keyPublished    = "published"
	keyTitle        = "title"
	keyTags         = "tags"
	keyParticipants = "participants"
	keyShow         = "podcast"
)

// ParseHeader extracts the recognized header fields and returns the text after
// the header block. Without a complete header block it returns an empty record
// and raw unchanged. It never fails: absent or malformed values stay absent or raw.
func ParseHeader(raw string) (content.HeaderRecord, string) {
	rec := content.NewHeaderRecord()

	blk, ok := frontmatter.Locate(raw)
	if !ok {
		return rec, raw
	}
	lines := blk.Lines(raw)

	rec.Published, _ = frontmatter.Scalar(lines, keyPublished)
	rec.Title, _ = frontmatter.Scalar(lines, keyTitle)
	rec.Show, _ = frontmatter.Scalar(lines, keyShow)
	rec.Tags = frontmatter.List(lines, keyTags)
	rec.Participants = frontmatter.List(lines, keyParticipants)

	return rec, blk.Body(raw)
}
