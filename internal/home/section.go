package home

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thluiz/vox/internal/frontmatter"
)

// ErrListAfterSection reports a document whose insertion point is followed by
// a "- " list. The next run would take that list for section items and remove it.
var ErrListAfterSection = errors.New("list directly after the recent publications section")

// ReplaceSection removes every existing recent publications section from the
// body and inserts section after the first title line, after the header block
// when there is no title, or at the top of the document otherwise.
func (rw *Rewriter) ReplaceSection(text, section string) (string, error) {
	bodyStart := 0
	blk, hasHeader := frontmatter.Locate(text)
	if hasHeader {
		bodyStart = blk.End
	}

	spans := rw.locateSections(text, bodyStart)
	for i := len(spans) - 1; i >= 0; i-- {
		text = splice(text, spans[i], "")
	}

	at, needNewline := rw.insertionPoint(text, bodyStart, hasHeader)
	if ln, ok := listAfter(text, at); ok {
		return "", fmt.Errorf("%w: %q", ErrListAfterSection, ln)
	}
	return insertSection(text, at, needNewline, section), nil
}

// listAfter finds the first non-blank line from at and reports it when the
// section scanner would count it as an item.
func listAfter(text string, at int) (string, bool) {
	for _, ln := range frontmatter.SplitLines(text[at:], at) {
		if strings.Trim(ln.Text, " \t") == "" {
			continue
		}
		return ln.Text, sectionLine(ln.Text)
	}
	return "", false
}

// locateSections finds each heading line equal to the section heading together
// with the blank and "- " list lines that directly follow it.
func (rw *Rewriter) locateSections(text string, bodyStart int) []span {
	lines := frontmatter.SplitLines(text[bodyStart:], bodyStart)

	var out []span
	for i := 0; i < len(lines); i++ {
		if lines[i].Text != rw.heading {
			continue
		}
		j := i + 1
		for j < len(lines) && sectionLine(lines[j].Text) {
			j++
		}
		out = append(out, span{lines[i].Start, lines[j-1].Next})
		i = j - 1
	}
	return out
}

func sectionLine(line string) bool {
	if strings.Trim(line, " \t") == "" {
		return true
	}
	return strings.HasPrefix(line, "- ") && len(line) > 2
}

// insertionPoint returns where the section goes and whether the line before
// that point lacks a terminating newline.
func (rw *Rewriter) insertionPoint(text string, bodyStart int, hasHeader bool) (int, bool) {
	if h, ok := rw.outline.FirstTitle([]byte(text[bodyStart:])); ok {
		at := bodyStart + h.Next
		return at, !strings.HasSuffix(text[:at], "\n")
	}
	if hasHeader {
		return bodyStart, !strings.HasSuffix(text[:bodyStart], "\n")
	}
	return 0, false
}

// insertSection places section after any blank lines at `at`, keeping exactly
// the blank lines that were already there. When there were none, one blank line
// separates the section from the preceding line.
func insertSection(text string, at int, needNewline bool, section string) string {
	var prefix string
	if needNewline {
		prefix = "\n"
	}

	skipped := false
	for _, ln := range frontmatter.SplitLines(text[at:], at) {
		if strings.Trim(ln.Text, " \t") != "" || !strings.HasSuffix(text[:ln.Next], "\n") {
			break
		}
		at = ln.Next
		skipped = true
	}
	if !skipped && at > 0 {
		prefix += "\n"
	}
	return text[:at] + prefix + section + text[at:]
}
