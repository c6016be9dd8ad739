// Package frontmatter locates the "---" delimited header block at the top of a
// markdown document and exposes its lines with byte offsets, so callers can
// both read fields and splice replacements without re-serializing the block.
package frontmatter

import (
	"regexp"
	"strings"
)

const Marker = "---"

// Block describes where a header block sits inside a document.
//
//	text[Start:InnerStart]  opening marker line
//	text[InnerStart:Close]  header lines
//	text[Close:End]         closing marker line, including its newline if any
type Block struct {
	Start      int
	InnerStart int
	Close      int
	End        int
}

// Line is one line of a document. Text excludes the line terminator;
// Next is the offset of the following line.
type Line struct {
	Text  string
	Start int
	Next  int
}

// Locate finds the header block. The document must open with a marker line and
// a later line must consist of the marker alone.
func Locate(text string) (Block, bool) {
	if !strings.HasPrefix(text, Marker) {
		return Block{}, false
	}
	nl := strings.IndexByte(text, '\n')
	if nl < 0 || !isMarker(text[:nl]) {
		return Block{}, false
	}
	inner := nl + 1
	for _, ln := range SplitLines(text[inner:], inner) {
		if isMarker(ln.Text) {
			return Block{Start: 0, InnerStart: inner, Close: ln.Start, End: ln.Next}, true
		}
	}
	return Block{}, false
}

// Lines returns the header lines between the markers.
func (b Block) Lines(text string) []Line {
	return SplitLines(text[b.InnerStart:b.Close], b.InnerStart)
}

// Body returns everything after the closing marker line.
func (b Block) Body(text string) string {
	return text[b.End:]
}

func isMarker(line string) bool {
	return strings.TrimRight(line, " \t\r") == Marker
}

// SplitLines splits s into lines; offsets are shifted by base so they index the
// enclosing document. A trailing newline does not produce an empty last line.
func SplitLines(s string, base int) []Line {
	var out []Line
	pos := 0
	for pos < len(s) {
		end := strings.IndexByte(s[pos:], '\n')
		if end < 0 {
			out = append(out, Line{
				Text:  strings.TrimSuffix(s[pos:], "\r"),
				Start: base + pos,
				Next:  base + len(s),
			})
			break
		}
		out = append(out, Line{
			Text:  strings.TrimSuffix(s[pos:pos+end], "\r"),
			Start: base + pos,
			Next:  base + pos + end + 1,
		})
		pos += end + 1
	}
	return out
}

// Scalar returns the value of the first "key: value" line. Surrounding quotes
// are removed; an empty value reports false.
func Scalar(lines []Line, key string) (string, bool) {
	prefix := key + ":"
	for _, ln := range lines {
		if !strings.HasPrefix(ln.Text, prefix) {
			continue
		}
		v := Unquote(ln.Text[len(prefix):])
		return v, v != ""
	}
	return "", false
}

// ListKey reports the index of the first line that opens key as a block list,
// i.e. a line holding exactly "key:".
func ListKey(lines []Line, key string) (int, bool) {
	for i, ln := range lines {
		if strings.TrimRight(ln.Text, " \t") == key+":" {
			return i, true
		}
	}
	return -1, false
}

// ListItems returns the items following lines[keyIdx] and the index one past the
// last item line.
func ListItems(lines []Line, keyIdx int) ([]string, int) {
	items := []string{}
	i := keyIdx + 1
	for ; i < len(lines); i++ {
		v, ok := Item(lines[i].Text)
		if !ok {
			break
		}
		if v != "" {
			items = append(items, v)
		}
	}
	return items, i
}

// List combines ListKey and ListItems; a missing key yields an empty slice.
func List(lines []Line, key string) []string {
	idx, ok := ListKey(lines, key)
	if !ok {
		return []string{}
	}
	items, _ := ListItems(lines, idx)
	return items
}

var itemLine = regexp.MustCompile(`^[ \t]+-(?:[ \t]+(.*))?$`)

// Item matches an indented "- value" line.
func Item(line string) (string, bool) {
	m := itemLine.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return Unquote(m[1]), true
}

// Unquote trims spaces, then drops a leading and a trailing double quote
// independently, so an unbalanced `"Foo` still reads as Foo. Single quotes
// are only removed as a matched pair.
func Unquote(v string) string {
	v = strings.TrimSpace(v)
	if n := len(v); n >= 2 && v[0] == '\'' && v[n-1] == '\'' {
		return strings.TrimSpace(v[1 : n-1])
	}
	v = strings.TrimPrefix(v, `"`)
	v = strings.TrimSuffix(v, `"`)
	return strings.TrimSpace(v)
}
