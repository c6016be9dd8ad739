// Package reflow separates timestamped transcript lines into paragraphs so
// that markdown renders each segment on its own.
package reflow

import (
	"regexp"
	"strings"
)

const DefaultHeading = "Transcrição"

var timestampLine = regexp.MustCompile(`^\[[^\]\n]*\]`)

// Fix inserts a blank line before every timestamped line that directly
// follows a non-blank line inside the "## <heading>" section. The section ends
// at the next "## " heading or at the end of the document. It reports whether
// anything changed; a document without the section is returned as is.
func Fix(text, heading string) (string, bool) {
	head := regexp.MustCompile(`(?im)^##[ \t]+` + regexp.QuoteMeta(heading) + `[ \t]*\r?$`)
	loc := head.FindStringIndex(text)
	if loc == nil {
		return text, false
	}
	start := loc[1]
	if start < len(text) && text[start] == '\n' {
		start++
	}
	end := len(text)
	if i := strings.Index(text[start:], "\n## "); i >= 0 {
		end = start + i + 1
	} else if strings.HasPrefix(text[start:], "## ") {
		end = start
	}

	lines := strings.SplitAfter(text[start:end], "\n")
	var b strings.Builder
	changed := false
	prevBlank := true // the heading line counts as a boundary
	for _, ln := range lines {
		if ln == "" {
			continue
		}
		body := strings.TrimRight(ln, "\r\n")
		if timestampLine.MatchString(body) && !prevBlank {
			b.WriteString(newline(ln))
			changed = true
		}
		b.WriteString(ln)
		prevBlank = strings.TrimSpace(body) == ""
	}
	if !changed {
		return text, false
	}
	return text[:start] + b.String() + text[end:], true
}

func newline(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
