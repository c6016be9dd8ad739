package content

import (
	"regexp"
	"strings"
)

// HeaderRecord is what the header block of one article yields. Empty strings
// mean the key was absent; Tags and Participants are never nil.
type HeaderRecord struct {
	Published    string
	Title        string
	Tags         []string
	Participants []string
	Show         string
}

func NewHeaderRecord() HeaderRecord {
	return HeaderRecord{
		Tags:         []string{},
		Participants: []string{},
	}
}

// IsDraft reports whether the article has no publication date.
func (h HeaderRecord) IsDraft() bool {
	return h.Published == ""
}

type PostSummary struct {
	Link      string
	Title     string
	Published string
}

// RecentPost is a PostSummary prepared for display in the index document.
type RecentPost struct {
	Link      string
	Title     string
	Published string
}

var episodePrefix = regexp.MustCompile(`^#\d+\s+`)

// DisplayTitle drops a leading episode marker such as "#82 ".
func DisplayTitle(title string) string {
	return strings.TrimSpace(episodePrefix.ReplaceAllString(title, ""))
}

func (p PostSummary) Recent() RecentPost {
	return RecentPost{
		Link:      p.Link,
		Title:     DisplayTitle(p.Title),
		Published: p.Published,
	}
}

// TagFrequency counts tags and remembers the order in which they were first seen.
type TagFrequency struct {
	order  []string
	counts map[string]int
}

func NewTagFrequency() *TagFrequency {
	return &TagFrequency{counts: make(map[string]int)}
}

func (f *TagFrequency) Add(tag string) {
	if _, ok := f.counts[tag]; !ok {
		f.order = append(f.order, tag)
	}
	f.counts[tag]++
}

func (f *TagFrequency) Count(tag string) int {
	if f == nil {
		return 0
	}
	return f.counts[tag]
}

func (f *TagFrequency) Len() int {
	if f == nil {
		return 0
	}
	return len(f.order)
}

// Tags returns every tag in first-seen order.
func (f *TagFrequency) Tags() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.order...)
}

type ExcludedTagSet map[string]struct{}

func (s ExcludedTagSet) Add(slug string) {
	if slug == "" {
		return
	}
	s[slug] = struct{}{}
}

func (s ExcludedTagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}
