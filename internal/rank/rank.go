package rank

import (
	"github.com/thluiz/vox/internal/domain/content"
	"sort"
)

type Options struct {
	Recent int
	Tags   int
	// WindowFactor widens the candidate band before exclusions are applied.
	WindowFactor int
}

type TagStat struct {
	Name  string
	Count int
}

type Result struct {
	Recent  []content.RecentPost
	TopTags []string
}

// Rank picks the most recent posts (posts must already be sorted newest first)
// and the most used tags that are not excluded.
//
// Only the first Tags*WindowFactor tags by frequency are considered, so a long
// run of excluded tags can leave fewer than Tags results.
func Rank(posts []content.PostSummary, freq *content.TagFrequency, excluded content.ExcludedTagSet, opt Options) Result {
	if opt.WindowFactor < 1 {
		opt.WindowFactor = 1
	}

	n := min(max(opt.Recent, 0), len(posts))
	recent := make([]content.RecentPost, 0, n)
	for _, p := range posts[:n] {
		recent = append(recent, p.Recent())
	}

	top := []string{}
	if opt.Tags > 0 {
		window := MostCommon(freq, opt.Tags*opt.WindowFactor)
		for _, s := range window {
			if excluded.Has(s.Name) {
				continue
			}
			top = append(top, s.Name)
			if len(top) == opt.Tags {
				break
			}
		}
	}

	return Result{Recent: recent, TopTags: top}
}

// MostCommon returns up to n tags by descending count; equal counts keep
// first-seen order.
func MostCommon(freq *content.TagFrequency, n int) []TagStat {
	tags := freq.Tags()
	stats := make([]TagStat, 0, len(tags))
	for _, t := range tags {
		stats = append(stats, TagStat{Name: t, Count: freq.Count(t)})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	if n < len(stats) {
		stats = stats[:max(n, 0)]
	}
	return stats
}
