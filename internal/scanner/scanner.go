// Package scanner finds embeddable fragments inside free-form legacy content
// (migrated lesson/song HTML) and normalizes each one.
package scanner

import (
	"regexp"
	"sort"

	"musicdott/internal/embed"
)

// Fragment is one embeddable piece of a larger content string, paired with
// its normalized module.
type Fragment struct {
	Raw    string       `json:"raw"`
	Module embed.Module `json:"module"`
}

var (
	iframePattern = regexp.MustCompile(`(?is)<iframe[^>]*>(?:\s*</iframe>)?`)
	urlPattern    = regexp.MustCompile(`https?://[^\s"'<>]+`)
)

// Scan extracts iframe markup and bare URLs from content, in document order,
// and runs each through the embed normalizer. URLs inside an iframe's own
// markup are not reported twice.
func Scan(content string) []Fragment {
	type span struct {
		start, end int
	}

	iframes := iframePattern.FindAllStringIndex(content, -1)
	covered := make([]span, 0, len(iframes))
	spans := make([]span, 0, len(iframes))
	for _, loc := range iframes {
		covered = append(covered, span{loc[0], loc[1]})
		spans = append(spans, span{loc[0], loc[1]})
	}

	for _, loc := range urlPattern.FindAllStringIndex(content, -1) {
		inside := false
		for _, c := range covered {
			if loc[0] >= c.start && loc[1] <= c.end {
				inside = true
				break
			}
		}
		if !inside {
			spans = append(spans, span{loc[0], loc[1]})
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	fragments := make([]Fragment, 0, len(spans))
	for _, s := range spans {
		raw := content[s.start:s.end]
		fragments = append(fragments, Fragment{Raw: raw, Module: embed.Normalize(raw)})
	}
	return fragments
}
