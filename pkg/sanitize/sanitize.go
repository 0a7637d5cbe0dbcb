// Package sanitize strips markup from user supplied text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML, unescapes entities and trims surrounding space.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}

// Lines sanitises each entry and drops the ones left blank.
func Lines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if cleaned := Text(l); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
