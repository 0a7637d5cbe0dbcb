// Package filter narrows in-memory job and freelancer lists by search text,
// category membership and salary range.
//
// A record matches when all three dimensions hold. Within the category and
// range dimensions any selected value is enough. An empty dimension matches
// everything.
package filter

import (
	"strings"

	"ergasia-marketplace/internal/domain"
)

type Criteria struct {
	SearchText         string
	SelectedCategories []string
	SelectedRanges     []RangeTag
}

// IsZero reports whether the criteria select everything.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.SearchText) == "" && len(c.SelectedCategories) == 0 && len(c.SelectedRanges) == 0
}

// SearchMode chooses which job attributes the search text is matched against.
type SearchMode string

const (
	SearchName              SearchMode = "name"
	SearchNameOrTags        SearchMode = "name_or_tags"
	SearchNameOrDescription SearchMode = "name_or_description"
)

// ParseSearchMode falls back to SearchName for unknown values.
func ParseSearchMode(s string) SearchMode {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case SearchNameOrTags:
		return SearchNameOrTags
	case SearchNameOrDescription:
		return SearchNameOrDescription
	default:
		return SearchName
	}
}

type options struct {
	mode SearchMode
}

type Option func(*options)

func WithSearchMode(mode SearchMode) Option {
	return func(o *options) { o.mode = mode }
}

// Jobs returns the jobs matching c in their original order. The input slice
// is not modified and the result never aliases it.
func Jobs(jobs []domain.Job, c Criteria, opts ...Option) []domain.Job {
	o := options{mode: SearchName}
	for _, opt := range opts {
		opt(&o)
	}

	needle := strings.ToLower(c.SearchText)
	categories := toSet(c.SelectedCategories)
	intervals := resolve(c.SelectedRanges)

	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if !matchesSearch(j, needle, o.mode) {
			continue
		}
		if len(c.SelectedCategories) > 0 && !anyIn(j.TagNames(), categories) {
			continue
		}
		if len(c.SelectedRanges) > 0 && !inAny(j.Salary, intervals) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// ExcludeFinished drops jobs whose status is Finished.
func ExcludeFinished(jobs []domain.Job) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Status != domain.JobStatusFinished {
			out = append(out, j)
		}
	}
	return out
}

// Freelancers matches the search text against the username or any preferred
// category name, and the category filter against preferred categories. The
// range dimension does not apply to users and is ignored.
func Freelancers(users []domain.User, c Criteria) []domain.User {
	needle := strings.ToLower(c.SearchText)
	categories := toSet(c.SelectedCategories)

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if !matchesUser(u, needle) {
			continue
		}
		if len(c.SelectedCategories) > 0 && !anyIn(u.CategoryNames(), categories) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func matchesUser(u domain.User, needle string) bool {
	if needle == "" || containsFold(u.Username, needle) {
		return true
	}
	for _, name := range u.CategoryNames() {
		if containsFold(name, needle) {
			return true
		}
	}
	return false
}

func matchesSearch(j domain.Job, needle string, mode SearchMode) bool {
	if needle == "" || containsFold(j.Name, needle) {
		return true
	}
	switch mode {
	case SearchNameOrTags:
		for _, t := range j.Tags {
			if containsFold(t.Name, needle) {
				return true
			}
		}
	case SearchNameOrDescription:
		for _, line := range j.Description {
			if containsFold(line, needle) {
				return true
			}
		}
	}
	return false
}

// containsFold expects needle to be lower case already.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func anyIn(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

func resolve(tags []RangeTag) []Interval {
	out := make([]Interval, 0, len(tags))
	for _, t := range tags {
		if iv, ok := Lookup(t); ok {
			out = append(out, iv)
		}
	}
	return out
}

func inAny(v float64, intervals []Interval) bool {
	for _, iv := range intervals {
		if iv.Contains(v) {
			return true
		}
	}
	return false
}
