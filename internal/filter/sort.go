package filter

import (
	"sort"
	"strings"

	"ergasia-marketplace/internal/domain"
)

type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortSalaryHigh SortKey = "salary_high"
	SortSalaryLow  SortKey = "salary_low"
)

const DefaultPerPage = 12

// ParseSortKey falls back to SortNewest for unknown values.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortOldest, SortSalaryHigh, SortSalaryLow:
		return k
	default:
		return SortNewest
	}
}

// Sort returns a stably sorted copy of jobs.
func Sort(jobs []domain.Job, key SortKey) []domain.Job {
	out := append([]domain.Job(nil), jobs...)
	var less func(a, b domain.Job) bool
	switch key {
	case SortOldest:
		less = func(a, b domain.Job) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortSalaryHigh:
		less = func(a, b domain.Job) bool { return a.Salary > b.Salary }
	case SortSalaryLow:
		less = func(a, b domain.Job) bool { return a.Salary < b.Salary }
	default:
		less = func(a, b domain.Job) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(out, func(i, k int) bool { return less(out[i], out[k]) })
	return out
}

// Paginate returns the requested page and the total item count. Page numbers
// start at 1; a page past the end is empty.
func Paginate[T any](items []T, page, perPage int) ([]T, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	total := len(items)
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	if page-1 >= pages {
		return []T{}, total
	}
	start := (page - 1) * perPage
	end := total
	if perPage < total-start {
		end = start + perPage
	}
	return append([]T(nil), items[start:end]...), total
}
