// Package query derives the filtered, sorted browse view of the catalog.
package query

import (
	"sort"
	"strings"

	"github.com/hammamikhairi/deliciously/internal/domain"
)

// SortKey selects the browse ordering.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortPopularity SortKey = "popularity"
)

// ParseSortKey matches name case-insensitively.
func ParseSortKey(name string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(SortNewest):
		return SortNewest, true
	case string(SortPopularity):
		return SortPopularity, true
	}
	return "", false
}

// Options are the browse controls.
type Options struct {
	Text     string
	Category domain.Category // "" or CategoryAll keeps every category
	Sort     SortKey
}

// Defaults returns the initial browse controls.
func Defaults() Options {
	return Options{Category: domain.CategoryAll, Sort: SortNewest}
}

// Apply filters and sorts recipes. The input slice is never modified; the
// result is a new slice. Sorting is stable, so ties keep their original
// relative order.
func Apply(recipes []domain.Recipe, opts Options) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(recipes))

	q := strings.ToLower(strings.TrimSpace(opts.Text))
	for _, r := range recipes {
		if q != "" && !strings.Contains(strings.ToLower(r.Title), q) {
			continue
		}
		if opts.Category != "" && opts.Category != domain.CategoryAll && r.Category != opts.Category {
			continue
		}
		out = append(out, r)
	}

	switch opts.Sort {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	case SortPopularity:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	}
	return out
}
