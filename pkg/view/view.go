// Package view derives the displayed subset of summaries from the canonical sequence.
// Everything here is pure: inputs are never modified and the relative order of the source is preserved.
package view

import (
	"sort"
	"strings"

	"github.com/umputun/summarylive/pkg/domain"
)

// Apply returns summaries matching the filter, in source order. The result is a new slice,
// records keep sharing their Categories and Sources with source, callers must not mutate them.
// Date constraint matches the calendar date of the publication time, records without a valid
// publication time never match it. Category constraint is case-insensitive. Both constraints must hold.
func Apply(source []domain.Summary, f domain.Filter) []domain.Summary {
	res := make([]domain.Summary, 0, len(source))
	for _, s := range source {
		if Match(s, f) {
			res = append(res, s)
		}
	}
	return res
}

// Match checks a single summary against the filter
func Match(s domain.Summary, f domain.Filter) bool {
	if !f.Date.IsZero() {
		d, ok := s.PublishedAt.Date()
		if !ok || d != f.Date {
			return false
		}
	}
	if c := strings.TrimSpace(f.Category); c != "" && !s.HasCategory(c) {
		return false
	}
	return true
}

// Categories returns distinct categories of the given summaries, sorted case-insensitively.
// Categories differing only by case are collapsed to the first spelling seen.
func Categories(items []domain.Summary) []string {
	seen := map[string]bool{}
	res := []string{}
	for _, s := range items {
		for _, c := range s.Categories {
			c = strings.TrimSpace(c)
			key := strings.ToUpper(c)
			if c == "" || seen[key] {
				continue
			}
			seen[key] = true
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return strings.ToUpper(res[i]) < strings.ToUpper(res[j])
	})
	return res
}

// Counts returns number of summaries per category, keyed by upper-cased category name
func Counts(items []domain.Summary) map[string]int {
	res := map[string]int{}
	for _, s := range items {
		seen := map[string]bool{}
		for _, c := range s.Categories {
			key := strings.ToUpper(strings.TrimSpace(c))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			res[key]++
		}
	}
	return res
}
