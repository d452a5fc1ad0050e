// Package store keeps the canonical in-memory cache of summaries.
// The cache is rebuilt wholesale on every successful fetch and is always kept in freshness-descending order:
// newest publication time first, ties broken by newest generation time, then by original input order.
package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/summarylive/pkg/domain"
)

// ValidationError describes a record dropped by ReplaceAll
type ValidationError struct {
	Index  int
	ID     domain.SummaryID
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid summary #%d (id %q): %s", e.Index, e.ID, e.Reason)
}

// Result of ReplaceAll
type Result struct {
	Kept     int
	Dropped  []*ValidationError
	Replaced int // records superseded by a later record with the same id in the same batch
}

// Store is the canonical ordered sequence of summaries, keyed by id
type Store struct {
	mu        sync.RWMutex
	items     []domain.Summary
	byID      map[domain.SummaryID]int
	updatedAt time.Time
}

// New makes an empty store
func New() *Store {
	return &Store{byID: map[domain.SummaryID]int{}}
}

// ReplaceAll validates records, drops invalid ones, sorts the rest and makes them the new canonical sequence.
// A record repeated within the batch keeps its last occurrence.
func (s *Store) ReplaceAll(records []domain.Summary) Result {
	res := Result{}

	valid := make([]domain.Summary, 0, len(records))
	position := make(map[domain.SummaryID]int, len(records))
	for i, r := range records {
		if err := validate(i, r); err != nil {
			lgr.Printf("[WARN] %v, dropped", err)
			res.Dropped = append(res.Dropped, err)
			continue
		}
		r = r.Clone()
		if pos, ok := position[r.ID]; ok {
			lgr.Printf("[DEBUG] summary %s repeated in batch, keeping the later one", r.ID)
			valid[pos] = r
			res.Replaced++
			continue
		}
		position[r.ID] = len(valid)
		valid = append(valid, r)
	}

	SortByFreshness(valid)

	byID := make(map[domain.SummaryID]int, len(valid))
	for i, r := range valid {
		byID[r.ID] = i
	}

	s.mu.Lock()
	s.items = valid
	s.byID = byID
	s.updatedAt = time.Now()
	s.mu.Unlock()

	res.Kept = len(valid)
	return res
}

// Get returns summary by id, false if not in the store
func (s *Store) Get(id domain.SummaryID) (domain.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return domain.Summary{}, false
	}
	return s.items[idx].Clone(), true
}

// All returns the canonical sequence. The result is a deep copy, safe to modify.
func (s *Store) All() []domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Summary, len(s.items))
	for i, r := range s.items {
		res[i] = r.Clone()
	}
	return res
}

// Len returns number of summaries in the store
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// UpdatedAt returns time of the last ReplaceAll, zero if never populated
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// SortByFreshness sorts summaries in place, newest first. The sort is stable.
func SortByFreshness(items []domain.Summary) {
	sort.SliceStable(items, func(i, j int) bool {
		return fresher(items[i], items[j])
	})
}

// fresher reports whether a goes strictly before b
func fresher(a, b domain.Summary) bool {
	if !a.PublishedAt.Equal(b.PublishedAt) {
		return b.PublishedAt.Before(a.PublishedAt)
	}
	return b.GeneratedAt.Before(a.GeneratedAt)
}

func validate(idx int, r domain.Summary) *ValidationError {
	switch {
	case strings.TrimSpace(string(r.ID)) == "":
		return &ValidationError{Index: idx, ID: r.ID, Reason: "missing id"}
	case strings.TrimSpace(r.Title) == "":
		return &ValidationError{Index: idx, ID: r.ID, Reason: "missing title"}
	}
	return nil
}
