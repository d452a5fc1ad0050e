package store

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/summarylive/pkg/domain"
)

func ts(s string) domain.Timestamp {
	return domain.ParseTimestamp(s)
}

func ids(items []domain.Summary) []domain.SummaryID {
	res := make([]domain.SummaryID, len(items))
	for i, it := range items {
		res[i] = it.ID
	}
	return res
}

func TestStore_ReplaceAllOrdering(t *testing.T) {
	records := []domain.Summary{
		{ID: "old", Title: "old", PublishedAt: ts("2024-04-01")},
		{ID: "nodate", Title: "no publication date"},
		{ID: "new-gen-late", Title: "x", PublishedAt: ts("2024-05-01"), GeneratedAt: ts("2024-05-01T12:00:00")},
		{ID: "new-gen-early", Title: "x", PublishedAt: ts("2024-05-01"), GeneratedAt: ts("2024-05-01T08:00:00")},
		{ID: "new-no-gen", Title: "x", PublishedAt: ts("2024-05-01")},
		{ID: "invalid-date", Title: "x", PublishedAt: ts("yesterday"), GeneratedAt: ts("2024-06-01")},
		{ID: "mid", Title: "mid", PublishedAt: ts("2024-04-15T10:00:00+02:00")},
	}

	s := New()
	res := s.ReplaceAll(records)
	assert.Equal(t, 7, res.Kept)
	assert.Empty(t, res.Dropped)

	want := []domain.SummaryID{"new-gen-late", "new-gen-early", "new-no-gen", "mid", "old", "invalid-date", "nodate"}
	assert.Equal(t, want, ids(s.All()))
	assert.Equal(t, 7, s.Len())
	assert.False(t, s.UpdatedAt().IsZero())
}

func TestStore_ReplaceAllAnyPermutation(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var records []domain.Summary
	for i := 0; i < 40; i++ {
		r := domain.Summary{ID: domain.SummaryID(string(rune('a'+i%26)) + string(rune('0'+i/26))), Title: "t"}
		switch i % 5 {
		case 0: // no timestamps at all
		case 1:
			r.PublishedAt = domain.NewTimestamp(base.AddDate(0, 0, i%3))
		case 2:
			r.PublishedAt = domain.NewTimestamp(base.AddDate(0, 0, i%3))
			r.GeneratedAt = domain.NewTimestamp(base.Add(time.Duration(i) * time.Minute))
		case 3:
			r.GeneratedAt = domain.NewTimestamp(base.Add(time.Duration(i) * time.Hour))
		case 4:
			r.PublishedAt = domain.NewTimestamp(base.AddDate(0, 0, -i))
		}
		records = append(records, r)
	}

	rnd := rand.New(rand.NewSource(42)) //nolint:gosec // deterministic shuffle for test
	s := New()
	for round := 0; round < 50; round++ {
		shuffled := append([]domain.Summary(nil), records...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		s.ReplaceAll(shuffled)
		all := s.All()
		require.Len(t, all, len(records))
		for i := 1; i < len(all); i++ {
			assert.False(t, fresher(all[i], all[i-1]), "round %d: %s must not precede %s", round, all[i].ID, all[i-1].ID)
		}
	}
}

func TestStore_StableTies(t *testing.T) {
	records := []domain.Summary{
		{ID: "3", Title: "c", PublishedAt: ts("2024-05-01")},
		{ID: "1", Title: "a", PublishedAt: ts("2024-05-01")},
		{ID: "2", Title: "b", PublishedAt: ts("2024-05-01")},
		{ID: "x", Title: "no dates"},
		{ID: "y", Title: "no dates either"},
	}
	s := New()
	s.ReplaceAll(records)
	assert.Equal(t, []domain.SummaryID{"3", "1", "2", "x", "y"}, ids(s.All()))
}

func TestStore_ReplaceAllValidation(t *testing.T) {
	s := New()
	res := s.ReplaceAll([]domain.Summary{
		{ID: "1", Title: "ok"},
		{ID: "", Title: "no id"},
		{ID: "2", Title: "   "},
		{ID: " ", Title: "blank id"},
		{ID: "3", Title: "ok too"},
	})

	assert.Equal(t, 2, res.Kept)
	require.Len(t, res.Dropped, 3)
	assert.Equal(t, 1, res.Dropped[0].Index)
	assert.Equal(t, "missing id", res.Dropped[0].Reason)
	assert.Equal(t, "missing title", res.Dropped[1].Reason)
	assert.Contains(t, res.Dropped[1].Error(), `invalid summary #2 (id "2"): missing title`)
	assert.ElementsMatch(t, []domain.SummaryID{"1", "3"}, ids(s.All()))
}

func TestStore_ReplaceAllDuplicateIDs(t *testing.T) {
	s := New()
	res := s.ReplaceAll([]domain.Summary{
		{ID: "1", Title: "first version", PublishedAt: ts("2024-05-01")},
		{ID: "2", Title: "other", PublishedAt: ts("2024-05-01")},
		{ID: "1", Title: "second version", PublishedAt: ts("2024-05-01")},
	})

	assert.Equal(t, 2, res.Kept)
	assert.Equal(t, 1, res.Replaced)
	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "second version", got.Title)
	assert.Equal(t, []domain.SummaryID{"1", "2"}, ids(s.All()))
}

func TestStore_ReplaceAllIsWholesale(t *testing.T) {
	s := New()
	s.ReplaceAll([]domain.Summary{{ID: "1", Title: "one"}, {ID: "2", Title: "two"}})
	s.ReplaceAll([]domain.Summary{{ID: "2", Title: "two updated"}, {ID: "3", Title: "three"}})

	_, ok := s.Get("1")
	assert.False(t, ok, "records missing from the latest fetch are gone")
	got, ok := s.Get("2")
	require.True(t, ok)
	assert.Equal(t, "two updated", got.Title)
	assert.Equal(t, 2, s.Len())

	s.ReplaceAll(nil)
	assert.Empty(t, s.All())
}

func TestStore_Get(t *testing.T) {
	s := New()
	_, ok := s.Get("1")
	assert.False(t, ok)

	rec := domain.Summary{ID: "42", Title: "answer", Body: "body", Categories: []string{"markets"}, PublishedAt: ts("2024-05-01")}
	s.ReplaceAll([]domain.Summary{{ID: "1", Title: "one"}, rec})

	got, ok := s.Get("42")
	require.True(t, ok)
	assert.Equal(t, rec, got)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStore_AllReturnsCopy(t *testing.T) {
	s := New()
	s.ReplaceAll([]domain.Summary{{ID: "1", Title: "one"}, {ID: "2", Title: "two"}})

	all := s.All()
	all[0].Title = "mutated"
	all[1] = domain.Summary{}

	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "one", got.Title)
	assert.Equal(t, []domain.SummaryID{"1", "2"}, ids(s.All()))
}

func TestStore_NoSharedSlices(t *testing.T) {
	s := New()
	batch := []domain.Summary{{ID: "1", Title: "one", Categories: []string{"Markets"}, Sources: []string{"https://example.com/a"}}}
	s.ReplaceAll(batch)

	// caller keeps ownership of the batch
	batch[0].Categories[0] = "changed by caller"

	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, []string{"Markets"}, all[0].Categories)
	all[0].Categories[0] = "mutated"
	all[0].Sources[0] = "mutated"

	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, []string{"Markets"}, got.Categories)
	assert.Equal(t, []string{"https://example.com/a"}, got.Sources)
	got.Categories[0] = "mutated again"

	again := s.All()
	assert.Equal(t, []string{"Markets"}, again[0].Categories)
	assert.Equal(t, []string{"https://example.com/a"}, again[0].Sources)
}
