package server

import (
	"net/http"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/summarylive/pkg/domain"
	"github.com/umputun/summarylive/pkg/live"
	"github.com/umputun/summarylive/server/mocks"
)

func TestServer_rssHandler(t *testing.T) {
	items := testSummaries()

	t.Run("current view", func(t *testing.T) {
		session := &mocks.SessionMock{
			ViewFunc: func() live.View {
				return live.View{Filter: domain.Filter{Category: "Tech"}, Items: items[:1], Total: 2}
			},
		}
		srv := New(testConfig(":8080"), session, "test", false)

		w := serve(t, srv, "GET", "/rss", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), `<title>Summaries - Tech</title>`)
		assert.Contains(t, w.Body.String(), `<title>Chip exports grow</title>`)
		assert.NotContains(t, w.Body.String(), `Rates stay put`)
		assert.Empty(t, session.QueryCalls())
	})

	t.Run("category from path", func(t *testing.T) {
		session := &mocks.SessionMock{
			QueryFunc: func(f domain.Filter) []domain.Summary { return items[1:] },
		}
		srv := New(testConfig(":8080"), session, "test", false)

		w := serve(t, srv, "GET", "/rss/Markets", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, session.QueryCalls(), 1)
		assert.Equal(t, domain.Filter{Category: "Markets"}, session.QueryCalls()[0].F)

		parsed, err := gofeed.NewParser().ParseString(w.Body.String())
		require.NoError(t, err)
		assert.Equal(t, "Summaries - Markets", parsed.Title)
		require.Len(t, parsed.Items, 1)
		assert.Equal(t, "Rates stay put", parsed.Items[0].Title)
		assert.Equal(t, "https://example.com/api/v1/summary/1", parsed.Items[0].Link)
		assert.Equal(t, []string{"Markets", "Economy"}, parsed.Items[0].Categories)
	})

	t.Run("category from query", func(t *testing.T) {
		session := &mocks.SessionMock{
			QueryFunc: func(f domain.Filter) []domain.Summary { return nil },
		}
		srv := New(testConfig(":8080"), session, "test", false)

		w := serve(t, srv, "GET", "/rss?category=Tech%20News", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, session.QueryCalls(), 1)
		assert.Equal(t, "Tech News", session.QueryCalls()[0].F.Category)
		assert.Contains(t, w.Body.String(), `href="https://example.com/rss/Tech%20News"`)
		assert.NotContains(t, w.Body.String(), `<item>`)
	})
}

func TestServer_opmlHandler(t *testing.T) {
	session := &mocks.SessionMock{
		CategoriesFunc: func() []string { return []string{"Markets", "Tech"} },
	}
	srv := New(testConfig(":8080"), session, "test", false)

	w := serve(t, srv, "GET", "/opml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/x-opml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `xmlUrl="https://example.com/rss"`)
	assert.Contains(t, w.Body.String(), `xmlUrl="https://example.com/rss/Markets"`)
	assert.Contains(t, w.Body.String(), `xmlUrl="https://example.com/rss/Tech"`)
	assert.Len(t, session.CategoriesCalls(), 1)
}
