package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/summarylive/pkg/domain"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(Params{BaseURL: url, Retries: 3, RetryDelay: time.Millisecond, MaxRetryDelay: 5 * time.Millisecond,
		UserAgent: "summarylive-test"})
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	c, err := New(Params{BaseURL: "http://localhost:8080/"})
	require.NoError(t, err)
	assert.Equal(t, DefaultListPath, c.ListPath)
	assert.Equal(t, DefaultDetailPath, c.DetailPath)
	assert.Equal(t, DefaultCheckPath, c.CheckPath)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, 10*time.Second, c.HTTPClient.Timeout)
	assert.Equal(t, 1, c.Retries)

	_, err = New(Params{BaseURL: "ftp://localhost"})
	require.Error(t, err)

	_, err = New(Params{BaseURL: "http://localhost", DetailPath: "/summary"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{id}")
}

func TestClient_ListSummaries(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/news/summaries", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, "summarylive-test", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[
				{"id": 1, "storyTitle": "first", "summaryText": "body", "publicationDate": "2024-05-01",
				 "generatedAt": "2024-05-01T10:11:12", "assignedCategories": ["MARKETS"], "sourceUrls": ["https://example.com/a"]},
				{"id": {"bad": true}, "storyTitle": "broken"},
				{"id": "s-2", "storyTitle": "second", "publicationDate": null, "assignedCategories": null}
			]`)
		}))
		defer srv.Close()

		res, err := newTestClient(t, srv.URL).ListSummaries(context.Background())
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, domain.SummaryID("1"), res[0].ID)
		assert.Equal(t, "first", res[0].Title)
		assert.Equal(t, []string{"MARKETS"}, res[0].Categories)
		assert.True(t, res[0].PublishedAt.Valid)
		assert.Equal(t, domain.SummaryID("s-2"), res[1].ID)
		assert.False(t, res[1].PublishedAt.Valid)
	})

	t.Run("no content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		res, err := newTestClient(t, srv.URL).ListSummaries(context.Background())
		require.NoError(t, err)
		assert.Empty(t, res)
		assert.NotNil(t, res)
	})

	t.Run("retry transient failures", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			fmt.Fprint(w, `[{"id": 1, "storyTitle": "ok"}]`)
		}))
		defer srv.Close()

		res, err := newTestClient(t, srv.URL).ListSummaries(context.Background())
		require.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("server error after retries", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv.URL).ListSummaries(context.Background())
		require.Error(t, err)
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "list summaries", fe.Op)
		assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
		assert.Contains(t, err.Error(), "boom")
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("client error is not retried", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv.URL).ListSummaries(context.Background())
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, http.StatusForbidden, fe.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("malformed body", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			fmt.Fprint(w, `{"not": "a list"`)
		}))
		defer srv.Close()

		_, err := newTestClient(t, srv.URL).ListSummaries(context.Background())
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Contains(t, err.Error(), "decode response")
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := newTestClient(t, "http://127.0.0.1:1").ListSummaries(context.Background())
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Zero(t, fe.StatusCode)
	})

	t.Run("canceled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newTestClient(t, srv.URL).ListSummaries(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	})
}

func TestClient_GetSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/news/summary/42":
			fmt.Fprint(w, `{"id": 42, "storyTitle": "answer", "summaryText": "line 1\n\nline 2"}`)
		case "/api/news/summary/noid":
			fmt.Fprint(w, `{"storyTitle": "no id"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	s, err := c.GetSummary(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, domain.SummaryID("42"), s.ID)
	assert.Equal(t, []string{"line 1", "line 2"}, s.Paragraphs())

	_, err = c.GetSummary(context.Background(), "404")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.GetSummary(context.Background(), "noid")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, err.Error(), "response has no id")

	_, err = c.GetSummary(context.Background(), " ")
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, err.Error(), "empty id")
}

func TestClient_CheckNewSummaries(t *testing.T) {
	var gotSince string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/check-new-summaries", r.URL.Path)
		gotSince = r.URL.Query().Get("lastCheckTime")
		if gotSince == "2024-05-01T10:00:00Z" {
			fmt.Fprint(w, `true`)
			return
		}
		fmt.Fprint(w, `false`)
	}))
	defer srv.Close()
	c := newTestClient(t, srv.URL)

	since := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 2*3600))
	res, err := c.CheckNewSummaries(context.Background(), since)
	require.NoError(t, err)
	assert.True(t, res)
	assert.Equal(t, "2024-05-01T10:00:00Z", gotSince)

	res, err = c.CheckNewSummaries(context.Background(), since.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, res)
}
