package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/summarylive/pkg/domain"
	"github.com/umputun/summarylive/pkg/live"
	"github.com/umputun/summarylive/server/mocks"
)

func testConfig(listen string) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return listen, 30 * time.Second
		},
		GetFeedConfigFunc: func() (string, string) {
			return "https://example.com", "Summaries"
		},
	}
}

func testSummaries() []domain.Summary {
	return []domain.Summary{
		{
			ID:          "2",
			Title:       "Chip exports grow",
			Body:        "<p>Exports of chips grew again.</p>",
			Categories:  []string{"Tech"},
			Sources:     []string{"https://example.com/chips"},
			PublishedAt: domain.NewTimestamp(time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)),
		},
		{
			ID:          "1",
			Title:       "Rates stay put",
			Body:        "Central bank keeps rates.",
			Categories:  []string{"Markets", "Economy"},
			PublishedAt: domain.NewTimestamp(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)),
		},
	}
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(":8080"), &mocks.SessionMock{}, "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
	assert.NotNil(t, srv.router)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	session := &mocks.SessionMock{
		StatusFunc: func() live.Status { return live.Status{Active: true, State: "open"} },
	}
	srv := New(testConfig(fmt.Sprintf("127.0.0.1:%d", port)), session, "1.0.0", true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// wait for server to start
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		return err == nil && resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/api/v1/status", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "summarylive", resp.Header.Get("App-Name"))

	// shutdown server
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunListenError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := New(testConfig(listener.Addr().String()), &mocks.SessionMock{}, "1.0.0", false)
	err = srv.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server error")
}

func TestServer_statusHandler(t *testing.T) {
	lastRefresh := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	session := &mocks.SessionMock{
		StatusFunc: func() live.Status {
			return live.Status{
				Active:      true,
				State:       "reconnecting",
				Attempt:     2,
				Summaries:   3,
				Visible:     1,
				LastRefresh: lastRefresh,
				Filter:      domain.Filter{Category: "Tech"},
			}
		},
	}
	srv := New(testConfig(":8080"), session, "1.2.3", false)

	req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "1.2.3", status["version"])
	assert.NotEmpty(t, status["time"])
	assert.Equal(t, true, status["active"]) //nolint:testifylint // value is any
	assert.Equal(t, "reconnecting", status["state"])
	assert.InDelta(t, 2, status["attempt"], 0.001)
	assert.InDelta(t, 3, status["summaries"], 0.001)
	assert.Equal(t, "2024-05-02T10:00:00Z", status["last_refresh"])
	assert.Equal(t, map[string]any{"date": "", "category": "Tech"}, status["filter"])
}

func TestRenderJSON(t *testing.T) {
	data := map[string]string{
		"message": "test",
		"status":  "ok",
	}

	req := httptest.NewRequest("GET", "/test", http.NoBody)
	w := httptest.NewRecorder()

	RenderJSON(w, req, http.StatusOK, data)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, data, result)

	w = httptest.NewRecorder()
	RenderJSON(w, req, http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		code         int
		expectedBody string
	}{
		{"with error", errors.New("something went wrong"), http.StatusInternalServerError, "something went wrong"},
		{"nil error", nil, http.StatusBadRequest, "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", http.NoBody)
			w := httptest.NewRecorder()

			RenderError(w, req, tt.err, tt.code)

			assert.Equal(t, tt.code, w.Code)
			var result map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
			assert.Equal(t, tt.expectedBody, result["error"])
		})
	}
}
