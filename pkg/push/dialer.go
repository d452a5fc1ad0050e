package push

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sync"
	"time"
)

// DefaultHandshakeTimeout bounds the wait for response headers of the event stream
const DefaultHandshakeTimeout = 30 * time.Second

//go:generate moq -out mocks/dialer.go -pkg mocks -skip-ensure -fmt goimports . Dialer

// Stream is an open push channel delivering server events.
// LastEventID is the stream's last event id buffer, it may change without an event being delivered.
type Stream interface {
	Next() bool
	Event() ServerEvent
	LastEventID() string
	Err() error
	Close() error
}

// Dialer opens push channels. Dial returns after a successful handshake.
type Dialer interface {
	Dial(ctx context.Context, endpoint, lastEventID string) (Stream, error)
}

// HTTPDialer opens text/event-stream channels over HTTP
type HTTPDialer struct {
	client    *http.Client
	userAgent string
}

// NewHTTPDialer makes a dialer. The client must not have a Timeout set, streams are long-lived,
// use NewHTTPClient to bound the handshake instead. Nil client gets NewHTTPClient(DefaultHandshakeTimeout).
func NewHTTPDialer(client *http.Client, userAgent string) *HTTPDialer {
	if client == nil {
		client = NewHTTPClient(DefaultHandshakeTimeout)
	}
	return &HTTPDialer{client: client, userAgent: userAgent}
}

// NewHTTPClient makes a client for event streams. A server accepting the connection but not sending
// response headers within handshake fails the dial, the body itself has no deadline.
func NewHTTPClient(handshake time.Duration) *http.Client {
	if handshake <= 0 {
		handshake = DefaultHandshakeTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = handshake
	return &http.Client{Transport: transport}
}

// Dial connects to endpoint and checks the response is an event stream
func (d *HTTPDialer) Dial(ctx context.Context, endpoint, lastEventID string) (Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}
	if lastEventID != "" {
		req.Header.Set("Last-Event-ID", lastEventID)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "text/event-stream" {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected content type %q", resp.Header.Get("Content-Type"))
	}

	return &httpStream{Scanner: NewScanner(resp.Body), body: resp.Body}, nil
}

type httpStream struct {
	*Scanner
	body io.Closer
	once sync.Once
	err  error
}

func (s *httpStream) Close() error {
	s.once.Do(func() { s.err = s.body.Close() })
	return s.err
}
