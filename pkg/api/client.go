// Package api implements the data source collaborator, a REST client for the summaries backend.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/summarylive/pkg/domain"
)

// default endpoints of the summaries backend
const (
	DefaultListPath   = "/api/news/summaries"
	DefaultDetailPath = "/api/news/summary/{id}"
	DefaultCheckPath  = "/api/check-new-summaries"
)

const maxBodySize = 16 * 1024 * 1024

// ErrNotFound returned by GetSummary for unknown id
var ErrNotFound = errors.New("summary not found")

// errPermanent terminates retries, matched by statusError for 4xx responses
var errPermanent = errors.New("permanent failure")

// FetchError is returned by all data source operations
type FetchError struct {
	Op         string
	StatusCode int // zero if no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// statusError is a non-2xx response, 4xx ones are permanent
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("unexpected status code %d", e.code)
	}
	return fmt.Sprintf("unexpected status code %d: %s", e.code, e.body)
}

func (e *statusError) Is(target error) bool {
	return target == errPermanent && e.code >= 400 && e.code < 500
}

// decodeError is a malformed response body, never retried
type decodeError struct{ err error }

func (e *decodeError) Error() string        { return fmt.Sprintf("decode response: %v", e.err) }
func (e *decodeError) Unwrap() error        { return e.err }
func (e *decodeError) Is(target error) bool { return target == errPermanent }

// Params for the Client
type Params struct {
	BaseURL       string
	ListPath      string
	DetailPath    string // must contain {id} placeholder
	CheckPath     string
	Timeout       time.Duration
	Retries       int
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
	UserAgent     string
	HTTPClient    *http.Client // optional, made from Timeout if nil
}

// Client talks to the summaries backend
type Client struct {
	Params
	base *url.URL
}

// New makes a Client, applies defaults for empty params
func New(p Params) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(p.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", p.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", p.BaseURL)
	}

	if p.ListPath == "" {
		p.ListPath = DefaultListPath
	}
	if p.DetailPath == "" {
		p.DetailPath = DefaultDetailPath
	}
	if p.CheckPath == "" {
		p.CheckPath = DefaultCheckPath
	}
	if !strings.Contains(p.DetailPath, "{id}") {
		return nil, fmt.Errorf("detail path %q has no {id} placeholder", p.DetailPath)
	}
	if p.Timeout <= 0 {
		p.Timeout = 10 * time.Second
	}
	if p.Retries <= 0 {
		p.Retries = 1
	}
	if p.RetryDelay <= 0 {
		p.RetryDelay = 500 * time.Millisecond
	}
	if p.MaxRetryDelay < p.RetryDelay {
		p.MaxRetryDelay = max(5*time.Second, p.RetryDelay)
	}
	if p.HTTPClient == nil {
		p.HTTPClient = &http.Client{Timeout: p.Timeout}
	}
	return &Client{Params: p, base: base}, nil
}

// ListSummaries fetches the full list of summaries. No content response is an empty list.
// Elements which can't be decoded are skipped, the rest of the list is returned.
func (c *Client) ListSummaries(ctx context.Context) ([]domain.Summary, error) {
	const op = "list summaries"
	body, err := c.get(ctx, c.ListPath, nil)
	if err != nil {
		return nil, c.fetchError(op, err)
	}
	if len(body) == 0 {
		return []domain.Summary{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &FetchError{Op: op, Err: &decodeError{err: err}}
	}

	res := make([]domain.Summary, 0, len(raw))
	for i, r := range raw {
		var s domain.Summary
		if err := json.Unmarshal(r, &s); err != nil {
			lgr.Printf("[WARN] skip undecodable summary #%d: %v", i, err)
			continue
		}
		res = append(res, s)
	}
	lgr.Printf("[DEBUG] fetched %d summaries", len(res))
	return res, nil
}

// GetSummary fetches a single summary by id. Unknown id returns FetchError wrapping ErrNotFound.
func (c *Client) GetSummary(ctx context.Context, id domain.SummaryID) (domain.Summary, error) {
	const op = "get summary"
	if strings.TrimSpace(id.String()) == "" {
		return domain.Summary{}, &FetchError{Op: op, Err: errors.New("empty id")}
	}

	path := strings.ReplaceAll(c.DetailPath, "{id}", url.PathEscape(id.String()))
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return domain.Summary{}, c.fetchError(op, err)
	}
	if len(body) == 0 {
		return domain.Summary{}, &FetchError{Op: op, Err: ErrNotFound}
	}

	var s domain.Summary
	if err := json.Unmarshal(body, &s); err != nil {
		return domain.Summary{}, &FetchError{Op: op, Err: &decodeError{err: err}}
	}
	if s.ID == "" {
		return domain.Summary{}, &FetchError{Op: op, Err: errors.New("response has no id")}
	}
	return s, nil
}

// CheckNewSummaries asks the backend whether summaries newer than since exist
func (c *Client) CheckNewSummaries(ctx context.Context, since time.Time) (bool, error) {
	const op = "check new summaries"
	q := url.Values{}
	q.Set("lastCheckTime", since.UTC().Format(time.RFC3339))
	body, err := c.get(ctx, c.CheckPath, q)
	if err != nil {
		return false, c.fetchError(op, err)
	}
	if len(body) == 0 {
		return false, nil
	}

	var res bool
	if err := json.Unmarshal(body, &res); err != nil {
		return false, &FetchError{Op: op, Err: &decodeError{err: err}}
	}
	return res, nil
}

// get makes GET request with retries, returns body (nil for 204)
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.base.String() + "/" + strings.TrimPrefix(path, "/")
	if query != nil {
		endpoint += "?" + query.Encode()
	}

	var body []byte
	retrier := repeater.NewBackoff(c.Retries, c.RetryDelay, repeater.WithMaxDelay(c.MaxRetryDelay))
	err := retrier.Do(ctx, func() error {
		body = nil
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
		if err != nil {
			return &decodeError{err: err}
		}
		req.Header.Set("Accept", "application/json")
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lgr.Printf("[DEBUG] request %s failed: %v", endpoint, err)
			return err // repeater will retry this
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNoContent:
			return nil
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
			if err != nil {
				return fmt.Errorf("read body: %w", err)
			}
			body = data
			return nil
		default:
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			lgr.Printf("[DEBUG] request %s, status %d", endpoint, resp.StatusCode)
			return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(msg))}
		}
	}, errPermanent)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// fetchError converts a transport level error to FetchError
func (c *Client) fetchError(op string, err error) *FetchError {
	var se *statusError
	if errors.As(err, &se) {
		if se.code == http.StatusNotFound {
			return &FetchError{Op: op, StatusCode: se.code, Err: ErrNotFound}
		}
		return &FetchError{Op: op, StatusCode: se.code, Err: se}
	}
	return &FetchError{Op: op, Err: err}
}
