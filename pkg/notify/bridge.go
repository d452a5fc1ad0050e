// Package notify turns "new data available" push events into serialized refreshes and transient notices.
// At most one refresh runs at a time and at most one more is queued behind it, any further triggers
// coalesce into the queued one. Every completed refresh surfaces exactly one notice.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/summarylive/pkg/push"
)

//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// EventNewSummaries is the push event kind signaling that new data exists
const EventNewSummaries = "new_summaries_available"

// default notice texts
const (
	DefaultTitle        = "New summaries"
	DefaultMessage      = "Page refreshed, new summaries were added."
	DefaultErrorTitle   = "Refresh failed"
	DefaultErrorMessage = "Could not load new summaries, showing the last known data."
	DefaultDisplay      = 5 * time.Second
)

// Level of a notice
type Level string

// notice levels
const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a transient message for the UI layer. Display is a hint for auto-dismissal.
type Notice struct {
	ID      string        `json:"id"`
	Level   Level         `json:"level"`
	Title   string        `json:"title"`
	Message string        `json:"message"`
	Display time.Duration `json:"display"`
	At      time.Time     `json:"at"`
}

// Notifier receives notices
type Notifier interface {
	Notify(n Notice)
}

// RefreshFunc runs one refresh cycle: bulk fetch, replace store, re-derive view
type RefreshFunc func(ctx context.Context) error

// Params of the Bridge
type Params struct {
	Refresh   RefreshFunc
	Notifier  Notifier
	EventKind string // defaults to EventNewSummaries
	Title     string
	Message   string
	Display   time.Duration
}

// Stats are bridge counters
type Stats struct {
	Triggered int `json:"triggered"`
	Coalesced int `json:"coalesced"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// Bridge serializes refreshes triggered by push events
type Bridge struct {
	Params
	ctx context.Context

	mu      sync.Mutex
	running bool
	pending bool
	stopped bool
	stats   Stats
	wg      sync.WaitGroup
}

// New makes a Bridge. Refreshes run with ctx, canceling it aborts an in-flight refresh.
func New(ctx context.Context, p Params) *Bridge {
	if p.EventKind == "" {
		p.EventKind = EventNewSummaries
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.Message == "" {
		p.Message = DefaultMessage
	}
	if p.Display <= 0 {
		p.Display = DefaultDisplay
	}
	return &Bridge{Params: p, ctx: ctx}
}

// HandleEvent triggers a refresh for events of the bridge's kind, other events are ignored.
// The payload is never used, it is a trigger only.
func (b *Bridge) HandleEvent(ev push.ServerEvent) bool {
	if ev.Kind != b.EventKind {
		return false
	}
	lgr.Printf("[DEBUG] push event %s (id %q), data %q", ev.Kind, ev.ID, ev.Data)
	return b.Trigger()
}

// Trigger requests a refresh. Returns false if the bridge is stopped.
// Does not block, the refresh runs in its own goroutine.
func (b *Bridge) Trigger() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return false
	}
	b.stats.Triggered++
	if b.running {
		if b.pending {
			b.stats.Coalesced++
		}
		b.pending = true
		return true
	}
	b.running = true
	b.wg.Add(1)
	go b.loop()
	return true
}

// Stop makes the bridge inactive, a queued refresh is dropped and the result of an in-flight one is discarded.
// Safe to call multiple times.
func (b *Bridge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	b.pending = false
}

// Wait blocks until the in-flight and queued refreshes are done
func (b *Bridge) Wait() {
	b.wg.Wait()
}

// Busy reports whether a refresh is running
func (b *Bridge) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

// Stats returns counters
func (b *Bridge) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

func (b *Bridge) loop() {
	defer b.wg.Done()
	for {
		err := b.Refresh(b.ctx)

		b.mu.Lock()
		if b.stopped || b.ctx.Err() != nil {
			// shutdown in progress, the session stop may not have reached the bridge yet
			b.running, b.pending = false, false
			b.mu.Unlock()
			lgr.Printf("[DEBUG] bridge stopped, refresh result discarded")
			return
		}
		canceled := errors.Is(err, context.Canceled)
		switch {
		case canceled:
		case err != nil:
			b.stats.Failed++
		default:
			b.stats.Completed++
		}
		b.mu.Unlock()

		if canceled {
			lgr.Printf("[DEBUG] refresh canceled, no notice")
		} else {
			b.notify(err)
		}

		b.mu.Lock()
		if !b.pending || b.stopped {
			b.running = false
			b.mu.Unlock()
			return
		}
		b.pending = false
		b.mu.Unlock()
		lgr.Printf("[DEBUG] running queued refresh")
	}
}

func (b *Bridge) notify(err error) {
	if b.Notifier == nil {
		return
	}
	n := Notice{ID: uuid.NewString(), Level: LevelInfo, Title: b.Title, Message: b.Message, Display: b.Display, At: time.Now()}
	if err != nil {
		lgr.Printf("[ERROR] refresh failed: %v", err)
		n.Level, n.Title, n.Message = LevelError, DefaultErrorTitle, DefaultErrorMessage
	}
	b.Notifier.Notify(n)
}
