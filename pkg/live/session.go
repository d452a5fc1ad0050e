// Package live wires the push connection, refresh bridge, summary store and view filter into a session
// serving the UI layer. The session owns the lifecycle: initial load, push channel, optional polling
// fallback and teardown. After teardown results of in-flight fetches are discarded.
package live

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/summarylive/pkg/domain"
	"github.com/umputun/summarylive/pkg/notify"
	"github.com/umputun/summarylive/pkg/push"
	"github.com/umputun/summarylive/pkg/store"
	"github.com/umputun/summarylive/pkg/view"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source
//go:generate moq -out mocks/checker.go -pkg mocks -skip-ensure -fmt goimports . Checker
//go:generate moq -out mocks/pusher.go -pkg mocks -skip-ensure -fmt goimports . Pusher
//go:generate moq -out mocks/listener.go -pkg mocks -skip-ensure -fmt goimports . Listener

// ErrInactive returned by operations on a stopped or never started session
var ErrInactive = errors.New("session is not active")

// Source is the data source collaborator
type Source interface {
	ListSummaries(ctx context.Context) ([]domain.Summary, error)
	GetSummary(ctx context.Context, id domain.SummaryID) (domain.Summary, error)
}

// Checker asks the backend whether new summaries exist, used by the polling fallback
type Checker interface {
	CheckNewSummaries(ctx context.Context, since time.Time) (bool, error)
}

// Pusher is the push channel, implemented by push.Connection
type Pusher interface {
	Open(endpoint string) error
	Teardown()
	Events() <-chan push.Event
	State() push.State
	Attempt() int
}

// Listener is the UI layer. Calls are made sequentially, never concurrently.
type Listener interface {
	ViewChanged(v View)
	StateChanged(state push.State)
	Notice(n notify.Notice)
}

// View is the derived, filtered sequence of summaries
type View struct {
	Version   uint64           `json:"version"`
	Filter    domain.Filter    `json:"filter"`
	Items     []domain.Summary `json:"items"`
	Total     int              `json:"total"` // number of summaries in the store
	UpdatedAt time.Time        `json:"updated_at"`
}

// Status of the session
type Status struct {
	Active      bool          `json:"active"`
	State       string        `json:"state"`
	Attempt     int           `json:"attempt"`
	Summaries   int           `json:"summaries"`
	Visible     int           `json:"visible"`
	LastRefresh time.Time     `json:"last_refresh"`
	LastError   string        `json:"last_error,omitempty"`
	Filter      domain.Filter `json:"filter"`
	Refreshes   notify.Stats  `json:"refreshes"`
}

// Params of the Session
type Params struct {
	Source       Source
	Pusher       Pusher
	Endpoint     string
	Listener     Listener      // optional
	Checker      Checker       // optional, enables polling fallback with PollInterval
	PollInterval time.Duration // zero disables polling
	Filter       domain.Filter // initial filter
	Notice       NoticeParams
}

// NoticeParams customize notices surfaced after refreshes
type NoticeParams struct {
	Title   string
	Message string
	Display time.Duration
}

// Session is a live-updated view over the summaries backend
type Session struct {
	Params
	store *store.Store

	mu          sync.RWMutex
	active      bool
	started     bool
	filter      domain.Filter
	items       []domain.Summary // derived view
	version     uint64
	lastRefresh time.Time
	lastErr     error
	bridge      *notify.Bridge

	emitMu      sync.Mutex // serializes listener calls
	lastEmitted uint64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New makes a session, Start activates it
func New(p Params) (*Session, error) {
	if p.Source == nil {
		return nil, errors.New("source is required")
	}
	if p.Pusher == nil {
		return nil, errors.New("pusher is required")
	}
	if p.Endpoint == "" {
		return nil, errors.New("push endpoint is required")
	}
	return &Session{Params: p, store: store.New(), filter: p.Filter, items: []domain.Summary{}}, nil
}

// Start loads summaries, opens the push channel and starts the event loop.
// Failure of the initial load is not fatal: it is reported as a notice and the session stays active with an empty store.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("session already started")
	}
	s.started, s.active = true, true
	ctx, s.cancel = context.WithCancel(ctx)
	s.bridge = notify.New(ctx, notify.Params{
		Refresh:  s.refresh,
		Notifier: notifierFunc(s.notice),
		Title:    s.Notice.Title,
		Message:  s.Notice.Message,
		Display:  s.Notice.Display,
	})
	s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		lgr.Printf("[ERROR] initial load failed: %v", err)
		s.notice(notify.Notice{ID: uuid.NewString(), Level: notify.LevelError, Title: notify.DefaultErrorTitle,
			Message: "Could not load summaries, will retry on the next update.", Display: s.noticeDisplay(), At: time.Now()})
	}

	if err := s.Pusher.Open(s.Endpoint); err != nil {
		s.Stop()
		return fmt.Errorf("open push channel %s: %w", s.Endpoint, err)
	}

	s.wg.Add(1)
	go s.eventLoop(ctx)

	if s.Checker != nil && s.PollInterval > 0 {
		s.wg.Add(1)
		go s.poll(ctx)
	}

	lgr.Printf("[INFO] session started, push endpoint %s, %d summaries loaded", s.Endpoint, s.store.Len())
	return nil
}

// Stop tears the session down: closes the push channel, cancels pending reconnect and polling,
// and discards results of in-flight refreshes. Safe to call multiple times.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	bridge, cancel := s.bridge, s.cancel
	s.mu.Unlock()

	lgr.Printf("[INFO] stopping session...")
	s.Pusher.Teardown()
	if bridge != nil {
		bridge.Stop()
	}
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	if bridge != nil {
		bridge.Wait()
	}
	lgr.Printf("[INFO] session stopped")
}

// Active reports whether the session is started and not stopped
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Refresh requests a serialized refresh, as if a push event arrived
func (s *Session) Refresh() error {
	s.mu.RLock()
	bridge, active := s.bridge, s.active
	s.mu.RUnlock()
	if !active || bridge == nil || !bridge.Trigger() {
		return ErrInactive
	}
	return nil
}

// View returns the current derived view
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewLocked()
}

// Filter returns the active filter
func (s *Session) Filter() domain.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter changes the active filter and re-derives the view locally, without a server round trip
func (s *Session) SetFilter(f domain.Filter) View {
	s.mu.Lock()
	s.filter = f
	s.items = view.Apply(s.store.All(), f)
	s.version++
	v := s.viewLocked()
	s.mu.Unlock()

	lgr.Printf("[DEBUG] filter set to %s, %d of %d summaries visible", f, len(v.Items), v.Total)
	s.emitView(v)
	return v
}

// ClearFilter removes all filter constraints
func (s *Session) ClearFilter() View {
	return s.SetFilter(domain.Filter{})
}

// Query derives a view for the given filter without changing the active one
func (s *Session) Query(f domain.Filter) []domain.Summary {
	return view.Apply(s.store.All(), f)
}

// All returns the canonical sequence
func (s *Session) All() []domain.Summary {
	return s.store.All()
}

// Categories returns the category index of the store
func (s *Session) Categories() []string {
	return view.Categories(s.store.All())
}

// Summary returns a record by id, from the store or, on a miss, from the data source
func (s *Session) Summary(ctx context.Context, id domain.SummaryID) (domain.Summary, error) {
	if rec, ok := s.store.Get(id); ok {
		return rec, nil
	}
	lgr.Printf("[DEBUG] summary %s not in store, fetching", id)
	rec, err := s.Source.GetSummary(ctx, id)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("get summary %s: %w", id, err)
	}
	return rec, nil
}

// Status returns session status
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{
		Active:      s.active,
		State:       s.Pusher.State().String(),
		Attempt:     s.Pusher.Attempt(),
		Summaries:   s.store.Len(),
		Visible:     len(s.items),
		LastRefresh: s.lastRefresh,
		Filter:      s.filter,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	if s.bridge != nil {
		st.Refreshes = s.bridge.Stats()
	}
	return st
}

// refresh is one fetch, replace and re-derive cycle. Store is left unchanged on fetch failure.
func (s *Session) refresh(ctx context.Context) error {
	records, err := s.Source.ListSummaries(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return fmt.Errorf("refresh summaries: %w", err)
	}

	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		lgr.Printf("[DEBUG] session inactive, fetched %d summaries discarded", len(records))
		return nil
	}
	res := s.store.ReplaceAll(records)
	s.items = view.Apply(s.store.All(), s.filter)
	s.version++
	s.lastRefresh = time.Now()
	s.lastErr = nil
	v := s.viewLocked()
	s.mu.Unlock()

	lgr.Printf("[INFO] refreshed %d summaries, %d dropped, %d visible with filter %s",
		res.Kept, len(res.Dropped), len(v.Items), v.Filter)
	s.emitView(v)
	return nil
}

func (s *Session) eventLoop(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			s.Pusher.Teardown()
			// drain until the connection closes the channel
			for range s.Pusher.Events() { //nolint:revive // drain
			}
			return
		case ev, ok := <-s.Pusher.Events():
			if !ok {
				return
			}
			s.handle(ev)
		}
	}
}

func (s *Session) handle(ev push.Event) {
	switch e := ev.(type) {
	case push.Connected:
		lgr.Printf("[DEBUG] push channel connected to %s", e.Endpoint)
	case push.ServerEvent:
		s.mu.RLock()
		bridge := s.bridge
		s.mu.RUnlock()
		if !bridge.HandleEvent(e) {
			lgr.Printf("[DEBUG] push event %q ignored", e.Kind)
		}
	case push.Failed:
		lgr.Printf("[DEBUG] push channel failed, attempt %d, retry in %v", e.Attempt, e.RetryIn)
	case push.StateChanged:
		if s.Listener != nil && s.Active() {
			s.emitMu.Lock()
			s.Listener.StateChanged(e.To)
			s.emitMu.Unlock()
		}
	}
}

// emitView sends the view to the listener unless a newer one was already sent
func (s *Session) emitView(v View) {
	if s.Listener == nil || !s.Active() {
		return
	}
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	if v.Version <= s.lastEmitted {
		return
	}
	s.lastEmitted = v.Version
	s.Listener.ViewChanged(v)
}

func (s *Session) notice(n notify.Notice) {
	if s.Listener == nil || !s.Active() {
		return
	}
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.Listener.Notice(n)
}

func (s *Session) noticeDisplay() time.Duration {
	if s.Notice.Display > 0 {
		return s.Notice.Display
	}
	return notify.DefaultDisplay
}

func (s *Session) viewLocked() View {
	items := make([]domain.Summary, len(s.items))
	copy(items, s.items)
	return View{Version: s.version, Filter: s.filter, Items: items, Total: s.store.Len(), UpdatedAt: s.lastRefresh}
}

// notifierFunc adapts a function to notify.Notifier
type notifierFunc func(n notify.Notice)

func (f notifierFunc) Notify(n notify.Notice) { f(n) }
