package push

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

// State of the push connection
type State int

// connection states. Closed is terminal.
const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateReconnecting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Event is delivered on Connection.Events. Concrete types are Connected, ServerEvent, Failed and StateChanged.
type Event interface {
	pushEvent()
}

// Connected is emitted after a successful handshake
type Connected struct {
	Endpoint string
}

// Failed is emitted when the channel fails to open or drops. Err is a *TransportError.
type Failed struct {
	Err     error
	Attempt int
	RetryIn time.Duration
}

// StateChanged is emitted on every state transition
type StateChanged struct {
	From, To State
}

func (Connected) pushEvent()    {}
func (ServerEvent) pushEvent()  {}
func (Failed) pushEvent()       {}
func (StateChanged) pushEvent() {}

// Options for New
type Options struct {
	Dialer       Dialer
	Policy       Policy
	Clock        Clock // defaults to real timers
	DedupeWindow int   // number of recent event ids remembered to drop repeats, 0 disables
}

// Connection owns one logical push channel at a time, reconnects with backoff on failure and
// delivers typed events in order. Events channel must be drained until it is closed after Teardown.
type Connection struct {
	dialer Dialer
	policy Policy
	clock  Clock
	dedupe int

	mu          sync.Mutex
	state       State
	attempt     int
	endpoint    string
	gen         uint64 // bumped on every open and teardown, stale goroutines and timers compare against it
	cancel      context.CancelFunc
	stream      Stream
	timer       Timer
	lastEventID string
	seenIDs     []string
	seenSet     map[string]struct{}
	queue       []Event

	wake   chan struct{}
	events chan Event
}

// New makes an idle connection and starts its event dispatcher
func New(opts Options) *Connection {
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.Policy == (Policy{}) {
		opts.Policy = DefaultPolicy()
	}
	c := &Connection{
		dialer:  opts.Dialer,
		policy:  opts.Policy,
		clock:   opts.Clock,
		dedupe:  opts.DedupeWindow,
		state:   StateIdle,
		seenSet: map[string]struct{}{},
		wake:    make(chan struct{}, 1),
		events:  make(chan Event, 16),
	}
	go c.dispatch()
	return c
}

// Events returns the channel of connection events, closed after Teardown
func (c *Connection) Events() <-chan Event {
	return c.events
}

// State returns current connection state
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Attempt returns the number of consecutive failures since the last successful open
func (c *Connection) Attempt() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempt
}

// Open establishes the channel to endpoint. Any existing channel and pending reconnect are dropped first.
func (c *Connection) Open(endpoint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateClosed {
		return ErrClosed
	}
	c.openLocked(endpoint)
	return nil
}

// Teardown closes the channel and cancels pending reconnect. Safe to call multiple times.
func (c *Connection) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateClosed {
		return
	}
	c.stopTimerLocked()
	c.dropStreamLocked()
	c.gen++
	c.setStateLocked(StateClosed)
	lgr.Printf("[DEBUG] push connection to %s closed", c.endpoint)
}

func (c *Connection) openLocked(endpoint string) {
	c.stopTimerLocked()
	c.dropStreamLocked()

	c.endpoint = endpoint
	c.gen++
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.setStateLocked(StateConnecting)
	lgr.Printf("[DEBUG] connecting to %s", endpoint)
	go c.run(ctx, c.gen, endpoint, c.lastEventID)
}

// run owns a single channel generation, from dial to failure
func (c *Connection) run(ctx context.Context, gen uint64, endpoint, lastEventID string) {
	stream, err := c.dialer.Dial(ctx, endpoint, lastEventID)
	if err != nil {
		c.fail(gen, err)
		return
	}
	if !c.opened(gen, stream) {
		stream.Close()
		return
	}

	for stream.Next() {
		c.receive(gen, stream.Event(), stream.LastEventID())
	}
	c.trackLastID(gen, stream.LastEventID()) // id-only blocks read before the stream ended

	err = stream.Err()
	if err == nil {
		err = ErrStreamEnded
	}
	c.fail(gen, err)
}

func (c *Connection) opened(gen uint64, stream Stream) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.state != StateConnecting {
		return false
	}
	c.stream = stream
	c.attempt = 0
	c.setStateLocked(StateOpen)
	c.queueLocked(Connected{Endpoint: c.endpoint})
	lgr.Printf("[INFO] push connection to %s established", c.endpoint)
	return true
}

// receive queues ev unless it repeats a recent id. lastID is the stream's id buffer, used on reconnect;
// ev.ID is the id set by the event itself and the only one dedup looks at.
func (c *Connection) receive(gen uint64, ev ServerEvent, lastID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.state != StateOpen {
		return
	}
	c.lastEventID = lastID
	if ev.ID != "" {
		if c.seenLocked(ev.ID) {
			lgr.Printf("[DEBUG] duplicate push event %s (%s) dropped", ev.ID, ev.Kind)
			return
		}
	}
	c.queueLocked(ev)
}

func (c *Connection) trackLastID(gen uint64, lastID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.state != StateOpen {
		return
	}
	c.lastEventID = lastID
}

func (c *Connection) fail(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || (c.state != StateOpen && c.state != StateConnecting) {
		return
	}
	c.dropStreamLocked()

	c.attempt++
	delay := c.policy.DelayFor(c.attempt - 1)
	terr := &TransportError{Endpoint: c.endpoint, Err: err}
	lgr.Printf("[WARN] %v, reconnect attempt %d in %v", terr, c.attempt, delay)

	c.queueLocked(Failed{Err: terr, Attempt: c.attempt, RetryIn: delay})
	c.setStateLocked(StateReconnecting)

	retryGen := c.gen
	c.timer = c.clock.AfterFunc(delay, func() { c.retry(retryGen) })
}

func (c *Connection) retry(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.state != StateReconnecting {
		return
	}
	c.timer = nil
	c.openLocked(c.endpoint)
}

func (c *Connection) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Connection) dropStreamLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.stream != nil {
		c.stream.Close()
		c.stream = nil
	}
}

func (c *Connection) setStateLocked(to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	c.queueLocked(StateChanged{From: from, To: to})
}

func (c *Connection) seenLocked(id string) bool {
	if c.dedupe <= 0 {
		return false
	}
	if _, ok := c.seenSet[id]; ok {
		return true
	}
	c.seenSet[id] = struct{}{}
	c.seenIDs = append(c.seenIDs, id)
	if len(c.seenIDs) > c.dedupe {
		delete(c.seenSet, c.seenIDs[0])
		c.seenIDs = c.seenIDs[1:]
	}
	return false
}

func (c *Connection) queueLocked(ev Event) {
	c.queue = append(c.queue, ev)
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// dispatch moves queued events to the events channel outside of the lock, preserving order
func (c *Connection) dispatch() {
	defer close(c.events)
	for {
		c.mu.Lock()
		batch := c.queue
		c.queue = nil
		closed := c.state == StateClosed
		c.mu.Unlock()

		for _, ev := range batch {
			c.events <- ev
		}
		if closed {
			return
		}
		<-c.wake
	}
}
