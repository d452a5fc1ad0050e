package live

import (
	"context"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/summarylive/pkg/push"
)

// poll asks the backend for new summaries while the push channel is not open
// and triggers a refresh through the bridge when there are some
func (s *Session) poll(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	lastCheck := time.Now()
	lgr.Printf("[DEBUG] polling fallback started with interval %v", s.PollInterval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if st := s.Pusher.State(); st == push.StateOpen || st == push.StateClosed {
				lastCheck = time.Now()
				continue
			}
			lastCheck = s.checkNew(ctx, lastCheck)
		}
	}
}

// checkNew returns the time to use for the next check
func (s *Session) checkNew(ctx context.Context, since time.Time) time.Time {
	now := time.Now()
	found, err := s.Checker.CheckNewSummaries(ctx, since)
	if err != nil {
		lgr.Printf("[WARN] check for new summaries failed: %v", err)
		return since
	}
	if !found {
		return now
	}
	lgr.Printf("[INFO] new summaries found by polling, push channel is %s", s.Pusher.State())
	if err := s.Refresh(); err != nil {
		lgr.Printf("[DEBUG] refresh not triggered: %v", err)
	}
	return now
}
