package push

import (
	"math"
	"time"
)

// default reconnect timing
const (
	DefaultBaseDelay = 15 * time.Second
	DefaultGrowth    = 1.5
	DefaultMaxDelay  = 5 * time.Minute
)

// Policy computes reconnect delays as base * growth^attempt, clamped to [base, max].
// It holds no state, the attempt counter belongs to Connection.
type Policy struct {
	Base   time.Duration
	Growth float64
	Max    time.Duration
}

// DefaultPolicy returns policy with default timing
func DefaultPolicy() Policy {
	return Policy{Base: DefaultBaseDelay, Growth: DefaultGrowth, Max: DefaultMaxDelay}
}

// DelayFor returns delay before retry number attempt (0-based). DelayFor(0) is always Base.
func (p Policy) DelayFor(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	growth := p.Growth
	if growth < 1 {
		growth = 1
	}
	maxDelay := p.Max
	if maxDelay < p.Base {
		maxDelay = p.Base
	}

	delay := float64(p.Base) * math.Pow(growth, float64(attempt))
	if math.IsInf(delay, 0) || math.IsNaN(delay) || delay >= float64(maxDelay) {
		return maxDelay
	}
	if d := time.Duration(delay); d > p.Base {
		return d
	}
	return p.Base
}
