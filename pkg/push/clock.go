package push

import "time"

// Clock schedules delayed callbacks. Real implementation wraps time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
