// Package clock is a small seam over time so delayed, fire-and-forget
// callbacks (acknowledgment mails, transient state resets) can be cancelled
// and driven deterministically in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
	// AfterFunc schedules fn after d and returns a cancel function. Cancel
	// after firing is a no-op.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

type realClock struct{}

func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)

	return func() { t.Stop() }
}
