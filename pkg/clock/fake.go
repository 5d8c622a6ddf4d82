package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Clock for tests.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	at        time.Time
	fn        func()
	cancelled bool
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTimer{at: f.now.Add(d), fn: fn}
	f.timers = append(f.timers, t)

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		t.cancelled = true
	}
}

// Advance moves the clock forward, firing due timers in order.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	deadline := f.now

	var due []*fakeTimer
	var rest []*fakeTimer

	for _, t := range f.timers {
		if !t.cancelled && !t.at.After(deadline) {
			due = append(due, t)
		} else if !t.cancelled {
			rest = append(rest, t)
		}
	}
	f.timers = rest

	sort.Slice(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	f.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

// Pending reports the number of scheduled, uncancelled callbacks.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, t := range f.timers {
		if !t.cancelled {
			n++
		}
	}

	return n
}
