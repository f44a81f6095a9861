// Package timer records when the learner first touches each question.
package timer

import "time"

// Tracker maps question ids to their first-interaction time. It is owned by
// one session and is not safe for concurrent use; all interaction events
// arrive on the UI loop.
type Tracker struct {
	now    func() time.Time
	starts map[string]time.Time
}

// New creates a Tracker using the wall clock.
func New() *Tracker {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Tracker reading time from now.
func NewWithClock(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now, starts: make(map[string]time.Time)}
}

// Now returns the tracker's current time.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// Reset forgets every recorded start. Called when a new quiz starts.
func (t *Tracker) Reset() {
	t.starts = make(map[string]time.Time)
}

// Touch records the first interaction with id. Later touches are ignored.
// It reports whether this call recorded the start.
func (t *Tracker) Touch(id string) bool {
	if _, ok := t.starts[id]; ok {
		return false
	}
	t.starts[id] = t.now()
	return true
}

// ElapsedMs returns the milliseconds from the first interaction with id to
// now, rounded to the nearest millisecond. Untouched questions report 0, and
// the result is never negative.
func (t *Tracker) ElapsedMs(id string, now time.Time) int64 {
	start, ok := t.starts[id]
	if !ok {
		return 0
	}
	ms := now.Sub(start).Round(time.Millisecond).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
