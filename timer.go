package gesture

import (
	"slices"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TimerID identifies a scheduled timer. The zero TimerID is never issued.
type TimerID uint64

type timer struct {
	id       TimerID
	start    time.Duration
	deadline time.Duration
	tween    *gween.Tween
	fn       func()
	live     bool
}

// Timers is a frame-driven setTimeout/clearTimeout. Time only moves when the
// owning Scene advances it, so gesture timing is deterministic under test.
// Each timer carries a linear gween tween from 0 to 1 over its duration,
// which backs Progress (e.g. a long-press ring).
type Timers struct {
	now    time.Duration
	nextID TimerID
	active []*timer
	due    []*timer // reused buffer
}

func newTimers() *Timers {
	return &Timers{}
}

// Now returns the current clock value.
func (t *Timers) Now() time.Duration {
	return t.now
}

// AfterFunc schedules fn to run once d has elapsed on the clock. A
// non-positive d fires on the next Advance.
func (t *Timers) AfterFunc(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	t.nextID++
	tm := &timer{
		id:       t.nextID,
		start:    t.now,
		deadline: t.now + d,
		tween:    gween.New(0, 1, float32(d.Seconds()), ease.Linear),
		fn:       fn,
		live:     true,
	}
	t.active = append(t.active, tm)
	return tm.id
}

// Clear cancels the timer. It reports whether a pending timer was cancelled;
// clearing an unknown, fired or zero id is a no-op.
func (t *Timers) Clear(id TimerID) bool {
	if id == 0 {
		return false
	}
	for i, tm := range t.active {
		if tm.id == id {
			tm.live = false
			t.active = slices.Delete(t.active, i, i+1)
			return true
		}
	}
	// Due in the batch Advance is running right now.
	for _, tm := range t.due {
		if tm != nil && tm.id == id && tm.live {
			tm.live = false
			return true
		}
	}
	return false
}

// Pending reports whether the timer is scheduled and has not fired.
func (t *Timers) Pending(id TimerID) bool {
	return t.find(id) != nil
}

// Progress returns how far the timer has run, from 0 to 1. Unknown or fired
// timers report 1.
func (t *Timers) Progress(id TimerID) float64 {
	tm := t.find(id)
	if tm == nil {
		return 1
	}
	v, _ := tm.tween.Set(float32((t.now - tm.start).Seconds()))
	return float64(v)
}

// Len returns the number of pending timers.
func (t *Timers) Len() int {
	return len(t.active)
}

// Advance moves the clock forward by dt and runs every timer that came due,
// in deadline order (ties in scheduling order). Timers scheduled by those
// callbacks wait for the next Advance; timers cleared by an earlier callback
// in the same batch do not run.
func (t *Timers) Advance(dt time.Duration) {
	if dt > 0 {
		t.now += dt
	}
	t.due = t.due[:0]
	kept := t.active[:0]
	for _, tm := range t.active {
		if t.now >= tm.deadline {
			t.due = append(t.due, tm)
			continue
		}
		kept = append(kept, tm)
	}
	for i := len(kept); i < len(t.active); i++ {
		t.active[i] = nil
	}
	t.active = kept
	if len(t.due) == 0 {
		return
	}
	slices.SortStableFunc(t.due, func(a, b *timer) int {
		switch {
		case a.deadline < b.deadline:
			return -1
		case a.deadline > b.deadline:
			return 1
		default:
			return 0
		}
	})
	due := t.due
	for i, tm := range due {
		due[i] = nil
		if !tm.live {
			continue
		}
		tm.live = false
		if tm.fn != nil {
			tm.fn()
		}
	}
}

func (t *Timers) find(id TimerID) *timer {
	if id == 0 {
		return nil
	}
	for _, tm := range t.active {
		if tm.id == id {
			return tm
		}
	}
	return nil
}
