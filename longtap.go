package gesture

import "time"

// pressPhase is the per-attachment recognition window state. phasePending
// means a timer is live and the window is open.
type pressPhase uint8

const (
	phaseIdle pressPhase = iota
	phasePending
)

// LongTapHandlers is the callback pair for LongTap. LongPress is required;
// ShortTap is optional.
type LongTapHandlers struct {
	LongPress Handler
	ShortTap  Handler
}

// LongPressOnly wraps a single long-press callback; short taps fire nothing.
func LongPressOnly(fn Handler) LongTapHandlers {
	return LongTapHandlers{LongPress: fn}
}

type longTapRecognizer struct {
	events   *Events
	timers   *Timers
	att      *Attachment
	handlers LongTapHandlers

	duration   time.Duration
	clearStale bool

	phase pressPhase
	timer TimerID
}

// LongTap attaches a long-press recognizer to bind.
//
// On touchstart a timer of Config.LongPressDuration is started. Its only
// effect when it fires is to close the window. On touchend the window state
// decides the gesture: still open means the press was short and ShortTap
// runs; already closed means the press lasted at least the duration and
// LongPress runs. Both events must pass delegation when delegate is set.
//
// A second touchstart before touchend replaces the tracked timer without
// cancelling the first unless Config.LongPressClearStale is set, so the
// first timer can close the window early. When it does, it cancels the
// replacement as well.
func (e *Events) LongTap(bind *Node, handlers LongTapHandlers, delegate string) (*Attachment, error) {
	if handlers.LongPress == nil {
		return nil, ErrNilHandler
	}
	att, err := e.newAttachment("longtap", bind, delegate)
	if err != nil {
		return nil, err
	}
	cfg := e.scene.cfg
	r := &longTapRecognizer{
		events:     e,
		timers:     e.scene.timers,
		att:        att,
		handlers:   handlers,
		duration:   cfg.LongPressDuration,
		clearStale: cfg.LongPressClearStale,
	}
	att.progress = r.progress
	att.recognizer = r
	att.listeners = append(att.listeners,
		bind.AddEventListener(EventTouchStart, r.touchStart),
		bind.AddEventListener(EventTouchEnd, r.touchEnd),
	)
	return att, nil
}

func (r *longTapRecognizer) touchStart(ev *Event) {
	if !r.events.qualifies(r.att, ev) {
		return
	}
	if r.clearStale {
		r.timers.Clear(r.timer)
	}
	r.phase = phasePending
	r.timer = r.timers.AfterFunc(r.duration, r.expire)
}

// expire runs when any timer this recognizer started fires, including a
// stale one that was replaced by a later press. It cancels the tracked timer
// too, so a replaced press never leaves a timer running without a handle.
func (r *longTapRecognizer) expire() {
	r.timers.Clear(r.timer)
	r.phase = phaseIdle
	r.timer = 0
}

func (r *longTapRecognizer) touchEnd(ev *Event) {
	if !r.events.qualifies(r.att, ev) {
		return
	}
	pending := r.phase == phasePending
	r.timers.Clear(r.timer)
	r.timer = 0
	r.phase = phaseIdle

	if pending {
		if r.handlers.ShortTap != nil {
			r.handlers.ShortTap(ev)
			r.events.emit(KindShortTap, r.att, ev)
		}
		return
	}
	r.handlers.LongPress(ev)
	r.events.emit(KindLongPress, r.att, ev)
}

// progress reports how far the current press is toward a long press, from 0
// to 1. It is 0 when no press is being tracked.
func (r *longTapRecognizer) progress() float64 {
	if r.phase != phasePending {
		return 0
	}
	return r.timers.Progress(r.timer)
}
