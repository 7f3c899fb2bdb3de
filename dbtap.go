package gesture

import (
	"math"
	"time"
)

type doubleTapRecognizer struct {
	events *Events
	timers *Timers
	att    *Attachment
	fn     Handler

	window      time.Duration
	rangeX      float64
	rangeY      float64
	openOnFirst bool

	// phase, timer and the last tap point are set and cleared together.
	phase        pressPhase
	timer        TimerID
	lastX, lastY float64
}

// DoubleTap attaches a double-tap recognizer to bind. It listens to touchend
// only, using the first changed touch point of each event.
//
// A qualifying touchend while a window is open closes it and compares the
// tap with the stored point: if both axis deltas are within
// Config.DoubleTapRangeX/Y (inclusive) fn runs, otherwise this tap opens a
// fresh window of Config.DoubleTapWindow. An unanswered window expires
// silently.
//
// A touchend with no window open does nothing unless
// Config.DoubleTapOpenOnFirstTap is set, so by default the first window is
// only opened by a tap that misses an open one.
func (e *Events) DoubleTap(bind *Node, fn Handler, delegate string) (*Attachment, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	att, err := e.newAttachment("dbtap", bind, delegate)
	if err != nil {
		return nil, err
	}
	cfg := e.scene.cfg
	r := &doubleTapRecognizer{
		events:      e,
		timers:      e.scene.timers,
		att:         att,
		fn:          fn,
		window:      cfg.DoubleTapWindow,
		rangeX:      cfg.DoubleTapRangeX,
		rangeY:      cfg.DoubleTapRangeY,
		openOnFirst: cfg.DoubleTapOpenOnFirstTap,
	}
	att.progress = r.progress
	att.recognizer = r
	att.listeners = append(att.listeners, bind.AddEventListener(EventTouchEnd, r.touchEnd))
	return att, nil
}

func (r *doubleTapRecognizer) touchEnd(ev *Event) {
	if !r.events.qualifies(r.att, ev) {
		return
	}
	x, y, ok := ev.Point()
	if !ok {
		return
	}
	if r.phase != phasePending {
		if r.openOnFirst {
			r.openWindow(x, y)
		}
		return
	}

	lastX, lastY := r.lastX, r.lastY
	r.closeWindow()
	if math.Abs(x-lastX) <= r.rangeX && math.Abs(y-lastY) <= r.rangeY {
		r.fn(ev)
		r.events.emit(KindDoubleTap, r.att, ev)
		return
	}
	r.openWindow(x, y)
}

// openWindow stores the tap point and starts the second-tap window.
func (r *doubleTapRecognizer) openWindow(x, y float64) {
	r.lastX = x
	r.lastY = y
	r.phase = phasePending
	r.timer = r.timers.AfterFunc(r.window, r.expire)
}

// closeWindow cancels the window timer and forgets the stored point.
func (r *doubleTapRecognizer) closeWindow() {
	r.timers.Clear(r.timer)
	r.expire()
}

func (r *doubleTapRecognizer) expire() {
	r.lastX = 0
	r.lastY = 0
	r.phase = phaseIdle
	r.timer = 0
}

func (r *doubleTapRecognizer) progress() float64 {
	if r.phase != phasePending {
		return 0
	}
	return r.timers.Progress(r.timer)
}
