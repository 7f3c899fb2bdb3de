package gesture

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNilNode is returned when a gesture is attached to a nil node.
	ErrNilNode = errors.New("gesture: nil node")
	// ErrNilHandler is returned when a required callback is missing.
	ErrNilHandler = errors.New("gesture: nil handler")
)

// Events attaches gesture recognizers to nodes. It holds no gesture state of
// its own: every LongTap or DoubleTap call creates an independent recognizer
// whose state lives as long as its listeners stay registered.
type Events struct {
	scene *Scene
}

// Attachment is the result of attaching a recognizer. It exposes the native
// listener registrations so callers can tear them down.
type Attachment struct {
	ID       uuid.UUID
	Gesture  string // "longtap" or "dbtap"
	Node     *Node
	Delegate string

	listeners  []ListenerHandle
	progress   func() float64
	recognizer any
}

// Remove unregisters the attachment's native listeners. Pending timers are
// left to expire; their only effect is on the detached recognizer's state.
func (a *Attachment) Remove() {
	for _, h := range a.listeners {
		h.Remove()
	}
	a.listeners = nil
}

// Progress reports how far the attachment's open recognition window has run,
// from 0 to 1. It is 0 when no window is open.
func (a *Attachment) Progress() float64 {
	if a.progress == nil {
		return 0
	}
	return a.progress()
}

// Active reports whether the attachment still has listeners registered.
func (a *Attachment) Active() bool {
	return len(a.listeners) > 0
}

func (e *Events) newAttachment(gesture string, bind *Node, delegate string) (*Attachment, error) {
	if bind == nil {
		return nil, fmt.Errorf("%s: %w", gesture, ErrNilNode)
	}
	if delegate != "" {
		if _, err := compileSelector(delegate); err != nil {
			return nil, fmt.Errorf("%s: %w", gesture, err)
		}
	}
	return &Attachment{
		ID:       uuid.New(),
		Gesture:  gesture,
		Node:     bind,
		Delegate: delegate,
	}, nil
}

// qualifies applies the delegation rule: with no delegate every event
// counts; with a delegate the event counts only if Resolve finds a node.
func (e *Events) qualifies(a *Attachment, ev *Event) bool {
	if a.Delegate == "" {
		return true
	}
	target, err := Resolve(a.Node, a.Delegate, ev.Target)
	if err != nil {
		e.scene.log.WithError(err).WithField("attachment", a.ID).Warn("delegate lookup failed")
		return false
	}
	if target == nil {
		if e.scene.debug {
			e.scene.log.WithFields(logrus.Fields{
				"attachment": a.ID,
				"delegate":   a.Delegate,
				"target":     ev.Target.Name,
			}).Debug("delegate miss")
		}
		return false
	}
	return true
}

// emit reports a recognized gesture to scene observers.
func (e *Events) emit(kind Kind, a *Attachment, ev *Event) {
	ge := GestureEvent{
		Kind:         kind,
		AttachmentID: a.ID,
		NodeID:       a.Node.ID,
		NodeName:     a.Node.Name,
		EntityID:     a.Node.EntityID,
		Time:         ev.Time,
	}
	if ev.Target != nil {
		ge.TargetID = ev.Target.ID
		if ev.Target.EntityID != 0 {
			ge.EntityID = ev.Target.EntityID
		}
	}
	ge.X, ge.Y, _ = ev.Point()
	e.scene.emitGesture(ge)
}

// --- Directional placeholders ---
//
// Kept for API compatibility; they consume nothing and do nothing.

// DragUp is a placeholder for an upward drag gesture.
func (e *Events) DragUp() {}

// DragDown is a placeholder for a downward drag gesture.
func (e *Events) DragDown() {}

// DragLeft is a placeholder for a leftward drag gesture.
func (e *Events) DragLeft() {}

// DragRight is a placeholder for a rightward drag gesture.
func (e *Events) DragRight() {}

// SwiftUp is a placeholder for an upward swipe gesture.
func (e *Events) SwiftUp() {}

// SwiftDown is a placeholder for a downward swipe gesture.
func (e *Events) SwiftDown() {}

// SwiftLeft is a placeholder for a leftward swipe gesture.
func (e *Events) SwiftLeft() {}

// SwiftRight is a placeholder for a rightward swipe gesture.
func (e *Events) SwiftRight() {}
