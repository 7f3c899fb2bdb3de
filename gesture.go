package gesture

import "time"

// Vec2 is a 2D vector used for points and polygon vertices.
type Vec2 struct {
	X, Y float64
}

// EventType identifies a low-level pointer lifecycle event.
type EventType uint8

const (
	EventTouchStart EventType = iota // fires when a pointer is pressed over a node
	EventTouchEnd                    // fires when a pressed pointer is released
	eventTypeCount
)

// String returns the DOM name of the event type.
func (t EventType) String() string {
	switch t {
	case EventTouchStart:
		return "touchstart"
	case EventTouchEnd:
		return "touchend"
	default:
		return "unknown"
	}
}

// Kind identifies a recognized gesture.
type Kind uint8

const (
	KindLongPress Kind = iota // pointer held for at least the long-press duration
	KindShortTap              // pointer released before the long-press duration
	KindDoubleTap             // second tap inside an open double-tap window
)

// String returns a short lowercase name for the gesture.
func (k Kind) String() string {
	switch k {
	case KindLongPress:
		return "longpress"
	case KindShortTap:
		return "shorttap"
	case KindDoubleTap:
		return "doubletap"
	default:
		return "unknown"
	}
}

// Recognizer timing and distance defaults.
const (
	DefaultLongPressDuration = 500 * time.Millisecond
	DefaultDoubleTapWindow   = 500 * time.Millisecond
	DefaultDoubleTapRange    = 100.0 // pixels, per axis
)
