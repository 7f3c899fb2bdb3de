package gesture

import "time"

// Touch is one entry of an event's changed touch-point list.
type Touch struct {
	Identifier int
	ClientX    float64
	ClientY    float64
}

// Event carries a pointer lifecycle event through the node tree.
// Recognizers hand the original *Event to user callbacks.
type Event struct {
	Type EventType

	// Target is the node the pointer went down on. CurrentTarget is the node
	// whose listeners are running.
	Target        *Node
	CurrentTarget *Node

	ChangedTouches []Touch
	PointerID      int

	// Time is the scene clock when the event was dispatched.
	Time time.Duration

	propagationStopped bool
}

// StopPropagation prevents the event from bubbling past the current node.
// Remaining listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// Point returns the coordinates of the first changed touch point.
func (e *Event) Point() (x, y float64, ok bool) {
	if len(e.ChangedTouches) == 0 {
		return 0, 0, false
	}
	t := e.ChangedTouches[0]
	return t.ClientX, t.ClientY, true
}

// Handler receives an event.
type Handler func(*Event)

// --- Listener registry ---

type listenerEntry struct {
	id uint32
	fn Handler
}

type listenerRegistry struct {
	byType [eventTypeCount][]listenerEntry
	nextID uint32
}

// ListenerHandle allows removing a listener registered with AddEventListener.
type ListenerHandle struct {
	id    uint32
	node  *Node
	event EventType
}

// AddEventListener registers fn for events of type typ reaching n, either
// dispatched on n directly or bubbling up from a descendant.
func (n *Node) AddEventListener(typ EventType, fn Handler) ListenerHandle {
	if fn == nil || typ >= eventTypeCount {
		return ListenerHandle{}
	}
	reg := &n.listeners
	reg.nextID++
	id := reg.nextID
	reg.byType[typ] = append(reg.byType[typ], listenerEntry{id: id, fn: fn})
	return ListenerHandle{id: id, node: n, event: typ}
}

// Remove unregisters the listener so it no longer fires.
// Safe to call more than once and on the zero handle.
func (h ListenerHandle) Remove() {
	if h.node == nil {
		return
	}
	s := h.node.listeners.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			// Fresh slice so an in-flight dispatch keeps its snapshot intact.
			out := make([]listenerEntry, 0, len(s)-1)
			out = append(out, s[:i]...)
			out = append(out, s[i+1:]...)
			h.node.listeners.byType[h.event] = out
			return
		}
	}
}

// NumListeners returns how many listeners of type typ are registered on n.
func (n *Node) NumListeners(typ EventType) int {
	if typ >= eventTypeCount {
		return 0
	}
	return len(n.listeners.byType[typ])
}

// DispatchEvent delivers e to e.Target and then to each ancestor in turn,
// stopping early when a listener calls StopPropagation.
func DispatchEvent(e *Event) {
	if e.Target == nil || e.Type >= eventTypeCount {
		return
	}
	for n := e.Target; n != nil; n = n.Parent {
		e.CurrentTarget = n
		for _, l := range n.listeners.byType[e.Type] {
			l.fn(e)
		}
		if e.propagationStopped {
			break
		}
	}
	e.CurrentTarget = nil
}
