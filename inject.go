package gesture

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates.
type syntheticPointerEvent struct {
	pointerID int
	x, y      float64
	pressed   bool
}

// InjectPress queues a pointer press at (x, y) on pointer 0. The event is
// consumed on the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.InjectPointer(0, x, y, true)
}

// InjectRelease queues a pointer release at (x, y) on pointer 0.
func (s *Scene) InjectRelease(x, y float64) {
	s.InjectPointer(0, x, y, false)
}

// InjectPointer queues a press or release for a specific pointer slot
// (0 = mouse, 1-9 = touch). Out-of-range ids are ignored.
func (s *Scene) InjectPointer(pointerID int, x, y float64, pressed bool) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		pointerID: pointerID,
		x:         x, y: y,
		pressed: pressed,
	})
}

// InjectTap is a convenience that queues a press followed by a release at
// the same coordinates. Consumes two frames, so the press lasts one frame.
func (s *Scene) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// PendingInjections returns how many injected events are still queued.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (live input
// is skipped for that frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	x, y := s.toScene(evt.x, evt.y)
	s.processPointer(evt.pointerID, x, y, evt.pressed)
	return true
}
