package gesture

import "github.com/sirupsen/logrus"

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// PointerSample is the state of one pointer for one frame, in screen
// coordinates. The scene camera, if set, maps them into the scene.
type PointerSample struct {
	ID      int
	X, Y    float64
	Pressed bool
}

// PointerSource supplies live pointer samples once per frame. Pointers that
// are absent from a frame are treated as released.
type PointerSource interface {
	AppendPointers(buf []PointerSample) []PointerSample
}

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	lastX   float64
	lastY   float64
	hitNode *Node // touch target, fixed at press time
}

// --- Hit testing ---

// collectHittable walks the tree in document order (DFS), appending visible,
// interactable nodes that have a hit shape. Invisible subtrees are skipped.
func collectHittable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable && n.HitShape != nil {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectHittable(child, buf)
	}
	return buf
}

// hitTest finds the topmost hit node at (x, y). Later siblings and deeper
// nodes are on top. Returns the root when nothing else is hit, so events on
// empty space still reach document-level listeners.
func (s *Scene) hitTest(x, y float64) *Node {
	s.hitBuf = collectHittable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		if nodeHit(s.hitBuf[i], x, y) {
			return s.hitBuf[i]
		}
	}
	return s.root
}

// --- Input processing ---

// processInput is called from Scene.UpdateWithDelta. Injected events take
// priority over live input: one injected event is consumed per frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.source == nil {
		return
	}
	s.samples = s.source.AppendPointers(s.samples[:0])

	var seen [maxPointers]bool
	for _, p := range s.samples {
		if p.ID < 0 || p.ID >= maxPointers {
			continue
		}
		seen[p.ID] = true
		x, y := s.toScene(p.X, p.Y)
		s.processPointer(p.ID, x, y, p.Pressed)
	}
	// Pointers missing from this frame were lifted.
	for i := range s.pointers {
		if !seen[i] && s.pointers[i].down {
			s.processPointer(i, s.pointers[i].lastX, s.pointers[i].lastY, false)
		}
	}
}

// toScene maps a screen position through the camera, if any.
func (s *Scene) toScene(sx, sy float64) (x, y float64) {
	if s.camera == nil {
		return sx, sy
	}
	return s.camera.ScreenToScene(sx, sy)
}

// processPointer runs the press/release state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, x, y float64, pressed bool) {
	ps := &s.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.lastX = x
		ps.lastY = y
		ps.hitNode = s.hitTest(x, y)
		s.dispatchTouch(EventTouchStart, ps.hitNode, pointerID, x, y)
	case !pressed && ps.down:
		// Touch events stay with the node the touch started on.
		target := ps.hitNode
		if target == nil || target.IsDisposed() {
			target = s.hitTest(x, y)
		}
		ps.down = false
		ps.hitNode = nil
		ps.lastX = x
		ps.lastY = y
		s.dispatchTouch(EventTouchEnd, target, pointerID, x, y)
	case pressed:
		ps.lastX = x
		ps.lastY = y
	}
}

func (s *Scene) dispatchTouch(typ EventType, target *Node, pointerID int, x, y float64) {
	ev := &Event{
		Type:           typ,
		Target:         target,
		ChangedTouches: []Touch{{Identifier: pointerID, ClientX: x, ClientY: y}},
		PointerID:      pointerID,
		Time:           s.timers.Now(),
	}
	if s.debug {
		s.log.WithFields(logrus.Fields{
			"event":   typ.String(),
			"target":  target.Name,
			"pointer": pointerID,
			"x":       x,
			"y":       y,
		}).Debug("dispatch")
	}
	DispatchEvent(ev)
}
