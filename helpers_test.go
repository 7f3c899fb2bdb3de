package gesture

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

// newTestScene returns a scene that logs nowhere.
func newTestScene(t *testing.T, opts ...Option) *Scene {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewScene(append([]Option{WithLogger(l)}, opts...)...)
}

// press injects a press and processes it without moving the clock.
func press(s *Scene, x, y float64) {
	s.InjectPress(x, y)
	s.UpdateWithDelta(0)
}

// release injects a release and processes it without moving the clock.
func release(s *Scene, x, y float64) {
	s.InjectRelease(x, y)
	s.UpdateWithDelta(0)
}

// tap presses and releases at the same point, one 16ms frame apart.
func tap(s *Scene, x, y float64) {
	s.InjectTap(x, y)
	s.UpdateWithDelta(16 * time.Millisecond)
	s.UpdateWithDelta(16 * time.Millisecond)
}

// advance moves the scene clock with no input.
func advance(s *Scene, d time.Duration) {
	s.UpdateWithDelta(d)
}

// counter records handler invocations.
type counter struct {
	n      int
	events []*Event
}

func (c *counter) handle(e *Event) {
	c.n++
	c.events = append(c.events, e)
}
