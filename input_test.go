package gesture

import (
	"testing"
	"time"
)

// fakeSource replays a fixed list of samples per frame.
type fakeSource struct {
	frame []PointerSample
}

func (f *fakeSource) AppendPointers(buf []PointerSample) []PointerSample {
	return append(buf, f.frame...)
}

// recordTouches registers listeners on n that log "type:target" strings.
func recordTouches(n *Node) *[]string {
	var log []string
	for _, typ := range []EventType{EventTouchStart, EventTouchEnd} {
		n.AddEventListener(typ, func(e *Event) {
			log = append(log, e.Type.String()+":"+e.Target.Name)
		})
	}
	return &log
}

// --- Hit testing ---

func TestHitTest_TopmostNode(t *testing.T) {
	s := newTestScene(t)
	bottom := NewBox("div", "bottom", 0, 0, 100, 100)
	top := NewBox("div", "top", 0, 0, 100, 100)
	s.Root().AddChild(bottom)
	s.Root().AddChild(top)

	if got := s.hitTest(50, 50); got != top {
		t.Errorf("hitTest = %q, want top", got.Name)
	}
}

func TestHitTest_DeeperNodeWins(t *testing.T) {
	s := newTestScene(t)
	parent := NewBox("div", "parent", 0, 0, 100, 100)
	child := NewBox("span", "child", 10, 10, 20, 20)
	s.Root().AddChild(parent)
	parent.AddChild(child)

	if got := s.hitTest(15, 15); got != child {
		t.Errorf("hitTest = %q, want child", got.Name)
	}
	if got := s.hitTest(80, 80); got != parent {
		t.Errorf("hitTest = %q, want parent", got.Name)
	}
}

func TestHitTest_SkipsInvisible(t *testing.T) {
	s := newTestScene(t)
	bottom := NewBox("div", "bottom", 0, 0, 100, 100)
	top := NewBox("div", "top", 0, 0, 100, 100)
	inner := NewBox("div", "inner", 0, 0, 100, 100)
	s.Root().AddChild(bottom)
	s.Root().AddChild(top)
	top.AddChild(inner)
	top.Visible = false

	if got := s.hitTest(50, 50); got != bottom {
		t.Errorf("hitTest = %q, want bottom", got.Name)
	}
}

func TestHitTest_SkipsNonInteractable(t *testing.T) {
	s := newTestScene(t)
	bottom := NewBox("div", "bottom", 0, 0, 100, 100)
	top := NewBox("div", "top", 0, 0, 100, 100)
	s.Root().AddChild(bottom)
	s.Root().AddChild(top)
	top.Interactable = false

	if got := s.hitTest(50, 50); got != bottom {
		t.Errorf("hitTest = %q, want bottom", got.Name)
	}
}

func TestHitTest_MissReturnsRoot(t *testing.T) {
	s := newTestScene(t)
	s.Root().AddChild(NewBox("div", "box", 0, 0, 10, 10))

	if got := s.hitTest(500, 500); got != s.Root() {
		t.Errorf("hitTest = %q, want root", got.Name)
	}
}

// --- Touch dispatch ---

func TestTouchEvents_TargetAndBubbling(t *testing.T) {
	s := newTestScene(t)
	list := NewBox("ul", "list", 0, 0, 200, 200)
	item := NewBox("li", "item", 0, 0, 200, 50)
	s.Root().AddChild(list)
	list.AddChild(item)
	got := recordTouches(list)

	press(s, 10, 10)
	release(s, 10, 10)

	want := []string{"touchstart:item", "touchend:item"}
	if len(*got) != len(want) || (*got)[0] != want[0] || (*got)[1] != want[1] {
		t.Errorf("events = %v, want %v", *got, want)
	}
}

func TestTouchEnd_StaysWithPressTarget(t *testing.T) {
	s := newTestScene(t)
	a := NewBox("div", "a", 0, 0, 100, 100)
	b := NewBox("div", "b", 200, 0, 100, 100)
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	got := recordTouches(s.Root())

	press(s, 50, 50)
	release(s, 250, 50)

	if len(*got) != 2 || (*got)[1] != "touchend:a" {
		t.Errorf("events = %v, want touchend on a", *got)
	}
}

func TestTouchEnd_DisposedTargetRehits(t *testing.T) {
	s := newTestScene(t)
	a := NewBox("div", "a", 0, 0, 100, 100)
	b := NewBox("div", "b", 200, 0, 100, 100)
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	got := recordTouches(s.Root())

	press(s, 50, 50)
	a.Dispose()
	release(s, 250, 50)

	if len(*got) != 2 || (*got)[1] != "touchend:b" {
		t.Errorf("events = %v, want touchend on b", *got)
	}
}

func TestTouchEvent_Fields(t *testing.T) {
	s := newTestScene(t)
	box := NewBox("div", "box", 0, 0, 100, 100)
	s.Root().AddChild(box)

	var ev *Event
	box.AddEventListener(EventTouchEnd, func(e *Event) { ev = e })

	s.InjectPointer(3, 40, 60, true)
	s.UpdateWithDelta(0)
	advance(s, 120*time.Millisecond)
	s.InjectPointer(3, 45, 65, false)
	s.UpdateWithDelta(0)

	if ev == nil {
		t.Fatal("no touchend")
	}
	if ev.PointerID != 3 || ev.Time != 120*time.Millisecond {
		t.Errorf("PointerID/Time = %d/%v", ev.PointerID, ev.Time)
	}
	x, y, ok := ev.Point()
	if !ok || x != 45 || y != 65 {
		t.Errorf("Point = (%v, %v, %v), want (45, 65, true)", x, y, ok)
	}
	if ev.ChangedTouches[0].Identifier != 3 {
		t.Errorf("Identifier = %d, want 3", ev.ChangedTouches[0].Identifier)
	}
	if ev.CurrentTarget != nil {
		t.Error("CurrentTarget should be cleared after dispatch")
	}
}

func TestRepeatedPressIsIgnored(t *testing.T) {
	s := newTestScene(t)
	box := NewBox("div", "box", 0, 0, 100, 100)
	s.Root().AddChild(box)
	got := recordTouches(box)

	press(s, 10, 10)
	press(s, 20, 20)
	release(s, 20, 20)
	release(s, 20, 20)

	if len(*got) != 2 {
		t.Errorf("events = %v, want one touchstart and one touchend", *got)
	}
}

// --- Pointer source ---

func TestPointerSource_ReleaseByOmission(t *testing.T) {
	src := &fakeSource{}
	s := newTestScene(t, WithPointerSource(src))
	box := NewBox("div", "box", 0, 0, 100, 100)
	s.Root().AddChild(box)
	got := recordTouches(box)

	src.frame = []PointerSample{{ID: 1, X: 10, Y: 10, Pressed: true}}
	s.UpdateWithDelta(16 * time.Millisecond)
	src.frame = []PointerSample{{ID: 1, X: 12, Y: 12, Pressed: true}}
	s.UpdateWithDelta(16 * time.Millisecond)
	src.frame = nil
	s.UpdateWithDelta(16 * time.Millisecond)

	want := []string{"touchstart:box", "touchend:box"}
	if len(*got) != 2 || (*got)[0] != want[0] || (*got)[1] != want[1] {
		t.Errorf("events = %v, want %v", *got, want)
	}
	if s.pointers[1].lastX != 12 {
		t.Errorf("lastX = %v, want 12 (release at last seen position)", s.pointers[1].lastX)
	}
}

func TestPointerSource_OutOfRangeIgnored(t *testing.T) {
	src := &fakeSource{frame: []PointerSample{{ID: maxPointers, X: 1, Y: 1, Pressed: true}, {ID: -1, Pressed: true}}}
	s := newTestScene(t, WithPointerSource(src))
	got := recordTouches(s.Root())

	s.UpdateWithDelta(16 * time.Millisecond)
	if len(*got) != 0 {
		t.Errorf("events = %v, want none", *got)
	}
}

func TestPointerSource_InjectionTakesPriority(t *testing.T) {
	src := &fakeSource{frame: []PointerSample{{ID: 2, X: 10, Y: 10, Pressed: true}}}
	s := newTestScene(t)
	s.SetPointerSource(src)
	box := NewBox("div", "box", 0, 0, 100, 100)
	s.Root().AddChild(box)
	got := recordTouches(box)

	s.InjectPress(50, 50)
	s.UpdateWithDelta(0)
	if len(*got) != 1 || s.pointers[2].down {
		t.Fatalf("live input should be skipped on injection frames: %v", *got)
	}
	s.UpdateWithDelta(0)
	if !s.pointers[2].down {
		t.Error("live pointer should be pressed once the queue is empty")
	}
}
