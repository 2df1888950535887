package scene

import "testing"

func rectAt(x, y, w, h float64) *Node {
	r := NewNode(KindRect)
	r.SetAttrs(map[string]any{AttrX: x, AttrY: y, AttrWidth: w, AttrHeight: h})
	return r
}

func TestIntersectionTopmost(t *testing.T) {
	st, layer := newTestStage(t)
	bottom := rectAt(0, 0, 100, 100)
	top := rectAt(50, 50, 100, 100)
	layer.Add(bottom, top)

	if got := st.Intersection(75, 75); got != top {
		t.Error("overlap should hit the later sibling")
	}
	if got := st.Intersection(10, 10); got != bottom {
		t.Error("should hit bottom outside overlap")
	}
	if got := st.Intersection(200, 10); got != nil {
		t.Error("empty area should hit nothing")
	}

	top.MoveToTop()
	bottom.MoveToTop()
	if got := st.Intersection(75, 75); got != bottom {
		t.Error("after reordering bottom should be on top")
	}
}

func TestIntersectionSkipsHiddenAndNonListening(t *testing.T) {
	st, layer := newTestStage(t)
	a := rectAt(0, 0, 100, 100)
	layer.Add(a)

	a.Hide()
	if st.Intersection(10, 10) != nil {
		t.Error("hidden node should not be hit")
	}
	a.Show()
	a.SetAttr(AttrListening, false)
	if st.Intersection(10, 10) != nil {
		t.Error("non-listening node should not be hit")
	}
}

func TestIntersectionCircleAndTransform(t *testing.T) {
	st, layer := newTestStage(t)
	g := NewNode(KindGroup)
	g.SetAttrs(map[string]any{AttrX: 100, AttrY: 100, AttrScaleX: 2, AttrScaleY: 2})
	c := NewNode(KindCircle)
	c.SetAttr(AttrRadius, 10)
	layer.Add(g)
	g.Add(c)

	if st.Intersection(115, 100) != c {
		t.Error("point inside scaled circle should hit")
	}
	if st.Intersection(125, 100) != nil {
		t.Error("point outside scaled circle should miss")
	}
}

func TestClickEvent(t *testing.T) {
	st, layer := newTestStage(t)
	r := rectAt(0, 0, 50, 50)
	layer.Add(r)

	clicks := 0
	r.On(EventClick, NewHandler(func(e *Event) {
		clicks++
		if e.X != 10 || e.Y != 10 {
			t.Errorf("click at (%v, %v)", e.X, e.Y)
		}
	}))

	st.PointerDown(10, 10, MouseButtonLeft)
	st.PointerUp(10, 10)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	// Release elsewhere is not a click.
	st.PointerDown(10, 10, MouseButtonLeft)
	st.PointerUp(200, 200)
	if clicks != 1 {
		t.Errorf("clicks = %d after release outside, want 1", clicks)
	}
}

func TestStageReceivesEventsOnEmptyArea(t *testing.T) {
	st, _ := newTestStage(t)
	downs := 0
	st.On(EventMouseDown, NewHandler(func(e *Event) {
		downs++
		if e.Target != st {
			t.Error("target should be the stage")
		}
	}))
	st.PointerDown(5, 5, MouseButtonLeft)
	st.PointerUp(5, 5)
	if downs != 1 {
		t.Errorf("downs = %d, want 1", downs)
	}
}

func TestEnterLeave(t *testing.T) {
	st, layer := newTestStage(t)
	r := rectAt(0, 0, 50, 50)
	layer.Add(r)
	var events []string
	r.On("mouseenter mouseleave", NewHandler(func(e *Event) { events = append(events, e.Type) }))

	st.PointerMove(10, 10)
	st.PointerMove(20, 20)
	st.PointerMove(100, 100)

	if len(events) != 2 || events[0] != EventMouseEnter || events[1] != EventMouseLeave {
		t.Errorf("events = %v", events)
	}
}

func TestDragMovesDraggableNode(t *testing.T) {
	st, layer := newTestStage(t)
	r := rectAt(10, 10, 50, 50)
	r.SetAttr(AttrDraggable, true)
	layer.Add(r)

	var events []string
	r.On("dragstart dragmove dragend click", NewHandler(func(e *Event) { events = append(events, e.Type) }))

	before := layer.DrawRequests()
	st.PointerDown(20, 20, MouseButtonLeft)
	st.PointerMove(30, 25)
	st.PointerMove(40, 30)
	st.PointerUp(40, 30)

	if r.X() != 30 || r.Y() != 20 {
		t.Errorf("position = (%v, %v), want (30, 20)", r.X(), r.Y())
	}
	want := []string{EventDragStart, EventDragMove, EventDragMove, EventDragEnd}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, events[i], want[i])
		}
	}
	if layer.DrawRequests()-before != 3 {
		t.Errorf("drag should request 3 redraws, got %d", layer.DrawRequests()-before)
	}
}

func TestDragDeadZone(t *testing.T) {
	st, layer := newTestStage(t)
	r := rectAt(0, 0, 50, 50)
	r.SetAttr(AttrDraggable, true)
	layer.Add(r)
	st.SetDragDeadZone(10)

	st.PointerDown(5, 5, MouseButtonLeft)
	st.PointerMove(8, 8)
	if r.X() != 0 {
		t.Error("movement inside dead zone should not drag")
	}
	st.PointerUp(8, 8)
}

func TestDragInScaledParent(t *testing.T) {
	st, layer := newTestStage(t)
	g := NewNode(KindGroup)
	g.SetAttrs(map[string]any{AttrScaleX: 2, AttrScaleY: 2})
	r := rectAt(0, 0, 50, 50)
	r.SetAttr(AttrDraggable, true)
	layer.Add(g)
	g.Add(r)

	st.PointerDown(10, 10, MouseButtonLeft)
	st.PointerMove(30, 10)
	st.PointerUp(30, 10)
	if r.X() != 10 {
		t.Errorf("X = %v, want 10 (20px in a 2x parent)", r.X())
	}
}

func TestInjectedInput(t *testing.T) {
	st, layer := newTestStage(t)
	r := rectAt(0, 0, 50, 50)
	r.SetAttr(AttrDraggable, true)
	layer.Add(r)

	st.InjectDrag(10, 10, 40, 10, 4)
	if st.PendingInput() != 4 {
		t.Fatalf("queued = %d, want 4", st.PendingInput())
	}
	for st.processInjectedInput() {
	}
	// Moves land at 20 and 30; the release does not move.
	if r.X() != 20 {
		t.Errorf("X = %v, want 20", r.X())
	}

	clicks := 0
	r.On(EventClick, NewHandler(func(*Event) { clicks++ }))
	st.InjectClick(35, 5)
	for st.processInjectedInput() {
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}
