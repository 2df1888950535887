package arbor

import (
	"reflect"
	"testing"

	"github.com/phanxgames/arbor/scene"
)

func TestApplyPropsBatchesOneRedraw(t *testing.T) {
	_, layer := newLayer(t)
	r := scene.NewNode(scene.KindRect)
	layer.Add(r)

	props := Props{"fill": "red", "x": 10, "width": 20}
	ApplyProps(r, props, nil)
	if r.Fill() != "red" || r.X() != 10 || r.Width() != 20 {
		t.Errorf("attrs = %v", r.Attrs())
	}
	if layer.DrawRequests() != 1 {
		t.Errorf("requests = %d, want 1", layer.DrawRequests())
	}

	ApplyProps(r, Props{"fill": "red", "x": 10.0, "width": 20}, props)
	if layer.DrawRequests() != 1 {
		t.Error("unchanged props should not request a redraw")
	}
}

func TestApplyPropsNilMaps(t *testing.T) {
	_, layer := newLayer(t)
	r := scene.NewNode(scene.KindRect)
	layer.Add(r)
	ApplyProps(r, nil, nil)
	ApplyProps(r, Props{"x": 1}, nil)
	ApplyProps(r, nil, Props{"x": 1})
	if r.HasAttr("x") {
		t.Error("x should be cleared")
	}
	if layer.DrawRequests() != 2 {
		t.Errorf("requests = %d, want 2", layer.DrawRequests())
	}
}

func TestApplyPropsSkipsReserved(t *testing.T) {
	r := scene.NewNode(scene.KindRect)
	ApplyProps(r, Props{
		PropChildren:      []int{1},
		PropKey:           "k",
		PropRef:           &RefObject{},
		PropStyle:         "s",
		PropForwardedRef:  nil,
		PropUseStrictMode: true,
		"fill":            "blue",
	}, nil)
	if got := r.Attrs(); len(got) != 1 || got["fill"] != "blue" {
		t.Errorf("attrs = %v, want only fill", got)
	}
}

func TestRoundTripLaw(t *testing.T) {
	tests := []struct {
		name string
		a, b Props
	}{
		{"disjoint", Props{"x": 1, "fill": "red"}, Props{"y": 2, "stroke": "blue"}},
		{"overlap", Props{"x": 1, "y": 2}, Props{"x": 5, "y": 2, "opacity": 0.5}},
		{"to empty", Props{"x": 1, "points": []float64{0, 0, 1, 1}}, Props{}},
		{"from empty", Props{}, Props{"radius": 4}},
		{"with events", Props{"x": 1, "onClick": scene.NewHandler(nil)}, Props{"onClick": scene.NewHandler(nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := scene.NewNode(scene.KindCircle)
			ApplyProps(n, tt.a, nil)
			before := n.Attrs()

			ApplyProps(n, tt.b, tt.a)
			ApplyProps(n, tt.a, tt.b)

			if after := n.Attrs(); !reflect.DeepEqual(before, after) {
				t.Errorf("attrs after round trip = %v, want %v", after, before)
			}
			if got := len(n.Listeners("click.arbor")); got != len(handlersIn(tt.a)) {
				t.Errorf("click listeners = %d, want %d", got, len(handlersIn(tt.a)))
			}
		})
	}
}

func handlersIn(p Props) []*scene.Handler {
	var out []*scene.Handler
	for k, v := range p {
		if h := handlerOf(v); h != nil && isEvent(k) {
			out = append(out, h)
		}
	}
	return out
}

func TestEventSwapKeepsForeignListeners(t *testing.T) {
	n := scene.NewNode(scene.KindRect)
	user := scene.NewHandler(nil)
	n.On("click", user)

	h1 := scene.NewHandler(nil)
	ApplyProps(n, Props{"onClick": h1}, nil)
	ApplyProps(n, Props{}, Props{"onClick": h1})

	if got := n.Listeners("click"); len(got) != 1 || got[0] != user {
		t.Errorf("listeners = %v, want only the user handler", got)
	}
}

func TestSameHandlerNotResubscribed(t *testing.T) {
	n := scene.NewNode(scene.KindRect)
	h := scene.NewHandler(nil)
	ApplyProps(n, Props{"onClick": h}, nil)
	ApplyProps(n, Props{"onClick": h, "x": 1}, Props{"onClick": h})
	if got := len(n.Listeners("click.arbor")); got != 1 {
		t.Errorf("listeners = %d, want 1", got)
	}
}

func TestContentEventsSubscribe(t *testing.T) {
	n := scene.NewNode(scene.KindRect)
	h := scene.NewHandler(nil)
	ApplyProps(n, Props{"onContentMouseover": h}, nil)
	if got := n.Listeners("contentMouseover.arbor"); len(got) != 1 || got[0] != h {
		t.Errorf("listeners = %v", got)
	}
}

func TestStrictMode(t *testing.T) {
	t.Cleanup(func() { SetStrictMode(false) })

	tests := []struct {
		name   string
		global bool
		prop   any // value of _useStrictMode, nil to omit
		wantX  float64
	}{
		{"default keeps out-of-band value", false, nil, 50},
		{"global strict re-asserts", true, nil, 10},
		{"prop enables", false, true, 10},
		{"prop disables", true, false, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetStrictMode(tt.global)
			n := scene.NewNode(scene.KindRect)
			props := Props{"x": 10}
			if tt.prop != nil {
				props[PropUseStrictMode] = tt.prop
			}
			ApplyProps(n, props, nil)
			n.SetAttr("x", 50) // e.g. moved by a drag
			ApplyProps(n, props, props)
			if n.X() != tt.wantX {
				t.Errorf("x = %v, want %v", n.X(), tt.wantX)
			}
		})
	}
	if SetStrictMode(true); !StrictMode() {
		t.Error("StrictMode should report the flag")
	}
}

func TestAdvisoriesWarnOnce(t *testing.T) {
	buf := captureLogs(t)
	warnedID.Store(false)
	warnedZIndex.Store(false)
	warnedDragEvent.Store(false)

	n := scene.NewNode(scene.KindRect)
	ApplyProps(n, Props{"draggable": true, "x": 1, "onDragEnd": scene.NewHandler(nil)}, nil)
	if countWarnings(buf) != 0 {
		t.Fatalf("drag handler present, no warning expected: %s", buf)
	}

	for i := 0; i < 3; i++ {
		ApplyProps(scene.NewNode(scene.KindRect), Props{"id": "a"}, nil)
		ApplyProps(scene.NewNode(scene.KindRect), Props{"zIndex": 2}, nil)
		ApplyProps(scene.NewNode(scene.KindRect), Props{"draggable": true, "y": 3}, nil)
	}
	if got := countWarnings(buf); got != 3 {
		t.Errorf("warnings = %d, want 3:\n%s", got, buf)
	}
}

func TestNonHandlerEventPropWarns(t *testing.T) {
	buf := captureLogs(t)
	n := scene.NewNode(scene.KindRect)
	ApplyProps(n, Props{"onClick": func(*scene.Event) {}}, nil)
	if len(n.Listeners("click")) != 0 {
		t.Error("plain funcs should not subscribe")
	}
	if countWarnings(buf) != 1 {
		t.Errorf("expected one warning, got %s", buf)
	}
}

func TestPropsApplierRegistered(t *testing.T) {
	for _, k := range scene.Kinds() {
		if k == scene.KindStage {
			continue
		}
		if !scene.HasPropsApplier(k) {
			t.Errorf("no applier for %s", k)
		}
	}
	n := scene.NewNode(scene.KindStar)
	h := scene.NewHandler(nil)
	if !n.ApplyProps(map[string]any{"fill": "gold", "onClick": h}, nil) {
		t.Fatal("ApplyProps through the scene hook should succeed")
	}
	if n.Fill() != "gold" || len(n.Listeners("click.arbor")) != 1 {
		t.Errorf("hook should run the binding differ: %v", n.Attrs())
	}
}

func TestDraggableFalseDoesNotWarn(t *testing.T) {
	buf := captureLogs(t)
	warnedDragEvent.Store(false)

	ApplyProps(scene.NewNode(scene.KindRect), Props{"draggable": false, "x": 5}, nil)
	if countWarnings(buf) != 0 {
		t.Errorf("non-draggable node should not warn: %s", buf)
	}
	ApplyProps(scene.NewNode(scene.KindRect), Props{"draggable": true, "x": 5}, nil)
	if countWarnings(buf) != 1 {
		t.Errorf("draggable node should warn once: %s", buf)
	}
}

func TestApplyPropsUncomparableStructValue(t *testing.T) {
	_, layer := newLayer(t)
	r := scene.NewNode(scene.KindRect)
	layer.Add(r)

	type payload struct{ V any }
	old := Props{"data": payload{[]int{1}}}
	ApplyProps(r, old, nil)
	ApplyProps(r, Props{"data": payload{[]int{1}}}, old)
	if got := layer.DrawRequests(); got != 1 {
		t.Errorf("equal payloads: requests = %d, want 1", got)
	}

	ApplyProps(r, Props{"data": payload{[]int{2}}, PropUseStrictMode: true}, old)
	if got := layer.DrawRequests(); got != 2 {
		t.Errorf("changed payload: requests = %d, want 2", got)
	}
}
