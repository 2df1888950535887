package animate

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/arbor/scene"
)

// onLayer returns a node of kind attached to a layer on a headless stage.
func onLayer(t *testing.T, kind scene.Kind) (*scene.Node, *scene.Node) {
	t.Helper()
	st := scene.NewStage(scene.StageConfig{Width: 200, Height: 200})
	t.Cleanup(st.Destroy)
	layer := scene.NewNode(scene.KindLayer)
	st.Add(layer)
	n := scene.NewNode(kind)
	layer.Add(n)
	return n, layer
}

func TestPositionReachesTarget(t *testing.T) {
	n, _ := onLayer(t, scene.KindRect)
	n.SetAttrs(map[string]any{"x": 10.0, "y": 20.0})

	tw := Position(n, 100, 200, 1.0, ease.Linear)
	tw.Update(0.5)
	tw.Update(0.5)

	if !tw.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(n.X()-100) > 0.5 {
		t.Errorf("X = %f, want ~100", n.X())
	}
	if math.Abs(n.Y()-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", n.Y())
	}
}

func TestScaleStartsFromDefault(t *testing.T) {
	n, _ := onLayer(t, scene.KindRect)

	tw := Scale(n, 3, 3, 1.0, ease.Linear)
	tw.Update(0.5)

	// Unset scale defaults to 1, so halfway is 2.
	if math.Abs(n.ScaleX()-2) > 0.05 {
		t.Errorf("ScaleX = %f, want ~2", n.ScaleX())
	}
	if got := tw.Value("scaleY"); math.Abs(got-2) > 0.05 {
		t.Errorf("Value(scaleY) = %f, want ~2", got)
	}
}

func TestOpacityAndRotation(t *testing.T) {
	tests := []struct {
		name string
		make func(*scene.Node) *Tween
		key  string
		want float64
	}{
		{"opacity", func(n *scene.Node) *Tween { return Opacity(n, 0, 1, ease.Linear) }, "opacity", 0},
		{"rotation", func(n *scene.Node) *Tween { return Rotation(n, 90, 1, ease.Linear) }, "rotation", 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := onLayer(t, scene.KindCircle)
			tw := tt.make(n)
			tw.Update(1)
			if !tw.Done {
				t.Fatal("expected Done")
			}
			if got := scene.Float(n.Attr(tt.key)); math.Abs(got-tt.want) > 0.01 {
				t.Errorf("%s = %f, want %f", tt.key, got, tt.want)
			}
		})
	}
}

func TestFallbackRequestsRedraw(t *testing.T) {
	n, layer := onLayer(t, scene.KindRect)

	tw := Position(n, 50, 50, 1.0, ease.Linear)
	tw.Update(0.25)
	tw.Update(0.25)

	if got := layer.DrawRequests(); got != 2 {
		t.Errorf("DrawRequests = %d, want 2", got)
	}
}

func TestFramesGoThroughApplier(t *testing.T) {
	t.Cleanup(func() { scene.RegisterPropsApplier(scene.KindWedge, nil) })

	type call struct{ newProps, oldProps map[string]any }
	var calls []call
	scene.RegisterPropsApplier(scene.KindWedge, func(n *scene.Node, newProps, oldProps map[string]any) {
		calls = append(calls, call{newProps, oldProps})
		n.SetAttrs(newProps)
	})

	n, _ := onLayer(t, scene.KindWedge)
	tw := Opacity(n, 0, 1.0, ease.Linear)
	tw.Update(0.5)
	tw.Update(0.5)

	if len(calls) != 2 {
		t.Fatalf("applier calls = %d, want 2", len(calls))
	}
	if calls[0].oldProps != nil {
		t.Errorf("first frame old props = %v, want nil", calls[0].oldProps)
	}
	if got := scene.Float(calls[1].oldProps["opacity"]); math.Abs(got-0.5) > 0.05 {
		t.Errorf("second frame old opacity = %f, want ~0.5", got)
	}
	if got := scene.Float(calls[1].newProps["opacity"]); math.Abs(got) > 0.01 {
		t.Errorf("second frame opacity = %f, want 0", got)
	}
}

func TestDoneFlagTransition(t *testing.T) {
	n, _ := onLayer(t, scene.KindRect)
	tw := Position(n, 50, 50, 0.5, ease.Linear)

	if tw.Done {
		t.Fatal("should not be Done at start")
	}
	tw.Update(0.25)
	if tw.Done {
		t.Fatal("should not be Done partway through")
	}
	tw.Update(0.25)
	if !tw.Done {
		t.Fatal("should be Done after full duration")
	}
	tw.Update(0.1)
	if !tw.Done {
		t.Fatal("should remain Done")
	}
}

func TestDestroyedNodeStops(t *testing.T) {
	n, _ := onLayer(t, scene.KindRect)
	tw := Position(n, 100, 100, 1.0, ease.Linear)
	tw.Update(0.1)

	n.Destroy()
	tw.Update(0.1)

	if !tw.Done {
		t.Fatal("expected Done after target destroyed")
	}
}

func TestReset(t *testing.T) {
	n, _ := onLayer(t, scene.KindRect)
	tw := Position(n, 100, 0, 1.0, ease.Linear)
	tw.Update(1)
	if !tw.Done {
		t.Fatal("expected Done")
	}

	tw.Reset()
	if tw.Done {
		t.Fatal("Reset should clear Done")
	}
	tw.Update(0.5)
	if math.Abs(n.X()-50) > 0.5 {
		t.Errorf("X after reset = %f, want ~50", n.X())
	}
}

func TestEasingCurvesDiffer(t *testing.T) {
	a, _ := onLayer(t, scene.KindRect)
	b, _ := onLayer(t, scene.KindRect)

	Position(a, 100, 0, 1.0, ease.Linear).Update(0.5)
	Position(b, 100, 0, 1.0, ease.OutCubic).Update(0.5)

	if math.Abs(a.X()-b.X()) < 1 {
		t.Errorf("curves should differ at midpoint: linear=%f cubic=%f", a.X(), b.X())
	}
}

func TestGroup(t *testing.T) {
	n, _ := onLayer(t, scene.KindRect)
	g := &Group{Tweens: []*Tween{
		Position(n, 10, 10, 0.5, ease.Linear),
		Opacity(n, 0, 1.0, ease.Linear),
	}}

	g.Update(0.5)
	if g.Done {
		t.Fatal("group should wait for its longest member")
	}
	if !g.Tweens[0].Done {
		t.Error("position tween should be done")
	}
	g.Update(0.5)
	if !g.Done {
		t.Fatal("group should be Done")
	}
}
