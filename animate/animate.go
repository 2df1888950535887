package animate

import (
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/arbor/scene"
)

// Tween animates numeric attributes of a node simultaneously. Create one via
// the convenience constructors (Position, Scale, Opacity, Rotation, Attrs) and
// call Update(dt) each frame.
//
// Every frame is pushed through the props applier registered for the node's
// kind, so a bound node sees tween frames as ordinary prop updates and its
// layer is redrawn. Nodes without an applier get their attributes written
// directly. If the target node is destroyed, the tween stops immediately.
//
// There is no global animation manager; callers drive Update themselves.
type Tween struct {
	keys   []string
	tweens []*gween.Tween
	target *scene.Node
	frame  map[string]any
	prev   map[string]any
	Done   bool
}

// Update advances all tweens by dt seconds and applies the resulting frame to
// the target. If the target has been destroyed, Done is set and nothing is
// written.
func (t *Tween) Update(dt float32) {
	if t.Done {
		return
	}
	if t.target == nil || t.target.IsDestroyed() {
		t.Done = true
		return
	}

	frame := make(map[string]any, len(t.keys))
	allDone := true
	for i, key := range t.keys {
		val, finished := t.tweens[i].Update(dt)
		frame[key] = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.Done = allDone

	if !t.target.ApplyProps(frame, t.prev) {
		t.target.SetAttrs(frame)
		t.target.BatchDraw()
	}
	t.prev = frame
	t.frame = frame
}

// Target returns the animated node.
func (t *Tween) Target() *scene.Node { return t.target }

// Value returns the last applied value for key, or the starting value
// before the first Update.
func (t *Tween) Value(key string) float64 {
	if v, ok := t.frame[key]; ok {
		return scene.Float(v)
	}
	if t.target == nil {
		return 0
	}
	return scene.Float(t.target.Attr(key))
}

// Reset rewinds every tween to its start. The next Update resumes animating
// even if the tween had finished.
func (t *Tween) Reset() {
	for _, tw := range t.tweens {
		tw.Reset()
	}
	t.Done = false
}

// Attrs creates a Tween that animates each key of to from the node's current
// value to the given value over duration seconds using fn.
func Attrs(node *scene.Node, to map[string]float64, duration float32, fn ease.TweenFunc) *Tween {
	keys := make([]string, 0, len(to))
	for k := range to {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Tween{keys: keys, target: node, tweens: make([]*gween.Tween, len(keys))}
	for i, k := range keys {
		from := scene.Float(node.Attr(k))
		t.tweens[i] = gween.New(float32(from), float32(to[k]), duration, fn)
	}
	return t
}

// Position animates x and y to the given coordinates.
func Position(node *scene.Node, toX, toY float64, duration float32, fn ease.TweenFunc) *Tween {
	return Attrs(node, map[string]float64{scene.AttrX: toX, scene.AttrY: toY}, duration, fn)
}

// Scale animates scaleX and scaleY.
func Scale(node *scene.Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *Tween {
	return Attrs(node, map[string]float64{scene.AttrScaleX: toSX, scene.AttrScaleY: toSY}, duration, fn)
}

// Opacity animates opacity.
func Opacity(node *scene.Node, to float64, duration float32, fn ease.TweenFunc) *Tween {
	return Attrs(node, map[string]float64{scene.AttrOpacity: to}, duration, fn)
}

// Rotation animates rotation, in degrees.
func Rotation(node *scene.Node, to float64, duration float32, fn ease.TweenFunc) *Tween {
	return Attrs(node, map[string]float64{scene.AttrRotation: to}, duration, fn)
}

// Group runs several tweens as one. It is Done once every member is.
type Group struct {
	Tweens []*Tween
	Done   bool
}

// Update advances every unfinished member by dt seconds.
func (g *Group) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for _, t := range g.Tweens {
		t.Update(dt)
		if !t.Done {
			allDone = false
		}
	}
	g.Done = allDone
}
