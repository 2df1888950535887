package arbor

import (
	"sync/atomic"

	"github.com/phanxgames/arbor/scene"
)

var strictMode atomic.Bool

// SetStrictMode sets the process-wide strict flag. In strict mode every
// render re-asserts its props over values changed out of band, such as a
// position moved by dragging. A "_useStrictMode" bool prop overrides the
// flag for one node.
func SetStrictMode(on bool) {
	strictMode.Store(on)
}

// StrictMode reports the process-wide strict flag.
func StrictMode() bool {
	return strictMode.Load()
}

// One-time advisory flags.
var (
	warnedID        atomic.Bool
	warnedZIndex    atomic.Bool
	warnedDragEvent atomic.Bool
)

func init() {
	for _, k := range scene.Kinds() {
		if k == scene.KindStage {
			continue
		}
		scene.RegisterPropsApplier(k, func(n *scene.Node, newProps, oldProps map[string]any) {
			ApplyProps(n, newProps, oldProps)
		})
	}
}

// ApplyProps moves node from oldProps to newProps.
//
// Handlers whose reference changed are swapped inside the binding's
// listener namespace. Attributes present only in oldProps are cleared back
// to their defaults. Attributes whose value changed are set together with
// a single SetAttrs call followed by one BatchDraw. In strict mode a value
// that equals the old prop is still written when the node's live value
// differs. Nil maps are treated as empty.
func ApplyProps(node *scene.Node, newProps, oldProps Props) {
	warnAdvisories(newProps)

	strict := strictMode.Load()
	if v, ok := newProps[PropUseStrictMode].(bool); ok {
		strict = v
	}

	batch := make(map[string]any)
	for _, key := range sortedKeys(oldProps) {
		if skipProps[key] {
			continue
		}
		if isEvent(key) {
			old := handlerOf(oldProps[key])
			if old != nil && old != handlerOf(newProps[key]) {
				node.OffHandler(selector(key), old)
			}
			continue
		}
		if _, ok := newProps[key]; !ok {
			batch[key] = nil
		}
	}

	for _, key := range sortedKeys(newProps) {
		if skipProps[key] {
			continue
		}
		val := newProps[key]
		if isEvent(key) {
			h := handlerOf(val)
			if h != nil && h != handlerOf(oldProps[key]) {
				node.On(selector(key), h)
			} else if h == nil && val != nil {
				Logger().Warn("event prop ignored: value is not a *scene.Handler", "prop", key)
			}
			continue
		}
		if !sameValue(val, oldProps[key]) || (strict && !sameValue(val, node.Attr(key))) {
			batch[key] = val
		}
	}

	if len(batch) > 0 {
		node.SetAttrs(batch)
		node.BatchDraw()
	}
}

func warnAdvisories(p Props) {
	if _, ok := p[scene.AttrID]; ok && warnedID.CompareAndSwap(false, true) {
		Logger().Warn(`the "id" prop is set on a node; find nodes by "name" or keep a Ref instead`)
	}
	if _, ok := p["zIndex"]; ok && warnedZIndex.CompareAndSwap(false, true) {
		Logger().Warn(`the "zIndex" prop is set on a node; it has no effect, order elements in the tree instead`)
	}
	if !scene.Bool(p[scene.AttrDraggable]) {
		return
	}
	_, hasX := p[scene.AttrX]
	_, hasY := p[scene.AttrY]
	hasEvents := p["onDragMove"] != nil || p["onDragEnd"] != nil
	if (hasX || hasY) && !hasEvents && warnedDragEvent.CompareAndSwap(false, true) {
		Logger().Warn("a draggable node has x/y props but no onDragMove or onDragEnd handler; " +
			"the next render will reset it unless the handlers store the new position")
	}
}
