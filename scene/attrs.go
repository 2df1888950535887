package scene

import (
	"reflect"
	"sort"
)

// Common attribute keys.
const (
	AttrX           = "x"
	AttrY           = "y"
	AttrWidth       = "width"
	AttrHeight      = "height"
	AttrRotation    = "rotation" // degrees
	AttrScaleX      = "scaleX"
	AttrScaleY      = "scaleY"
	AttrSkewX       = "skewX"
	AttrSkewY       = "skewY"
	AttrOffsetX     = "offsetX"
	AttrOffsetY     = "offsetY"
	AttrOpacity     = "opacity"
	AttrVisible     = "visible"
	AttrListening   = "listening"
	AttrDraggable   = "draggable"
	AttrName        = "name"
	AttrID          = "id"
	AttrFill        = "fill"
	AttrStroke      = "stroke"
	AttrStrokeWidth = "strokeWidth"
	AttrRadius      = "radius"
	AttrText        = "text"
	AttrFontSize    = "fontSize"
	AttrPoints      = "points"
	AttrClosed      = "closed"
	AttrImage       = "image"
)

// defaults holds the value Attr reports for an unset key. Keys missing here
// report nil.
var defaults = map[string]any{
	AttrX:           0.0,
	AttrY:           0.0,
	AttrWidth:       0.0,
	AttrHeight:      0.0,
	AttrRotation:    0.0,
	AttrScaleX:      1.0,
	AttrScaleY:      1.0,
	AttrSkewX:       0.0,
	AttrSkewY:       0.0,
	AttrOffsetX:     0.0,
	AttrOffsetY:     0.0,
	AttrOpacity:     1.0,
	AttrVisible:     true,
	AttrListening:   true,
	AttrDraggable:   false,
	AttrName:        "",
	AttrID:          "",
	AttrFill:        "",
	AttrStroke:      "",
	AttrStrokeWidth: 2.0,
	AttrRadius:      0.0,
	AttrText:        "",
	AttrFontSize:    12.0,
	AttrClosed:      false,
}

// Default returns the value an unset attribute reports.
func Default(key string) any {
	return defaults[key]
}

// Attr returns the stored value for key, or the key's default when unset.
func (n *Node) Attr(key string) any {
	if v, ok := n.attrs[key]; ok {
		return v
	}
	return defaults[key]
}

// HasAttr reports whether key has an explicitly stored value.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.attrs[key]
	return ok
}

// Attrs returns a copy of the explicitly stored attributes.
func (n *Node) Attrs() map[string]any {
	out := make(map[string]any, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// SetAttr stores value under key. A nil value clears the key so the default
// applies again. Listeners for "<key>Change" fire when the reported value
// changes identity.
func (n *Node) SetAttr(key string, value any) {
	checkDestroyed(n, "SetAttr")
	old := n.Attr(key)
	if value == nil {
		delete(n.attrs, key)
	} else {
		if n.attrs == nil {
			n.attrs = make(map[string]any)
		}
		n.attrs[key] = value
	}
	if len(n.listeners) == 0 {
		return
	}
	evtType := key + "Change"
	if _, ok := n.listeners[evtType]; !ok {
		return
	}
	cur := n.Attr(key)
	if comparableEqual(old, cur) {
		return
	}
	n.Fire(evtType, &Event{Old: old, New: cur}, false)
}

// SetAttrs stores every entry of attrs, in sorted key order.
func (n *Node) SetAttrs(attrs map[string]any) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.SetAttr(k, attrs[k])
	}
}

// --- Typed getters ---

// X returns the x position relative to the parent.
func (n *Node) X() float64 { return Float(n.Attr(AttrX)) }

// Y returns the y position relative to the parent.
func (n *Node) Y() float64 { return Float(n.Attr(AttrY)) }

// Width returns the width attribute.
func (n *Node) Width() float64 { return Float(n.Attr(AttrWidth)) }

// Height returns the height attribute.
func (n *Node) Height() float64 { return Float(n.Attr(AttrHeight)) }

// Rotation returns the rotation in degrees.
func (n *Node) Rotation() float64 { return Float(n.Attr(AttrRotation)) }

// ScaleX returns the horizontal scale.
func (n *Node) ScaleX() float64 { return Float(n.Attr(AttrScaleX)) }

// ScaleY returns the vertical scale.
func (n *Node) ScaleY() float64 { return Float(n.Attr(AttrScaleY)) }

// Opacity returns the opacity in [0, 1].
func (n *Node) Opacity() float64 { return Float(n.Attr(AttrOpacity)) }

// Radius returns the radius attribute.
func (n *Node) Radius() float64 { return Float(n.Attr(AttrRadius)) }

// StrokeWidth returns the stroke width.
func (n *Node) StrokeWidth() float64 { return Float(n.Attr(AttrStrokeWidth)) }

// FontSize returns the font size.
func (n *Node) FontSize() float64 { return Float(n.Attr(AttrFontSize)) }

// Fill returns the fill color string, or "" when unset.
func (n *Node) Fill() string { return String(n.Attr(AttrFill)) }

// Stroke returns the stroke color string, or "" when unset.
func (n *Node) Stroke() string { return String(n.Attr(AttrStroke)) }

// Name returns the name attribute.
func (n *Node) Name() string { return String(n.Attr(AttrName)) }

// Text returns the text attribute.
func (n *Node) Text() string { return String(n.Attr(AttrText)) }

// Visible reports the visible attribute.
func (n *Node) Visible() bool { return Bool(n.Attr(AttrVisible)) }

// Listening reports whether the node takes part in hit testing.
func (n *Node) Listening() bool { return Bool(n.Attr(AttrListening)) }

// Draggable reports the draggable attribute.
func (n *Node) Draggable() bool { return Bool(n.Attr(AttrDraggable)) }

// Points returns the flat [x0, y0, x1, y1, ...] point list.
func (n *Node) Points() []float64 { return Floats(n.Attr(AttrPoints)) }

// IsVisibleInTree reports whether this node and every ancestor are visible.
func (n *Node) IsVisibleInTree() bool {
	for p := n; p != nil; p = p.parent {
		if !p.Visible() {
			return false
		}
	}
	return true
}

// --- Value conversion ---

// Float converts a numeric attribute value to float64. Non-numeric values
// convert to 0.
func Float(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint8:
		return float64(x)
	case uint32:
		return float64(x)
	}
	return 0
}

// IsNumber reports whether v holds one of the numeric types Float accepts.
func IsNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64, uint8, uint32:
		return true
	}
	return false
}

// String converts a string attribute value; other types convert to "".
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Bool converts a boolean attribute value; other types convert to false.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

// Floats converts a point list held as []float64, []float32 or []int.
func Floats(v any) []float64 {
	switch x := v.(type) {
	case []float64:
		return x
	case []float32:
		out := make([]float64, len(x))
		for i, f := range x {
			out[i] = float64(f)
		}
		return out
	case []int:
		out := make([]float64, len(x))
		for i, f := range x {
			out[i] = float64(f)
		}
		return out
	}
	return nil
}

// comparableEqual compares two attribute values without panicking on
// uncomparable dynamic types. Numbers compare by value; slices, maps, funcs
// and values holding one in an interface field never compare equal.
func comparableEqual(a, b any) bool {
	if IsNumber(a) && IsNumber(b) {
		return Float(a) == Float(b)
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta == nil {
		return true
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}
