package arbor

import (
	"reflect"
	"sort"
	"strings"

	"github.com/phanxgames/arbor/scene"
)

// Props is one element's declared properties. Keys starting with "on" and
// an upper-case letter are event handlers and must hold a *scene.Handler.
// Every other key not in the skip set is forwarded as a node attribute.
type Props map[string]any

// Reserved prop names that are never forwarded to the scene graph.
const (
	PropChildren      = "children"
	PropKey           = "key"
	PropRef           = "ref"
	PropStyle         = "style"
	PropForwardedRef  = "forwardedRef"
	PropUseStrictMode = "_useStrictMode"
)

// namespace is the listener namespace owned by the binding. Listeners
// outside it are never touched.
const namespace = "arbor"

var skipProps = map[string]bool{
	PropChildren:      true,
	PropKey:           true,
	PropRef:           true,
	PropStyle:         true,
	PropForwardedRef:  true,
	PropUseStrictMode: true,
}

// isEvent reports whether key names an event handler prop.
func isEvent(key string) bool {
	return len(key) > 2 && key[0] == 'o' && key[1] == 'n' && key[2] >= 'A' && key[2] <= 'Z'
}

// eventName maps a handler prop to the scene event it subscribes to:
// "onClick" → "click", "onDragEnd" → "dragend",
// "onContentMouseover" → "contentMouseover".
func eventName(key string) string {
	name := strings.ToLower(key[2:])
	if strings.HasPrefix(name, "content") && len(name) > len("content") {
		rest := name[len("content"):]
		return "content" + strings.ToUpper(rest[:1]) + rest[1:]
	}
	return name
}

// selector returns the namespaced listener selector for an event prop.
func selector(key string) string {
	return eventName(key) + "." + namespace
}

func handlerOf(v any) *scene.Handler {
	h, _ := v.(*scene.Handler)
	return h
}

func sortedKeys(p Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sameValue reports whether two prop values are equal for diffing. Numbers
// compare by value across types, slices and maps by content, other
// comparable values with ==. Functions are never equal.
func sameValue(a, b any) bool {
	if scene.IsNumber(a) && scene.IsNumber(b) {
		return scene.Float(a) == scene.Float(b)
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	switch ta.Kind() {
	case reflect.Func:
		return false
	case reflect.Slice, reflect.Map:
		return reflect.DeepEqual(a, b)
	}
	// Comparable checks the dynamic value: a struct with an interface
	// field holding a slice has a comparable type but panics on ==.
	if reflect.ValueOf(a).Comparable() && reflect.ValueOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
