package reconciler

import (
	"fmt"
	"reflect"
)

// Kind is the element type discriminator.
type Kind uint8

const (
	KindHost     Kind = iota // backed by a host instance
	KindText                 // bare text, backed by a host text instance
	KindFragment             // grouping without a host instance
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindHost:
		return "Host"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Element is an immutable description of one node of the desired tree.
type Element struct {
	Kind     Kind
	Type     string         // host type tag, KindHost only
	Key      string         // reconciliation key among siblings
	Props    map[string]any // passed to the host unchanged
	Children []*Element
	Text     string // KindText only
	// Hidden keeps the instance mounted but asks the host to hide it.
	Hidden bool
	// Ref, when it implements Ref[I] for the host's instance type, receives
	// the instance after the commit that places it and the zero instance
	// once the element is removed.
	Ref any
}

// Ref receives a host instance from the commit phase.
type Ref[I any] interface {
	SetRef(inst I)
}

// H describes a host element. "key" and "ref" entries in props become the
// element key and ref; they are left in props for the host to skip.
func H(typ string, props map[string]any, children ...*Element) *Element {
	e := &Element{Kind: KindHost, Type: typ, Props: props, Children: children}
	if k, ok := props["key"]; ok && k != nil {
		e.Key = keyString(k)
	}
	e.Ref = props["ref"]
	return e
}

// Text describes a text element.
func Text(s string) *Element {
	return &Element{Kind: KindText, Text: s}
}

// Fragment groups children without a host instance of its own. Fragments
// are flattened into their parent's child list.
func Fragment(children ...*Element) *Element {
	return &Element{Kind: KindFragment, Children: children}
}

// WithKey sets the key and returns e.
func (e *Element) WithKey(key string) *Element {
	e.Key = key
	return e
}

// WithRef sets the ref and returns e.
func (e *Element) WithRef(ref any) *Element {
	e.Ref = ref
	return e
}

// WithHidden sets Hidden and returns e.
func (e *Element) WithHidden(hidden bool) *Element {
	e.Hidden = hidden
	return e
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// flatten drops nil entries and splices fragment children in place.
func flatten(children []*Element) []*Element {
	var out []*Element
	for _, c := range children {
		switch {
		case c == nil:
		case c.Kind == KindFragment:
			out = append(out, flatten(c.Children)...)
		default:
			out = append(out, c)
		}
	}
	return out
}

// sameRef reports whether two refs are the same target. Func refs never
// are, so they run again on every commit.
func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || va.Kind() == reflect.Func {
		return false
	}
	return va.Comparable() && vb.Comparable() && a == b
}
