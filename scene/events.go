package scene

import (
	"sort"
	"strings"
)

// Handler wraps an event callback. Handlers are compared by pointer, so a
// handler created once and reused is recognised as the same subscription.
type Handler struct {
	fn func(*Event)
}

// NewHandler wraps fn in a Handler.
func NewHandler(fn func(*Event)) *Handler {
	return &Handler{fn: fn}
}

// Handle invokes the wrapped callback. A nil handler or callback is a no-op.
func (h *Handler) Handle(e *Event) {
	if h == nil || h.fn == nil {
		return
	}
	h.fn(e)
}

// Event carries data for a fired event.
type Event struct {
	// Type is the event name without namespace, e.g. "click".
	Type string
	// Target is the node the event originated on.
	Target *Node
	// CurrentTarget is the node whose listeners are running.
	CurrentTarget *Node

	// Pointer position in stage coordinates (pointer and drag events).
	X, Y      float64
	Button    MouseButton
	PointerID int

	// Old and New hold attribute values for "<attr>Change" events.
	Old, New any

	cancelBubble bool
}

// StopPropagation prevents the event from reaching ancestors.
func (e *Event) StopPropagation() {
	e.cancelBubble = true
}

type listener struct {
	ns string
	h  *Handler
}

// parseEvent splits "click.ns" into ("click", "ns").
func parseEvent(s string) (typ, ns string) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// On subscribes h to each space-separated event in evtStr. An event may
// carry a namespace suffix ("click.mine") so it can later be removed as a
// group with Off(".mine"). A nil handler is ignored.
func (n *Node) On(evtStr string, h *Handler) {
	if h == nil {
		return
	}
	checkDestroyed(n, "On")
	for _, part := range strings.Fields(evtStr) {
		typ, ns := parseEvent(part)
		if typ == "" {
			continue
		}
		if n.listeners == nil {
			n.listeners = make(map[string][]listener)
		}
		n.listeners[typ] = append(n.listeners[typ], listener{ns: ns, h: h})
	}
}

// Off removes subscriptions matching each space-separated selector in
// evtStr: "click" removes every click listener, "click.ns" removes click
// listeners in namespace ns, ".ns" removes every listener in ns.
func (n *Node) Off(evtStr string) {
	n.off(evtStr, nil)
}

// OffHandler is like Off but only removes subscriptions of h.
func (n *Node) OffHandler(evtStr string, h *Handler) {
	if h == nil {
		return
	}
	n.off(evtStr, h)
}

func (n *Node) off(evtStr string, h *Handler) {
	for _, part := range strings.Fields(evtStr) {
		typ, ns := parseEvent(part)
		if typ == "" {
			for t := range n.listeners {
				n.removeListeners(t, ns, h)
			}
			continue
		}
		n.removeListeners(typ, ns, h)
	}
}

func (n *Node) removeListeners(typ, ns string, h *Handler) {
	ls := n.listeners[typ]
	kept := ls[:0]
	for _, l := range ls {
		if (ns == "" || l.ns == ns) && (h == nil || l.h == h) {
			continue
		}
		kept = append(kept, l)
	}
	for i := len(kept); i < len(ls); i++ {
		ls[i] = listener{}
	}
	if len(kept) == 0 {
		delete(n.listeners, typ)
		return
	}
	n.listeners[typ] = kept
}

// Listeners returns the handlers matching selector, using the same selector
// syntax as Off. Order follows subscription order per event type.
func (n *Node) Listeners(selector string) []*Handler {
	typ, ns := parseEvent(selector)
	var out []*Handler
	collect := func(ls []listener) {
		for _, l := range ls {
			if ns == "" || l.ns == ns {
				out = append(out, l.h)
			}
		}
	}
	if typ != "" {
		collect(n.listeners[typ])
		return out
	}
	for _, t := range sortedKeys(n.listeners) {
		collect(n.listeners[t])
	}
	return out
}

// Fire runs the listeners for typ on this node, then on each ancestor when
// bubble is true, until a handler calls StopPropagation. A nil e is
// replaced by an empty event. Target defaults to n.
func (n *Node) Fire(typ string, e *Event, bubble bool) {
	if e == nil {
		e = &Event{}
	}
	e.Type = typ
	if e.Target == nil {
		e.Target = n
	}
	for cur := n; cur != nil; cur = cur.parent {
		e.CurrentTarget = cur
		// Copy so handlers may unsubscribe while running.
		ls := append([]listener(nil), cur.listeners[typ]...)
		for _, l := range ls {
			l.h.Handle(e)
		}
		if !bubble || e.cancelBubble {
			return
		}
	}
}

func sortedKeys(m map[string][]listener) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
