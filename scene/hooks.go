package scene

// PropsApplier applies a declarative property set to a node, given the set
// that was applied before. Bindings register one per kind so that helpers
// such as tweens can push property frames through the binding's own diffing
// instead of writing attributes directly.
type PropsApplier func(n *Node, newProps, oldProps map[string]any)

var propsAppliers [kindCount]PropsApplier

// RegisterPropsApplier installs fn for kind, replacing any previous applier.
// A nil fn removes it.
func RegisterPropsApplier(kind Kind, fn PropsApplier) {
	if kind >= kindCount {
		panic("scene: unknown node kind")
	}
	propsAppliers[kind] = fn
}

// HasPropsApplier reports whether an applier is registered for kind.
func HasPropsApplier(kind Kind) bool {
	return kind < kindCount && propsAppliers[kind] != nil
}

// ApplyProps runs the applier registered for the node's kind. It returns
// false, leaving the node untouched, when none is registered.
func (n *Node) ApplyProps(newProps, oldProps map[string]any) bool {
	fn := propsAppliers[n.kind]
	if fn == nil {
		return false
	}
	fn(n, newProps, oldProps)
	return true
}
