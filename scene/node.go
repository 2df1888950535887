package scene

// nodeIDCounter is a plain counter (no atomic, the scene graph is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. One flat struct serves every kind; the
// kind decides which attributes are drawn and whether children are allowed.
//
// A node's z-index is its position in the parent's child list: the last
// child is drawn last and hit first.
type Node struct {
	ID   uint32
	kind Kind

	parent   *Node
	children []*Node

	attrs     map[string]any
	listeners map[string][]listener

	// surface is non-nil for stages and layers.
	surface *surface
	// stage is non-nil for stages only.
	stage *stageState

	destroyed bool
}

// NewNode creates an unattached node of the given kind with no attributes.
// Stages must be created with NewStage.
func NewNode(kind Kind) *Node {
	if kind >= kindCount {
		panic("scene: unknown node kind")
	}
	if kind == KindStage {
		panic("scene: stages must be created with NewStage")
	}
	return newNode(kind)
}

func newNode(kind Kind) *Node {
	n := &Node{ID: nextNodeID(), kind: kind}
	if kind.IsSurface() {
		n.surface = &surface{}
	}
	return n
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// --- Tree manipulation ---

// Add appends children to this node. A child that already has a parent is
// removed from it first. Panics if this node cannot hold children, if a
// child is nil or destroyed, or if adding would create a cycle.
func (n *Node) Add(children ...*Node) {
	if !n.kind.IsContainer() {
		panic("scene: " + n.kind.String() + " cannot have children")
	}
	checkDestroyed(n, "Add (parent)")
	for _, child := range children {
		if child == nil {
			panic("scene: cannot add nil child")
		}
		checkDestroyed(child, "Add (child)")
		if child.kind == KindStage {
			panic("scene: a stage cannot be added to another node")
		}
		if isAncestor(child, n) {
			panic("scene: adding child would create a cycle")
		}
		if child.parent != nil {
			child.parent.removeChildByPtr(child)
		}
		child.parent = n
		n.children = append(n.children, child)
		if debugEnabled() {
			debugCheckTreeDepth(child)
			debugCheckChildCount(n)
		}
	}
}

// Remove detaches this node from its parent. The node stays usable and can
// be added elsewhere. No-op if the node has no parent.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	n.parent.removeChildByPtr(n)
	n.parent = nil
}

// Destroy detaches the node, destroys all descendants, drops every listener
// and marks the node destroyed. A destroyed stage also leaves the stage
// registry and its window. Destroying twice is a no-op.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	n.Remove()
	n.destroy()
}

func (n *Node) destroy() {
	for _, child := range n.children {
		child.parent = nil
		child.destroy()
	}
	if n.stage != nil {
		unregisterStage(n)
		if n.stage.window != nil {
			n.stage.window.detach(n)
		}
		n.stage = nil
	}
	if n.surface != nil {
		n.surface.release()
		n.surface = nil
	}
	n.destroyed = true
	n.children = nil
	n.parent = nil
	n.listeners = nil
	n.attrs = nil
}

// IsDestroyed reports whether Destroy has been called on this node or an
// ancestor it was attached to at the time.
func (n *Node) IsDestroyed() bool {
	return n.destroyed
}

// Parent returns the node's parent, or nil when unattached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// ZIndex returns the node's position among its siblings, or 0 when unattached.
func (n *Node) ZIndex() int {
	if n.parent == nil {
		return 0
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return 0
}

// SetZIndex moves the node to index among its siblings.
// Panics if the node has no parent or index is out of range.
func (n *Node) SetZIndex(index int) {
	p := n.parent
	if p == nil {
		panic("scene: SetZIndex on a node without parent")
	}
	nc := len(p.children)
	if index < 0 || index >= nc {
		panic("scene: z-index out of range")
	}
	oldIndex := n.ZIndex()
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(p.children[oldIndex:], p.children[oldIndex+1:index+1])
	} else {
		copy(p.children[index+1:], p.children[index:oldIndex])
	}
	p.children[index] = n
}

// MoveToTop moves the node to the end of its parent's child list so it is
// drawn above its siblings. Returns false if the node has no parent.
func (n *Node) MoveToTop() bool {
	if n.parent == nil {
		return false
	}
	n.SetZIndex(len(n.parent.children) - 1)
	return true
}

// Layer returns the nearest layer at or above this node, or nil.
func (n *Node) Layer() *Node {
	for p := n; p != nil; p = p.parent {
		if p.kind == KindLayer || p.kind == KindFastLayer {
			return p
		}
	}
	return nil
}

// Stage returns the stage this node is attached to, or nil.
func (n *Node) Stage() *Node {
	for p := n; p != nil; p = p.parent {
		if p.kind == KindStage {
			return p
		}
	}
	return nil
}

// Hide sets visible to false.
func (n *Node) Hide() {
	n.SetAttr(AttrVisible, false)
}

// Show sets visible to true.
func (n *Node) Show() {
	n.SetAttr(AttrVisible, true)
}

// FindOne returns the first descendant (depth first, in z order) whose name
// attribute equals name, or nil.
func (n *Node) FindOne(name string) *Node {
	for _, c := range n.children {
		if c.Name() == name {
			return c
		}
		if found := c.FindOne(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
