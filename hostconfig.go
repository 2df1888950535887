package arbor

import (
	"fmt"
	"time"

	"github.com/phanxgames/arbor/reconciler"
	"github.com/phanxgames/arbor/scene"
)

// Container is the reconciler's root handle: the stage node a Stage owns.
type Container struct {
	node *scene.Node
}

// Node returns the stage node.
func (c *Container) Node() *scene.Node {
	return c.node
}

type hostContext struct{}

// rootContext is shared by every tree; the binding keeps no per-subtree
// state.
var rootContext reconciler.HostContext = hostContext{}

// HostConfig maps reconciler callbacks onto scene graph operations.
// The zero value is ready to use.
type HostConfig struct {
	// Clock backs Now. Nil uses time.Now.
	Clock func() time.Time
}

var _ reconciler.HostConfig[*scene.Node, *Container] = (*HostConfig)(nil)

// CreateInstance delegates to the package-level CreateInstance.
func (h *HostConfig) CreateInstance(typ string, props map[string]any, _ *Container, _ reconciler.HostContext) (*scene.Node, error) {
	return CreateInstance(typ, props)
}

// CreateTextInstance always fails: text is drawn by Text nodes.
func (h *HostConfig) CreateTextInstance(text string, _ *Container, _ reconciler.HostContext) (*scene.Node, error) {
	return nil, fmt.Errorf("%w: %q", ErrTextUnsupported, text)
}

// AppendInitialChild attaches child while parent is still being built.
// A nil child stands for a bare text value and is rejected.
func (h *HostConfig) AppendInitialChild(parent, child *scene.Node) error {
	if child == nil {
		return ErrTextChild
	}
	if err := checkChild(parent, child); err != nil {
		return err
	}
	appendChild(parent, child)
	return nil
}

// FinalizeInitialChildren never asks for CommitMount; element refs are
// attached by the reconciler.
func (h *HostConfig) FinalizeInitialChildren(*scene.Node, string, map[string]any) bool {
	return false
}

// PrepareUpdate always asks for CommitUpdate; ApplyProps does the diffing.
func (h *HostConfig) PrepareUpdate(*scene.Node, string, map[string]any, map[string]any) bool {
	return true
}

func (h *HostConfig) ShouldSetTextContent(string, map[string]any) bool {
	return false
}

func (h *HostConfig) ShouldDeprioritizeSubtree(string, map[string]any) bool {
	return false
}

func (h *HostConfig) GetRootHostContext(*Container) reconciler.HostContext {
	return rootContext
}

func (h *HostConfig) GetChildHostContext(reconciler.HostContext, string, *Container) reconciler.HostContext {
	return rootContext
}

// GetPublicInstance returns the node itself.
func (h *HostConfig) GetPublicInstance(inst *scene.Node) any {
	return inst
}

func (h *HostConfig) PrepareForCommit(*Container) {}

func (h *HostConfig) ResetAfterCommit(*Container) {}

// AppendChild moves child to the top when it is already a child of parent
// and attaches it otherwise. Either way parent's surface is asked to
// redraw.
func (h *HostConfig) AppendChild(parent, child *scene.Node) error {
	if err := checkChild(parent, child); err != nil {
		return err
	}
	appendChild(parent, child)
	parent.BatchDraw()
	return nil
}

// AppendChildToContainer is AppendChild on the stage node.
func (h *HostConfig) AppendChildToContainer(c *Container, child *scene.Node) error {
	return h.AppendChild(c.node, child)
}

// InsertBefore places child immediately before before in parent's
// children. The child is re-added at the end and then moved to the index
// before holds after that re-add.
func (h *HostConfig) InsertBefore(parent, child, before *scene.Node) error {
	if child == before {
		return fmt.Errorf("%w (node %d)", ErrInsertBeforeSelf, child.ID)
	}
	if before.Parent() != parent {
		return fmt.Errorf("%w: node %d under node %d", ErrNotAChild, before.ID, parent.ID)
	}
	if err := checkChild(parent, child); err != nil {
		return err
	}
	child.Remove()
	parent.Add(child)
	child.SetZIndex(before.ZIndex())
	parent.BatchDraw()
	return nil
}

// InsertInContainerBefore is InsertBefore on the stage node.
func (h *HostConfig) InsertInContainerBefore(c *Container, child, before *scene.Node) error {
	return h.InsertBefore(c.node, child, before)
}

// RemoveChild drops the binding's listeners from child, destroys it with
// its subtree and asks parent's surface to redraw.
func (h *HostConfig) RemoveChild(parent, child *scene.Node) error {
	child.Off("." + namespace)
	child.Destroy()
	parent.BatchDraw()
	return nil
}

// RemoveChildFromContainer is RemoveChild on the stage node.
func (h *HostConfig) RemoveChildFromContainer(c *Container, child *scene.Node) error {
	return h.RemoveChild(c.node, child)
}

// CommitUpdate applies the prop diff.
func (h *HostConfig) CommitUpdate(inst *scene.Node, _ string, oldProps, newProps map[string]any) error {
	ApplyProps(inst, newProps, oldProps)
	return nil
}

func (h *HostConfig) CommitMount(*scene.Node, string, map[string]any) {}

func (h *HostConfig) CommitTextUpdate(_ *scene.Node, _, newText string) error {
	return fmt.Errorf("%w: %q", ErrTextUnsupported, newText)
}

func (h *HostConfig) ResetTextContent(*scene.Node) {}

// HideInstance hides inst and requests a redraw.
func (h *HostConfig) HideInstance(inst *scene.Node) error {
	inst.Hide()
	inst.BatchDraw()
	return nil
}

// UnhideInstance shows inst unless props set visible to false.
func (h *HostConfig) UnhideInstance(inst *scene.Node, props map[string]any) error {
	if v, ok := props[scene.AttrVisible].(bool); ok && !v {
		return nil
	}
	inst.Show()
	inst.BatchDraw()
	return nil
}

func (h *HostConfig) HideTextInstance(*scene.Node) error {
	return ErrTextUnsupported
}

func (h *HostConfig) UnhideTextInstance(_ *scene.Node, text string) error {
	return fmt.Errorf("%w: %q", ErrTextUnsupported, text)
}

// Now returns the configured clock's time.
func (h *HostConfig) Now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}

func appendChild(parent, child *scene.Node) {
	if child.Parent() == parent {
		child.MoveToTop()
		return
	}
	parent.Add(child)
}

// checkChild enforces the scene graph's nesting rules: layers live
// directly under the stage and nothing else does, and only containers hold
// children.
func checkChild(parent, child *scene.Node) error {
	pk, ck := parent.Kind(), child.Kind()
	layer := ck == scene.KindLayer || ck == scene.KindFastLayer
	switch {
	case !pk.IsContainer():
		return fmt.Errorf("%w: %s cannot have children", ErrInvalidChild, pk)
	case pk == scene.KindStage && !layer:
		return fmt.Errorf("%w: a stage holds only layers, got %s", ErrInvalidChild, ck)
	case pk != scene.KindStage && layer:
		return fmt.Errorf("%w: %s must be added to a stage, not %s", ErrInvalidChild, ck, pk)
	}
	return nil
}
