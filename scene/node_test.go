package scene

import "testing"

// --- Constructors ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode(KindRect)
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Kind() != KindRect {
		t.Errorf("Kind = %v, want Rect", n.Kind())
	}
	if len(n.Attrs()) != 0 {
		t.Errorf("Attrs = %v, want empty", n.Attrs())
	}
	if n.Parent() != nil || n.NumChildren() != 0 {
		t.Error("new node should be unattached and childless")
	}
	if n.surface != nil {
		t.Error("shapes should not carry a surface")
	}
	if NewNode(KindLayer).surface == nil {
		t.Error("layers should carry a surface")
	}
}

func TestNewNodeRejectsStage(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewNode(KindStage) should panic")
		}
	}()
	NewNode(KindStage)
}

func TestUniqueIDs(t *testing.T) {
	a := NewNode(KindGroup)
	b := NewNode(KindGroup)
	c := NewNode(KindRect)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- Add ---

func TestAddBasic(t *testing.T) {
	parent := NewNode(KindGroup)
	child := NewNode(KindRect)
	parent.Add(child)

	if child.Parent() != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should hold child at index 0")
	}
}

func TestAddReparent(t *testing.T) {
	p1 := NewNode(KindGroup)
	p2 := NewNode(KindGroup)
	child := NewNode(KindRect)

	p1.Add(child)
	p2.Add(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 || child.Parent() != p2 {
		t.Error("child should now belong to p2")
	}
}

func TestAddPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { NewNode(KindGroup).Add(nil) }},
		{"shape parent", func() { NewNode(KindRect).Add(NewNode(KindRect)) }},
		{"cycle", func() {
			a := NewNode(KindGroup)
			b := NewNode(KindGroup)
			a.Add(b)
			b.Add(a)
		}},
		{"self", func() {
			a := NewNode(KindGroup)
			a.Add(a)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

// --- Remove / Destroy ---

func TestRemove(t *testing.T) {
	parent := NewNode(KindGroup)
	child := NewNode(KindRect)
	parent.Add(child)
	child.Remove()
	if child.Parent() != nil || parent.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	// No-op when already detached.
	child.Remove()
}

func TestDestroyRecursive(t *testing.T) {
	root := NewNode(KindGroup)
	mid := NewNode(KindGroup)
	leaf := NewNode(KindRect)
	root.Add(mid)
	mid.Add(leaf)
	leaf.On("click.x", NewHandler(func(*Event) {}))

	mid.Destroy()

	if !mid.IsDestroyed() || !leaf.IsDestroyed() {
		t.Error("mid and leaf should be destroyed")
	}
	if root.IsDestroyed() {
		t.Error("root should not be destroyed")
	}
	if root.NumChildren() != 0 {
		t.Error("root should have no children")
	}
	if len(leaf.Listeners("click")) != 0 {
		t.Error("destroyed leaf should have no listeners")
	}
	// Second destroy is a no-op.
	mid.Destroy()
}

func TestDestroyedNodePanicsInDebug(t *testing.T) {
	SetDebugMode(true)
	t.Cleanup(func() { SetDebugMode(false) })

	n := NewNode(KindRect)
	n.Destroy()
	defer func() {
		if recover() == nil {
			t.Error("SetAttr on destroyed node should panic in debug mode")
		}
	}()
	n.SetAttr(AttrX, 1)
}

// --- Z order ---

func TestZIndexFollowsChildOrder(t *testing.T) {
	p := NewNode(KindGroup)
	a, b, c := NewNode(KindRect), NewNode(KindRect), NewNode(KindRect)
	p.Add(a, b, c)
	for i, n := range []*Node{a, b, c} {
		if n.ZIndex() != i {
			t.Errorf("ZIndex = %d, want %d", n.ZIndex(), i)
		}
	}
	if NewNode(KindRect).ZIndex() != 0 {
		t.Error("unattached node should report z-index 0")
	}
}

func TestSetZIndex(t *testing.T) {
	tests := []struct {
		name  string
		move  int // index of node to move
		to    int
		order []int
	}{
		{"forward", 0, 2, []int{1, 2, 0}},
		{"backward", 2, 0, []int{2, 0, 1}},
		{"middle", 0, 1, []int{1, 0, 2}},
		{"same", 1, 1, []int{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewNode(KindGroup)
			nodes := []*Node{NewNode(KindRect), NewNode(KindRect), NewNode(KindRect)}
			p.Add(nodes...)
			nodes[tt.move].SetZIndex(tt.to)
			for i, want := range tt.order {
				if p.ChildAt(i) != nodes[want] {
					t.Errorf("child %d = node %d, want node %d", i, indexOf(nodes, p.ChildAt(i)), want)
				}
			}
		})
	}
}

func TestSetZIndexOutOfRangePanics(t *testing.T) {
	p := NewNode(KindGroup)
	a := NewNode(KindRect)
	p.Add(a)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a.SetZIndex(1)
}

func TestMoveToTop(t *testing.T) {
	p := NewNode(KindGroup)
	a, b, c := NewNode(KindRect), NewNode(KindRect), NewNode(KindRect)
	p.Add(a, b, c)
	if !a.MoveToTop() {
		t.Fatal("MoveToTop should succeed for attached node")
	}
	if p.ChildAt(2) != a || a.ZIndex() != 2 {
		t.Error("a should be last")
	}
	if NewNode(KindRect).MoveToTop() {
		t.Error("MoveToTop should fail without parent")
	}
}

// --- Lookup ---

func TestLayerAndStage(t *testing.T) {
	st := NewStage(StageConfig{Width: 10, Height: 10})
	t.Cleanup(st.Destroy)
	layer := NewNode(KindLayer)
	group := NewNode(KindGroup)
	shape := NewNode(KindRect)
	st.Add(layer)
	layer.Add(group)
	group.Add(shape)

	if shape.Layer() != layer || layer.Layer() != layer {
		t.Error("Layer should resolve to the nearest layer")
	}
	if shape.Stage() != st || st.Stage() != st {
		t.Error("Stage should resolve to the stage")
	}
	if st.Layer() != nil {
		t.Error("stage has no layer above it")
	}
}

func TestFindOne(t *testing.T) {
	p := NewNode(KindGroup)
	g := NewNode(KindGroup)
	r := NewNode(KindRect)
	r.SetAttr(AttrName, "target")
	p.Add(g)
	g.Add(r)
	if p.FindOne("target") != r {
		t.Error("FindOne should find nested node")
	}
	if p.FindOne("missing") != nil {
		t.Error("FindOne should return nil for missing name")
	}
}

func TestHideShow(t *testing.T) {
	n := NewNode(KindRect)
	n.Hide()
	if n.Visible() {
		t.Error("Hide should clear visible")
	}
	n.Show()
	if !n.Visible() {
		t.Error("Show should set visible")
	}
}

func indexOf(nodes []*Node, n *Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}
