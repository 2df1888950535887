package scene

import "testing"

func TestPropsApplier(t *testing.T) {
	t.Cleanup(func() { RegisterPropsApplier(KindWedge, nil) })

	n := NewNode(KindWedge)
	if n.ApplyProps(map[string]any{"x": 1}, nil) {
		t.Fatal("ApplyProps should report false without an applier")
	}
	if n.X() != 0 {
		t.Error("node should be untouched")
	}

	var gotOld map[string]any
	RegisterPropsApplier(KindWedge, func(n *Node, newProps, oldProps map[string]any) {
		gotOld = oldProps
		n.SetAttrs(newProps)
	})
	if !HasPropsApplier(KindWedge) {
		t.Fatal("applier should be registered")
	}
	old := map[string]any{"x": 1}
	if !n.ApplyProps(map[string]any{"x": 2}, old) {
		t.Fatal("ApplyProps should report true")
	}
	if n.X() != 2 || gotOld["x"] != 1 {
		t.Errorf("X = %v old = %v", n.X(), gotOld)
	}
}

func TestRegisterPropsApplierUnknownKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	RegisterPropsApplier(kindCount, nil)
}
