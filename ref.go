package arbor

import (
	"github.com/phanxgames/arbor/reconciler"
	"github.com/phanxgames/arbor/scene"
)

// Ref receives a node once it is placed and nil once it is removed. Stages
// take one through StageProps.Ref; elements through the "ref" prop, which
// the reconciler attaches after each commit.
type Ref interface {
	SetRef(n *scene.Node)
}

var _ reconciler.Ref[*scene.Node] = Ref(nil)

// RefFunc adapts a function to Ref.
type RefFunc func(n *scene.Node)

// SetRef calls f(n).
func (f RefFunc) SetRef(n *scene.Node) { f(n) }

// RefObject stores the node in Current.
type RefObject struct {
	Current *scene.Node
}

// SetRef sets Current.
func (r *RefObject) SetRef(n *scene.Node) { r.Current = n }

func setRef(r Ref, n *scene.Node) {
	if r != nil {
		r.SetRef(n)
	}
}

