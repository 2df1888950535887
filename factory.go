package arbor

import (
	"sort"

	"github.com/phanxgames/arbor/scene"
)

// kindsByTag maps element type tags to scene kinds. Stages are created by
// Stage, never from an element.
var kindsByTag = func() map[string]scene.Kind {
	m := make(map[string]scene.Kind)
	for _, k := range scene.Kinds() {
		if k != scene.KindStage {
			m[k.String()] = k
		}
	}
	return m
}()

// Kinds returns the element type tags CreateInstance accepts, sorted.
func Kinds() []string {
	out := make([]string, 0, len(kindsByTag))
	for tag := range kindsByTag {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// CreateInstance builds a detached node for the type tag and applies props
// to it. The node is not registered anywhere, so a node that is never
// attached is simply garbage.
func CreateInstance(tag string, props Props) (*scene.Node, error) {
	kind, ok := kindsByTag[tag]
	if !ok {
		return nil, &UnsupportedNodeTypeError{Type: tag}
	}
	n := scene.NewNode(kind)
	ApplyProps(n, props, nil)
	return n, nil
}
