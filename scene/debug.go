package scene

import "fmt"

// debugMode enables use-after-destroy panics and tree shape warnings.
var debugMode bool

// SetDebugMode enables or disables debug checks for every node: mutating a
// destroyed node panics, and deep trees or very wide nodes are reported
// through the logger.
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

func debugEnabled() bool {
	return debugMode
}

// checkDestroyed panics with a descriptive message when a destroyed node is
// used. In release mode the operation silently proceeds on the dead node.
func checkDestroyed(n *Node, op string) {
	if debugMode && n.destroyed {
		panic(fmt.Sprintf("scene debug: %s on destroyed %s (ID %d)", op, n.kind, n.ID))
	}
}

const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "node", n.ID, "kind", n.kind.String())
	}
}

const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("child count exceeds threshold",
			"node", n.ID, "kind", n.kind.String(), "children", len(n.children), "threshold", debugMaxChildCount)
	}
}
