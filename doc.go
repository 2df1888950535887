// Package arbor drives a retained-mode 2D scene graph from declarative
// element trees, the way a DOM renderer drives the browser DOM.
//
// The scene graph lives in [github.com/phanxgames/arbor/scene] and is drawn
// with [Ebitengine]. Element trees are described with the constructors in
// this package ([Layer], [Group], [Rect], ...) and diffed by
// [github.com/phanxgames/arbor/reconciler], which calls [HostConfig] to
// mutate the scene graph.
//
// # Quick start
//
//	win := scene.NewWindow(scene.WindowConfig{Title: "arbor", Width: 640, Height: 480})
//	st := arbor.NewStage(nil)
//	err := st.Mount(arbor.StageProps{
//		Width: 640, Height: 480, Window: win,
//		Children: []*reconciler.Element{
//			arbor.Layer(nil,
//				arbor.Rect(arbor.Props{"x": 20, "y": 20, "width": 100, "height": 50, "fill": "red"}),
//			),
//		},
//	})
//	// ... later, with new props or children:
//	err = st.Update(props)
//	win.Run()
//
// # Props
//
// [Props] maps attribute names to values. Keys of the form "onXxx" are
// event handlers holding a [scene.Handler]; handlers are compared by
// pointer, so keep a handler in a variable across renders to avoid
// re-subscribing it. The keys "children", "key", "ref", "style",
// "forwardedRef" and "_useStrictMode" are never forwarded to nodes.
// A "ref" holding a [Ref] receives the node once it is placed and nil once
// it is removed.
//
// [ApplyProps] is the attribute differ. It is also registered with the
// scene graph for every node kind, so helpers such as the animate package
// can push props through [scene.Node.ApplyProps].
//
// # Ordering
//
// A node's z-index is its position among its siblings and follows element
// order. The "zIndex" prop has no effect and is reported once.
//
// # Strict mode
//
// By default a render only writes props that changed since the previous
// render, so values changed out of band (a dragged node's position) stay
// as they are. [SetStrictMode] or a "_useStrictMode" prop makes every
// render re-assert its props.
//
// # Errors
//
// Malformed trees are reported as errors from [Stage.Mount] and
// [Stage.Update]: unknown type tags ([UnsupportedNodeTypeError]), bare text
// children ([ErrTextChild], [ErrTextUnsupported]) and invalid nesting
// ([ErrInvalidChild]). A failed update leaves the previously committed tree
// as the base for the next one.
//
// [Ebitengine]: https://ebitengine.org
package arbor
