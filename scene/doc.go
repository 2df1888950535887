// Package scene is the retained-mode 2D scene graph that arbor drives.
//
// Every visual element is a [Node]. A node has a [Kind], a free-form
// attribute map, an ordered child list (container kinds only) and a table
// of event listeners. Trees are rooted at a stage created with [NewStage];
// stages hold layers, layers hold groups and shapes.
//
//	stage := scene.NewStage(scene.StageConfig{Width: 640, Height: 480, Window: win})
//	layer := scene.NewNode(scene.KindLayer)
//	stage.Add(layer)
//
//	box := scene.NewNode(scene.KindRect)
//	box.SetAttrs(map[string]any{"x": 20, "y": 20, "width": 80, "height": 40, "fill": "tomato"})
//	layer.Add(box)
//	box.BatchDraw()
//
// # Ordering
//
// A node's z-index is its position in its parent's child list. [Node.Add]
// appends, [Node.MoveToTop] moves a node to the end and [Node.SetZIndex]
// moves it to an explicit index.
//
// # Redraw
//
// Mutations do not paint. [Node.BatchDraw] marks the node's layer (or the
// stage itself) dirty; the hosting [Window] repaints each dirty layer once
// per frame into a cached image, so any number of requests in one frame
// cost a single paint.
//
// # Events
//
// [Node.On] subscribes a [Handler] to one or more events. Event names may
// carry a namespace ("click.tool") so a group of listeners can be removed
// together with Off(".tool") without touching anyone else's. The stage's
// pointer state machine fires mousedown, mouseup, mousemove, mouseenter,
// mouseleave, click and, for draggable nodes, dragstart, dragmove and
// dragend. Setting an attribute fires "<attr>Change".
//
// # Text
//
// Text nodes draw with the Go font unless "fontFamily" names a face added
// with [RegisterFont]. [MeasureText] reports the size a string will take.
//
// # Bindings
//
// [RegisterPropsApplier] lets a declarative binding install the function
// that turns a property set into attribute writes for each kind;
// [Node.ApplyProps] runs it. Helpers that animate properties go through
// this table instead of writing attributes themselves.
package scene
