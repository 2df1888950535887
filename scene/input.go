package scene

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 3.0 // pixels
)

// Event names fired by the pointer state machine.
const (
	EventMouseDown  = "mousedown"
	EventMouseUp    = "mouseup"
	EventMouseMove  = "mousemove"
	EventMouseEnter = "mouseenter"
	EventMouseLeave = "mouseleave"
	EventClick      = "click"
	EventDragStart  = "dragstart"
	EventDragMove   = "dragmove"
	EventDragEnd    = "dragend"
)

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node
	button    MouseButton

	dragging  bool
	dragNode  *Node
	dragFromX float64 // dragNode x/y at press time
	dragFromY float64
}

// --- Hit testing ---

// collectHittable walks the tree in paint order, appending visible,
// listening nodes that have a shape. FastLayer subtrees are skipped.
func collectHittable(n *Node, buf []*Node) []*Node {
	if !n.Visible() || !n.Listening() || n.kind == KindFastLayer {
		return buf
	}
	if !n.kind.IsContainer() {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectHittable(child, buf)
	}
	return buf
}

// Intersection returns the topmost shape under the stage-space point, or nil.
// Valid only on stages.
func (n *Node) Intersection(x, y float64) *Node {
	mustStage(n, "Intersection")
	st := n.stage
	st.hitBuf = collectHittable(n, st.hitBuf[:0])
	// Reverse paint order: topmost shape first.
	for i := len(st.hitBuf) - 1; i >= 0; i-- {
		c := st.hitBuf[i]
		lx, ly := c.StageToLocal(x, y)
		if c.containsLocal(lx, ly) {
			return c
		}
	}
	return nil
}

// draggableFor returns the nearest draggable node at or above n.
func draggableFor(n *Node) *Node {
	for p := n; p != nil; p = p.parent {
		if p.Draggable() {
			return p
		}
	}
	return nil
}

// --- Pointer entry points ---

// PointerDown feeds a press at the stage-space point. Valid only on stages.
func (n *Node) PointerDown(x, y float64, button MouseButton) {
	n.processPointer(0, x, y, true, button)
}

// PointerMove feeds a pointer move, pressed or not. Valid only on stages.
func (n *Node) PointerMove(x, y float64) {
	mustStage(n, "PointerMove")
	n.processPointer(0, x, y, n.stage.pointers[0].down, n.stage.pointers[0].button)
}

// PointerUp feeds a release at the stage-space point. Valid only on stages.
func (n *Node) PointerUp(x, y float64) {
	mustStage(n, "PointerUp")
	n.processPointer(0, x, y, false, n.stage.pointers[0].button)
}

// processPointer runs the pointer state machine for a single pointer.
func (n *Node) processPointer(pointerID int, x, y float64, pressed bool, button MouseButton) {
	mustStage(n, "processPointer")
	ps := &n.stage.pointers[pointerID]

	var target *Node
	if ps.dragging {
		target = ps.dragNode
	} else {
		target = n.Intersection(x, y)
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.destroyed {
			firePointer(ps.hoverNode, EventMouseLeave, pointerID, x, y, button, false)
		}
		if target != nil {
			firePointer(target, EventMouseEnter, pointerID, x, y, button, false)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitNode = target
		ps.dragging = false
		ps.dragNode = nil
		n.firePointerOrStage(target, EventMouseDown, pointerID, x, y, button)

	case !pressed && ps.down:
		if ps.dragging {
			dn := ps.dragNode
			ps.dragging = false
			if !dn.destroyed {
				firePointer(dn, EventDragEnd, pointerID, x, y, ps.button, true)
				dn.BatchDraw()
			}
		} else if ps.hitNode != nil && ps.hitNode == target {
			firePointer(target, EventClick, pointerID, x, y, ps.button, true)
		}
		n.firePointerOrStage(target, EventMouseUp, pointerID, x, y, ps.button)
		ps.down = false
		ps.hitNode = nil
		ps.dragNode = nil

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		if ps.dragging && ps.dragNode.destroyed {
			ps.dragging = false
			ps.dragNode = nil
		}
		if !ps.dragging && ps.hitNode != nil {
			dx, dy := x-ps.startX, y-ps.startY
			if dn := draggableFor(ps.hitNode); dn != nil && math.Sqrt(dx*dx+dy*dy) > n.stage.dragDeadZone {
				ps.dragging = true
				ps.dragNode = dn
				ps.dragFromX, ps.dragFromY = dn.X(), dn.Y()
				firePointer(dn, EventDragStart, pointerID, x, y, ps.button, true)
			}
		}
		if ps.dragging {
			dragTo(ps, x, y)
			firePointer(ps.dragNode, EventDragMove, pointerID, x, y, ps.button, true)
			ps.dragNode.BatchDraw()
		} else {
			n.firePointerOrStage(target, EventMouseMove, pointerID, x, y, ps.button)
		}
		ps.lastX, ps.lastY = x, y

	default:
		if x != ps.lastX || y != ps.lastY {
			n.firePointerOrStage(target, EventMouseMove, pointerID, x, y, button)
			ps.lastX, ps.lastY = x, y
		}
	}
}

// dragTo moves the dragged node so it follows the pointer. The pointer
// delta is mapped into the parent's space so scaled or rotated parents
// drag correctly.
func dragTo(ps *pointerState, x, y float64) {
	dn := ps.dragNode
	inv := identityTransform
	if dn.parent != nil {
		inv = invertAffine(dn.parent.AbsoluteTransform())
	}
	sx, sy := transformPoint(inv, ps.startX, ps.startY)
	cx, cy := transformPoint(inv, x, y)
	dn.SetPosition(ps.dragFromX+(cx-sx), ps.dragFromY+(cy-sy))
}

// firePointerOrStage fires on target, bubbling to the stage, or on the stage
// itself when nothing was hit.
func (n *Node) firePointerOrStage(target *Node, typ string, pointerID int, x, y float64, button MouseButton) {
	if target == nil {
		target = n
	}
	firePointer(target, typ, pointerID, x, y, button, true)
}

func firePointer(target *Node, typ string, pointerID int, x, y float64, button MouseButton, bubble bool) {
	target.Fire(typ, &Event{
		Target:    target,
		X:         x,
		Y:         y,
		Button:    button,
		PointerID: pointerID,
	}, bubble)
}

// --- Device polling ---

// pollMouse reads the Ebitengine cursor and buttons and feeds pointer 0,
// unless a synthetic event is queued, which takes precedence for the frame.
func (n *Node) pollMouse() {
	if n.processInjectedInput() {
		return
	}
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}
	if ps := &n.stage.pointers[0]; ps.down {
		button = ps.button
	}
	n.processPointer(0, float64(mx), float64(my), pressed, button)
}
