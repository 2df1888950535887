package scene

// syntheticPointerEvent represents a single injected pointer event in stage
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// InjectPress queues a left-button press at the given stage coordinates.
// Queued events are consumed one per frame by the window, ahead of real
// mouse input. Valid only on stages.
func (n *Node) InjectPress(x, y float64) {
	n.inject(syntheticPointerEvent{x: x, y: y, pressed: true, button: MouseButtonLeft})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (n *Node) InjectMove(x, y float64) {
	n.inject(syntheticPointerEvent{x: x, y: y, pressed: true, button: MouseButtonLeft})
}

// InjectRelease queues a pointer release at the given stage coordinates.
func (n *Node) InjectRelease(x, y float64) {
	n.inject(syntheticPointerEvent{x: x, y: y, pressed: false, button: MouseButtonLeft})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (n *Node) InjectClick(x, y float64) {
	n.InjectPress(x, y)
	n.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2
// linearly interpolated moves, and release at (toX, toY). Minimum frames
// is 2 (press + release).
func (n *Node) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	n.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		n.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	n.InjectRelease(toX, toY)
}

// PendingInput returns the number of queued synthetic events.
func (n *Node) PendingInput() int {
	mustStage(n, "PendingInput")
	return len(n.stage.injectQueue)
}

func (n *Node) inject(evt syntheticPointerEvent) {
	mustStage(n, "Inject")
	n.stage.injectQueue = append(n.stage.injectQueue, evt)
}

// processInjectedInput pops one queued event and feeds it through the
// pointer state machine. Returns true if an event was consumed.
func (n *Node) processInjectedInput() bool {
	q := n.stage.injectQueue
	if len(q) == 0 {
		return false
	}
	evt := q[0]
	copy(q, q[1:])
	n.stage.injectQueue = q[:len(q)-1]
	n.processPointer(0, evt.x, evt.y, evt.pressed, evt.button)
	return true
}
