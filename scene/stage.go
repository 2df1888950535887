package scene

import "github.com/hajimehoshi/ebiten/v2"

// surface is the redraw bookkeeping carried by stages and layers.
// BatchDraw only marks the surface dirty; the window repaints dirty surfaces
// once per frame, so any number of requests within a frame cost one paint.
type surface struct {
	dirty    bool
	requests int
	paints   int
	cache    *ebiten.Image
}

func (s *surface) request() {
	s.dirty = true
	s.requests++
}

func (s *surface) release() {
	if s.cache != nil {
		s.cache.Deallocate()
		s.cache = nil
	}
}

// BatchDraw requests a repaint of the surface this node draws on: the node
// itself for stages and layers, otherwise its layer. A node that is not on
// a layer yet is ignored.
func (n *Node) BatchDraw() {
	target := n
	if n.kind != KindStage {
		target = n.Layer()
	}
	if target == nil || target.surface == nil {
		return
	}
	target.surface.request()
}

// DrawRequests returns how many times BatchDraw targeted this surface.
// Zero for nodes that are not stages or layers.
func (n *Node) DrawRequests() int {
	if n.surface == nil {
		return 0
	}
	return n.surface.requests
}

// Paints returns how many times the window actually repainted this surface.
func (n *Node) Paints() int {
	if n.surface == nil {
		return 0
	}
	return n.surface.paints
}

// NeedsDraw reports whether a BatchDraw request is pending.
func (n *Node) NeedsDraw() bool {
	return n.surface != nil && n.surface.dirty
}

// --- Stages ---

// StageConfig configures a new stage.
type StageConfig struct {
	Width, Height int
	// Window is the display surface the stage paints into. Nil creates a
	// headless stage that can still be mutated and hit tested.
	Window *Window
}

// stageState is the per-stage input state.
type stageState struct {
	window       *Window
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	dragDeadZone float64
	injectQueue  []syntheticPointerEvent
}

// stages lists every live stage in creation order.
var stages []*Node

// NewStage creates a stage node sized per cfg and registers it with the
// process stage list and, when set, cfg.Window.
func NewStage(cfg StageConfig) *Node {
	n := newNode(KindStage)
	n.stage = &stageState{
		window:       cfg.Window,
		dragDeadZone: defaultDragDeadZone,
	}
	n.attrs = map[string]any{
		AttrWidth:  float64(cfg.Width),
		AttrHeight: float64(cfg.Height),
	}
	stages = append(stages, n)
	if cfg.Window != nil {
		cfg.Window.attach(n)
	}
	Logger().Debug("stage created", "id", n.ID, "width", cfg.Width, "height", cfg.Height)
	return n
}

// Stages returns the live stages. The returned slice is a copy.
func Stages() []*Node {
	return append([]*Node(nil), stages...)
}

func unregisterStage(n *Node) {
	for i, s := range stages {
		if s == n {
			copy(stages[i:], stages[i+1:])
			stages[len(stages)-1] = nil
			stages = stages[:len(stages)-1]
			Logger().Debug("stage destroyed", "id", n.ID)
			return
		}
	}
}

// Window returns the window a stage paints into, or nil.
func (n *Node) Window() *Window {
	if n.stage == nil {
		return nil
	}
	return n.stage.window
}

// SetDragDeadZone sets the distance in pixels a pointer must travel while
// pressed before a drag starts. Valid only on stages.
func (n *Node) SetDragDeadZone(pixels float64) {
	mustStage(n, "SetDragDeadZone")
	n.stage.dragDeadZone = pixels
}

func mustStage(n *Node, op string) {
	if n.stage == nil {
		panic("scene: " + op + " called on " + n.kind.String() + ", want Stage")
	}
}

// FlushDraw settles pending redraw requests on a stage without painting
// and returns how many layers would have been repainted. Headless stages
// call it in place of a window frame.
func (n *Node) FlushDraw() int {
	mustStage(n, "FlushDraw")
	stageDirty := n.surface.dirty
	count := 0
	for _, c := range n.children {
		if s := c.surface; s != nil && (s.dirty || stageDirty) {
			s.dirty = false
			s.paints++
			count++
		}
	}
	if stageDirty {
		n.surface.dirty = false
		n.surface.paints++
	}
	return count
}
