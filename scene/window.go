package scene

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// WindowConfig configures a Window.
type WindowConfig struct {
	Title         string
	Width, Height int
	// Background fills the screen before stages are composited.
	Background color.Color
	// ShowFPS draws an FPS/TPS counter in the top-left corner.
	ShowFPS bool
	// OnUpdate, when set, runs once per tick after pointer input has been
	// dispatched, with the tick duration in seconds.
	OnUpdate func(dt float32) error
}

// Window is an ebiten.Game that hosts stages. Each tick it feeds pointer
// input to every stage; each frame it repaints dirty layers and composites
// all stages in attach order.
type Window struct {
	cfg    WindowConfig
	stages []*Node
}

var _ ebiten.Game = (*Window)(nil)

// NewWindow creates a window. Stages attach to it through StageConfig.Window.
func NewWindow(cfg WindowConfig) *Window {
	return &Window{cfg: cfg}
}

// Stages returns the attached stages. The returned slice MUST NOT be mutated.
func (w *Window) Stages() []*Node {
	return w.stages
}

func (w *Window) attach(st *Node) {
	w.stages = append(w.stages, st)
}

func (w *Window) detach(st *Node) {
	for i, s := range w.stages {
		if s == st {
			copy(w.stages[i:], w.stages[i+1:])
			w.stages[len(w.stages)-1] = nil
			w.stages = w.stages[:len(w.stages)-1]
			return
		}
	}
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	for _, st := range w.stages {
		st.pollMouse()
	}
	if w.cfg.OnUpdate != nil {
		return w.cfg.OnUpdate(float32(1.0 / float64(ebiten.TPS())))
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.cfg.Background != nil {
		screen.Fill(w.cfg.Background)
	}
	var t0 time.Time
	if debugMode {
		t0 = time.Now()
	}
	painted := 0
	for _, st := range w.stages {
		painted += paintStage(screen, st)
	}
	if debugMode {
		Logger().Debug("frame", "stages", len(w.stages), "layersPainted", painted, "took", time.Since(t0))
	}
	if w.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.cfg.Width > 0 && w.cfg.Height > 0 {
		return w.cfg.Width, w.cfg.Height
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	if w.cfg.Title != "" {
		ebiten.SetWindowTitle(w.cfg.Title)
	}
	if w.cfg.Width > 0 && w.cfg.Height > 0 {
		ebiten.SetWindowSize(w.cfg.Width, w.cfg.Height)
	}
	return ebiten.RunGame(w)
}
