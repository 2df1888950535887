package arbor

import (
	"github.com/phanxgames/arbor/reconciler"
	"github.com/phanxgames/arbor/scene"
)

// StageProps declares a stage and its content.
type StageProps struct {
	Width, Height int
	// Window is the display the stage paints into. Nil gives a headless
	// stage. Read on Mount only.
	Window *scene.Window
	// Ref receives the stage node.
	Ref Ref
	// Props are applied to the stage node like any element's props, so
	// stage-level handlers ("onClick") and attributes ("scaleX") work.
	Props Props
	// Children are the stage's layers.
	Children []*reconciler.Element
}

// Stage owns one stage node and the reconciler container that drives it.
// Create it with NewStage, then call Mount once, Update any number of
// times and Unmount once.
type Stage struct {
	host      *HostConfig
	rec       *reconciler.Reconciler[*scene.Node, *Container]
	container *reconciler.Container[*scene.Node, *Container]
	node      *scene.Node
	ref       Ref
	prevProps Props
	unmounted bool
}

// NewStage returns an unmounted Stage. A nil host uses a zero HostConfig.
func NewStage(host *HostConfig) *Stage {
	if host == nil {
		host = &HostConfig{}
	}
	return &Stage{host: host}
}

// Mount creates the stage node, hands it to the ref, applies the stage
// props and renders the children.
func (s *Stage) Mount(p StageProps) error {
	if s.node != nil {
		return ErrAlreadyMounted
	}
	s.node = scene.NewStage(scene.StageConfig{Width: p.Width, Height: p.Height, Window: p.Window})
	s.ref = p.Ref
	setRef(s.ref, s.node)

	props := stageProps(p)
	ApplyProps(s.node, props, nil)
	s.prevProps = props

	s.rec = reconciler.New[*scene.Node, *Container](s.host, reconciler.Config{Logger: Logger()})
	s.container = s.rec.CreateContainer(&Container{node: s.node})
	Logger().Debug("stage mounted", "id", s.node.ID, "width", p.Width, "height", p.Height)
	return s.rec.UpdateContainer(p.Children, s.container)
}

// Update re-forwards the ref, applies the stage props as a diff against
// the previous ones and renders the children. It is ignored after Unmount.
func (s *Stage) Update(p StageProps) error {
	if s.unmounted {
		Logger().Debug("update after unmount ignored")
		return nil
	}
	if s.node == nil {
		return ErrNotMounted
	}
	s.ref = p.Ref
	setRef(s.ref, s.node)

	props := stageProps(p)
	ApplyProps(s.node, props, s.prevProps)
	s.prevProps = props
	return s.rec.UpdateContainer(p.Children, s.container)
}

// Unmount clears the ref, removes every child through the reconciler and
// destroys the stage node, which also drops it from scene.Stages and its
// window. Calling it again is a no-op.
func (s *Stage) Unmount() error {
	if s.unmounted || s.node == nil {
		return nil
	}
	s.unmounted = true
	setRef(s.ref, nil)
	s.ref = nil
	err := s.rec.UpdateContainer(nil, s.container)
	s.node.Destroy()
	s.prevProps = Props{}
	Logger().Debug("stage unmounted", "id", s.node.ID)
	return err
}

// GetRoot returns the stage node, nil before Mount. After Unmount the node
// reports IsDestroyed.
func (s *Stage) GetRoot() *scene.Node {
	return s.node
}

// Container returns the reconciler container, nil before Mount.
func (s *Stage) Container() *reconciler.Container[*scene.Node, *Container] {
	return s.container
}

// stageProps merges the declared size into the forwarded props.
func stageProps(p StageProps) Props {
	out := make(Props, len(p.Props)+2)
	for k, v := range p.Props {
		out[k] = v
	}
	out[scene.AttrWidth] = float64(p.Width)
	out[scene.AttrHeight] = float64(p.Height)
	return out
}
