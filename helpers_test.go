package arbor

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/phanxgames/arbor/scene"
)

// newLayer returns a layer attached to a headless stage destroyed at the
// end of the test.
func newLayer(t *testing.T) (*scene.Node, *scene.Node) {
	t.Helper()
	st := scene.NewStage(scene.StageConfig{Width: 300, Height: 300})
	t.Cleanup(st.Destroy)
	layer := scene.NewNode(scene.KindLayer)
	st.Add(layer)
	return st, layer
}

// captureLogs routes the binding logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func countWarnings(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), "level=WARN")
}

func mustCreate(t *testing.T, tag string, props Props) *scene.Node {
	t.Helper()
	n, err := CreateInstance(tag, props)
	if err != nil {
		t.Fatalf("CreateInstance(%q): %v", tag, err)
	}
	return n
}

func names(n *scene.Node) []string {
	out := make([]string, n.NumChildren())
	for i, c := range n.Children() {
		out[i] = c.Name()
	}
	return out
}
