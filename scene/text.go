package scene

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontFamily names the face used when a text node sets no
// "fontFamily" or names one that was never registered.
const DefaultFontFamily = "Go"

var (
	fontsMu sync.RWMutex
	fonts   = map[string]*text.GoTextFaceSource{}

	defaultFontOnce sync.Once
	defaultFont     *text.GoTextFaceSource
)

// RegisterFont parses TrueType or OpenType data and makes it available to
// text nodes under family. Registering a family again replaces it.
func RegisterFont(family string, ttfData []byte) error {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return fmt.Errorf("scene: parse font %q: %w", family, err)
	}
	fontsMu.Lock()
	fonts[family] = source
	fontsMu.Unlock()
	return nil
}

func fontSource(family string) *text.GoTextFaceSource {
	if family != "" && family != DefaultFontFamily {
		fontsMu.RLock()
		s := fonts[family]
		fontsMu.RUnlock()
		if s != nil {
			return s
		}
		Logger().Debug("unknown font family, using default", "family", family)
	}
	defaultFontOnce.Do(func() {
		s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic("scene: parse default font: " + err.Error())
		}
		defaultFont = s
	})
	return defaultFont
}

// textFace returns the face and line height a text node draws with.
func (n *Node) textFace() (*text.GoTextFace, float64) {
	face := &text.GoTextFace{
		Source: fontSource(String(n.Attr(AttrFontFamily))),
		Size:   n.FontSize(),
	}
	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap
	if f := Float(n.Attr(AttrLineHeight)); f > 0 {
		lh = f * face.Size
	}
	return face, lh
}

// MeasureText returns the size of s drawn in family at size points.
func MeasureText(s, family string, size float64) (width, height float64) {
	face := &text.GoTextFace{Source: fontSource(family), Size: size}
	m := face.Metrics()
	return text.Measure(s, face, m.HAscent+m.HDescent+m.HLineGap)
}

func drawText(dst *ebiten.Image, n *Node, m [6]float64, alpha float64) {
	s := n.Text()
	if s == "" {
		return
	}
	c, ok := ParseColor(n.Attr(AttrFill))
	if !ok {
		return
	}
	face, lh := n.textFace()
	op := &text.DrawOptions{}
	op.LineSpacing = lh
	switch String(n.Attr(AttrAlign)) {
	case "center":
		op.PrimaryAlign = text.AlignCenter
		op.GeoM.Translate(n.Width()/2, 0)
	case "right":
		op.PrimaryAlign = text.AlignEnd
		op.GeoM.Translate(n.Width(), 0)
	}
	op.GeoM.Concat(geoM(m))
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, s, face, op)
}
