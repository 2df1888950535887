package scene

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SceneFunc draws a KindShape node. geo maps the node's local space to the
// destination image.
type SceneFunc func(dst *ebiten.Image, geo ebiten.GeoM, n *Node)

// Attribute keys read by the renderer beyond the common set.
const (
	AttrSceneFunc   = "sceneFunc"
	AttrNodes       = "nodes"
	AttrAnimation   = "animation"
	AttrAnimations  = "animations"
	AttrFrameIndex  = "frameIndex"
	AttrData        = "data"
	AttrAngle       = "angle"
	AttrSides       = "sides"
	AttrNumPoints   = "numPoints"
	AttrInnerRadius = "innerRadius"
	AttrOuterRadius = "outerRadius"
	AttrFontFamily  = "fontFamily"
	AttrLineHeight  = "lineHeight" // multiple of fontSize
	AttrAlign       = "align"      // "left", "center" or "right"
)

var whiteSubImage *ebiten.Image

// solidImage returns a 1x1 white source for DrawTriangles. The pixel is cut
// from the middle of a 3x3 image so edge sampling never bleeds.
func solidImage() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// collectPaintable returns the visible nodes under n (n included) in paint
// order: parents before children, siblings by z-index.
func collectPaintable(n *Node, buf []*Node) []*Node {
	if !n.Visible() {
		return buf
	}
	buf = append(buf, n)
	for _, c := range n.children {
		buf = collectPaintable(c, buf)
	}
	return buf
}

// PaintOrder returns the visible nodes under n, n included, in the order
// the renderer paints them.
func (n *Node) PaintOrder() []*Node {
	return collectPaintable(n, nil)
}

// paintStage repaints the dirty layers of st into their caches and
// composites every visible layer onto screen. Returns the number of layers
// repainted.
func paintStage(screen *ebiten.Image, st *Node) int {
	if st.surface == nil || !st.Visible() {
		return 0
	}
	w, h := int(st.Width()), int(st.Height())
	if w <= 0 || h <= 0 {
		b := screen.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	stageDirty := st.surface.dirty
	painted := 0
	for _, child := range st.children {
		if !child.Visible() {
			continue
		}
		s := child.surface
		if s == nil {
			drawNode(screen, child, st.AbsoluteTransform(), st.Opacity())
			continue
		}
		if s.cache == nil || s.cache.Bounds().Dx() != w || s.cache.Bounds().Dy() != h {
			s.release()
			s.cache = ebiten.NewImage(w, h)
			s.dirty = true
		}
		if s.dirty || stageDirty {
			s.cache.Clear()
			drawNode(s.cache, child, st.AbsoluteTransform(), st.Opacity())
			s.dirty = false
			s.paints++
			painted++
		}
		screen.DrawImage(s.cache, nil)
	}
	if stageDirty {
		st.surface.dirty = false
		st.surface.paints++
	}
	return painted
}

// drawNode draws n and its children. parent maps the parent's local space
// to the destination and alpha is the accumulated opacity.
func drawNode(dst *ebiten.Image, n *Node, parent [6]float64, alpha float64) {
	if !n.Visible() {
		return
	}
	m := multiplyAffine(parent, computeLocalTransform(n))
	alpha *= n.Opacity()
	if alpha <= 0 {
		return
	}
	drawSelf(dst, n, m, alpha)
	for _, c := range n.children {
		drawNode(dst, c, m, alpha)
	}
}

func drawSelf(dst *ebiten.Image, n *Node, m [6]float64, alpha float64) {
	switch n.kind {
	case KindRect, KindTag:
		var p vector.Path
		w, h := float32(n.Width()), float32(n.Height())
		p.MoveTo(0, 0)
		p.LineTo(w, 0)
		p.LineTo(w, h)
		p.LineTo(0, h)
		p.Close()
		fillAndStroke(dst, n, &p, m, alpha)
	case KindCircle:
		var p vector.Path
		p.Arc(0, 0, float32(n.Radius()), 0, 2*math.Pi, vector.Clockwise)
		p.Close()
		fillAndStroke(dst, n, &p, m, alpha)
	case KindEllipse:
		p := ellipsePath(Float(n.Attr("radiusX")), Float(n.Attr("radiusY")))
		fillAndStroke(dst, n, p, m, alpha)
	case KindWedge:
		var p vector.Path
		p.MoveTo(0, 0)
		p.Arc(0, 0, float32(n.Radius()), 0, float32(degToRad(Float(n.Attr(AttrAngle)))), vector.Clockwise)
		p.Close()
		fillAndStroke(dst, n, &p, m, alpha)
	case KindRegularPolygon:
		p := polygonPath(int(Float(n.Attr(AttrSides))), n.Radius(), n.Radius())
		fillAndStroke(dst, n, p, m, alpha)
	case KindStar:
		p := polygonPath(int(Float(n.Attr(AttrNumPoints)))*2,
			Float(n.Attr(AttrOuterRadius)), Float(n.Attr(AttrInnerRadius)))
		fillAndStroke(dst, n, p, m, alpha)
	case KindRing, KindArc:
		inner, outer := Float(n.Attr(AttrInnerRadius)), Float(n.Attr(AttrOuterRadius))
		angle := 2 * math.Pi
		if n.kind == KindArc {
			angle = degToRad(Float(n.Attr(AttrAngle)))
		}
		var p vector.Path
		p.Arc(0, 0, float32((inner+outer)/2), 0, float32(angle), vector.Clockwise)
		if c, ok := ParseColor(n.Attr(AttrFill)); ok {
			strokePath(dst, &p, m, outer-inner, c, alpha)
		}
	case KindLine, KindArrow:
		drawLine(dst, n, m, alpha)
	case KindPath:
		if p := parsePathData(String(n.Attr(AttrData))); p != nil {
			fillAndStroke(dst, n, p, m, alpha)
		}
	case KindText, KindTextPath:
		drawText(dst, n, m, alpha)
	case KindImage:
		if img, ok := n.Attr(AttrImage).(*ebiten.Image); ok && img != nil {
			drawImage(dst, img, n, m, alpha)
		}
	case KindSprite:
		drawSprite(dst, n, m, alpha)
	case KindShape:
		if fn, ok := n.Attr(AttrSceneFunc).(SceneFunc); ok && fn != nil {
			fn(dst, geoM(m), n)
		}
	case KindTransformer:
		drawTransformer(dst, n, alpha)
	}
}

// --- Primitives ---

func fillAndStroke(dst *ebiten.Image, n *Node, p *vector.Path, m [6]float64, alpha float64) {
	if c, ok := ParseColor(n.Attr(AttrFill)); ok {
		fillPath(dst, p, m, c, alpha)
	}
	if c, ok := ParseColor(n.Attr(AttrStroke)); ok {
		strokePath(dst, p, m, n.StrokeWidth(), c, alpha)
	}
}

func fillPath(dst *ebiten.Image, p *vector.Path, m [6]float64, c color.NRGBA, alpha float64) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	submitTriangles(dst, vs, is, m, c, alpha)
}

func strokePath(dst *ebiten.Image, p *vector.Path, m [6]float64, width float64, c color.NRGBA, alpha float64) {
	if width <= 0 {
		return
	}
	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	submitTriangles(dst, vs, is, m, c, alpha)
}

// submitTriangles maps local-space vertices through m and draws them in a
// single premultiplied color.
func submitTriangles(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, m [6]float64, c color.NRGBA, alpha float64) {
	if len(is) == 0 {
		return
	}
	a := float32(float64(c.A) / 255 * alpha)
	r := float32(c.R) / 255 * a
	g := float32(c.G) / 255 * a
	b := float32(c.B) / 255 * a
	for i := range vs {
		x, y := transformPoint(m, float64(vs[i].DstX), float64(vs[i].DstY))
		vs[i].DstX, vs[i].DstY = float32(x), float32(y)
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}
	dst.DrawTriangles(vs, is, solidImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func drawLine(dst *ebiten.Image, n *Node, m [6]float64, alpha float64) {
	pts := n.Points()
	if len(pts) < 4 {
		return
	}
	var p vector.Path
	p.MoveTo(float32(pts[0]), float32(pts[1]))
	for i := 2; i+1 < len(pts); i += 2 {
		p.LineTo(float32(pts[i]), float32(pts[i+1]))
	}
	closed := Bool(n.Attr(AttrClosed))
	if closed {
		p.Close()
		if c, ok := ParseColor(n.Attr(AttrFill)); ok {
			fillPath(dst, &p, m, c, alpha)
		}
	}
	sc, ok := ParseColor(n.Attr(AttrStroke))
	if !ok {
		return
	}
	strokePath(dst, &p, m, n.StrokeWidth(), sc, alpha)
	if n.kind != KindArrow {
		return
	}
	// Arrow head at the last point, pointing along the last segment.
	l := len(pts)
	x1, y1, x2, y2 := pts[l-4], pts[l-3], pts[l-2], pts[l-1]
	length := Float(n.Attr("pointerLength"))
	if length == 0 {
		length = 10
	}
	width := Float(n.Attr("pointerWidth"))
	if width == 0 {
		width = 10
	}
	ang := math.Atan2(y2-y1, x2-x1)
	sin, cos := math.Sincos(ang)
	var head vector.Path
	head.MoveTo(float32(x2), float32(y2))
	head.LineTo(float32(x2-length*cos-width/2*sin), float32(y2-length*sin+width/2*cos))
	head.LineTo(float32(x2-length*cos+width/2*sin), float32(y2-length*sin-width/2*cos))
	head.Close()
	fc, ok := ParseColor(n.Attr(AttrFill))
	if !ok {
		fc = sc
	}
	fillPath(dst, &head, m, fc, alpha)
}

func drawImage(dst *ebiten.Image, img *ebiten.Image, n *Node, m [6]float64, alpha float64) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	if w, h := n.Width(), n.Height(); w > 0 && h > 0 {
		op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	}
	op.GeoM.Concat(geoM(m))
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(img, op)
}

// drawSprite draws the current frame of the current animation. Animations
// map a name to flat [x, y, w, h, ...] frame rectangles in the image.
func drawSprite(dst *ebiten.Image, n *Node, m [6]float64, alpha float64) {
	img, ok := n.Attr(AttrImage).(*ebiten.Image)
	if !ok || img == nil {
		return
	}
	anims, _ := n.Attr(AttrAnimations).(map[string][]int)
	frames := anims[String(n.Attr(AttrAnimation))]
	idx := int(Float(n.Attr(AttrFrameIndex)))
	if len(frames) < 4 {
		return
	}
	count := len(frames) / 4
	idx = ((idx % count) + count) % count
	f := frames[idx*4 : idx*4+4]
	sub := img.SubImage(image.Rect(f[0], f[1], f[0]+f[2], f[1]+f[3])).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Concat(geoM(m))
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(sub, op)
}

// drawTransformer outlines each attached node's bounds in stage space.
func drawTransformer(dst *ebiten.Image, n *Node, alpha float64) {
	nodes, _ := n.Attr(AttrNodes).([]*Node)
	c, ok := ParseColor(n.Attr(AttrStroke))
	if !ok {
		c = color.NRGBA{0, 0xa1, 0xff, 0xff}
	}
	for _, t := range nodes {
		if t == nil || t.destroyed {
			continue
		}
		r := t.SelfRect()
		var p vector.Path
		p.MoveTo(float32(r.X), float32(r.Y))
		p.LineTo(float32(r.X+r.Width), float32(r.Y))
		p.LineTo(float32(r.X+r.Width), float32(r.Y+r.Height))
		p.LineTo(float32(r.X), float32(r.Y+r.Height))
		p.Close()
		strokePath(dst, &p, t.AbsoluteTransform(), 1, c, alpha)
	}
}

func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

const ellipseSegments = 64

func ellipsePath(rx, ry float64) *vector.Path {
	var p vector.Path
	for i := 0; i < ellipseSegments; i++ {
		t := 2 * math.Pi * float64(i) / ellipseSegments
		x, y := float32(rx*math.Cos(t)), float32(ry*math.Sin(t))
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	return &p
}

// polygonPath builds a closed polygon with n vertices alternating between
// radius r1 and r2, starting straight up. Equal radii give a regular polygon.
func polygonPath(n int, r1, r2 float64) *vector.Path {
	if n < 3 {
		return nil
	}
	var p vector.Path
	for i := 0; i < n; i++ {
		r := r1
		if i%2 == 1 {
			r = r2
		}
		t := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		x, y := float32(r*math.Cos(t)), float32(r*math.Sin(t))
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	return &p
}

// parsePathData understands the absolute and relative move, line,
// horizontal, vertical and close commands of SVG path data. Curves are not
// supported; data containing them yields nil.
func parsePathData(data string) *vector.Path {
	toks := tokenizePath(data)
	if len(toks) == 0 {
		return nil
	}
	var p vector.Path
	var cx, cy, sx, sy float64
	var cmd byte
	i := 0
	num := func() (float64, bool) {
		if i >= len(toks) {
			return 0, false
		}
		v, err := strconv.ParseFloat(toks[i], 64)
		if err != nil {
			return 0, false
		}
		i++
		return v, true
	}
	for i < len(toks) {
		if t := toks[i]; len(t) == 1 && strings.ContainsAny(t, "MmLlHhVvZz") {
			cmd = t[0]
			i++
		} else if cmd == 0 {
			return nil
		}
		switch cmd {
		case 'Z', 'z':
			p.Close()
			cx, cy = sx, sy
			continue
		case 'M', 'm', 'L', 'l':
			x, ok1 := num()
			y, ok2 := num()
			if !ok1 || !ok2 {
				return nil
			}
			if cmd == 'm' || cmd == 'l' {
				x, y = cx+x, cy+y
			}
			if cmd == 'M' || cmd == 'm' {
				p.MoveTo(float32(x), float32(y))
				sx, sy = x, y
				// Subsequent pairs after a move are implicit line-tos.
				if cmd == 'M' {
					cmd = 'L'
				} else {
					cmd = 'l'
				}
			} else {
				p.LineTo(float32(x), float32(y))
			}
			cx, cy = x, y
		case 'H', 'h':
			x, ok := num()
			if !ok {
				return nil
			}
			if cmd == 'h' {
				x += cx
			}
			p.LineTo(float32(x), float32(cy))
			cx = x
		case 'V', 'v':
			y, ok := num()
			if !ok {
				return nil
			}
			if cmd == 'v' {
				y += cy
			}
			p.LineTo(float32(cx), float32(y))
			cy = y
		default:
			return nil
		}
	}
	return &p
}

// tokenizePath splits path data into single-letter commands and numbers.
func tokenizePath(data string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range data {
		switch {
		case r == ',' || r == ' ' || r == '\t' || r == '\n':
			flush()
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			if r == 'e' || r == 'E' {
				cur.WriteRune(r)
				continue
			}
			flush()
			toks = append(toks, string(r))
		case r == '-' && cur.Len() > 0 && !strings.HasSuffix(cur.String(), "e"):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}
