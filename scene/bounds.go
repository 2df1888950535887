package scene

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// SelfRect returns the node's own local-space bounds, ignoring children.
// Containers report an empty rectangle.
func (n *Node) SelfRect() Rect {
	switch n.kind {
	case KindRect, KindImage, KindSprite, KindTag, KindPath, KindShape:
		return Rect{0, 0, n.Width(), n.Height()}
	case KindText, KindTextPath:
		w, h := n.Width(), n.Height()
		if w == 0 || h == 0 {
			face, lh := n.textFace()
			mw, mh := text.Measure(n.Text(), face, lh)
			if w == 0 {
				w = mw
			}
			if h == 0 {
				h = mh
			}
		}
		return Rect{0, 0, w, h}
	case KindCircle, KindRegularPolygon, KindWedge:
		r := n.Radius()
		return Rect{-r, -r, 2 * r, 2 * r}
	case KindEllipse:
		rx, ry := Float(n.Attr("radiusX")), Float(n.Attr("radiusY"))
		return Rect{-rx, -ry, 2 * rx, 2 * ry}
	case KindStar, KindRing, KindArc:
		r := Float(n.Attr("outerRadius"))
		return Rect{-r, -r, 2 * r, 2 * r}
	case KindLine, KindArrow:
		return pointsRect(n.Points(), n.StrokeWidth())
	}
	return Rect{}
}

// pointsRect returns the bounds of a flat point list padded by half the
// stroke width.
func pointsRect(pts []float64, strokeWidth float64) Rect {
	if len(pts) < 2 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i+1 < len(pts); i += 2 {
		minX = math.Min(minX, pts[i])
		maxX = math.Max(maxX, pts[i])
		minY = math.Min(minY, pts[i+1])
		maxY = math.Max(maxY, pts[i+1])
	}
	pad := strokeWidth / 2
	return Rect{minX - pad, minY - pad, maxX - minX + 2*pad, maxY - minY + 2*pad}
}

// containsLocal tests whether a local-space point hits the node's shape.
// Round kinds use their radius rather than the bounding box.
func (n *Node) containsLocal(lx, ly float64) bool {
	switch n.kind {
	case KindCircle, KindRegularPolygon, KindWedge:
		r := n.Radius()
		return lx*lx+ly*ly <= r*r
	case KindStar, KindRing, KindArc:
		r := Float(n.Attr("outerRadius"))
		return lx*lx+ly*ly <= r*r
	case KindEllipse:
		rx, ry := Float(n.Attr("radiusX")), Float(n.Attr("radiusY"))
		if rx == 0 || ry == 0 {
			return false
		}
		dx, dy := lx/rx, ly/ry
		return dx*dx+dy*dy <= 1
	}
	r := n.SelfRect()
	if r.Empty() {
		return false
	}
	return r.Contains(lx, ly)
}
