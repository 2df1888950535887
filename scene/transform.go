package scene

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform returns the matrix [a, b, c, d, tx, ty] mapping the
// node's local space to its parent's:
//
//	Translate(x, y) * Rotate * Skew * Scale * Translate(-offsetX, -offsetY)
//
// Skew values are shear factors, not angles.
func computeLocalTransform(n *Node) [6]float64 {
	sin, cos := math.Sincos(degToRad(n.Rotation()))
	skx, sky := Float(n.Attr(AttrSkewX)), Float(n.Attr(AttrSkewY))
	sx, sy := n.ScaleX(), n.ScaleY()

	// skew * scale
	a, b := sx, sky*sx
	c, d := skx*sy, sy

	m := [6]float64{
		cos*a - sin*b, sin*a + cos*b,
		cos*c - sin*d, sin*c + cos*d,
		n.X(), n.Y(),
	}
	if ox, oy := Float(n.Attr(AttrOffsetX)), Float(n.Attr(AttrOffsetY)); ox != 0 || oy != 0 {
		m[4] -= m[0]*ox + m[2]*oy
		m[5] -= m[1]*ox + m[3]*oy
	}
	return m
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine returns the inverse of m, or the identity when m is
// singular (a node scaled to zero).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 {
		return identityTransform
	}
	a, b, c, d := m[3]/det, -m[1]/det, -m[2]/det, m[0]/det
	return [6]float64{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// AbsoluteTransform returns the matrix mapping this node's local space to
// stage space. Transforms are recomputed on every call; the tree is small
// enough for hit testing and painting to walk it directly.
func (n *Node) AbsoluteTransform() [6]float64 {
	m := computeLocalTransform(n)
	for p := n.parent; p != nil; p = p.parent {
		m = multiplyAffine(computeLocalTransform(p), m)
	}
	return m
}

// StageToLocal converts a stage-space point to this node's local space.
func (n *Node) StageToLocal(sx, sy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.AbsoluteTransform()), sx, sy)
}

// LocalToStage converts a local-space point to stage space.
func (n *Node) LocalToStage(lx, ly float64) (sx, sy float64) {
	return transformPoint(n.AbsoluteTransform(), lx, ly)
}

// AbsolutePosition returns the stage-space point the node's x and y refer to.
func (n *Node) AbsolutePosition() (float64, float64) {
	return n.LocalToStage(Float(n.Attr(AttrOffsetX)), Float(n.Attr(AttrOffsetY)))
}

// SetPosition sets x and y.
func (n *Node) SetPosition(x, y float64) {
	n.SetAttr(AttrX, x)
	n.SetAttr(AttrY, y)
}
