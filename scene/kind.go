package scene

// Kind distinguishes node behavior: whether a node may hold children, how it
// is drawn and how it is hit tested.
type Kind uint8

const (
	KindStage          Kind = iota // top-level drawing surface; holds layers
	KindLayer                      // cached drawing surface; redraws on BatchDraw
	KindFastLayer                  // layer without hit testing
	KindGroup                      // plain container with no visual output
	KindLabel                      // container pairing a Tag with a Text
	KindRect                       // axis-aligned rectangle
	KindCircle                     // circle centered on its origin
	KindEllipse                    // ellipse centered on its origin
	KindWedge                      // pie slice
	KindLine                       // polyline or closed polygon from points
	KindSprite                     // animated frames from an image strip
	KindImage                      // bitmap
	KindText                       // text block
	KindTextPath                   // text laid along a path
	KindStar                       // star with inner and outer radius
	KindRing                       // annulus
	KindArc                        // annulus segment
	KindTag                        // label background with an optional pointer
	KindPath                       // SVG-style path data
	KindRegularPolygon             // n-sided regular polygon
	KindArrow                      // line with arrow heads
	KindShape                      // user-drawn via a scene function
	KindTransformer                // selection handles around other nodes
	kindCount
)

var kindNames = [kindCount]string{
	KindStage:          "Stage",
	KindLayer:          "Layer",
	KindFastLayer:      "FastLayer",
	KindGroup:          "Group",
	KindLabel:          "Label",
	KindRect:           "Rect",
	KindCircle:         "Circle",
	KindEllipse:        "Ellipse",
	KindWedge:          "Wedge",
	KindLine:           "Line",
	KindSprite:         "Sprite",
	KindImage:          "Image",
	KindText:           "Text",
	KindTextPath:       "TextPath",
	KindStar:           "Star",
	KindRing:           "Ring",
	KindArc:            "Arc",
	KindTag:            "Tag",
	KindPath:           "Path",
	KindRegularPolygon: "RegularPolygon",
	KindArrow:          "Arrow",
	KindShape:          "Shape",
	KindTransformer:    "Transformer",
}

// String returns the kind's type tag, e.g. "Rect".
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// IsContainer reports whether nodes of this kind may hold children.
func (k Kind) IsContainer() bool {
	switch k {
	case KindStage, KindLayer, KindFastLayer, KindGroup, KindLabel, KindTransformer:
		return true
	}
	return false
}

// IsSurface reports whether BatchDraw requests land on nodes of this kind.
func (k Kind) IsSurface() bool {
	return k == KindStage || k == KindLayer || k == KindFastLayer
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// KindByName looks up a kind by its type tag.
func KindByName(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)
