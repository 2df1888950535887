package arbor

import "github.com/phanxgames/arbor/reconciler"

// El describes an element of any registered type tag. A "key" prop becomes
// the reconciliation key.
func El(tag string, props Props, children ...*reconciler.Element) *reconciler.Element {
	return reconciler.H(tag, props, children...)
}

// Containers.

func Layer(props Props, children ...*reconciler.Element) *reconciler.Element {
	return El("Layer", props, children...)
}

func FastLayer(props Props, children ...*reconciler.Element) *reconciler.Element {
	return El("FastLayer", props, children...)
}

func Group(props Props, children ...*reconciler.Element) *reconciler.Element {
	return El("Group", props, children...)
}

func Label(props Props, children ...*reconciler.Element) *reconciler.Element {
	return El("Label", props, children...)
}

func Transformer(props Props, children ...*reconciler.Element) *reconciler.Element {
	return El("Transformer", props, children...)
}

// Shapes.

func Rect(props Props) *reconciler.Element           { return El("Rect", props) }
func Circle(props Props) *reconciler.Element         { return El("Circle", props) }
func Ellipse(props Props) *reconciler.Element        { return El("Ellipse", props) }
func Wedge(props Props) *reconciler.Element          { return El("Wedge", props) }
func Line(props Props) *reconciler.Element           { return El("Line", props) }
func Sprite(props Props) *reconciler.Element         { return El("Sprite", props) }
func Image(props Props) *reconciler.Element          { return El("Image", props) }
func Text(props Props) *reconciler.Element           { return El("Text", props) }
func TextPath(props Props) *reconciler.Element       { return El("TextPath", props) }
func Star(props Props) *reconciler.Element           { return El("Star", props) }
func Ring(props Props) *reconciler.Element           { return El("Ring", props) }
func Arc(props Props) *reconciler.Element            { return El("Arc", props) }
func Tag(props Props) *reconciler.Element            { return El("Tag", props) }
func Path(props Props) *reconciler.Element           { return El("Path", props) }
func RegularPolygon(props Props) *reconciler.Element { return El("RegularPolygon", props) }
func Arrow(props Props) *reconciler.Element          { return El("Arrow", props) }
func Shape(props Props) *reconciler.Element          { return El("Shape", props) }
