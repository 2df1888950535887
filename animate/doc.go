// Package animate tweens numeric node attributes with
// [github.com/tanema/gween] easing curves.
//
//	tw := animate.Position(node, 200, 120, 0.5, ease.OutCubic)
//	// each frame:
//	tw.Update(dt)
//
// Frames go through [scene.Node.ApplyProps], so nodes created by the arbor
// binding are updated with the same attribute differ a render uses.
package animate
