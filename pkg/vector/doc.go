// Package vector provides the scene tree shared by every export path.
//
// # Overview
//
// Shape compilers produce a [Fragment]: an "svg" container declaring a
// viewBox and a list of child [Node] values. The same tree is consumed by
// three writers:
//
//   - [Write] and [Markup] serialize it to SVG markup (via svgo)
//   - the rasterizer in package render parses that markup into pixels
//   - the document encoder in render/document walks the nodes directly
//
// Nodes are plain data. They carry a tag, ordered attributes and children;
// pre-serialized markup (for example Graphviz output) travels in [Node.Raw].
//
// # ViewBox
//
// The viewBox is the only geometry contract between a compiler and the rest
// of the pipeline. [ParseViewBox] accepts four numbers separated by
// whitespace and/or commas:
//
//	box, err := vector.ParseViewBox("0 0 20 20")
//	// box.Width == 20
//
// # Colors and Transforms
//
// [ParseColor] resolves named, hex and rgb() colors for writers that do not
// understand CSS. [ParseTransform] folds an SVG transform list into a single
// affine [Matrix].
package vector
