// Package compilers provides the built-in shape methods.
//
// # Built-ins
//
//   - circle: r, cx, cy (center defaults to r, r)
//   - ellipse: rx, ry, cx, cy
//   - rect: width, height, x, y
//   - line: x1, y1, x2, y2
//   - polygon: points ([[x, y], ...])
//   - graph: dot (Graphviz source), or nodes and edges
//
// Every other scalar prop is forwarded to the drawn element as an
// attribute, with camelCase names converted to kebab-case (strokeWidth
// becomes stroke-width).
//
// # Configuration
//
// The built-ins use [Override] as their configurer: a config object is
// treated as prop overrides on top of the defaults. Keys a shape does not
// declare are ignored, so a scene can send one config to every element.
// Prop keys that are not XML names never reach the markup.
//
// # Usage
//
//	reg := compilers.Registry()
//	inst, err := reg.Invoke("circle", shape.Props{"r": 20, "fill": "tomato"})
package compilers
