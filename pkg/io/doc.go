// Package io reads declarative workspace descriptions and writes workspace
// descriptions back out.
//
// # Description Format
//
// A description lists artboards and the elements placed on them. JSON, TOML
// and YAML are accepted; the format is chosen by file extension:
//
//	artboards:
//	  - width: 400
//	    height: 300
//	    elements:
//	      - method: circle
//	        props: {r: 40, fill: tomato}
//	        x: 200
//	        y: 150
//	        anchor: center middle
//	      - method: rect
//	        props: {width: 80, height: 20}
//	        scale: 2
//	configs:
//	  - {fill: navy}
//	  - {fill: teal}
//
// # Element Fields
//
// Required:
//   - method: name of a registered method. The object form written by
//     [WriteJSON] ({"name": "circle", "type": "shape"}) is accepted too.
//
// Optional:
//   - props: overrides on top of the method defaults
//   - x, y: position
//   - scale: scale factor (defaults to 1)
//   - anchor: one of the nine anchors (defaults to "top left")
//   - visible: false hides the element
//   - meta: freeform object carried through to JSON output
//
// # Loaded Documents
//
// A description may name a PDF with the document key, resolved relative to
// the description file. The workspace then has one artboard per page and the
// artboards list, if present, supplies the elements drawn on each page.
//
// # Export
//
// [WriteJSON] writes a workspace's structural description. Reading it back
// with [ReadJSON] rebuilds the same artboards and elements.
package io
