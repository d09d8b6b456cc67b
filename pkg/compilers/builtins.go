package compilers

import (
	"github.com/matzehuels/artwork/pkg/shape"
)

// Builtins returns the built-in methods in a stable order.
func Builtins() []shape.Method {
	return []shape.Method{
		{
			Name:        "circle",
			Description: "circle of radius r",
			Compiler:    Circle,
			Configurer:  Override,
			Defaults:    shape.Props{"r": 50.0, "fill": "black"},
		},
		{
			Name:        "ellipse",
			Description: "ellipse with radii rx and ry",
			Compiler:    Ellipse,
			Configurer:  Override,
			Defaults:    shape.Props{"rx": 50.0, "ry": 25.0, "fill": "black"},
		},
		{
			Name:        "rect",
			Description: "rectangle of width x height",
			Compiler:    Rect,
			Configurer:  Override,
			Defaults:    shape.Props{"width": 100.0, "height": 100.0, "fill": "black"},
		},
		{
			Name:        "line",
			Description: "line from (x1, y1) to (x2, y2)",
			Compiler:    Line,
			Configurer:  Override,
			Defaults:    shape.Props{"x1": 0.0, "y1": 0.0, "x2": 100.0, "y2": 100.0, "stroke": "black", "strokeWidth": 1.0},
		},
		{
			Name:        "polygon",
			Description: "closed polygon through points",
			Compiler:    Polygon,
			Configurer:  Override,
			Defaults:    shape.Props{"points": []any{[]any{0.0, 0.0}, []any{100.0, 0.0}, []any{50.0, 100.0}}, "fill": "black"},
		},
		{
			Name:        "graph",
			Description: "Graphviz diagram from dot, or nodes and edges",
			Compiler:    Graph,
			Configurer:  Override,
			Defaults:    shape.Props{"dot": "", "nodes": []any{}, "edges": []any{}, "layout": "dot"},
		},
	}
}

// Registry returns a new registry holding the built-ins.
func Registry() *shape.Registry {
	return shape.NewRegistry(Builtins()...)
}

// Override is a configurer that applies cfg as prop overrides on top of
// the defaults. Keys the defaults do not declare are ignored, so one config
// can be sent to shapes of every kind.
func Override(defaults shape.Props, cfg shape.Config) (shape.Props, error) {
	known := make(shape.Props, len(cfg))
	for k, v := range cfg {
		if _, ok := defaults[k]; ok {
			known[k] = v
		}
	}
	return shape.SetProps(defaults, known)
}
