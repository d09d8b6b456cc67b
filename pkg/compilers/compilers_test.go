package compilers

import (
	"strings"
	"testing"

	"github.com/matzehuels/artwork/pkg/shape"
	"github.com/matzehuels/artwork/pkg/vector"
)

func TestPrimitiveViewBoxes(t *testing.T) {
	tests := []struct {
		name  string
		props shape.Props
		want  vector.Box
	}{
		{"circle", shape.Props{"r": 10.0}, vector.Box{Width: 20, Height: 20}},
		{"ellipse", shape.Props{"rx": 10.0, "ry": 4.0}, vector.Box{Width: 20, Height: 8}},
		{"rect", shape.Props{"width": 30.0, "height": 12.0}, vector.Box{Width: 30, Height: 12}},
		{"line", shape.Props{"x1": 0.0, "y1": 0.0, "x2": 40.0, "y2": 10.0}, vector.Box{Width: 40, Height: 10}},
		{"line", shape.Props{"x1": 50.0, "y1": 20.0, "x2": 10.0, "y2": 5.0}, vector.Box{MinX: 10, MinY: 5, Width: 40, Height: 15}},
		{"polygon", shape.Props{"points": []any{[]any{5.0, 5.0}, []any{25.0, 5.0}, []any{15.0, 35.0}}}, vector.Box{MinX: 5, MinY: 5, Width: 20, Height: 30}},
	}

	reg := Registry()
	for _, tt := range tests {
		m, err := reg.Lookup(tt.name)
		if err != nil {
			t.Fatalf("Lookup(%q) error: %v", tt.name, err)
		}
		frag, err := m.Compiler(shape.Merge(m.Defaults, tt.props))
		if err != nil {
			t.Fatalf("%s: compile error: %v", tt.name, err)
		}
		got, err := frag.Box()
		if err != nil {
			t.Fatalf("%s: Box() error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: Box() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestCircleAttributes(t *testing.T) {
	frag, err := Circle(shape.Props{"r": 10.0, "fill": "red", "strokeWidth": 2.0, "points": []any{}})
	if err != nil {
		t.Fatalf("Circle() error: %v", err)
	}
	if len(frag.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(frag.Children))
	}
	el := frag.Children[0]
	want := map[string]string{"cx": "10", "cy": "10", "r": "10", "fill": "red", "stroke-width": "2"}
	for k, v := range want {
		if got, ok := el.Get(k); !ok || got != v {
			t.Errorf("attr %s = %q, want %q", k, got, v)
		}
	}
	if _, ok := el.Get("points"); ok {
		t.Error("non-scalar prop should not become an attribute")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		fn    shape.Compiler
		props shape.Props
	}{
		{"circle zero r", Circle, shape.Props{"r": 0.0}},
		{"ellipse negative", Ellipse, shape.Props{"rx": -1.0, "ry": 2.0}},
		{"rect no height", Rect, shape.Props{"width": 2.0}},
		{"polygon two points", Polygon, shape.Props{"points": []any{[]any{0.0, 0.0}, []any{1.0, 1.0}}}},
		{"graph empty", Graph, shape.Props{}},
		{"graph bad edge", Graph, shape.Props{"nodes": []any{"a"}, "edges": []any{"a"}}},
	}
	for _, tt := range tests {
		if _, err := tt.fn(tt.props); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"fill":          "fill",
		"strokeWidth":   "stroke-width",
		"fillOpacity":   "fill-opacity",
		"strokeDashArr": "stroke-dash-arr",
	}
	for in, want := range tests {
		if got := kebab(in); got != want {
			t.Errorf("kebab(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOverride(t *testing.T) {
	defaults := shape.Props{"r": 10.0, "fill": "black"}

	got, err := Override(defaults, shape.Config{"fill": "red"})
	if err != nil {
		t.Fatalf("Override() error: %v", err)
	}
	if got["fill"] != "red" || got["r"] != 10.0 {
		t.Errorf("Override() = %v", got)
	}
	if defaults["fill"] != "black" {
		t.Error("Override mutated defaults")
	}

	got, err = Override(defaults, shape.Config{"r": 4.0, "width": 3.0, "height": 2.0})
	if err != nil {
		t.Fatalf("Override() with foreign keys error: %v", err)
	}
	if got["r"] != 4.0 || len(got) != 2 {
		t.Errorf("Override() = %v, want only r applied", got)
	}
	if _, ok := got["width"]; ok {
		t.Error("Override applied a key the defaults do not declare")
	}
}

func TestAttrsDropsInvalidNames(t *testing.T) {
	frag, err := Circle(shape.Props{
		"r":         5.0,
		"fill":      "black",
		"x onload":  "alert(1)",
		`a"b`:       "c",
		"1st":       "x",
		"dataLabel": "ok",
	})
	if err != nil {
		t.Fatalf("Circle() error: %v", err)
	}
	el := frag.Children[0]
	for _, name := range []string{"x onload", `a"b`, "1st"} {
		if _, ok := el.Get(name); ok {
			t.Errorf("attribute %q should be dropped", name)
		}
	}
	if v, ok := el.Get("data-label"); !ok || v != "ok" {
		t.Errorf("data-label = %q, want ok", v)
	}

	data, err := vector.Markup(vector.NewDocument(10, 10, el))
	if err != nil {
		t.Fatalf("Markup() error: %v", err)
	}
	if strings.Contains(string(data), "onload") {
		t.Errorf("markup carries a dropped attribute:\n%s", data)
	}
}

func TestBuiltinsRegistry(t *testing.T) {
	reg := Registry()
	want := []string{"circle", "ellipse", "rect", "line", "polygon", "graph"}
	got := reg.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	inst, err := reg.Invoke("rect", shape.Props{"width": 10.0, "height": 5.0})
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}
	w, h, err := inst.Size()
	if err != nil {
		t.Fatalf("Size() error: %v", err)
	}
	if w != 10 || h != 5 {
		t.Errorf("Size() = %v x %v, want 10 x 5", w, h)
	}

	if err := inst.Configure(shape.Config{"width": 40.0}); err != nil {
		t.Fatalf("Configure() error: %v", err)
	}
	if w, _, _ := inst.Size(); w != 40 {
		t.Errorf("configured width = %v, want 40", w)
	}
}

func TestGraphFromNodes(t *testing.T) {
	frag, err := Graph(shape.Props{
		"nodes":  []any{"a", "b"},
		"edges":  []any{[]any{"a", "b"}},
		"layout": "dot",
	})
	if err != nil {
		t.Fatalf("Graph() error: %v", err)
	}
	box, err := frag.Box()
	if err != nil {
		t.Fatalf("Box() error: %v", err)
	}
	if box.Width <= 0 || box.Height <= box.Width {
		t.Errorf("Box() = %+v, want a tall non-empty box", box)
	}
	if len(frag.Children) != 1 || frag.Children[0].Raw == "" {
		t.Fatal("expected one raw child")
	}
	if strings.Contains(frag.Children[0].Raw, "<svg") {
		t.Error("raw body should not contain the outer svg element")
	}
}

func TestFragmentOf(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?>
<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg">
<g id="graph0"><text>a</text></g>
</svg>
`)
	frag, err := fragmentOf(svg)
	if err != nil {
		t.Fatalf("fragmentOf() error: %v", err)
	}
	box, _ := frag.Box()
	if box != (vector.Box{Width: 62, Height: 116}) {
		t.Errorf("Box() = %+v", box)
	}
	if got := frag.Children[0].Raw; got != `<g id="graph0"><text>a</text></g>` {
		t.Errorf("raw = %q", got)
	}

	if _, err := fragmentOf([]byte("<p>nope</p>")); err == nil {
		t.Error("expected error for non-svg output")
	}
}
