package document

import (
	"context"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/artwork/pkg/render"
	"github.com/matzehuels/artwork/pkg/vector"
)

// RasterScale is the pixel density (relative to 72 dpi) of graphics that
// fall back to an embedded image.
const RasterScale = 2

// Graphic is one shape prepared for drawing onto a page. It is either a
// list of natively drawable nodes or a PNG covering the page.
type Graphic struct {
	nodes  []*vector.Node
	image  []byte
	width  float64
	height float64
}

// Native reports whether the graphic is drawn as vector paths.
func (g *Graphic) Native() bool { return g.image == nil }

// Parse prepares nodes for a page of the given size. Nodes that cannot be
// drawn natively are rasterized, in which case the whole set becomes one
// page-sized image so paint order inside the set is preserved.
func Parse(ctx context.Context, nodes []*vector.Node, pageW, pageH float64) (*Graphic, error) {
	native := true
	for _, n := range nodes {
		if !drawable(n) {
			native = false
			break
		}
	}
	if native {
		cloned := make([]*vector.Node, len(nodes))
		for i, n := range nodes {
			cloned[i] = n.Clone()
		}
		return &Graphic{nodes: cloned, width: pageW, height: pageH}, nil
	}

	markup, err := vector.Markup(vector.NewDocument(pageW, pageH, nodes...))
	if err != nil {
		return nil, err
	}
	img, err := render.ToPNG(ctx, markup, pageW, pageH, render.WithScale(RasterScale))
	if err != nil {
		return nil, err
	}
	return &Graphic{image: img, width: pageW, height: pageH}, nil
}

// drawable reports whether n and its subtree can be drawn as PDF paths.
func drawable(n *vector.Node) bool {
	if n == nil {
		return true
	}
	if n.Raw != "" {
		return false
	}
	switch n.Tag {
	case "g", "circle", "ellipse", "line", "polygon", "polyline":
	case "rect":
		if n.Float("rx") > 0 || n.Float("ry") > 0 {
			return false
		}
	default:
		return false
	}
	if t, ok := n.Get("transform"); ok {
		if _, err := vector.ParseTransform(t); err != nil {
			return false
		}
	}
	for _, name := range []string{"fill", "stroke"} {
		if v, ok := attrOrStyle(n, name); ok && !paintable(v) {
			return false
		}
	}
	for _, c := range n.Children {
		if !drawable(c) {
			return false
		}
	}
	return true
}

func paintable(v string) bool {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "none", "transparent", "inherit", "":
		return true
	}
	_, ok := vector.ParseColor(v)
	return ok
}

// style is the inherited paint state.
type style struct {
	fill          string
	stroke        string
	strokeWidth   float64
	opacity       float64
	fillOpacity   float64
	strokeOpacity float64
}

func defaultStyle() style {
	return style{fill: "black", stroke: "none", strokeWidth: 1, opacity: 1, fillOpacity: 1, strokeOpacity: 1}
}

func (s style) inherit(n *vector.Node) style {
	if v, ok := attrOrStyle(n, "fill"); ok && v != "inherit" {
		s.fill = v
	}
	if v, ok := attrOrStyle(n, "stroke"); ok && v != "inherit" {
		s.stroke = v
	}
	if v, ok := number(n, "stroke-width"); ok {
		s.strokeWidth = v
	}
	if v, ok := number(n, "opacity"); ok {
		s.opacity *= v
	}
	if v, ok := number(n, "fill-opacity"); ok {
		s.fillOpacity = v
	}
	if v, ok := number(n, "stroke-opacity"); ok {
		s.strokeOpacity = v
	}
	return s
}

// attrOrStyle looks a property up in the style attribute first, then in the
// presentation attribute.
func attrOrStyle(n *vector.Node, name string) (string, bool) {
	if css, ok := n.Get("style"); ok {
		for _, decl := range strings.Split(css, ";") {
			k, v, found := strings.Cut(decl, ":")
			if found && strings.TrimSpace(k) == name {
				return strings.TrimSpace(v), true
			}
		}
	}
	return n.Get(name)
}

func number(n *vector.Node, name string) (float64, bool) {
	v, ok := attrOrStyle(n, name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// toPDF converts an SVG matrix into the encoder's bottom-left coordinate
// space for a page of height h.
func toPDF(m vector.Matrix, h float64) gofpdf.TransformMatrix {
	return gofpdf.TransformMatrix{
		A: m.A,
		B: -m.B,
		C: -m.C,
		D: m.D,
		E: m.C*h + m.E,
		F: h - m.D*h - m.F,
	}
}

// paint sets colors for s and returns the gofpdf style string, or "" when
// nothing would be visible.
func paint(pdf *gofpdf.Fpdf, s style, fillable bool) string {
	var str string
	if fillable {
		if c, ok := vector.ParseColor(s.fill); ok {
			pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
			str += "F"
		}
	}
	if c, ok := vector.ParseColor(s.stroke); ok && s.strokeWidth > 0 {
		pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		pdf.SetLineWidth(s.strokeWidth)
		str += "D"
	}
	alpha := s.opacity
	switch str {
	case "F":
		alpha *= s.fillOpacity
	case "D":
		alpha *= s.strokeOpacity
	case "FD":
		alpha *= s.fillOpacity
	}
	pdf.SetAlpha(alpha, "Normal")
	return str
}

func drawNode(pdf *gofpdf.Fpdf, n *vector.Node, parent style, pageH float64) {
	if n == nil {
		return
	}
	s := parent.inherit(n)

	if t, ok := n.Get("transform"); ok {
		if m, err := vector.ParseTransform(t); err == nil && !m.IsIdentity() {
			pdf.TransformBegin()
			pdf.Transform(toPDF(m, pageH))
			defer pdf.TransformEnd()
		}
	}

	switch n.Tag {
	case "g":
		for _, c := range n.Children {
			drawNode(pdf, c, s, pageH)
		}
		return
	case "circle":
		if st := paint(pdf, s, true); st != "" {
			pdf.Circle(n.Float("cx"), n.Float("cy"), n.Float("r"), st)
		}
	case "ellipse":
		if st := paint(pdf, s, true); st != "" {
			pdf.Ellipse(n.Float("cx"), n.Float("cy"), n.Float("rx"), n.Float("ry"), 0, st)
		}
	case "rect":
		if st := paint(pdf, s, true); st != "" {
			pdf.Rect(n.Float("x"), n.Float("y"), n.Float("width"), n.Float("height"), st)
		}
	case "line":
		if st := paint(pdf, s, false); st != "" {
			pdf.Line(n.Float("x1"), n.Float("y1"), n.Float("x2"), n.Float("y2"))
		}
	case "polygon", "polyline":
		pts, _ := n.Get("points")
		xs, ys := vector.ParsePoints(pts)
		if len(xs) < 2 {
			break
		}
		if st := paint(pdf, s, true); st != "" {
			pdf.MoveTo(xs[0], ys[0])
			for i := 1; i < len(xs); i++ {
				pdf.LineTo(xs[i], ys[i])
			}
			if n.Tag == "polygon" {
				pdf.ClosePath()
			}
			pdf.DrawPath(st)
		}
	}
	pdf.SetAlpha(1, "Normal")
}
