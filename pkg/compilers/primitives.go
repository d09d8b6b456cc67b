package compilers

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/matzehuels/artwork/pkg/shape"
	"github.com/matzehuels/artwork/pkg/vector"
)

// Circle compiles a circle. The viewBox is 2r square.
func Circle(p shape.Props) (*vector.Fragment, error) {
	r := p.Float("r", 0)
	if r <= 0 {
		return nil, fmt.Errorf("r must be positive, got %v", r)
	}
	el := vector.El("circle", vector.A("cx", p.Float("cx", r)), vector.A("cy", p.Float("cy", r)), vector.A("r", r))
	el.Attrs = append(el.Attrs, attrs(p, "r", "cx", "cy")...)
	return vector.NewFragment(vector.Box{Width: 2 * r, Height: 2 * r}, el), nil
}

// Ellipse compiles an ellipse. The viewBox is 2rx by 2ry.
func Ellipse(p shape.Props) (*vector.Fragment, error) {
	rx, ry := p.Float("rx", 0), p.Float("ry", 0)
	if rx <= 0 || ry <= 0 {
		return nil, fmt.Errorf("rx and ry must be positive, got %v, %v", rx, ry)
	}
	el := vector.El("ellipse",
		vector.A("cx", p.Float("cx", rx)), vector.A("cy", p.Float("cy", ry)),
		vector.A("rx", rx), vector.A("ry", ry),
	)
	el.Attrs = append(el.Attrs, attrs(p, "rx", "ry", "cx", "cy")...)
	return vector.NewFragment(vector.Box{Width: 2 * rx, Height: 2 * ry}, el), nil
}

// Rect compiles a rectangle. The viewBox is width by height.
func Rect(p shape.Props) (*vector.Fragment, error) {
	w, h := p.Float("width", 0), p.Float("height", 0)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("width and height must be positive, got %v, %v", w, h)
	}
	el := vector.El("rect",
		vector.A("x", p.Float("x", 0)), vector.A("y", p.Float("y", 0)),
		vector.A("width", w), vector.A("height", h),
	)
	el.Attrs = append(el.Attrs, attrs(p, "x", "y", "width", "height")...)
	return vector.NewFragment(vector.Box{Width: w, Height: h}, el), nil
}

// Line compiles a line. The viewBox spans the two endpoints.
func Line(p shape.Props) (*vector.Fragment, error) {
	x1, y1 := p.Float("x1", 0), p.Float("y1", 0)
	x2, y2 := p.Float("x2", 0), p.Float("y2", 0)
	el := vector.El("line", vector.A("x1", x1), vector.A("y1", y1), vector.A("x2", x2), vector.A("y2", y2))
	el.Attrs = append(el.Attrs, attrs(p, "x1", "y1", "x2", "y2")...)
	box := vector.Box{
		MinX:   math.Min(x1, x2),
		MinY:   math.Min(y1, y2),
		Width:  math.Abs(x2 - x1),
		Height: math.Abs(y2 - y1),
	}
	return vector.NewFragment(box, el), nil
}

// Polygon compiles a closed polygon. The viewBox is the bounding box of the
// points.
func Polygon(p shape.Props) (*vector.Fragment, error) {
	pts, err := p.Points("points")
	if err != nil {
		return nil, err
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(pts))
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	coords := make([]string, len(pts))
	for i, pt := range pts {
		minX, maxX = math.Min(minX, pt[0]), math.Max(maxX, pt[0])
		minY, maxY = math.Min(minY, pt[1]), math.Max(maxY, pt[1])
		coords[i] = vector.Num(pt[0]) + "," + vector.Num(pt[1])
	}
	el := vector.El("polygon", vector.A("points", strings.Join(coords, " ")))
	el.Attrs = append(el.Attrs, attrs(p, "points")...)
	box := vector.Box{MinX: minX, MinY: minY, Width: maxX - minX, Height: maxY - minY}
	return vector.NewFragment(box, el), nil
}

// attrs forwards scalar props as attributes in key order, skipping the
// geometry keys the compiler already wrote. Keys that do not form an XML
// name are dropped.
func attrs(p shape.Props, skip ...string) []vector.Attr {
	keys := make([]string, 0, len(p))
next:
	for k := range p {
		for _, s := range skip {
			if k == s {
				continue next
			}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]vector.Attr, 0, len(keys))
	for _, k := range keys {
		name := kebab(k)
		if !vector.ValidName(name) {
			continue
		}
		switch v := p[k].(type) {
		case string, float64, float32, int, int64, bool:
			out = append(out, vector.A(name, v))
		}
	}
	return out
}

// kebab converts camelCase to kebab-case.
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
