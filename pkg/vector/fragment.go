package vector

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ContainerTag is the only root tag a compiler may return.
const ContainerTag = "svg"

// Box is a viewBox: origin plus extent.
type Box struct {
	MinX, MinY    float64
	Width, Height float64
}

// String formats b as "minX minY width height".
func (b Box) String() string {
	return Num(b.MinX) + " " + Num(b.MinY) + " " + Num(b.Width) + " " + Num(b.Height)
}

// ParseViewBox parses "minX minY width height". Separators may be
// whitespace, commas or both. Width and height must be finite and
// non-negative.
func ParseViewBox(s string) (Box, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return Box{}, fmt.Errorf("viewBox %q: want 4 numbers, got %d", s, len(fields))
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return Box{}, fmt.Errorf("viewBox %q: invalid number %q", s, f)
		}
		v[i] = n
	}
	if v[2] < 0 || v[3] < 0 {
		return Box{}, fmt.Errorf("viewBox %q: negative extent", s)
	}
	return Box{MinX: v[0], MinY: v[1], Width: v[2], Height: v[3]}, nil
}

// Fragment is the output of a shape compiler: a vector container with a
// bounding viewBox and its children.
type Fragment struct {
	Tag      string
	ViewBox  string
	Children []*Node
}

// NewFragment builds an svg container for box.
func NewFragment(box Box, children ...*Node) *Fragment {
	return &Fragment{Tag: ContainerTag, ViewBox: box.String(), Children: children}
}

// Box parses the fragment's viewBox.
func (f *Fragment) Box() (Box, error) {
	if f == nil {
		return Box{}, fmt.Errorf("nil fragment")
	}
	if f.Tag != ContainerTag {
		return Box{}, fmt.Errorf("root tag %q is not %q", f.Tag, ContainerTag)
	}
	if strings.TrimSpace(f.ViewBox) == "" {
		return Box{}, fmt.Errorf("missing viewBox")
	}
	return ParseViewBox(f.ViewBox)
}
