package shape

import (
	"strings"

	"github.com/matzehuels/artwork/pkg/errors"
)

// Anchor names the reference point of a shape's bounding box that sits at
// its position: a vertical token (top, center, bottom) and a horizontal
// token (left, middle, right).
type Anchor string

// The nine anchors, named vertical token first.
const (
	TopLeft      Anchor = "top left"
	TopMiddle    Anchor = "top middle"
	TopRight     Anchor = "top right"
	CenterLeft   Anchor = "center left"
	CenterMiddle Anchor = "center middle"
	CenterRight  Anchor = "center right"
	BottomLeft   Anchor = "bottom left"
	BottomMiddle Anchor = "bottom middle"
	BottomRight  Anchor = "bottom right"
)

// Anchors lists the nine anchors.
var Anchors = []Anchor{
	TopLeft, TopMiddle, TopRight,
	CenterLeft, CenterMiddle, CenterRight,
	BottomLeft, BottomMiddle, BottomRight,
}

// ParseAnchor normalizes an anchor. Tokens may be separated by spaces or
// dashes and appear in either order; a missing axis defaults to top or
// left. A lone "center" or "middle" means the box center.
func ParseAnchor(s string) (Anchor, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TopLeft, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' || r == '_' })
	if len(fields) == 1 && (fields[0] == "center" || fields[0] == "middle") {
		return CenterMiddle, nil
	}
	if len(fields) > 2 {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid anchor %q", s)
	}
	v, h := "top", "left"
	var seenV, seenH bool
	for _, f := range fields {
		switch f {
		case "top", "center", "bottom":
			if seenV {
				return "", errors.New(errors.ErrCodeInvalidInput, "invalid anchor %q", s)
			}
			v, seenV = f, true
		case "left", "middle", "right":
			if seenH {
				return "", errors.New(errors.ErrCodeInvalidInput, "invalid anchor %q", s)
			}
			h, seenH = f, true
		default:
			return "", errors.New(errors.ErrCodeInvalidInput, "invalid anchor %q", s)
		}
	}
	return Anchor(v + " " + h), nil
}

// Offset returns the shift applied to the position so that the anchor
// point lands on it, for a box of width w and height h.
func (a Anchor) Offset(w, h float64) (dx, dy float64) {
	if a == "" || a == TopLeft {
		return 0, 0
	}
	s := string(a)
	if strings.Contains(s, "middle") {
		dx -= w / 2
	}
	if strings.Contains(s, "right") {
		dx -= w
	}
	if strings.Contains(s, "center") {
		dy -= h / 2
	}
	if strings.Contains(s, "bottom") {
		dy -= h
	}
	return dx, dy
}

// String returns the canonical form.
func (a Anchor) String() string {
	if a == "" {
		return string(TopLeft)
	}
	return string(a)
}
