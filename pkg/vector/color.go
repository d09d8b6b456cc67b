package vector

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor resolves a CSS-style color: a named color, #rgb, #rrggbb or
// rgb(r, g, b). It reports false for "none", "transparent", the empty
// string and anything it cannot parse.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none", "transparent":
		return color.NRGBA{}, false
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(expandHex(s))
		if err != nil {
			return color.NRGBA{}, false
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, true
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return color.NRGBA{}, false
		}
		var v [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return color.NRGBA{}, false
			}
			v[i] = uint8(n)
		}
		return color.NRGBA{R: v[0], G: v[1], B: v[2], A: 255}, true
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, true
	}
	return color.NRGBA{}, false
}

// expandHex turns #rgb into #rrggbb.
func expandHex(s string) string {
	if len(s) != 4 {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}
