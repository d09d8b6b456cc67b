package vector

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Matrix is a 2D affine transform in SVG order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix{A: 1, D: 1}

// Translate returns a translation.
func Translate(x, y float64) Matrix { return Matrix{A: 1, D: 1, E: x, F: y} }

// Scale returns a scale about the origin.
func Scale(sx, sy float64) Matrix { return Matrix{A: sx, D: sy} }

// Rotate returns a clockwise rotation (y axis pointing down) in degrees.
func Rotate(deg float64) Matrix {
	r := deg * math.Pi / 180
	sin, cos := math.Sincos(r)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// Mul returns m*n: n is applied first, then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// IsIdentity reports whether m leaves every point unchanged.
func (m Matrix) IsIdentity() bool { return m == Identity }

var transformRe = regexp.MustCompile(`([a-zA-Z]+)\s*\(([^)]*)\)`)

// ParseTransform folds an SVG transform list into one matrix. Supported
// functions: matrix, translate, scale, rotate (with optional center),
// skewX and skewY.
func ParseTransform(s string) (Matrix, error) {
	m := Identity
	if strings.TrimSpace(s) == "" {
		return m, nil
	}
	matches := transformRe.FindAllStringSubmatch(s, -1)
	if matches == nil {
		return Identity, fmt.Errorf("transform %q: no functions", s)
	}
	for _, fn := range matches {
		args, err := parseArgs(fn[2])
		if err != nil {
			return Identity, fmt.Errorf("transform %q: %w", s, err)
		}
		var t Matrix
		switch fn[1] {
		case "matrix":
			if len(args) != 6 {
				return Identity, fmt.Errorf("transform %q: matrix needs 6 arguments", s)
			}
			t = Matrix{args[0], args[1], args[2], args[3], args[4], args[5]}
		case "translate":
			switch len(args) {
			case 1:
				t = Translate(args[0], 0)
			case 2:
				t = Translate(args[0], args[1])
			default:
				return Identity, fmt.Errorf("transform %q: translate needs 1 or 2 arguments", s)
			}
		case "scale":
			switch len(args) {
			case 1:
				t = Scale(args[0], args[0])
			case 2:
				t = Scale(args[0], args[1])
			default:
				return Identity, fmt.Errorf("transform %q: scale needs 1 or 2 arguments", s)
			}
		case "rotate":
			switch len(args) {
			case 1:
				t = Rotate(args[0])
			case 3:
				t = Translate(args[1], args[2]).Mul(Rotate(args[0])).Mul(Translate(-args[1], -args[2]))
			default:
				return Identity, fmt.Errorf("transform %q: rotate needs 1 or 3 arguments", s)
			}
		case "skewX":
			if len(args) != 1 {
				return Identity, fmt.Errorf("transform %q: skewX needs 1 argument", s)
			}
			t = Matrix{A: 1, C: math.Tan(args[0] * math.Pi / 180), D: 1}
		case "skewY":
			if len(args) != 1 {
				return Identity, fmt.Errorf("transform %q: skewY needs 1 argument", s)
			}
			t = Matrix{A: 1, B: math.Tan(args[0] * math.Pi / 180), D: 1}
		default:
			return Identity, fmt.Errorf("transform %q: unknown function %q", s, fn[1])
		}
		m = m.Mul(t)
	}
	return m, nil
}

func parseArgs(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}
