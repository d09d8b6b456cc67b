package shape

import (
	"fmt"
	"sort"

	"github.com/matzehuels/artwork/pkg/errors"
)

// Props is a shape's property bag.
type Props map[string]any

// Clone returns a deep copy of nested maps and slices.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Props(t).Clone())
	case Props:
		return t.Clone()
	case []any:
		c := make([]any, len(t))
		for i, e := range t {
			c[i] = cloneValue(e)
		}
		return c
	default:
		return v
	}
}

// Merge returns base overlaid with over. Neither input is modified.
func Merge(base, over Props) Props {
	out := base.Clone()
	if out == nil {
		out = Props{}
	}
	for k, v := range over {
		out[k] = cloneValue(v)
	}
	return out
}

// SetProps returns props with changes applied. Every key in changes must
// already exist in props; unknown keys fail with ErrCodeInvalidProps and
// leave props untouched.
func SetProps(props, changes Props) (Props, error) {
	var unknown []string
	for k := range changes {
		if _, ok := props[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.New(errors.ErrCodeInvalidProps, "unknown props %v", unknown)
	}
	return Merge(props, changes), nil
}

// Float reads a numeric prop. JSON, TOML and YAML decoders produce
// different numeric types; all of them are accepted.
func (p Props) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return def
}

// String reads a string prop.
func (p Props) String(key, def string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return def
}

// Bool reads a boolean prop.
func (p Props) Bool(key string, def bool) bool {
	if b, ok := p[key].(bool); ok {
		return b
	}
	return def
}

// Points reads a list of [x, y] pairs.
func (p Props) Points(key string) ([][2]float64, error) {
	v, ok := p[key]
	if !ok {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		if pts, ok := v.([][2]float64); ok {
			return pts, nil
		}
		return nil, fmt.Errorf("%s: want a list of [x, y] pairs", key)
	}
	out := make([][2]float64, 0, len(list))
	for i, e := range list {
		pair, ok := e.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("%s[%d]: want [x, y]", key, i)
		}
		x, okx := toFloat(pair[0])
		y, oky := toFloat(pair[1])
		if !okx || !oky {
			return nil, fmt.Errorf("%s[%d]: coordinates must be numbers", key, i)
		}
		out = append(out, [2]float64{x, y})
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
