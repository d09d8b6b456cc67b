package vector

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Attr is a single markup attribute.
type Attr struct {
	Name  string
	Value string
}

// ValidName reports whether s is an XML name usable as a tag or attribute
// name.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == ':' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

// A builds an attribute. Numbers are formatted in their shortest form.
func A(name string, value any) Attr {
	switch v := value.(type) {
	case string:
		return Attr{Name: name, Value: v}
	case float64:
		return Attr{Name: name, Value: Num(v)}
	case int:
		return Attr{Name: name, Value: strconv.Itoa(v)}
	case bool:
		return Attr{Name: name, Value: strconv.FormatBool(v)}
	default:
		return Attr{Name: name, Value: fmt.Sprint(v)}
	}
}

// Node is one element of a scene tree.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node

	// Text is character data for text-bearing elements.
	Text string

	// Raw is pre-serialized markup. When set, Tag, Attrs and Children are
	// ignored by every writer that can embed markup verbatim.
	Raw string
}

// El builds an element node.
func El(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs}
}

// RawNode wraps pre-serialized markup.
func RawNode(markup string) *Node {
	return &Node{Raw: markup}
}

// Append adds children and returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Get returns the value of the named attribute.
func (n *Node) Get(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Float returns the named attribute as a number, or 0 when missing or
// malformed. A trailing "px" unit is accepted.
func (n *Node) Float(name string) float64 {
	v, ok := n.Get(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0
	}
	return f
}

// Set replaces or appends an attribute.
func (n *Node) Set(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Tag: n.Tag, Text: n.Text, Raw: n.Raw}
	if n.Attrs != nil {
		c.Attrs = append([]Attr(nil), n.Attrs...)
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// Num formats a float in its shortest round-trip form.
func Num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
