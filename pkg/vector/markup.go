package vector

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo/float"
)

// Document is a standalone SVG document: an outer size, a viewBox and the
// paint-ordered children.
type Document struct {
	Width, Height float64
	ViewBox       Box

	// Background, when set, is painted as a full-viewBox rectangle below
	// every child.
	Background string

	Children []*Node
}

// NewDocument builds a document whose viewBox matches its size.
func NewDocument(width, height float64, children ...*Node) *Document {
	return &Document{
		Width:    width,
		Height:   height,
		ViewBox:  Box{Width: width, Height: height},
		Children: children,
	}
}

// Markup serializes d to SVG.
func Markup(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes d to w. Children are written in order. Numbers keep
// their shortest round-trip form. A tag or attribute name that is not an
// XML name fails the whole document before anything is written.
func Write(w io.Writer, d *Document) error {
	for _, n := range d.Children {
		if err := checkNames(n); err != nil {
			return err
		}
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	b := d.ViewBox
	canvas.Startraw(
		attr("width", Num(d.Width)),
		attr("height", Num(d.Height)),
		attr("viewBox", b.String()),
	)
	if d.Background != "" {
		writeElement(ew, El("rect",
			A("x", b.MinX), A("y", b.MinY), A("width", b.Width), A("height", b.Height),
			A("fill", d.Background),
		))
	}
	for _, n := range d.Children {
		writeNode(canvas, n)
	}
	canvas.End()
	return ew.err
}

func writeNode(canvas *svg.SVG, n *Node) {
	switch {
	case n == nil:
	case n.Raw != "":
		io.WriteString(canvas.Writer, n.Raw)
		io.WriteString(canvas.Writer, "\n")
	case n.Tag == "g":
		canvas.Group(n.rest()...)
		for _, c := range n.Children {
			writeNode(canvas, c)
		}
		canvas.Gend()
	default:
		writeElement(canvas.Writer, n)
	}
}

// writeElement writes n and its subtree with attributes in node order.
func writeElement(w io.Writer, n *Node) {
	fmt.Fprintf(w, "<%s", n.Tag)
	for _, a := range n.Attrs {
		fmt.Fprintf(w, " %s", attr(a.Name, a.Value))
	}
	if len(n.Children) == 0 && n.Text == "" {
		io.WriteString(w, "/>\n")
		return
	}
	io.WriteString(w, ">")
	io.WriteString(w, escape(n.Text))
	for _, c := range n.Children {
		if c.Raw != "" {
			io.WriteString(w, c.Raw)
			continue
		}
		writeElement(w, c)
	}
	fmt.Fprintf(w, "</%s>\n", n.Tag)
}

// rest returns the attributes not in skip, formatted for svgo.
func (n *Node) rest(skip ...string) []string {
	out := make([]string, 0, len(n.Attrs))
next:
	for _, a := range n.Attrs {
		for _, s := range skip {
			if a.Name == s {
				continue next
			}
		}
		out = append(out, attr(a.Name, a.Value))
	}
	return out
}

// checkNames reports the first tag or attribute name in n's subtree that is
// not an XML name. Raw nodes are not inspected.
func checkNames(n *Node) error {
	if n == nil || n.Raw != "" {
		return nil
	}
	if !ValidName(n.Tag) {
		return fmt.Errorf("invalid element name %q", n.Tag)
	}
	for _, a := range n.Attrs {
		if !ValidName(a.Name) {
			return fmt.Errorf("<%s>: invalid attribute name %q", n.Tag, a.Name)
		}
	}
	for _, c := range n.Children {
		if err := checkNames(c); err != nil {
			return err
		}
	}
	return nil
}

func attr(name, value string) string {
	return name + `="` + escape(value) + `"`
}

var escaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func escape(s string) string {
	return escaper.Replace(s)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// ParsePoints parses an SVG points list ("x1,y1 x2,y2 ..."). A trailing odd
// coordinate is dropped.
func ParsePoints(s string) (xs, ys []float64) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	for i := 0; i+1 < len(fields); i += 2 {
		var x, y float64
		if _, err := fmt.Sscan(fields[i], &x); err != nil {
			return xs, ys
		}
		if _, err := fmt.Sscan(fields[i+1], &y); err != nil {
			return xs, ys
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}
