package compilers

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/artwork/pkg/shape"
	"github.com/matzehuels/artwork/pkg/vector"
)

// Graph compiles a Graphviz diagram. The dot prop is used verbatim when set;
// otherwise a digraph is built from nodes (names) and edges ([from, to]
// pairs). The viewBox is the one Graphviz reports.
func Graph(p shape.Props) (*vector.Fragment, error) {
	dot := p.String("dot", "")
	if strings.TrimSpace(dot) == "" {
		var err error
		if dot, err = toDOT(p); err != nil {
			return nil, err
		}
	}
	svg, err := renderDOT(context.Background(), dot, p.String("layout", "dot"))
	if err != nil {
		return nil, err
	}
	return fragmentOf(svg)
}

func toDOT(p shape.Props) (string, error) {
	nodes, _ := p["nodes"].([]any)
	edges, _ := p["edges"].([]any)
	if len(nodes) == 0 && len(edges) == 0 {
		return "", fmt.Errorf("graph needs dot or nodes")
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q;\n", fmt.Sprint(n))
	}
	buf.WriteString("\n")
	for i, e := range edges {
		pair, ok := e.([]any)
		if !ok || len(pair) != 2 {
			return "", fmt.Errorf("edge %d: want [from, to]", i)
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", fmt.Sprint(pair[0]), fmt.Sprint(pair[1]))
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func renderDOT(ctx context.Context, dot, layout string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(layout))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([^"]*)"`)
)

// fragmentOf keeps the body of a rendered SVG document and its viewBox.
func fragmentOf(svg []byte) (*vector.Fragment, error) {
	loc := svgTagRe.FindIndex(svg)
	end := bytes.LastIndex(svg, []byte("</svg>"))
	if loc == nil || end < loc[1] {
		return nil, fmt.Errorf("graphviz output has no svg element")
	}
	match := viewBoxRe.FindSubmatch(svg[loc[0]:loc[1]])
	if match == nil {
		return nil, fmt.Errorf("graphviz output has no viewBox")
	}
	box, err := vector.ParseViewBox(string(match[1]))
	if err != nil {
		return nil, err
	}
	body := strings.TrimSpace(string(svg[loc[1]:end]))
	return vector.NewFragment(box, vector.RawNode(body)), nil
}
