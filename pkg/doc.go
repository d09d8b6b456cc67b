// Package pkg provides the core libraries for Artwork vector composition.
//
// # Overview
//
// Artwork composes named vector shapes into artboards and exports them as
// SVG, PNG, JPEG, WEBP, PDF or JSON. A config list turns one artwork into
// many variants. The pkg directory is organized into these areas:
//
//  1. [shape] - Shape methods, the registry and placed shape instances
//  2. [scene] - Artboards: ordered elements on a fixed-size canvas
//  3. [workspace] - Ordered artboards, optionally derived from a PDF
//  4. [export] - Formats, requests, response encodings and results
//  5. [pipeline] - Orchestration (load → build → export) with caching
//
// # Architecture
//
// The typical data flow through Artwork:
//
//	Description (JSON/TOML/YAML)
//	         ↓
//	    [io] package (decode and build)
//	         ↓
//	    [workspace] / [scene] / [shape] (compile instances)
//	         ↓
//	    [vector] package (markup tree)
//	         ↓
//	    [render] / [render/document] (pixels, pages)
//	         ↓
//	    SVG/PNG/JPEG/WEBP/PDF/JSON output
//
// # Quick Start
//
// Build an artboard and export it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/artwork/pkg/export"
//	    "github.com/matzehuels/artwork/pkg/workspace"
//	    "github.com/matzehuels/artwork/pkg/shape"
//	)
//
//	// 1. Create a workspace with the built-in methods
//	ws := workspace.New()
//
//	// 2. Add an artboard and place a circle in its center
//	board, _ := ws.AddArtboard(200, 100)
//	circle, _ := board.Invoke("circle", shape.Props{"r": 40})
//	_ = circle.Transform(shape.Transform{X: 100, Y: 50, Scale: 1, Anchor: shape.CenterMiddle})
//
//	// 3. Export one PNG per config
//	res, _ := ws.To(ctx, "png", export.Options{
//	    Configs: []export.Config{{"r": 20}, {"r": 45}},
//	})
//
// # Main Packages
//
// ## Composition
//
// [shape] - A [shape.Method] pairs a compiler (props to vector fragment) with
// an optional configurer (defaults plus config to props). Instances cache
// their compiled fragment until props or transform change.
//
// [compilers] - Built-in methods: circle, ellipse, rect, line, polygon and
// graph (Graphviz via go-graphviz).
//
// [scene] - One artboard. Elements are painted in order; configs are applied
// to every element before export.
//
// [workspace] - Ordered artboards. Config i goes to artboard i % len. A
// workspace loaded from a PDF keeps its pages as read-only backgrounds.
//
// ## Output
//
// [vector] - Markup tree, viewBox and transform parsing, SVG writing (svgo).
//
// [render] - Rasterization (oksvg, rasterx) with supersampling and PNG, JPEG
// and WEBP encoding.
//
// [render/document] - Multi-page PDF writing (gofpdf, gofpdi) and loading
// (ledongthuc/pdf).
//
// [export] - Format parsing, MIME types, response types and results.
//
// ## Infrastructure
//
// [io] - Declarative descriptions and config lists in JSON, TOML or YAML.
//
// [pipeline] - Complete pipeline (load → export) used by the CLI and the HTTP
// server. Ensures consistent behavior across all entry points.
//
// [cache] - Artifact caching with file, Redis and null backends.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Structured errors with machine-readable codes.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/workspace/...          # Specific package
//	ARTWORK_TEST_REDIS_URL=redis://localhost:6379/15 go test ./pkg/cache/...
//
// [shape]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/shape
// [compilers]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/compilers
// [scene]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/scene
// [workspace]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/workspace
// [vector]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/vector
// [render]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/render
// [render/document]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/render/document
// [export]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/export
// [io]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/artwork/pkg/errors
package pkg
