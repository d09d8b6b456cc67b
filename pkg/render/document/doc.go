// Package document assembles multi-page PDF documents from scene trees.
//
// # Overview
//
// A [Document] is created empty, receives pages with [Document.AddPage],
// has graphics drawn onto the current page with [Document.Draw] and is
// serialized with [Document.Bytes]. It wraps a single gofpdf instance and is
// not safe for concurrent use: callers draw in program order.
//
// # Graphics
//
// [Parse] prepares the nodes of one shape for drawing. Circles, ellipses,
// rectangles, lines, polygons and groups (with transforms, fill, stroke and
// opacity) are drawn as native PDF paths. Anything else, such as paths or
// pre-rendered Graphviz markup, is rasterized at page size and embedded as
// an image. A parsed [Graphic] can be drawn onto any number of pages.
//
// # Loaded Documents
//
// [Load] reads an existing PDF (via ledongthuc/pdf) and reports each page's
// MediaBox size. [Document.DrawSource] imports a loaded page (via gofpdi) as
// the background of the current page.
package document
