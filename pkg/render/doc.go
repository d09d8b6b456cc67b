// Package render provides pixel output for artwork markup.
//
// # Overview
//
// This package turns SVG markup produced by the vector package into pixel
// images and encodes them. It provides:
//
//   - Rasterization (SVG to image) via oksvg and rasterx
//   - Supersampled drawing with Lanczos downsampling (via imaging)
//   - PNG, JPEG and WEBP encoding
//   - Multi-page documents (in [document] subpackage)
//
// # Rasterization
//
// [ToImage] parses the markup, draws it onto a surface sized to the logical
// size times a supersample factor (default 4) and downsamples the result:
//
//	img, err := render.ToImage(ctx, svg, 200, 100)
//	png, err := render.ToPNG(ctx, svg, 200, 100, render.WithScale(2))
//
// Surfaces that cannot be allocated (non-positive or larger than
// [MaxSurface] pixels on a side) fail with CONTEXT_ACQUISITION.
//
// # Documents
//
// The [document] subpackage wraps gofpdf. It draws scene trees natively
// where it can, falls back to embedding a rasterized image where it cannot,
// and imports pages of loaded PDF files as page backgrounds.
package render
