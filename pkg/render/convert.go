package render

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
	"github.com/matzehuels/artwork/pkg/vector"
)

const (
	// DefaultSupersample is the surface multiplier used before downsampling.
	DefaultSupersample = 4

	// MaxSurface bounds either side of the drawing surface in pixels.
	MaxSurface = 16384
)

// RasterOption configures rasterization.
type RasterOption func(*rasterizer)

type rasterizer struct {
	supersample int
	scale       float64
	background  string
}

// WithSupersample sets the surface multiplier (default 4). Values below 1
// are treated as 1.
func WithSupersample(n int) RasterOption {
	return func(r *rasterizer) { r.supersample = n }
}

// WithScale sets the output scale relative to the logical size (default 1).
func WithScale(s float64) RasterOption {
	return func(r *rasterizer) { r.scale = s }
}

// WithBackground fills the surface with a color before drawing.
func WithBackground(color string) RasterOption {
	return func(r *rasterizer) { r.background = color }
}

// ForRequest translates a raster request into options.
func ForRequest(req export.RasterRequest) []RasterOption {
	return []RasterOption{
		WithScale(req.OutputScale()),
		WithBackground(req.EffectiveBackground()),
	}
}

// ToImage draws SVG markup with a logical size of width x height.
//
// The markup is parsed first and drawn onto a surface sized to the output
// size times the supersample factor; pixels are only read back after the
// draw returns. The result is downsampled with a Lanczos filter.
func ToImage(ctx context.Context, svg []byte, width, height float64, opts ...RasterOption) (*image.NRGBA, error) {
	r := rasterizer{supersample: DefaultSupersample, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.supersample < 1 {
		r.supersample = 1
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	outW, outH, err := surfaceSize(width*r.scale, height*r.scale, 1)
	if err != nil {
		return nil, err
	}
	sw, sh, err := surfaceSize(width*r.scale, height*r.scale, r.supersample)
	if err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRaster, err, "load markup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	surface := image.NewRGBA(image.Rect(0, 0, sw, sh))
	if r.background != "" {
		c, ok := vector.ParseColor(r.background)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid background color %q", r.background)
		}
		draw.Draw(surface, surface.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	}

	icon.SetTarget(0, 0, float64(sw), float64(sh))
	scanner := rasterx.NewScannerGV(sw, sh, surface, surface.Bounds())
	dasher := rasterx.NewDasher(sw, sh, scanner)
	icon.Draw(dasher, 1)

	if sw == outW && sh == outH {
		return imaging.Clone(surface), nil
	}
	return imaging.Resize(surface, outW, outH, imaging.Lanczos), nil
}

// ToRaster draws markup and encodes it as f.
func ToRaster(ctx context.Context, svg []byte, width, height float64, f export.Format, opts ...RasterOption) ([]byte, error) {
	img, err := ToImage(ctx, svg, width, height, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToPNG draws markup and encodes it as PNG.
func ToPNG(ctx context.Context, svg []byte, width, height float64, opts ...RasterOption) ([]byte, error) {
	return ToRaster(ctx, svg, width, height, export.PNG, opts...)
}

// surfaceSize converts a logical size into pixel dimensions, failing when
// no surface of that size can be allocated.
func surfaceSize(width, height float64, factor int) (int, int, error) {
	if math.IsNaN(width) || math.IsNaN(height) || width <= 0 || height <= 0 {
		return 0, 0, errors.New(errors.ErrCodeContextAcquire, "cannot acquire a %vx%v surface", width, height)
	}
	w := int(math.Ceil(width * float64(factor)))
	h := int(math.Ceil(height * float64(factor)))
	if w < 1 || h < 1 || w > MaxSurface || h > MaxSurface {
		return 0, 0, errors.New(errors.ErrCodeContextAcquire, "cannot acquire a %dx%d surface (max %d)", w, h, MaxSurface)
	}
	return w, h, nil
}
