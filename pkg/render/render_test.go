package render

import (
	"bytes"
	"context"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/webp"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
	"github.com/matzehuels/artwork/pkg/vector"
)

func redSquare(t *testing.T) []byte {
	t.Helper()
	doc := vector.NewDocument(20, 10,
		vector.El("rect", vector.A("x", 0), vector.A("y", 0), vector.A("width", 10), vector.A("height", 10), vector.A("fill", "red")),
	)
	data, err := vector.Markup(doc)
	if err != nil {
		t.Fatalf("Markup() error = %v", err)
	}
	return data
}

func TestToImageSize(t *testing.T) {
	svg := redSquare(t)

	tests := []struct {
		name string
		opts []RasterOption
		w, h int
	}{
		{"default", nil, 20, 10},
		{"scale 2", []RasterOption{WithScale(2)}, 40, 20},
		{"no supersample", []RasterOption{WithSupersample(1)}, 20, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ToImage(context.Background(), svg, 20, 10, tt.opts...)
			if err != nil {
				t.Fatalf("ToImage() error = %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("ToImage() size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestToImagePixels(t *testing.T) {
	img, err := ToImage(context.Background(), redSquare(t), 20, 10)
	if err != nil {
		t.Fatalf("ToImage() error = %v", err)
	}

	inside := img.NRGBAAt(5, 5)
	if inside.R < 200 || inside.G > 50 || inside.A < 200 {
		t.Errorf("pixel (5,5) = %v, want opaque red", inside)
	}
	outside := img.NRGBAAt(15, 5)
	if outside.A != 0 {
		t.Errorf("pixel (15,5) = %v, want transparent", outside)
	}
}

func TestToImageBackground(t *testing.T) {
	img, err := ToImage(context.Background(), redSquare(t), 20, 10, WithBackground("white"))
	if err != nil {
		t.Fatalf("ToImage() error = %v", err)
	}
	px := img.NRGBAAt(15, 5)
	if px.R != 255 || px.G != 255 || px.B != 255 || px.A != 255 {
		t.Errorf("pixel (15,5) = %v, want white", px)
	}

	if _, err := ToImage(context.Background(), redSquare(t), 20, 10, WithBackground("nope")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("invalid background error = %v, want INVALID_INPUT", err)
	}
}

func TestToImageSurfaceErrors(t *testing.T) {
	svg := redSquare(t)
	sizes := [][2]float64{{0, 10}, {10, -1}, {MaxSurface, 10}}
	for _, s := range sizes {
		_, err := ToImage(context.Background(), svg, s[0], s[1])
		if !errors.Is(err, errors.ErrCodeContextAcquire) {
			t.Errorf("ToImage(%vx%v) error = %v, want CONTEXT_ACQUISITION", s[0], s[1], err)
		}
	}
}

func TestToImageCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ToImage(ctx, redSquare(t), 20, 10); err == nil {
		t.Error("ToImage() with canceled context error = nil, want error")
	}
}

func TestToRasterFormats(t *testing.T) {
	svg := redSquare(t)
	ctx := context.Background()

	data, err := ToRaster(ctx, svg, 20, 10, export.PNG)
	if err != nil {
		t.Fatalf("ToRaster(png) error = %v", err)
	}
	if cfg, err := png.DecodeConfig(bytes.NewReader(data)); err != nil || cfg.Width != 20 {
		t.Errorf("png DecodeConfig = %+v, %v", cfg, err)
	}

	data, err = ToRaster(ctx, svg, 20, 10, export.JPEG, WithBackground("white"))
	if err != nil {
		t.Fatalf("ToRaster(jpeg) error = %v", err)
	}
	if cfg, err := jpeg.DecodeConfig(bytes.NewReader(data)); err != nil || cfg.Height != 10 {
		t.Errorf("jpeg DecodeConfig = %+v, %v", cfg, err)
	}

	data, err = ToRaster(ctx, svg, 20, 10, export.WEBP)
	if err != nil {
		t.Fatalf("ToRaster(webp) error = %v", err)
	}
	if cfg, err := webp.DecodeConfig(bytes.NewReader(data)); err != nil || cfg.Width != 20 {
		t.Errorf("webp DecodeConfig = %+v, %v", cfg, err)
	}

	if _, err := ToRaster(ctx, svg, 20, 10, export.PDF); !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("ToRaster(pdf) error = %v, want UNSUPPORTED_FORMAT", err)
	}
}

func TestForRequest(t *testing.T) {
	r := rasterizer{}
	for _, opt := range ForRequest(export.RasterRequest{Kind: export.JPEG, Scale: 3}) {
		opt(&r)
	}
	if r.scale != 3 || r.background != "white" {
		t.Errorf("ForRequest() = %+v, want scale 3 white background", r)
	}
}
