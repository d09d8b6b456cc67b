package scene

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
	"github.com/matzehuels/artwork/pkg/observability"
	"github.com/matzehuels/artwork/pkg/render"
	"github.com/matzehuels/artwork/pkg/render/document"
	"github.com/matzehuels/artwork/pkg/shape"
)

// To exports the scene in the named format. Unknown formats fail with
// ErrCodeUnsupportedFormat.
func (s *Scene) To(ctx context.Context, format string, opts export.Options) (export.Result, error) {
	req, err := export.NewRequest(format, opts)
	if err != nil {
		return export.Result{}, err
	}
	return s.Export(ctx, req)
}

// Export dispatches a typed request.
func (s *Scene) Export(ctx context.Context, req export.Request) (res export.Result, err error) {
	if err := export.Validate(req); err != nil {
		return export.Result{}, err
	}
	if err := s.Check(req.Format()); err != nil {
		return export.Result{}, err
	}

	start := time.Now()
	format := req.Format().String()
	observability.Pipeline().OnExportStart(ctx, format, len(req.Common().Configs))
	defer func() {
		observability.Pipeline().OnExportComplete(ctx, format, len(res.Outputs), time.Since(start), err)
	}()

	switch r := req.(type) {
	case export.SVGRequest:
		return s.batch(ctx, r, s.Markup)
	case export.RasterRequest:
		return s.batch(ctx, r, func(ctx context.Context) ([]byte, error) {
			return s.Raster(ctx, r)
		})
	case export.PDFRequest:
		return s.toPDF(ctx, r)
	case export.JSONRequest:
		return s.batch(ctx, r, func(context.Context) ([]byte, error) {
			return json.Marshal(s.Describe())
		})
	}
	return export.Result{}, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported request %T", req)
}

// Check reports whether the scene can be exported as f.
func (s *Scene) Check(f export.Format) error {
	if f == export.JSON {
		return nil
	}
	if s.Derived() {
		if f != export.PDF {
			return errors.New(errors.ErrCodeDocumentDerived, "board %d comes from a loaded document and cannot be exported as %s", s.Index(), f)
		}
		return nil
	}
	if s.Len() == 0 {
		return errors.New(errors.ErrCodeEmptyScene, "board %d has no elements", s.Index())
	}
	return nil
}

// ToSVG exports SVG markup.
func (s *Scene) ToSVG(ctx context.Context, r export.SVGRequest) (export.Result, error) {
	return s.Export(ctx, r)
}

// ToPNG exports a PNG.
func (s *Scene) ToPNG(ctx context.Context, r export.RasterRequest) (export.Result, error) {
	r.Kind = export.PNG
	return s.Export(ctx, r)
}

// ToJPEG exports a JPEG on a white background unless another is given.
func (s *Scene) ToJPEG(ctx context.Context, r export.RasterRequest) (export.Result, error) {
	r.Kind = export.JPEG
	return s.Export(ctx, r)
}

// ToWEBP exports a WEBP.
func (s *Scene) ToWEBP(ctx context.Context, r export.RasterRequest) (export.Result, error) {
	r.Kind = export.WEBP
	return s.Export(ctx, r)
}

// ToPDF exports a single-page document sized to the scene. With configs it
// produces one page per config, or one document per config when
// r.Individual is set.
func (s *Scene) ToPDF(ctx context.Context, r export.PDFRequest) (export.Result, error) {
	return s.Export(ctx, r)
}

// ToJSON exports the scene description.
func (s *Scene) ToJSON(ctx context.Context, r export.JSONRequest) (export.Result, error) {
	return s.Export(ctx, r)
}

// Raster renders the current state of the scene to encoded pixels. The
// markup is produced first and rasterized only once it is complete.
func (s *Scene) Raster(ctx context.Context, r export.RasterRequest) ([]byte, error) {
	svg, err := s.Markup(ctx)
	if err != nil {
		return nil, err
	}
	var opts []render.RasterOption
	if s.supersample > 0 {
		opts = append(opts, render.WithSupersample(s.supersample))
	}
	if r.Background == "" && s.background != "" {
		r.Background = s.background
	}
	opts = append(opts, render.ForRequest(r)...)
	return render.ToRaster(ctx, svg, s.width, s.height, r.Kind, opts...)
}

func (s *Scene) toPDF(ctx context.Context, r export.PDFRequest) (export.Result, error) {
	if len(r.Configs) == 0 || r.Individual {
		return s.batch(ctx, r, func(ctx context.Context) ([]byte, error) {
			doc := document.New()
			if err := s.DrawPage(ctx, doc, NewGraphicCache()); err != nil {
				return nil, err
			}
			return doc.Bytes()
		})
	}

	doc := document.New()
	cache := NewGraphicCache()
	for _, cfg := range r.Configs {
		if err := s.Configure(ctx, cfg); err != nil {
			return export.Result{}, err
		}
		if err := s.DrawPage(ctx, doc, cache); err != nil {
			return export.Result{}, err
		}
	}
	data, err := doc.Bytes()
	if err != nil {
		return export.Result{}, err
	}
	return export.Single(export.Encode(export.PDF.MIME(), data, export.ResponseFor(r)), r.Array), nil
}

// batch renders once, or once per config after configuring the scene.
// Configs are applied sequentially and the scene keeps the last one.
func (s *Scene) batch(ctx context.Context, req export.Request, fn func(context.Context) ([]byte, error)) (export.Result, error) {
	opts := req.Common()
	mime := req.Format().MIME()
	rt := export.ResponseFor(req)

	if len(opts.Configs) == 0 {
		data, err := fn(ctx)
		if err != nil {
			return export.Result{}, err
		}
		return export.Single(export.Encode(mime, data, rt), opts.Array), nil
	}

	outs := make([]export.Output, 0, len(opts.Configs))
	for _, cfg := range opts.Configs {
		if err := s.Configure(ctx, cfg); err != nil {
			return export.Result{}, err
		}
		data, err := fn(ctx)
		if err != nil {
			return export.Result{}, err
		}
		outs = append(outs, export.Encode(mime, data, rt))
	}
	return export.Many(outs), nil
}

// =============================================================================
// Document pages
// =============================================================================

// GraphicCache holds parsed document graphics per element so that pages of
// one document can share them. A cached graphic is reused while the
// element has not been recompiled since it was parsed.
type GraphicCache struct {
	entries map[*shape.Instance]cachedGraphic
	parsed  int
}

type cachedGraphic struct {
	revision uint64
	graphic  *document.Graphic
}

// NewGraphicCache returns an empty cache.
func NewGraphicCache() *GraphicCache {
	return &GraphicCache{entries: make(map[*shape.Instance]cachedGraphic)}
}

// Parsed returns how many graphics were parsed through the cache.
func (c *GraphicCache) Parsed() int { return c.parsed }

func (c *GraphicCache) graphic(ctx context.Context, inst *shape.Instance, w, h float64) (*document.Graphic, error) {
	rev := inst.Revision()
	if e, ok := c.entries[inst]; ok && e.revision == rev {
		return e.graphic, nil
	}
	nodes, err := inst.Nodes()
	if err != nil {
		return nil, err
	}
	g, err := document.Parse(ctx, nodes, w, h)
	if err != nil {
		return nil, err
	}
	c.entries[inst] = cachedGraphic{revision: inst.Revision(), graphic: g}
	c.parsed++
	return g, nil
}

// DrawPage appends a page of the scene size to doc and draws the scene on
// it: the source page first when the scene is derived, then every visible
// element in paint order. Elements compile concurrently before drawing
// starts; drawing itself stays on the calling goroutine.
func (s *Scene) DrawPage(ctx context.Context, doc *document.Document, cache *GraphicCache) error {
	if err := s.Compile(ctx); err != nil {
		return err
	}
	if err := doc.AddPage(s.width, s.height); err != nil {
		return err
	}
	if s.source != nil {
		if err := doc.DrawSource(s.source, s.page); err != nil {
			return err
		}
	}
	for _, inst := range s.visible() {
		if err := ctx.Err(); err != nil {
			return err
		}
		g, err := cache.graphic(ctx, inst, s.width, s.height)
		if err != nil {
			return err
		}
		if err := doc.Draw(g); err != nil {
			return err
		}
	}
	return nil
}
