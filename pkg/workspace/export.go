package workspace

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
	"github.com/matzehuels/artwork/pkg/observability"
	"github.com/matzehuels/artwork/pkg/render/document"
	"github.com/matzehuels/artwork/pkg/scene"
)

// Description is the JSON form of a workspace.
type Description struct {
	Artboards []scene.Description `json:"artboards"`
}

// Describe returns the workspace description.
func (w *Workspace) Describe() Description {
	boards := w.Artboards()
	d := Description{Artboards: make([]scene.Description, len(boards))}
	for i, s := range boards {
		d.Artboards[i] = s.Describe()
	}
	return d
}

// To exports the workspace in the named format. Unknown formats fail with
// ErrCodeUnsupportedFormat.
func (w *Workspace) To(ctx context.Context, format string, opts export.Options) (export.Result, error) {
	req, err := export.NewRequest(format, opts)
	if err != nil {
		return export.Result{}, err
	}
	return w.Export(ctx, req)
}

// Export dispatches a typed request. An empty workspace fails with
// ErrCodeEmptyWorkspace before any rendering starts.
func (w *Workspace) Export(ctx context.Context, req export.Request) (res export.Result, err error) {
	if err := export.Validate(req); err != nil {
		return export.Result{}, err
	}
	boards := w.Artboards()
	if len(boards) == 0 {
		return export.Result{}, errors.New(errors.ErrCodeEmptyWorkspace, "workspace has no artboards")
	}
	f := req.Format()
	if f != export.JSON && f != export.PDF && w.Derived() {
		return export.Result{}, errors.New(errors.ErrCodeDocumentDerived, "workspace loaded from a document cannot be exported as %s", f)
	}

	var targets []int
	if configs := req.Common().Configs; len(configs) > 0 && f != export.JSON {
		if targets, err = w.Targets(len(configs)); err != nil {
			return export.Result{}, err
		}
	}

	start := time.Now()
	observability.Pipeline().OnExportStart(ctx, f.String(), len(req.Common().Configs))
	defer func() {
		observability.Pipeline().OnExportComplete(ctx, f.String(), len(res.Outputs), time.Since(start), err)
		if err == nil {
			w.logger.Debug("exported workspace", "format", f, "artboards", len(boards), "outputs", len(res.Outputs), "duration", time.Since(start))
		}
	}()

	switch r := req.(type) {
	case export.SVGRequest:
		return w.each(ctx, r, boards, targets, func(ctx context.Context, s *scene.Scene) ([]byte, error) {
			return s.Markup(ctx)
		})
	case export.RasterRequest:
		return w.each(ctx, r, boards, targets, func(ctx context.Context, s *scene.Scene) ([]byte, error) {
			return s.Raster(ctx, r)
		})
	case export.PDFRequest:
		return w.toPDF(ctx, r, boards, targets)
	case export.JSONRequest:
		data, err := json.Marshal(w.Describe())
		if err != nil {
			return export.Result{}, errors.Wrap(errors.ErrCodeInternal, err, "encode description")
		}
		return export.Single(export.Encode(f.MIME(), data, export.ResponseFor(r)), r.Array), nil
	}
	return export.Result{}, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported request %T", req)
}

// ToSVG exports one markup document per artboard, or one per config.
func (w *Workspace) ToSVG(ctx context.Context, r export.SVGRequest) (export.Result, error) {
	return w.Export(ctx, r)
}

// ToPNG exports one PNG per artboard, or one per config.
func (w *Workspace) ToPNG(ctx context.Context, r export.RasterRequest) (export.Result, error) {
	r.Kind = export.PNG
	return w.Export(ctx, r)
}

// ToJPEG exports one JPEG per artboard, or one per config.
func (w *Workspace) ToJPEG(ctx context.Context, r export.RasterRequest) (export.Result, error) {
	r.Kind = export.JPEG
	return w.Export(ctx, r)
}

// ToWEBP exports one WEBP per artboard, or one per config.
func (w *Workspace) ToWEBP(ctx context.Context, r export.RasterRequest) (export.Result, error) {
	r.Kind = export.WEBP
	return w.Export(ctx, r)
}

// ToPDF exports one document with a page per artboard, or a page per
// config. With r.Individual and configs it produces one single-page
// document per config.
func (w *Workspace) ToPDF(ctx context.Context, r export.PDFRequest) (export.Result, error) {
	return w.Export(ctx, r)
}

// ToJSON exports the workspace description.
func (w *Workspace) ToJSON(ctx context.Context, r export.JSONRequest) (export.Result, error) {
	return w.Export(ctx, r)
}

// each renders every artboard, or the target artboard of every config.
// Without configs a single artboard yields a single output unless Array is
// set.
func (w *Workspace) each(ctx context.Context, req export.Request, boards []*scene.Scene, targets []int, fn func(context.Context, *scene.Scene) ([]byte, error)) (export.Result, error) {
	opts := req.Common()
	mime := req.Format().MIME()
	rt := export.ResponseFor(req)

	if targets == nil {
		for _, s := range boards {
			if err := s.Check(req.Format()); err != nil {
				return export.Result{}, err
			}
		}
		outs := make([]export.Output, 0, len(boards))
		for _, s := range boards {
			data, err := fn(ctx, s)
			if err != nil {
				return export.Result{}, err
			}
			outs = append(outs, export.Encode(mime, data, rt))
		}
		if len(outs) == 1 && !opts.Array {
			return export.Single(outs[0], false), nil
		}
		return export.Many(outs), nil
	}

	for _, i := range uniq(targets) {
		if err := boards[i].Check(req.Format()); err != nil {
			return export.Result{}, err
		}
	}
	outs := make([]export.Output, 0, len(targets))
	for k, i := range targets {
		s := boards[i]
		if err := s.Configure(ctx, opts.Configs[k]); err != nil {
			return export.Result{}, err
		}
		data, err := fn(ctx, s)
		if err != nil {
			return export.Result{}, err
		}
		outs = append(outs, export.Encode(mime, data, rt))
	}
	return export.Many(outs), nil
}

func (w *Workspace) toPDF(ctx context.Context, r export.PDFRequest, boards []*scene.Scene, targets []int) (export.Result, error) {
	for _, s := range boards {
		if err := s.Check(export.PDF); err != nil {
			return export.Result{}, err
		}
	}
	mime := export.PDF.MIME()
	rt := export.ResponseFor(r)

	if targets != nil && r.Individual {
		outs := make([]export.Output, 0, len(targets))
		for k, i := range targets {
			s := boards[i]
			if err := s.Configure(ctx, r.Configs[k]); err != nil {
				return export.Result{}, err
			}
			doc := document.New()
			if err := s.DrawPage(ctx, doc, scene.NewGraphicCache()); err != nil {
				return export.Result{}, err
			}
			data, err := doc.Bytes()
			if err != nil {
				return export.Result{}, err
			}
			outs = append(outs, export.Encode(mime, data, rt))
		}
		return export.Many(outs), nil
	}

	doc := document.New()
	caches := make([]*scene.GraphicCache, len(boards))
	for i := range caches {
		caches[i] = scene.NewGraphicCache()
	}
	if targets == nil {
		for i, s := range boards {
			if err := s.DrawPage(ctx, doc, caches[i]); err != nil {
				return export.Result{}, err
			}
		}
	} else {
		for k, i := range targets {
			if err := boards[i].Configure(ctx, r.Configs[k]); err != nil {
				return export.Result{}, err
			}
			if err := boards[i].DrawPage(ctx, doc, caches[i]); err != nil {
				return export.Result{}, err
			}
		}
	}
	data, err := doc.Bytes()
	if err != nil {
		return export.Result{}, err
	}
	return export.Single(export.Encode(mime, data, rt), r.Array), nil
}

func uniq(idx []int) []int {
	seen := make(map[int]bool, len(idx))
	var out []int
	for _, i := range idx {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}
