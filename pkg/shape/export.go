package shape

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
	"github.com/matzehuels/artwork/pkg/render"
	"github.com/matzehuels/artwork/pkg/render/document"
	"github.com/matzehuels/artwork/pkg/vector"
)

// To exports the instance in the named format. Unknown formats fail with
// ErrCodeUnsupportedFormat.
func (i *Instance) To(ctx context.Context, format string, opts export.Options) (export.Result, error) {
	req, err := export.NewRequest(format, opts)
	if err != nil {
		return export.Result{}, err
	}
	return i.Export(ctx, req)
}

// Export dispatches a typed request.
func (i *Instance) Export(ctx context.Context, req export.Request) (export.Result, error) {
	if err := export.Validate(req); err != nil {
		return export.Result{}, err
	}
	switch r := req.(type) {
	case export.SVGRequest:
		return i.ToSVG(ctx, r)
	case export.RasterRequest:
		return i.toRaster(ctx, r)
	case export.PDFRequest:
		return i.ToPDF(ctx, r)
	case export.JSONRequest:
		return i.ToJSON(ctx, r)
	}
	return export.Result{}, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported request %T", req)
}

// ToSVG exports standalone markup sized to the scaled viewBox.
func (i *Instance) ToSVG(ctx context.Context, r export.SVGRequest) (export.Result, error) {
	return i.batch(ctx, r, func(ctx context.Context) ([]byte, error) {
		data, _, _, err := i.markup()
		return data, err
	})
}

// ToPNG exports a PNG.
func (i *Instance) ToPNG(ctx context.Context, r export.RasterRequest) (export.Result, error) {
	r.Kind = export.PNG
	return i.toRaster(ctx, r)
}

// ToJPEG exports a JPEG on a white background unless another is given.
func (i *Instance) ToJPEG(ctx context.Context, r export.RasterRequest) (export.Result, error) {
	r.Kind = export.JPEG
	return i.toRaster(ctx, r)
}

// ToWEBP exports a WEBP.
func (i *Instance) ToWEBP(ctx context.Context, r export.RasterRequest) (export.Result, error) {
	r.Kind = export.WEBP
	return i.toRaster(ctx, r)
}

func (i *Instance) toRaster(ctx context.Context, r export.RasterRequest) (export.Result, error) {
	if err := export.Validate(r); err != nil {
		return export.Result{}, err
	}
	return i.batch(ctx, r, func(ctx context.Context) ([]byte, error) {
		svg, w, h, err := i.markup()
		if err != nil {
			return nil, err
		}
		return render.ToRaster(ctx, svg, w, h, r.Kind, render.ForRequest(r)...)
	})
}

// ToPDF exports a document with one page sized to the scaled viewBox. With
// configs it produces one page per config, or one document per config when
// r.Individual is set.
func (i *Instance) ToPDF(ctx context.Context, r export.PDFRequest) (export.Result, error) {
	if len(r.Configs) == 0 || r.Individual {
		return i.batch(ctx, r, func(ctx context.Context) ([]byte, error) {
			doc := document.New()
			if err := i.drawPage(ctx, doc); err != nil {
				return nil, err
			}
			return doc.Bytes()
		})
	}

	doc := document.New()
	for _, cfg := range r.Configs {
		if err := ctx.Err(); err != nil {
			return export.Result{}, err
		}
		if err := i.Configure(cfg); err != nil {
			return export.Result{}, err
		}
		if err := i.drawPage(ctx, doc); err != nil {
			return export.Result{}, err
		}
	}
	data, err := doc.Bytes()
	if err != nil {
		return export.Result{}, err
	}
	return export.Single(export.Encode(export.PDF.MIME(), data, export.ResponseFor(r)), r.Array), nil
}

func (i *Instance) drawPage(ctx context.Context, doc *document.Document) error {
	nodes, w, h, err := i.standalone()
	if err != nil {
		return err
	}
	if err := doc.AddPage(w, h); err != nil {
		return err
	}
	g, err := document.Parse(ctx, nodes, w, h)
	if err != nil {
		return err
	}
	return doc.Draw(g)
}

// ToJSON exports the structural description.
func (i *Instance) ToJSON(ctx context.Context, r export.JSONRequest) (export.Result, error) {
	return i.batch(ctx, r, func(context.Context) ([]byte, error) {
		return json.Marshal(i.Describe())
	})
}

func (i *Instance) markup() ([]byte, float64, float64, error) {
	nodes, w, h, err := i.standalone()
	if err != nil {
		return nil, 0, 0, err
	}
	data, err := vector.Markup(vector.NewDocument(w, h, nodes...))
	return data, w, h, err
}

// batch renders once, or once per config after reconfiguring. The instance
// keeps the last config applied.
func (i *Instance) batch(ctx context.Context, req export.Request, fn func(context.Context) ([]byte, error)) (export.Result, error) {
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
		if err := ctx.Err(); err != nil {
			return export.Result{}, err
		}
		if err := i.Configure(cfg); err != nil {
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
