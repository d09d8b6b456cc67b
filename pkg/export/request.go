package export

import "github.com/matzehuels/artwork/pkg/errors"

// Config is a caller-supplied configuration object handed to configurers.
type Config map[string]any

// Options are shared by every request type.
type Options struct {
	// Response selects the representation. Empty means the format default.
	Response ResponseType

	// Configs drives batch rendering: one output (or page) per entry.
	Configs []Config

	// Array forces a list-shaped result even for a single output.
	Array bool
}

// Request is one of SVGRequest, RasterRequest, PDFRequest or JSONRequest.
type Request interface {
	Format() Format
	Common() Options
}

// SVGRequest exports markup.
type SVGRequest struct {
	Options
}

// RasterRequest exports pixels.
type RasterRequest struct {
	Options
	Kind Format

	// Background is a fill color painted below the artwork. JPEG always
	// uses white when empty.
	Background string

	// Scale multiplies the logical pixel size of the output. Zero means 1.
	Scale float64
}

// PDFRequest exports a document.
type PDFRequest struct {
	Options

	// Individual produces one standalone document per config instead of one
	// document with a page per config.
	Individual bool
}

// JSONRequest exports the structural description.
type JSONRequest struct {
	Options
}

func (r SVGRequest) Format() Format    { return SVG }
func (r RasterRequest) Format() Format { return r.Kind }
func (r PDFRequest) Format() Format    { return PDF }
func (r JSONRequest) Format() Format   { return JSON }

func (r SVGRequest) Common() Options    { return r.Options }
func (r RasterRequest) Common() Options { return r.Options }
func (r PDFRequest) Common() Options    { return r.Options }
func (r JSONRequest) Common() Options   { return r.Options }

// OutputScale returns the effective scale factor.
func (r RasterRequest) OutputScale() float64 {
	if r.Scale <= 0 {
		return 1
	}
	return r.Scale
}

// EffectiveBackground returns the fill to paint, forcing white for JPEG.
func (r RasterRequest) EffectiveBackground() string {
	if r.Background == "" && r.Kind == JPEG {
		return "white"
	}
	return r.Background
}

// NewRequest resolves a format string and wraps opts in the matching
// request type. Raster and document specific fields keep their zero values.
func NewRequest(format string, opts Options) (Request, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return RequestFor(f, opts), nil
}

// RequestFor wraps opts in the request type for f.
func RequestFor(f Format, opts Options) Request {
	switch f {
	case SVG:
		return SVGRequest{Options: opts}
	case PDF:
		return PDFRequest{Options: opts}
	case JSON:
		return JSONRequest{Options: opts}
	default:
		return RasterRequest{Options: opts, Kind: f}
	}
}

// ResponseFor returns the representation to use for r.
func ResponseFor(r Request) ResponseType {
	if rt := r.Common().Response; rt != "" {
		return rt
	}
	return r.Format().DefaultResponse()
}

// Validate checks request fields that do not depend on the exported object.
func Validate(r Request) error {
	if rr, ok := r.(RasterRequest); ok {
		if !rr.Kind.IsRaster() {
			return errors.New(errors.ErrCodeUnsupportedFormat, "%s is not a raster format", rr.Kind)
		}
		if err := errors.ValidateScale(rr.Scale); err != nil {
			return err
		}
	}
	return nil
}
