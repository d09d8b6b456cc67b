// Package export defines output formats, typed export requests and the
// byte-to-representation encoder shared by shapes, scenes and workspaces.
//
// # Formats
//
// [Format] is a closed set resolved once at the boundary by [ParseFormat],
// which accepts every shorthand and MIME alias:
//
//	f, err := export.ParseFormat("image/svg+xml") // export.SVG
//
// # Requests
//
// Each format family has its own request type carrying only the options it
// understands. All of them embed [Options]:
//
//	req, err := export.NewRequest("png", export.Options{Configs: cfgs})
//	raster := req.(export.RasterRequest)
//
// # Encoding
//
// [Encode] turns a byte buffer into the caller's requested [ResponseType]:
// text, base64, byte-preserving string, raw bytes or a data URI.
package export

import (
	"strings"

	"github.com/matzehuels/artwork/pkg/errors"
)

// Format is an output format.
type Format int

const (
	JSON Format = iota + 1
	PDF
	SVG
	PNG
	JPEG
	WEBP
)

var formatNames = map[Format]string{
	JSON: "json",
	PDF:  "pdf",
	SVG:  "svg",
	PNG:  "png",
	JPEG: "jpeg",
	WEBP: "webp",
}

var formatMIME = map[Format]string{
	JSON: "application/json",
	PDF:  "application/pdf",
	SVG:  "image/svg+xml",
	PNG:  "image/png",
	JPEG: "image/jpeg",
	WEBP: "image/webp",
}

var formatAliases = map[string]Format{
	"json":             JSON,
	"application/json": JSON,
	"pdf":              PDF,
	"application/pdf":  PDF,
	"svg":              SVG,
	"svg+xml":          SVG,
	"image/svg+xml":    SVG,
	"png":              PNG,
	"image/png":        PNG,
	"jpg":              JPEG,
	"jpeg":             JPEG,
	"image/jpeg":       JPEG,
	"webp":             WEBP,
	"image/webp":       WEBP,
}

// ParseFormat resolves a shorthand or MIME type. Matching is
// case-insensitive; unknown strings fail with ErrCodeUnsupportedFormat.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return 0, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported export type %q", s)
}

// Formats returns every format in declaration order.
func Formats() []Format {
	return []Format{JSON, PDF, SVG, PNG, JPEG, WEBP}
}

// String returns the short name.
func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// MIME returns the media type.
func (f Format) MIME() string {
	return formatMIME[f]
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return f.String()
}

// IsRaster reports whether f is a pixel format.
func (f Format) IsRaster() bool {
	return f == PNG || f == JPEG || f == WEBP
}

// DefaultResponse is the representation used when a request leaves
// Response unset: data URIs for pixels, raw bytes for documents and text
// for markup.
func (f Format) DefaultResponse() ResponseType {
	switch {
	case f.IsRaster():
		return DataURI
	case f == PDF:
		return ArrayBuffer
	default:
		return String
	}
}
