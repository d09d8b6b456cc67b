// Package pipeline runs the load → build → export pipeline shared by the CLI
// and the HTTP server.
//
// # Stages
//
//  1. Load: read a declarative description (see package io) and build a
//     workspace with the built-in shape methods registered
//  2. Export: render the workspace in every requested format
//
// Export results are cached per description and option set, so a repeated
// run with the same inputs skips the build entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	desc, err := io.ReadFile("poster.yaml")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, desc, pipeline.Options{
//	    Formats: []string{"svg", "pdf"},
//	})
//	svg := result.Artifacts["svg"].First().Text
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/artwork/pkg/cache"
	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
	"github.com/matzehuels/artwork/pkg/workspace"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultFormat is exported when Options.Formats is empty.
	DefaultFormat = "svg"

	// DefaultSupersample is the raster surface multiplier.
	DefaultSupersample = 4

	// MaxSupersample bounds the raster surface multiplier.
	MaxSupersample = 8
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It supports JSON serialization for
// API requests.
type Options struct {
	Formats    []string        `json:"formats,omitempty"`
	Response   string          `json:"response,omitempty"`
	Configs    []export.Config `json:"configs,omitempty"`
	Individual bool            `json:"individual,omitempty"` // pdf: one document per config
	Array      bool            `json:"array,omitempty"`
	Background string          `json:"background,omitempty"` // raster fill
	Scale      float64         `json:"scale,omitempty"`      // raster output scale
	Refresh    bool            `json:"refresh,omitempty"`    // ignore cached artifacts

	Supersample int `json:"supersample,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Source string      `json:"-"` // label for logs and hooks, e.g. the file path

	// formats holds the parsed Formats after validation.
	formats   []export.Format
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Workspace is the built workspace. It is nil when every artifact came
	// from the cache.
	Workspace *workspace.Workspace

	// DescriptionHash is the content hash of the description and any
	// document it references.
	DescriptionHash string

	// Artifacts holds one export result per requested format, keyed by the
	// short format name.
	Artifacts map[string]export.Result

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the export stage hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Artboards  int
	Elements   int
	Outputs    int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format name or MIME type is exportable.
func ValidateFormat(format string) error {
	_, err := export.ParseFormat(format)
	return err
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	seen := make(map[export.Format]bool, len(o.Formats))
	o.formats = o.formats[:0]
	for _, name := range o.Formats {
		f, err := export.ParseFormat(name)
		if err != nil {
			return err
		}
		if !seen[f] {
			seen[f] = true
			o.formats = append(o.formats, f)
		}
	}
	if _, err := export.ParseResponseType(o.Response); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Supersample == 0 {
		o.Supersample = DefaultSupersample
	}
	if o.Supersample < 1 || o.Supersample > MaxSupersample {
		return errors.New(errors.ErrCodeInvalidInput, "supersample %d out of range [1, %d]", o.Supersample, MaxSupersample)
	}
	if o.Source == "" {
		o.Source = "description"
	}
	o.validated = true
	return nil
}

// ExportFormats returns the validated, de-duplicated formats in request
// order.
func (o *Options) ExportFormats() []export.Format {
	return o.formats
}

// Request builds the export request for f with the given configs.
func (o *Options) Request(f export.Format, configs []export.Config) export.Request {
	rt, _ := export.ParseResponseType(o.Response)
	base := export.Options{Response: rt, Configs: configs, Array: o.Array}
	switch r := export.RequestFor(f, base).(type) {
	case export.RasterRequest:
		r.Background = o.Background
		r.Scale = o.Scale
		return r
	case export.PDFRequest:
		r.Individual = o.Individual
		return r
	default:
		return r
	}
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(f export.Format, configsHash string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:      f.String(),
		Response:    o.Response,
		ConfigsHash: configsHash,
		Array:       o.Array,
	}
	switch {
	case f.IsRaster():
		opts.Background = o.Background
		opts.Scale = o.Scale
		opts.Supersample = float64(o.Supersample)
	case f == export.PDF:
		opts.Individual = o.Individual
	}
	return opts
}
