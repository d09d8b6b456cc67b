package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/artwork/pkg/cache"
	"github.com/matzehuels/artwork/pkg/compilers"
	"github.com/matzehuels/artwork/pkg/errors"
	"github.com/matzehuels/artwork/pkg/export"
	pkgio "github.com/matzehuels/artwork/pkg/io"
	"github.com/matzehuels/artwork/pkg/observability"
	"github.com/matzehuels/artwork/pkg/shape"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, method registry and
// logger. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Registry *shape.Registry
}

// NewRunner creates a runner with the given cache and keyer and the
// built-in shape methods.
// If keyer is nil, a DefaultKeyer is used.
// A nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Registry: compilers.Registry(),
	}
}

// Execute runs the complete load → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, desc *pkgio.Description, opts Options) (*Result, error) {
	if desc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "description is required")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string]export.Result),
	}
	result.Stats.Artboards = len(desc.Artboards)
	result.Stats.Elements = countElements(desc)

	hash, err := HashDescription(desc)
	if err != nil {
		return nil, err
	}
	result.DescriptionHash = hash

	configs := opts.Configs
	if len(configs) == 0 {
		configs = desc.ExportConfigs()
	}
	configsHash, err := hashConfigs(configs)
	if err != nil {
		return nil, err
	}

	// Stage 1: Cache lookup
	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, hash, configsHash, opts); ok {
			result.Artifacts = artifacts
			result.Stats.Outputs = countOutputs(artifacts)
			result.CacheInfo.RenderHit = true
			r.Logger.Info("served cached artifacts",
				"source", opts.Source,
				"formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2: Load
	loadStart := time.Now()
	ws, err := r.Load(ctx, desc, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Workspace = ws
	result.Stats.Artboards = ws.Len()
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("built workspace",
		"source", opts.Source,
		"artboards", ws.Len(),
		"elements", result.Stats.Elements,
		"duration", result.Stats.LoadTime)

	// Stage 3: Export
	renderStart := time.Now()
	artifacts, err := Render(ctx, ws, opts, configs)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.Outputs = countOutputs(artifacts)
	result.Stats.RenderTime = time.Since(renderStart)

	for _, f := range opts.ExportFormats() {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(f, configsHash))
		r.store(ctx, key, artifacts[f.String()])
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"outputs", result.Stats.Outputs,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Methods returns the shape methods available to descriptions.
func (r *Runner) Methods() []*shape.Method {
	return r.Registry.Methods()
}

// cached returns every requested artifact from the cache, or false if any
// of them is missing.
func (r *Runner) cached(ctx context.Context, hash, configsHash string, opts Options) (map[string]export.Result, bool) {
	artifacts := make(map[string]export.Result, len(opts.ExportFormats()))
	for _, f := range opts.ExportFormats() {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(f, configsHash))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Debug("cache lookup failed", "key", key, "error", err)
		}
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, key)
			return nil, false
		}
		var res export.Result
		if err := json.Unmarshal(data, &res); err != nil || len(res.Outputs) == 0 {
			observability.Cache().OnCacheMiss(ctx, key)
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, key)
		artifacts[f.String()] = res
	}
	return artifacts, true
}

// store caches one export result. Failures are logged and otherwise
// ignored.
func (r *Runner) store(ctx context.Context, key string, res export.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		r.Logger.Debug("encode artifact for cache", "key", key, "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Debug("cache store failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func hashConfigs(configs []export.Config) (string, error) {
	if len(configs) == 0 {
		return "", nil
	}
	h, err := cache.HashJSON(configs)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "encode configs")
	}
	return h, nil
}

func countOutputs(artifacts map[string]export.Result) int {
	n := 0
	for _, res := range artifacts {
		n += len(res.Outputs)
	}
	return n
}
