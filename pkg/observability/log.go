package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug line on a logger. It implements
// [PipelineHooks], [CacheHooks] and [HTTPHooks]; the CLI registers it for
// all three under --verbose.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger with an "event" prefix.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("event")}
}

// Register installs h for every hook category.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) done(msg string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "took", d.Round(time.Microsecond))
	if err != nil {
		h.logger.Debug(msg+" failed", append(kv, "error", err)...)
		return
	}
	h.logger.Debug(msg, kv...)
}

func (h *LogHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load", "source", source)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, source string, artboards int, d time.Duration, err error) {
	h.done("loaded", d, err, "source", source, "artboards", artboards)
}

func (h *LogHooks) OnCompileComplete(_ context.Context, elements int, d time.Duration, err error) {
	h.done("compiled", d, err, "elements", elements)
}

func (h *LogHooks) OnExportStart(_ context.Context, format string, configs int) {
	h.logger.Debug("export", "format", format, "configs", configs)
}

func (h *LogHooks) OnExportComplete(_ context.Context, format string, outputs int, d time.Duration, err error) {
	h.done("exported", d, err, "format", format, "outputs", outputs)
}

func (h *LogHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", key)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", key)
}

func (h *LogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", key, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.done("response", d, nil, "method", method, "path", path, "status", status)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Debug("request error", "method", method, "path", path, "error", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
