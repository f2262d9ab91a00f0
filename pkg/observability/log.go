package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug log line. It implements all hook
// interfaces and backs the CLI's --verbose mode.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger, or to the default logger if nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

// Register installs h as pipeline, cache and session hooks.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetSessionHooks(h)
}

func (h *LogHooks) OnBuildStart(_ context.Context, variant string, records int) {
	h.logger.Debug("build start", "variant", variant, "records", records)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, variant string, nodes, links int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "variant", variant, "duration", d, "err", err)
		return
	}
	h.logger.Debug("build done", "variant", variant, "nodes", nodes, "links", links, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnFocusChange(_ context.Context, from, to string) {
	h.logger.Debug("focus", "from", from, "to", to)
}

func (h *LogHooks) OnRecompute(_ context.Context, trigger string, d time.Duration) {
	h.logger.Debug("recompute", "trigger", trigger, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ SessionHooks  = (*LogHooks)(nil)
)
