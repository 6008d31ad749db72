package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a structured logger at debug level.
// It implements LayoutHooks, CacheHooks and APIHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, variant string) {
	h.logger.Debug("layout start", "variant", variant)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, variant string, elements int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "variant", variant, "err", err)
		return
	}
	h.logger.Debug("layout complete", "variant", variant, "elements", elements, "duration", d)
}

func (h *LogHooks) OnPlanStart(_ context.Context, seed uint64) {
	h.logger.Debug("plan start", "seed", seed)
}

func (h *LogHooks) OnPlanComplete(_ context.Context, segments int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("plan failed", "err", err)
		return
	}
	h.logger.Debug("plan complete", "segments", segments, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
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

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ LayoutHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ APIHooks    = (*LogHooks)(nil)
)
