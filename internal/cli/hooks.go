package cli

import (
	"context"
	"time"

	"github.com/matzehuels/stressmap/pkg/observability"
)

// logHooks reports pipeline events at debug level on the logger attached to
// the command context.
type logHooks struct{}

var (
	_ observability.RenderHooks = logHooks{}
	_ observability.CacheHooks  = logHooks{}
)

func (logHooks) OnRunStart(ctx context.Context, runID string, formats []string) {
	loggerFromContext(ctx).Debug("run started", "run", runID, "formats", formats)
}

func (logHooks) OnFormatComplete(ctx context.Context, runID, format string, size int, d time.Duration, err error) {
	if err != nil {
		loggerFromContext(ctx).Debug("format failed", "run", runID, "format", format, "error", err)
		return
	}
	loggerFromContext(ctx).Debug("format done", "run", runID, "format", format, "bytes", size, "duration", d.Round(time.Microsecond))
}

func (logHooks) OnRunComplete(ctx context.Context, runID string, d time.Duration, err error) {
	loggerFromContext(ctx).Debug("run complete", "run", runID, "duration", d.Round(time.Microsecond), "ok", err == nil)
}

func (logHooks) OnPointRejected(ctx context.Context, runID string, index int, r, theta float64) {
	loggerFromContext(ctx).Debug("point rejected", "run", runID, "index", index, "r", r, "theta", theta)
}

func (logHooks) OnCacheHit(ctx context.Context, format string) {
	loggerFromContext(ctx).Debug("cache hit", "format", format)
}

func (logHooks) OnCacheMiss(ctx context.Context, format string) {
	loggerFromContext(ctx).Debug("cache miss", "format", format)
}

func (logHooks) OnCacheSet(ctx context.Context, format string, size int) {
	loggerFromContext(ctx).Debug("cache set", "format", format, "bytes", size)
}
