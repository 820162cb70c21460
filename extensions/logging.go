package extensions

import (
	"context"
	"log/slog"
	"time"

	supply "github.com/pumped-fn/supply-go"
	"github.com/pumped-fn/supply-go/internal/ctxlog"
)

// LoggingExtension logs every resolution with its duration through the
// resolver's logger.
type LoggingExtension struct {
	supply.BaseExtension
	level slog.Level
}

// NewLoggingExtension creates a logging extension emitting at level.
// Failures are always logged at error level.
func NewLoggingExtension(level slog.Level) *LoggingExtension {
	return &LoggingExtension{
		BaseExtension: supply.NewBaseExtension("logging"),
		level:         level,
	}
}

func (e *LoggingExtension) Wrap(ctx context.Context, next func() (any, error), op *supply.Operation) (any, error) {
	logger := ctxlog.FromContext(ctx).With(
		"extension", e.Name(),
		"operation", string(op.Kind),
		"supplier", supply.Describe(op.Supplier),
	)

	start := time.Now()
	logger.Log(ctx, e.level, "supply starting", "contexts", len(op.Contexts))
	result, err := next()

	duration := time.Since(start)
	if err != nil {
		logger.Error("supply failed", "duration", duration, "error", err)
	} else {
		logger.Log(ctx, e.level, "supply completed", "duration", duration, "empty", result == nil)
	}

	return result, err
}
