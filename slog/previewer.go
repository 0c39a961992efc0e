package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docpeek"
)

// Ensure LoggingPreviewer implements docpeek.Previewer.
var _ docpeek.Previewer = (*LoggingPreviewer)(nil)

// LoggingPreviewer wraps a Previewer with debug logging.
// Missing previews are logged with their error code.
type LoggingPreviewer struct {
	next   docpeek.Previewer
	logger *slog.Logger
}

// NewLoggingPreviewer creates a new LoggingPreviewer.
func NewLoggingPreviewer(next docpeek.Previewer, logger *slog.Logger) *LoggingPreviewer {
	return &LoggingPreviewer{next: next, logger: logger}
}

// Preview delegates to the wrapped previewer and logs the outcome.
func (p *LoggingPreviewer) Preview(ctx context.Context, key docpeek.PreviewKey) (text string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"key", key.String(),
			"chars", len([]rune(text)),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", docpeek.ErrorCode(err), "err", docpeek.ErrorMessage(err))
		}
		p.logger.Info("preview", attrs...)
	}(time.Now())
	return p.next.Preview(ctx, key)
}
