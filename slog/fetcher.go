// Package slog provides log/slog decorators for mediumghost services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mediumghost"
)

// Ensure LoggingFetcher implements mediumghost.AssetFetcher.
var _ mediumghost.AssetFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps an AssetFetcher with debug logging.
type LoggingFetcher struct {
	next   mediumghost.AssetFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next mediumghost.AssetFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (body []byte, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
