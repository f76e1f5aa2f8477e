package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mediumghost"
)

// Ensure LoggingAssetResolver implements mediumghost.AssetResolver.
var _ mediumghost.AssetResolver = (*LoggingAssetResolver)(nil)

// LoggingAssetResolver wraps an AssetResolver with logging. Failures are
// logged at warn level: they leave the post pointing at the remote image.
type LoggingAssetResolver struct {
	next   mediumghost.AssetResolver
	logger *slog.Logger
}

// NewLoggingAssetResolver creates a new LoggingAssetResolver.
func NewLoggingAssetResolver(next mediumghost.AssetResolver, logger *slog.Logger) *LoggingAssetResolver {
	return &LoggingAssetResolver{next: next, logger: logger}
}

// ResolveAsset delegates to the wrapped resolver and logs the operation.
func (r *LoggingAssetResolver) ResolveAsset(ctx context.Context, rawURL, namespace string) (path string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		r.logger.Log(ctx, level, "resolve asset",
			"url", rawURL,
			"namespace", namespace,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ResolveAsset(ctx, rawURL, namespace)
}
