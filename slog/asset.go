package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mediumghost"
)

// Ensure LoggingAssetService implements mediumghost.AssetService.
var _ mediumghost.AssetService = (*LoggingAssetService)(nil)

// LoggingAssetService wraps an AssetService with debug logging.
type LoggingAssetService struct {
	next   mediumghost.AssetService
	logger *slog.Logger
}

// NewLoggingAssetService creates a new LoggingAssetService.
func NewLoggingAssetService(next mediumghost.AssetService, logger *slog.Logger) *LoggingAssetService {
	return &LoggingAssetService{next: next, logger: logger}
}

// CreateAsset delegates to the wrapped service and logs the operation.
func (s *LoggingAssetService) CreateAsset(ctx context.Context, asset *mediumghost.Asset) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create asset",
			"url", asset.URL,
			"path", asset.LocalPath,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateAsset(ctx, asset)
}

// FindAssets delegates to the wrapped service and logs the operation.
func (s *LoggingAssetService) FindAssets(ctx context.Context, filter mediumghost.AssetFilter) (assets []*mediumghost.Asset, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find assets",
			"count", len(assets),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindAssets(ctx, filter)
}
