package mock

import (
	"context"

	"github.com/fwojciec/mediumghost"
)

var _ mediumghost.AssetResolver = (*AssetResolver)(nil)

// AssetResolver is a mock implementation of mediumghost.AssetResolver.
type AssetResolver struct {
	ResolveAssetFn func(ctx context.Context, rawURL, namespace string) (string, error)
}

func (r *AssetResolver) ResolveAsset(ctx context.Context, rawURL, namespace string) (string, error) {
	return r.ResolveAssetFn(ctx, rawURL, namespace)
}

var _ mediumghost.AssetService = (*AssetService)(nil)

// AssetService is a mock implementation of mediumghost.AssetService.
type AssetService struct {
	CreateAssetFn func(ctx context.Context, asset *mediumghost.Asset) error
	FindAssetsFn  func(ctx context.Context, filter mediumghost.AssetFilter) ([]*mediumghost.Asset, error)
}

func (s *AssetService) CreateAsset(ctx context.Context, asset *mediumghost.Asset) error {
	return s.CreateAssetFn(ctx, asset)
}

func (s *AssetService) FindAssets(ctx context.Context, filter mediumghost.AssetFilter) ([]*mediumghost.Asset, error) {
	return s.FindAssetsFn(ctx, filter)
}
