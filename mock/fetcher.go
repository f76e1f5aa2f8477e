package mock

import (
	"context"

	"github.com/fwojciec/mediumghost"
)

var _ mediumghost.AssetFetcher = (*AssetFetcher)(nil)

// AssetFetcher is a mock implementation of mediumghost.AssetFetcher.
type AssetFetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *AssetFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}

var _ mediumghost.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of mediumghost.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
