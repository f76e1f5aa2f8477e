package mediumghost

import (
	"context"
	"net/url"
	"path"
	"strings"
	"time"
)

// Asset is an image downloaded into the local cache.
type Asset struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Namespace   string    `json:"namespace"`
	LocalPath   string    `json:"localPath"`
	Size        int64     `json:"size"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the asset contains invalid fields.
func (a *Asset) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "asset URL required")
	}
	if a.LocalPath == "" {
		return Errorf(EINVALID, "asset local path required")
	}
	return nil
}

// AssetResolver makes a remote asset available locally.
type AssetResolver interface {
	// ResolveAsset returns the local path of the asset at rawURL, cached
	// under namespace. Repeated calls with the same arguments return the
	// same path and fetch at most once.
	//
	// On a fetch failure the would-be local path is still returned along
	// with the error, so callers can treat the failure as non-fatal.
	ResolveAsset(ctx context.Context, rawURL, namespace string) (string, error)
}

// AssetFetcher downloads remote assets.
type AssetFetcher interface {
	// Fetch returns the body of the resource at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DomainLimiter throttles requests per host.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// AssetService represents a service for recording cached assets.
type AssetService interface {
	// CreateAsset records an asset. An existing record for the same URL
	// and namespace is replaced.
	CreateAsset(ctx context.Context, asset *Asset) error

	// FindAssets retrieves assets matching the filter.
	FindAssets(ctx context.Context, filter AssetFilter) ([]*Asset, error)
}

// AssetFilter represents a filter for FindAssets.
type AssetFilter struct {
	URL       *string `json:"url"`
	Namespace *string `json:"namespace"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// AssetFilename derives the cache filename for an asset URL: the last path
// segment, with characters Ghost rejects replaced.
// Example: https://cdn-images-1.medium.com/max/800/1*x.png → 1-x.png
func AssetFilename(rawURL string) (string, error) {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}

	name := path.Base(p)
	if name == "" || name == "." || name == ".." || name == "/" || strings.HasSuffix(p, "/") {
		return "", Errorf(EINVALID, "asset URL %q has no file name", rawURL)
	}

	// Medium uses stars in image names but Ghost does not accept them.
	return strings.ReplaceAll(name, "*", "-"), nil
}
