// Package fs provides file-based storage for converted exports and the
// images they reference.
package fs

import (
	"context"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mediumghost"
	"golang.org/x/sync/singleflight"
)

// Ensure AssetCache implements mediumghost.AssetResolver at compile time.
var _ mediumghost.AssetResolver = (*AssetCache)(nil)

// AssetCache downloads assets into a directory tree keyed by namespace and
// file name. A file that already exists is never fetched again.
type AssetCache struct {
	root    string
	fetcher mediumghost.AssetFetcher
	assets  mediumghost.AssetService
	now     func() time.Time

	group singleflight.Group
}

// AssetCacheOption configures an AssetCache.
type AssetCacheOption func(*AssetCache)

// WithAssetService records every downloaded asset in s.
func WithAssetService(s mediumghost.AssetService) AssetCacheOption {
	return func(c *AssetCache) {
		c.assets = s
	}
}

// WithClock sets the clock used for FetchedAt. Defaults to time.Now.
func WithClock(now func() time.Time) AssetCacheOption {
	return func(c *AssetCache) {
		c.now = now
	}
}

// NewAssetCache creates an AssetCache storing files below root.
func NewAssetCache(root string, fetcher mediumghost.AssetFetcher, opts ...AssetCacheOption) *AssetCache {
	c := &AssetCache{
		root:    root,
		fetcher: fetcher,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveAsset returns the slash-separated path of the asset relative to
// the cache root, e.g. downloaded_images/my-post/1-abc.png, downloading it
// first if needed. Concurrent calls for the same path share one download.
//
// If the download fails the path is returned together with the error.
func (c *AssetCache) ResolveAsset(ctx context.Context, rawURL, namespace string) (string, error) {
	name, err := mediumghost.AssetFilename(rawURL)
	if err != nil {
		return "", err
	}

	rel := path.Join(namespace, name)
	full := filepath.Join(c.root, filepath.FromSlash(rel))

	_, err, _ = c.group.Do(full, func() (any, error) {
		return nil, c.download(ctx, rawURL, namespace, rel, full)
	})
	return rel, err
}

func (c *AssetCache) download(ctx context.Context, rawURL, namespace, rel, full string) error {
	if _, err := os.Stat(full); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	body, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(full, body); err != nil {
		return err
	}

	if c.assets == nil {
		return nil
	}
	return c.assets.CreateAsset(ctx, &mediumghost.Asset{
		URL:         rawURL,
		Namespace:   namespace,
		LocalPath:   rel,
		Size:        int64(len(body)),
		ContentHash: hashContent(body),
		FetchedAt:   c.now().UTC(),
	})
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	b := make([]byte, 8)
	h := xxhash.Sum64(content)
	for i := 7; i >= 0; i-- {
		b[i] = byte(h)
		h >>= 8
	}
	return hex.EncodeToString(b)
}

// writeFileAtomic writes data next to name and renames it into place, so
// readers never observe a partially written file.
func writeFileAtomic(name string, data []byte) error {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}
