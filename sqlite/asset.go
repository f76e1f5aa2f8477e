package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/mediumghost"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ mediumghost.AssetService = (*AssetService)(nil)

// AssetService implements mediumghost.AssetService using SQLite.
type AssetService struct {
	db *DB
}

// NewAssetService creates a new AssetService.
func NewAssetService(db *DB) *AssetService {
	return &AssetService{db: db}
}

// CreateAsset records an asset. A record for the same URL and namespace is
// updated in place and keeps its ID. A zero FetchedAt is set to now.
func (s *AssetService) CreateAsset(ctx context.Context, asset *mediumghost.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}

	if asset.FetchedAt.IsZero() {
		asset.FetchedAt = time.Now().UTC()
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO assets (id, url, namespace, local_path, size, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url, namespace) DO UPDATE SET
			local_path = excluded.local_path,
			size = excluded.size,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), asset.URL, asset.Namespace, asset.LocalPath, asset.Size,
		asset.ContentHash, asset.FetchedAt.Format(time.RFC3339)).Scan(&asset.ID)
}

// FindAssets retrieves assets matching the filter, ordered by namespace
// and local path.
func (s *AssetService) FindAssets(ctx context.Context, filter mediumghost.AssetFilter) ([]*mediumghost.Asset, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, namespace, local_path, size, content_hash, fetched_at FROM assets WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Namespace != nil {
		query.WriteString(" AND namespace = ?")
		args = append(args, *filter.Namespace)
	}

	query.WriteString(" ORDER BY namespace ASC, local_path ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*mediumghost.Asset
	for rows.Next() {
		var asset mediumghost.Asset
		var fetchedAt string

		if err := rows.Scan(&asset.ID, &asset.URL, &asset.Namespace, &asset.LocalPath,
			&asset.Size, &asset.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		if asset.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		assets = append(assets, &asset)
	}

	return assets, rows.Err()
}
