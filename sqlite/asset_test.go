package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/mediumghost"
	"github.com/fwojciec/mediumghost/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }

func newAsset(slug, file string) *mediumghost.Asset {
	return &mediumghost.Asset{
		URL:         "https://cdn-images-1.medium.com/max/800/" + file,
		Namespace:   "downloaded_images/" + slug,
		LocalPath:   "downloaded_images/" + slug + "/" + file,
		Size:        1024,
		ContentHash: "ef46db3751d8e999",
		FetchedAt:   time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func TestAssetService_CreateAsset(t *testing.T) {
	t.Parallel()

	t.Run("creates asset with generated ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAssetService(setupTestDB(t))
		asset := newAsset("post", "1-a.png")

		err := svc.CreateAsset(context.Background(), asset)

		require.NoError(t, err)
		assert.NotEmpty(t, asset.ID, "ID should be generated")
	})

	t.Run("round-trips all fields", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAssetService(setupTestDB(t))
		ctx := context.Background()
		asset := newAsset("post", "1-a.png")
		require.NoError(t, svc.CreateAsset(ctx, asset))

		found, err := svc.FindAssets(ctx, mediumghost.AssetFilter{URL: ptr(asset.URL)})

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, asset.ID, found[0].ID)
		assert.Equal(t, asset.Namespace, found[0].Namespace)
		assert.Equal(t, asset.LocalPath, found[0].LocalPath)
		assert.Equal(t, asset.Size, found[0].Size)
		assert.Equal(t, asset.ContentHash, found[0].ContentHash)
		assert.True(t, asset.FetchedAt.Equal(found[0].FetchedAt))
	})

	t.Run("sets fetched time when missing", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAssetService(setupTestDB(t))
		asset := newAsset("post", "1-a.png")
		asset.FetchedAt = time.Time{}

		require.NoError(t, svc.CreateAsset(context.Background(), asset))

		assert.False(t, asset.FetchedAt.IsZero())
	})

	t.Run("updates existing asset for same URL and namespace", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAssetService(setupTestDB(t))
		ctx := context.Background()

		first := newAsset("post", "1-a.png")
		require.NoError(t, svc.CreateAsset(ctx, first))

		second := newAsset("post", "1-a.png")
		second.Size = 2048
		require.NoError(t, svc.CreateAsset(ctx, second))

		assert.Equal(t, first.ID, second.ID)

		found, err := svc.FindAssets(ctx, mediumghost.AssetFilter{})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, int64(2048), found[0].Size)
	})

	t.Run("keeps same URL in different namespaces apart", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAssetService(setupTestDB(t))
		ctx := context.Background()

		a := newAsset("first-post", "1-a.png")
		b := newAsset("second-post", "1-a.png")
		require.NoError(t, svc.CreateAsset(ctx, a))
		require.NoError(t, svc.CreateAsset(ctx, b))

		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("returns error for invalid asset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewAssetService(setupTestDB(t))

		err := svc.CreateAsset(context.Background(), &mediumghost.Asset{URL: "https://x/a.png"})

		assert.Equal(t, mediumghost.EINVALID, mediumghost.ErrorCode(err))
	})
}

func TestAssetService_FindAssets(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.AssetService {
		t.Helper()
		svc := sqlite.NewAssetService(setupTestDB(t))
		for i := range 3 {
			require.NoError(t, svc.CreateAsset(context.Background(), newAsset("b-post", fmt.Sprintf("%d.png", i))))
		}
		require.NoError(t, svc.CreateAsset(context.Background(), newAsset("a-post", "cover.png")))
		return svc
	}

	t.Run("returns all assets ordered by namespace and path", func(t *testing.T) {
		t.Parallel()

		found, err := seed(t).FindAssets(context.Background(), mediumghost.AssetFilter{})

		require.NoError(t, err)
		require.Len(t, found, 4)
		assert.Equal(t, "downloaded_images/a-post/cover.png", found[0].LocalPath)
		assert.Equal(t, "downloaded_images/b-post/0.png", found[1].LocalPath)
		assert.Equal(t, "downloaded_images/b-post/2.png", found[3].LocalPath)
	})

	t.Run("filters by namespace", func(t *testing.T) {
		t.Parallel()

		found, err := seed(t).FindAssets(context.Background(), mediumghost.AssetFilter{
			Namespace: ptr("downloaded_images/a-post"),
		})

		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "downloaded_images/a-post/cover.png", found[0].LocalPath)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		found, err := seed(t).FindAssets(context.Background(), mediumghost.AssetFilter{Limit: 2, Offset: 1})

		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "downloaded_images/b-post/0.png", found[0].LocalPath)
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		found, err := seed(t).FindAssets(context.Background(), mediumghost.AssetFilter{Offset: 3})

		require.NoError(t, err)
		require.Len(t, found, 1)
	})

	t.Run("returns empty for no matches", func(t *testing.T) {
		t.Parallel()

		found, err := seed(t).FindAssets(context.Background(), mediumghost.AssetFilter{URL: ptr("https://nowhere")})

		require.NoError(t, err)
		assert.Empty(t, found)
	})
}
