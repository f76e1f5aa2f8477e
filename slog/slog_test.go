package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/mediumghost"
	"github.com/fwojciec/mediumghost/mock"
	mgslog "github.com/fwojciec/mediumghost/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.AssetFetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				return []byte("png-bytes"), nil
			},
		}

		fetcher := mgslog.NewLoggingFetcher(inner, newLogger(&buf))
		body, err := fetcher.Fetch(context.Background(), "https://cdn-images-1.medium.com/a.png")

		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), body)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://cdn-images-1.medium.com/a.png")
		assert.Contains(t, output, "bytes=9")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.AssetFetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				return nil, errors.New("network error")
			},
		}

		fetcher := mgslog.NewLoggingFetcher(inner, newLogger(&buf))
		_, err := fetcher.Fetch(context.Background(), "https://cdn-images-1.medium.com/a.png")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="network error"`)
	})
}

func TestLoggingAssetResolver_ResolveAsset(t *testing.T) {
	t.Parallel()

	t.Run("logs resolved path at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.AssetResolver{
			ResolveAssetFn: func(ctx context.Context, rawURL, namespace string) (string, error) {
				return namespace + "/1-a.png", nil
			},
		}

		resolver := mgslog.NewLoggingAssetResolver(inner, newLogger(&buf))
		path, err := resolver.ResolveAsset(context.Background(), "https://x/1*a.png", "downloaded_images/post")

		require.NoError(t, err)
		assert.Equal(t, "downloaded_images/post/1-a.png", path)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, `msg="resolve asset"`)
		assert.Contains(t, output, "namespace=downloaded_images/post")
		assert.Contains(t, output, "path=downloaded_images/post/1-a.png")
	})

	t.Run("logs failure at warn and passes path through", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.AssetResolver{
			ResolveAssetFn: func(ctx context.Context, rawURL, namespace string) (string, error) {
				return namespace + "/1-a.png", errors.New("HTTP 403")
			},
		}

		resolver := mgslog.NewLoggingAssetResolver(inner, newLogger(&buf))
		path, err := resolver.ResolveAsset(context.Background(), "https://x/1*a.png", "downloaded_images/post")

		require.Error(t, err)
		assert.Equal(t, "downloaded_images/post/1-a.png", path)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, `err="HTTP 403"`)
	})
}

func TestLoggingParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("logs document size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		doc := mediumghost.NewMobiledoc()
		doc.AddSection(&mediumghost.CardSection{Card: doc.AddCard(&mediumghost.HRCard{})})
		inner := &mock.Parser{
			ParseFn: func(html string) (*mediumghost.Mobiledoc, error) {
				return doc, nil
			},
		}

		got, err := mgslog.NewLoggingParser(inner, newLogger(&buf)).Parse("<hr><hr>")

		require.NoError(t, err)
		assert.Same(t, doc, got)
		output := buf.String()
		assert.Contains(t, output, "msg=parse")
		assert.Contains(t, output, "bytes=8")
		assert.Contains(t, output, "sections=1")
		assert.Contains(t, output, "cards=1")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Parser{
			ParseFn: func(html string) (*mediumghost.Mobiledoc, error) {
				return nil, mediumghost.Errorf(mediumghost.EINVALID, "nested blocks")
			},
		}

		_, err := mgslog.NewLoggingParser(inner, newLogger(&buf)).Parse("<p>")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "sections=0")
		assert.Contains(t, buf.String(), "err=")
	})
}

func TestLoggingAssetService(t *testing.T) {
	t.Parallel()

	t.Run("logs create", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.AssetService{
			CreateAssetFn: func(ctx context.Context, asset *mediumghost.Asset) error {
				return nil
			},
		}

		svc := mgslog.NewLoggingAssetService(inner, newLogger(&buf))
		err := svc.CreateAsset(context.Background(), &mediumghost.Asset{URL: "https://x/a.png", LocalPath: "downloaded_images/p/a.png"})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), `msg="create asset"`)
		assert.Contains(t, buf.String(), "path=downloaded_images/p/a.png")
	})

	t.Run("logs find count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.AssetService{
			FindAssetsFn: func(ctx context.Context, filter mediumghost.AssetFilter) ([]*mediumghost.Asset, error) {
				return []*mediumghost.Asset{{}, {}}, nil
			},
		}

		assets, err := mgslog.NewLoggingAssetService(inner, newLogger(&buf)).FindAssets(context.Background(), mediumghost.AssetFilter{})

		require.NoError(t, err)
		assert.Len(t, assets, 2)
		assert.Contains(t, buf.String(), "count=2")
	})
}
