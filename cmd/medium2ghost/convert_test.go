package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/mediumghost"
	main "github.com/fwojciec/mediumghost/cmd/medium2ghost"
	"github.com/fwojciec/mediumghost/convert"
	"github.com/fwojciec/mediumghost/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConverter converts every file into a post whose title is its name.
// Files named comment.html are treated as comments.
func stubConverter() *convert.Converter {
	return &convert.Converter{
		Metadata: &mock.MetadataExtractor{
			ExtractMetadataFn: func(html string) (*mediumghost.Metadata, error) {
				return &mediumghost.Metadata{Title: html, HasTitleMarker: html != "comment"}, nil
			},
		},
		Parser: &mock.Parser{
			ParseFn: func(html string) (*mediumghost.Mobiledoc, error) {
				return mediumghost.NewMobiledoc(), nil
			},
		},
	}
}

func TestConvertCmd_Run(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	newDeps := func(stdout, stderr *bytes.Buffer) *main.Dependencies {
		return &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Now:    func() time.Time { return now },
			Source: &mock.PostSource{
				PostsFn: func(ctx context.Context) ([]*mediumghost.PostFile, error) {
					return []*mediumghost.PostFile{
						{Name: "posts/2018-10-21_first-aaaaaaaaaaaa.html", HTML: "First"},
						{Name: "posts/2019-01-02_reply-bbbbbbbbbbbb.html", HTML: "comment"},
						{Name: "posts/broken.html", HTML: "Broken"},
					}, nil
				},
			},
			Converter: stubConverter(),
		}
	}

	t.Run("writes export and archive", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)

		var written *mediumghost.Export
		deps.Exports = &mock.ExportWriter{
			WriteExportFn: func(ctx context.Context, export *mediumghost.Export) (string, error) {
				written = export
				return "out/medium_export_for_ghost.json", nil
			},
		}
		var archivedDir, archivedDst string
		deps.Archiver = &mock.Archiver{
			ArchiveFn: func(ctx context.Context, dir, dst string) error {
				archivedDir, archivedDst = dir, dst
				return nil
			},
		}

		cmd := &main.ConvertCmd{Output: "out", Archive: "medium_export_for_ghost.zip"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, written)
		require.Len(t, written.Posts(), 1)
		assert.Equal(t, "First", written.Posts()[0].Title)
		assert.Equal(t, now.Unix(), written.DB[0].Meta.ExportedOn)
		assert.Equal(t, "out", archivedDir)
		assert.Equal(t, "medium_export_for_ghost.zip", archivedDst)

		output := stdout.String()
		assert.Contains(t, output, "Found 3 posts")
		assert.Contains(t, output, "skip posts/2019-01-02_reply-bbbbbbbbbbbb.html")
		assert.Contains(t, output, "Converted 1 posts (1 skipped, 1 failed)")
		assert.Contains(t, output, "Successfully created medium_export_for_ghost.zip")
		assert.Contains(t, stderr.String(), "fail posts/broken.html")
	})

	t.Run("skips archive when disabled", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Exports = &mock.ExportWriter{
			WriteExportFn: func(ctx context.Context, export *mediumghost.Export) (string, error) {
				return "out/medium_export_for_ghost.json", nil
			},
		}
		deps.Archiver = &mock.Archiver{
			ArchiveFn: func(ctx context.Context, dir, dst string) error {
				t.Fatal("archive should not be created")
				return nil
			},
		}

		cmd := &main.ConvertCmd{Output: "out", NoArchive: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Wrote out/medium_export_for_ghost.json")
		assert.NotContains(t, stdout.String(), "Successfully created")
	})

	t.Run("reports missing export", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Source = &mock.PostSource{
			PostsFn: func(ctx context.Context) ([]*mediumghost.PostFile, error) {
				return nil, mediumghost.Errorf(mediumghost.ENOTFOUND, "unable to find medium-export.zip")
			},
		}

		cmd := &main.ConvertCmd{Output: "out"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: unable to find medium-export.zip")
		assert.Empty(t, stdout.String())
	})

	t.Run("returns error when export cannot be written", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Exports = &mock.ExportWriter{
			WriteExportFn: func(ctx context.Context, export *mediumghost.Export) (string, error) {
				return "", errors.New("disk full")
			},
		}

		cmd := &main.ConvertCmd{Output: "out"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("returns error when archive fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Exports = &mock.ExportWriter{
			WriteExportFn: func(ctx context.Context, export *mediumghost.Export) (string, error) {
				return "out/medium_export_for_ghost.json", nil
			},
		}
		deps.Archiver = &mock.Archiver{
			ArchiveFn: func(ctx context.Context, dir, dst string) error {
				return errors.New("permission denied")
			},
		}

		cmd := &main.ConvertCmd{Output: "out", Archive: "x.zip"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error archiving: permission denied")
	})
}
