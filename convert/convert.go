// Package convert assembles Ghost posts from the files of a Medium export.
// It ties together metadata extraction, markup translation and image
// resolution for each post, and converts many posts in parallel.
package convert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sync/atomic"

	"github.com/fwojciec/mediumghost"
	"golang.org/x/sync/errgroup"
)

// DefaultImageRoot is the directory, relative to the output root, that
// images are cached under. Each post gets its own subdirectory.
const DefaultImageRoot = "downloaded_images"

// GhostImagePrefix is where Ghost serves files imported from the archive.
const GhostImagePrefix = "/content/images"

// DefaultConcurrency is the number of posts converted at once.
const DefaultConcurrency = 4

// ErrComment is returned for export files that hold a comment rather than a
// post. Medium exports every response as a full story.
var ErrComment = errors.New("post appears to be a Medium comment")

// Converter turns exported post files into Ghost posts.
type Converter struct {
	Metadata  mediumghost.MetadataExtractor
	Parser    mediumghost.Parser
	Assets    mediumghost.AssetResolver // optional; images stay remote if nil
	Plaintext mediumghost.Converter     // optional; plaintext is null if nil
	Logger    *slog.Logger              // optional

	ImageRoot   string
	Concurrency int
}

// Result holds the outcome of converting a batch of posts.
type Result struct {
	Posts     []*mediumghost.GhostPost // converted posts in input order
	Converted int
	Skipped   int
	Failed    int

	ImagesResolved int
	ImagesFailed   int
}

// ProgressEvent reports progress during a batch conversion.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Name      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressConverted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting conversion progress.
type ProgressFunc func(event ProgressEvent)

// imageStats counts image resolutions for one post.
type imageStats struct {
	resolved int
	failed   int
}

// postResult holds the outcome of converting a single file.
type postResult struct {
	position int
	name     string
	post     *mediumghost.GhostPost
	images   imageStats
	err      error
}

// ConvertPost converts a single export file. It returns ErrComment for
// comments, an EINVALID error if the file name does not follow Medium's
// naming scheme, and any error from parsing the markup.
//
// Images that cannot be resolved keep their remote URL; that is not an error.
func (c *Converter) ConvertPost(ctx context.Context, file *mediumghost.PostFile) (*mediumghost.GhostPost, error) {
	post, _, err := c.convertPost(ctx, file)
	return post, err
}

func (c *Converter) convertPost(ctx context.Context, file *mediumghost.PostFile) (*mediumghost.GhostPost, imageStats, error) {
	var stats imageStats

	info, err := mediumghost.ParseFilename(file.Name)
	if err != nil {
		return nil, stats, err
	}

	meta, err := c.Metadata.ExtractMetadata(file.HTML)
	if err != nil {
		return nil, stats, fmt.Errorf("extract metadata: %w", err)
	}
	if meta.IsComment() {
		c.logger().Warn("skipping comment", "file", file.Name)
		return nil, stats, ErrComment
	}

	doc, err := c.Parser.Parse(file.HTML)
	if err != nil {
		return nil, stats, fmt.Errorf("parse markup: %w", err)
	}

	post := mediumghost.NewGhostPost(info, meta, file.HTML)
	stats = c.resolveImages(ctx, doc, info.Slug, post)

	mobiledoc, err := json.Marshal(doc)
	if err != nil {
		return nil, stats, fmt.Errorf("encode mobiledoc: %w", err)
	}
	post.Mobiledoc = string(mobiledoc)

	if c.Plaintext != nil {
		if text, err := c.Plaintext.Convert(file.HTML); err != nil {
			c.logger().Warn("plaintext conversion failed", "file", file.Name, "err", err)
		} else {
			post.Plaintext = &text
		}
	}

	if err := post.Validate(); err != nil {
		return nil, stats, err
	}
	return post, stats, nil
}

// resolveImages rewrites image cards to point at the local copies and sets
// the post's feature image.
func (c *Converter) resolveImages(ctx context.Context, doc *mediumghost.Mobiledoc, slug string, post *mediumghost.GhostPost) imageStats {
	var stats imageStats
	namespace := path.Join(c.imageRoot(), slug)

	for _, img := range doc.Images() {
		feature := img.Src

		if c.Assets != nil && img.Src != "" {
			rel, err := c.Assets.ResolveAsset(ctx, img.Src, namespace)
			if err != nil {
				stats.failed++
			} else {
				stats.resolved++
				img.Src = path.Join(GhostImagePrefix, rel)
				feature = "/" + rel
			}
		}

		if img.Featured && post.FeatureImage == nil {
			post.FeatureImage = &feature
		}
	}

	return stats
}

// ConvertAll converts files concurrently. Skipped and failed files are
// counted and reported through progress but do not stop the batch. The
// returned error is non-nil only if ctx is canceled.
func (c *Converter) ConvertAll(ctx context.Context, files []*mediumghost.PostFile, progress ProgressFunc) (*Result, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(files)
	resultCh := make(chan postResult, total)
	var completed atomic.Int64

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, file := range files {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					resultCh <- postResult{position: i, name: file.Name, err: err}
					return nil
				}
				post, images, err := c.convertPost(gctx, file)
				resultCh <- postResult{position: i, name: file.Name, post: post, images: images, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]postResult, total)
	res := &Result{}
	for r := range resultCh {
		results[r.position] = r
		n := int(completed.Add(1))

		event := ProgressEvent{Completed: n, Total: total, Name: r.name, Error: r.err}
		res.ImagesResolved += r.images.resolved
		res.ImagesFailed += r.images.failed

		switch {
		case r.err == nil:
			res.Converted++
			event.Type = ProgressConverted
		case errors.Is(r.err, ErrComment):
			res.Skipped++
			event.Type = ProgressSkipped
		default:
			res.Failed++
			event.Type = ProgressFailed
			c.logger().Error("convert failed", "file", r.name, "err", r.err)
		}

		if progress != nil {
			progress(event)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Posts = make([]*mediumghost.GhostPost, 0, res.Converted)
	for _, r := range results {
		if r.post != nil {
			res.Posts = append(res.Posts, r.post)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return res, nil
}

func (c *Converter) imageRoot() string {
	if c.ImageRoot == "" {
		return DefaultImageRoot
	}
	return c.ImageRoot
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
