package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/mediumghost"
	"github.com/fwojciec/mediumghost/convert"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	files, err := deps.Source.Posts(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mediumghost.ErrorMessage(err))
		return err
	}

	progress := func(event convert.ProgressEvent) {
		switch event.Type {
		case convert.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Found %d posts\n", event.Total)
		case convert.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  skip %s: comment\n", event.Name)
		case convert.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", event.Name, event.Error)
		}
	}

	result, err := deps.Converter.ConvertAll(deps.Ctx, files, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error converting: %v\n", err)
		return err
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	path, err := deps.Exports.WriteExport(deps.Ctx, mediumghost.NewExport(result.Posts, now()))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mediumghost.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Converted %d posts (%d skipped, %d failed)\n",
		result.Converted, result.Skipped, result.Failed)
	if result.ImagesResolved > 0 || result.ImagesFailed > 0 {
		fmt.Fprintf(deps.Stdout, "  Saved %d images (%d failed)\n", result.ImagesResolved, result.ImagesFailed)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)

	if c.NoArchive {
		return nil
	}

	if err := deps.Archiver.Archive(deps.Ctx, c.Output, c.Archive); err != nil {
		fmt.Fprintf(deps.Stderr, "error archiving: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Successfully created %s. Upload this file to a Ghost 2.0+ instance!\n", c.Archive)
	return nil
}
