package main

import (
	"errors"
	"fmt"
	"path"

	"github.com/fwojciec/mediumghost"
)

// Run executes the assets command.
func (c *AssetsCmd) Run(deps *Dependencies) error {
	if deps.Assets == nil {
		err := errors.New("no manifest configured. Set --manifest or MEDIUM2GHOST_MANIFEST")
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	filter := mediumghost.AssetFilter{Limit: c.Limit}
	if c.Post != "" {
		namespace := path.Join(c.Root, c.Post)
		filter.Namespace = &namespace
	}

	assets, err := deps.Assets.FindAssets(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mediumghost.ErrorMessage(err))
		return err
	}

	if len(assets) == 0 {
		fmt.Fprintln(deps.Stdout, "No images found. Use 'medium2ghost convert' to download some.")
		return nil
	}

	for _, a := range assets {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d\n", a.LocalPath, a.ContentHash, a.URL, a.Size)
	}

	return nil
}
