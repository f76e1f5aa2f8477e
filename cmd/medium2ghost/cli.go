package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/mediumghost"
	"github.com/fwojciec/mediumghost/convert"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Now    func() time.Time

	Source    mediumghost.PostSource
	Converter *convert.Converter
	Exports   mediumghost.ExportWriter
	Archiver  mediumghost.Archiver
	Assets    mediumghost.AssetService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose  bool   `short:"v" env:"MEDIUM2GHOST_VERBOSE" help:"Log debug output"`
	Manifest string `env:"MEDIUM2GHOST_MANIFEST" help:"SQLite file recording downloaded images"`

	Convert ConvertCmd `cmd:"" help:"Convert a Medium export zip into a Ghost import archive"`
	Assets  AssetsCmd  `cmd:"" help:"List images recorded in the manifest"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Export      string          `arg:"" help:"Medium export zip file"`
	Output      string          `short:"o" default:"exported_content" env:"MEDIUM2GHOST_OUTPUT" help:"Directory the import file and images are written to"`
	Archive     string          `default:"medium_export_for_ghost.zip" env:"MEDIUM2GHOST_ARCHIVE" help:"Path of the Ghost import archive"`
	NoArchive   bool            `help:"Only write the output directory"`
	ImageRoot   string          `default:"downloaded_images" env:"MEDIUM2GHOST_IMAGE_ROOT" help:"Image directory inside the output directory"`
	NoImages    bool            `help:"Keep remote image URLs instead of downloading images"`
	Concurrency int             `short:"c" default:"4" env:"MEDIUM2GHOST_CONCURRENCY" help:"Posts converted at once"`
	Timeout     time.Duration   `default:"10s" env:"MEDIUM2GHOST_TIMEOUT" help:"HTTP timeout per image request"`
	UserAgent   string          `default:"medium_to_ghost post exporter" env:"MEDIUM2GHOST_USER_AGENT" help:"User-Agent sent when downloading images"`
	RPS         float64         `default:"2" env:"MEDIUM2GHOST_RPS" help:"Image requests per second per host, all Medium CDN hosts counted as one (0 disables)"`
	RetryDelays []time.Duration `default:"1s,2s,4s" sep:"," env:"MEDIUM2GHOST_RETRY_DELAYS" help:"Delays between image download attempts"`
}

// AssetsCmd is the "assets" subcommand.
type AssetsCmd struct {
	Post  string `short:"p" help:"Only list images of this post slug"`
	Root  string `default:"downloaded_images" env:"MEDIUM2GHOST_IMAGE_ROOT" help:"Image directory the post slug is resolved under"`
	Limit int    `short:"n" help:"Maximum number of images to list"`
}
