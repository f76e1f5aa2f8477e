package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mediumghost/convert"
	"github.com/fwojciec/mediumghost/fs"
	"github.com/fwojciec/mediumghost/goquery"
	"github.com/fwojciec/mediumghost/htmltomarkdown"
	mghttp "github.com/fwojciec/mediumghost/http"
	"github.com/fwojciec/mediumghost/nethtml"
	mgslog "github.com/fwojciec/mediumghost/slog"
	"github.com/fwojciec/mediumghost/sqlite"
	"github.com/fwojciec/mediumghost/zip"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database holding the asset manifest. Nil unless --manifest is set.
	DB *sqlite.DB

	// Now returns the export timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Now: time.Now,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("medium2ghost"),
		kong.Description("Convert a Medium export into a Ghost import archive"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'medium2ghost --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.Manifest != "" {
		m.DB = sqlite.NewDB(cli.Manifest)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set MEDIUM2GHOST_MANIFEST to use a different manifest path\n")
			return fmt.Errorf("failed to open manifest at %q: %w", cli.Manifest, err)
		}
		defer m.Close()

		deps.Assets = mgslog.NewLoggingAssetService(sqlite.NewAssetService(m.DB), deps.Logger)
	}

	if kongCtx.Selected().Name == "convert" {
		wireConvert(deps, &cli.Convert)
	}

	return kongCtx.Run(deps)
}

// wireConvert builds the conversion pipeline for the convert command.
func wireConvert(deps *Dependencies, c *ConvertCmd) {
	deps.Source = zip.NewSource(c.Export)
	deps.Exports = fs.NewExportWriter(c.Output)
	deps.Archiver = zip.NewArchiver()

	conv := &convert.Converter{
		Metadata:    goquery.NewExtractor(),
		Parser:      mgslog.NewLoggingParser(nethtml.NewParser(), deps.Logger),
		Plaintext:   htmltomarkdown.NewConverter(),
		Logger:      deps.Logger,
		ImageRoot:   filepath.ToSlash(c.ImageRoot),
		Concurrency: c.Concurrency,
	}

	if !c.NoImages {
		fetcher := mghttp.NewFetcher(
			mghttp.WithTimeout(c.Timeout),
			mghttp.WithUserAgent(c.UserAgent),
			mghttp.WithLimiter(mghttp.NewHostLimiter(c.RPS)),
			mghttp.WithRetryDelays(c.RetryDelays),
			mghttp.WithLogger(deps.Logger),
		)

		var opts []fs.AssetCacheOption
		if deps.Assets != nil {
			opts = append(opts, fs.WithAssetService(deps.Assets))
		}
		cache := fs.NewAssetCache(c.Output, mgslog.NewLoggingFetcher(fetcher, deps.Logger), opts...)
		conv.Assets = mgslog.NewLoggingAssetResolver(cache, deps.Logger)
	}

	deps.Converter = conv
}

