package mock

import (
	"context"

	"github.com/fwojciec/mediumghost"
)

var _ mediumghost.ExportWriter = (*ExportWriter)(nil)

// ExportWriter is a mock implementation of mediumghost.ExportWriter.
type ExportWriter struct {
	WriteExportFn func(ctx context.Context, export *mediumghost.Export) (string, error)
}

func (w *ExportWriter) WriteExport(ctx context.Context, export *mediumghost.Export) (string, error) {
	return w.WriteExportFn(ctx, export)
}

var _ mediumghost.Archiver = (*Archiver)(nil)

// Archiver is a mock implementation of mediumghost.Archiver.
type Archiver struct {
	ArchiveFn func(ctx context.Context, dir, dst string) error
}

func (a *Archiver) Archive(ctx context.Context, dir, dst string) error {
	return a.ArchiveFn(ctx, dir, dst)
}
