package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/fwojciec/mediumghost"
)

// ExportFilename is the name of the Ghost import file.
const ExportFilename = "medium_export_for_ghost.json"

// Ensure ExportWriter implements mediumghost.ExportWriter at compile time.
var _ mediumghost.ExportWriter = (*ExportWriter)(nil)

// ExportWriter writes the Ghost import file into a directory.
type ExportWriter struct {
	dir string
}

// NewExportWriter creates an ExportWriter that writes into dir.
func NewExportWriter(dir string) *ExportWriter {
	return &ExportWriter{dir: dir}
}

// WriteExport writes export as indented JSON and returns the file path.
// An existing file is replaced atomically.
func (w *ExportWriter) WriteExport(ctx context.Context, export *mediumghost.Export) (string, error) {
	if export == nil {
		return "", mediumghost.Errorf(mediumghost.EINVALID, "export required")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return "", err
	}

	name := filepath.Join(w.dir, ExportFilename)
	if err := writeFileAtomic(name, buf.Bytes()); err != nil {
		return "", err
	}
	return name, nil
}
