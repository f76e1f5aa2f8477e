package mediumghost

import (
	"context"
	"time"
)

// GhostImportVersion is the Ghost version the import envelope targets.
const GhostImportVersion = "2.0.3"

// Export is the envelope Ghost's importer reads.
type Export struct {
	DB []ExportDB `json:"db"`
}

// ExportDB is one database dump inside an Export.
type ExportDB struct {
	Meta ExportMeta `json:"meta"`
	Data ExportData `json:"data"`
}

// ExportMeta describes when and for which Ghost version an export was made.
type ExportMeta struct {
	ExportedOn int64  `json:"exported_on"` // Unix seconds
	Version    string `json:"version"`
}

// ExportData holds the exported records.
type ExportData struct {
	Posts []*GhostPost `json:"posts"`
}

// NewExport wraps posts in an import envelope stamped with now.
func NewExport(posts []*GhostPost, now time.Time) *Export {
	if posts == nil {
		posts = []*GhostPost{}
	}
	return &Export{
		DB: []ExportDB{{
			Meta: ExportMeta{
				ExportedOn: now.Unix(),
				Version:    GhostImportVersion,
			},
			Data: ExportData{Posts: posts},
		}},
	}
}

// Posts returns every post in the export.
func (e *Export) Posts() []*GhostPost {
	var posts []*GhostPost
	for _, db := range e.DB {
		posts = append(posts, db.Data.Posts...)
	}
	return posts
}

// ExportWriter persists an import envelope.
type ExportWriter interface {
	// WriteExport writes the export and returns the path it was written to.
	WriteExport(ctx context.Context, export *Export) (string, error)
}

// Archiver bundles a directory into a single archive file.
type Archiver interface {
	// Archive packs every file under dir into dst.
	Archive(ctx context.Context, dir, dst string) error
}
