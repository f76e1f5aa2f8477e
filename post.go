package mediumghost

import (
	"context"
	"path"
	"strings"
	"time"
)

// PostStatus is the publication state Ghost imports a post with.
type PostStatus string

// PostStatus values.
const (
	StatusPublished PostStatus = "published"
	StatusDraft     PostStatus = "draft"
)

// Defaults for fields Ghost requires but Medium does not export.
const (
	DefaultAuthorID   = "1"
	DefaultVisibility = "public"
)

// dateLayout is the date format used in Medium export filenames.
const dateLayout = "2006-01-02"

// PostFile is one post file from a Medium export.
type PostFile struct {
	Name string // path inside the export, e.g. posts/draft_test-7e48eb14931e.html
	HTML string
}

// PostInfo is the post metadata encoded in a Medium export filename.
type PostInfo struct {
	UUID        string
	Slug        string
	PublishedAt *time.Time // nil for drafts
	Status      PostStatus
}

// ParseFilename extracts post metadata from a Medium export filename of the
// form <date-or-"draft">_<slug>-<uuid>.html. Any leading directory is ignored.
// Returns EINVALID if the name does not follow that form.
func ParseFilename(name string) (*PostInfo, error) {
	base := path.Base(name)
	stem, ok := strings.CutSuffix(base, ".html")
	if !ok {
		return nil, Errorf(EINVALID, "post filename %q: expected .html extension", base)
	}

	date, rest, ok := strings.Cut(stem, "_")
	if !ok {
		return nil, Errorf(EINVALID, "post filename %q: expected <date>_<slug>-<id>", base)
	}

	idx := strings.LastIndex(rest, "-")
	if idx <= 0 || idx == len(rest)-1 {
		return nil, Errorf(EINVALID, "post filename %q: expected <slug>-<id> after date", base)
	}

	info := &PostInfo{
		UUID:   rest[idx+1:],
		Slug:   rest[:idx],
		Status: StatusPublished,
	}

	if date == "draft" {
		info.Status = StatusDraft
		return info, nil
	}

	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, Errorf(EINVALID, "post filename %q: invalid date %q", base, date)
	}
	info.PublishedAt = &t

	return info, nil
}

// Metadata holds the post-level fields found in a post's markup.
type Metadata struct {
	Title    string
	Subtitle string // empty if the post has no subtitle

	// HasTitleMarker reports whether the body carries Medium's title
	// heading. Medium exports every comment as a full story; comments have
	// no title heading.
	HasTitleMarker bool
}

// IsComment reports whether the markup is a Medium comment rather than a post.
func (m *Metadata) IsComment() bool {
	return !m.HasTitleMarker
}

// MetadataExtractor reads post-level metadata from a post's markup.
type MetadataExtractor interface {
	ExtractMetadata(html string) (*Metadata, error)
}

// Parser translates a post's markup into a Mobiledoc document.
type Parser interface {
	Parse(html string) (*Mobiledoc, error)
}

// PostSource lists the posts of a Medium export.
type PostSource interface {
	Posts(ctx context.Context) ([]*PostFile, error)
}

// GhostPost is a post record in Ghost's import format.
type GhostPost struct {
	UUID               string     `json:"uuid"`
	Title              string     `json:"title"`
	Slug               string     `json:"slug"`
	Mobiledoc          string     `json:"mobiledoc"`
	HTML               string     `json:"html"`
	CommentID          *string    `json:"comment_id"`
	Plaintext          *string    `json:"plaintext"`
	FeatureImage       *string    `json:"feature_image"`
	Featured           int        `json:"featured"`
	Page               int        `json:"page"`
	Status             PostStatus `json:"status"`
	Locale             *string    `json:"locale"`
	Visibility         string     `json:"visibility"`
	MetaTitle          *string    `json:"meta_title"`
	MetaDescription    *string    `json:"meta_description"`
	AuthorID           string     `json:"author_id"`
	CreatedAt          *time.Time `json:"created_at"`
	CreatedBy          string     `json:"created_by"`
	UpdatedAt          *time.Time `json:"updated_at"`
	UpdatedBy          string     `json:"updated_by"`
	PublishedAt        *time.Time `json:"published_at"`
	PublishedBy        string     `json:"published_by"`
	CustomExcerpt      *string    `json:"custom_excerpt"`
	CodeinjectionHead  *string    `json:"codeinjection_head"`
	CodeinjectionFoot  *string    `json:"codeinjection_foot"`
	CustomTemplate     *string    `json:"custom_template"`
	OGImage            *string    `json:"og_image"`
	OGTitle            *string    `json:"og_title"`
	OGDescription      *string    `json:"og_description"`
	TwitterImage       *string    `json:"twitter_image"`
	TwitterTitle       *string    `json:"twitter_title"`
	TwitterDescription *string    `json:"twitter_description"`
}

// NewGhostPost builds a post record from filename and markup metadata.
// The Mobiledoc, Plaintext and FeatureImage fields are left for the caller.
func NewGhostPost(info *PostInfo, meta *Metadata, html string) *GhostPost {
	p := &GhostPost{
		UUID:        info.UUID,
		Title:       meta.Title,
		Slug:        info.Slug,
		HTML:        html,
		Status:      info.Status,
		Visibility:  DefaultVisibility,
		AuthorID:    DefaultAuthorID,
		CreatedAt:   info.PublishedAt,
		CreatedBy:   DefaultAuthorID,
		UpdatedAt:   info.PublishedAt,
		UpdatedBy:   DefaultAuthorID,
		PublishedAt: info.PublishedAt,
		PublishedBy: DefaultAuthorID,
	}
	if meta.Subtitle != "" {
		subtitle := meta.Subtitle
		p.CustomExcerpt = &subtitle
	}
	return p
}

// Validate returns an error if the post is missing fields Ghost requires.
// An empty title is allowed; Ghost shows such posts as untitled.
func (p *GhostPost) Validate() error {
	if p.UUID == "" {
		return Errorf(EINVALID, "post uuid required")
	}
	if p.Mobiledoc == "" {
		return Errorf(EINVALID, "post mobiledoc required")
	}
	return nil
}
