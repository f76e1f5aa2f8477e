// Package zip reads Medium's export archive and packs the converted output
// into the archive Ghost's importer accepts.
package zip

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/mediumghost"
)

// PostsDir is the directory inside a Medium export that holds the posts.
const PostsDir = "posts/"

// Ensure Source implements mediumghost.PostSource at compile time.
var _ mediumghost.PostSource = (*Source)(nil)

// Source reads posts from a Medium export archive.
type Source struct {
	path string
}

// NewSource creates a Source for the archive at path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Posts returns every file under PostsDir in archive order. Content is
// decoded as UTF-8; invalid sequences are replaced with U+FFFD.
func (s *Source) Posts(ctx context.Context) ([]*mediumghost.PostFile, error) {
	r, err := zip.OpenReader(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, mediumghost.Errorf(mediumghost.ENOTFOUND, "unable to find %s", s.path)
	} else if err != nil {
		return nil, mediumghost.Errorf(mediumghost.EINVALID, "open %s: %v", s.path, err)
	}
	defer r.Close()

	var posts []*mediumghost.PostFile
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !strings.HasPrefix(f.Name, PostsDir) || f.FileInfo().IsDir() {
			continue
		}

		data, err := readFile(f)
		if err != nil {
			return nil, err
		}

		posts = append(posts, &mediumghost.PostFile{
			Name: f.Name,
			HTML: strings.ToValidUTF8(string(data), string(utf8.RuneError)),
		})
	}

	return posts, nil
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Ensure Archiver implements mediumghost.Archiver at compile time.
var _ mediumghost.Archiver = (*Archiver)(nil)

// Archiver packs a directory tree into a zip file.
type Archiver struct{}

// NewArchiver creates a new Archiver.
func NewArchiver() *Archiver {
	return &Archiver{}
}

// Archive writes every regular file under dir into dst with paths relative
// to dir. dst may live inside dir; it is never added to itself.
func (a *Archiver) Archive(ctx context.Context, dir, dst string) (err error) {
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	w := zip.NewWriter(out)
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if abs, err := filepath.Abs(path); err == nil && abs == dstAbs {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return addFile(w, path, filepath.ToSlash(rel))
	})
}

func addFile(w *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := w.CreateHeader(header)
	if err != nil {
		return err
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(dst, src)
	return err
}
