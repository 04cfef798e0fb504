// Package store reads and writes the documents edited by splice.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/signadot/splice/debug"

	"github.com/viant/afs"
)

const DefaultMode fs.FileMode = 0644

// Store holds documents by path. Documents are read and written whole.
type Store interface {
	Load(ctx context.Context, path string) (string, error)
	Save(ctx context.Context, path, doc string) error
	Exists(ctx context.Context, path string) (bool, error)
}

// FS is a Store over an afs file system. Plain paths are local files;
// any URL afs understands may be used as well.
type FS struct {
	fs afs.Service
}

func NewFS() *FS {
	return &FS{fs: afs.New()}
}

func location(path string) (string, error) {
	if strings.Contains(path, "://") {
		return path, nil
	}
	return filepath.Abs(path)
}

func (s *FS) Exists(ctx context.Context, path string) (bool, error) {
	loc, err := location(path)
	if err != nil {
		return false, err
	}
	return s.fs.Exists(ctx, loc)
}

func (s *FS) Load(ctx context.Context, path string) (string, error) {
	loc, err := location(path)
	if err != nil {
		return "", err
	}
	ok, err := s.fs.Exists(ctx, loc)
	if err != nil {
		return "", fmt.Errorf("could not stat %q: %w", path, err)
	}
	if !ok {
		return "", fmt.Errorf("could not read %q: %w", path, fs.ErrNotExist)
	}
	d, err := s.fs.DownloadWithURL(ctx, loc)
	if err != nil {
		return "", fmt.Errorf("could not read %q: %w", path, err)
	}
	if debug.Store() {
		debug.Logf("loaded %s (%d bytes)\n", loc, len(d))
	}
	return string(d), nil
}

// Save replaces the document at path, keeping the mode of an existing file.
func (s *FS) Save(ctx context.Context, path, doc string) error {
	loc, err := location(path)
	if err != nil {
		return err
	}
	mode := DefaultMode
	if obj, err := s.fs.Object(ctx, loc); err == nil {
		mode = obj.Mode().Perm()
	}
	if err := s.fs.Upload(ctx, loc, mode, bytes.NewReader([]byte(doc))); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	if debug.Store() {
		debug.Logf("saved %s (%d bytes, mode %s)\n", loc, len(doc), mode)
	}
	return nil
}
