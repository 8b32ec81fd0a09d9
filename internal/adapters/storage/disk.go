// Package storage holds the places uploaded photo files are written to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrInvalidName is returned for names that would escape the store
var ErrInvalidName = errors.New("invalid file name")

// DiskStore writes files into a directory served publicly under urlPrefix
type DiskStore struct {
	dir       string
	urlPrefix string
}

// NewDiskStore creates a disk store. The directory is created lazily on Save.
func NewDiskStore(dir, urlPrefix string) *DiskStore {
	return &DiskStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}
}

// Dir returns the target directory
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes r to name and returns the public path of the file.
// An existing file is never overwritten.
func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	target := filepath.Join(s.dir, name)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return path.Join(s.urlPrefix, name), nil
}

// Remove deletes name. A missing file is not an error.
func (s *DiskStore) Remove(_ context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}
