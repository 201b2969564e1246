package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloo-solutions/relicguide/internal/domain"
)

// LocalStore serves assets from a directory on the local filesystem.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore creates a LocalStore rooted at dir whose assets are served
// under urlPrefix (for example "/output/").
func NewLocalStore(dir, urlPrefix string) *LocalStore {
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix}
}

// Dir returns the root directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// EnsureDir creates the root directory if it does not exist.
func (s *LocalStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}
	return nil
}

// Stat returns metadata for name or domain.ErrAssetNotFound.
func (s *LocalStore) Stat(ctx context.Context, name string) (*ObjectMetadata, error) {
	if !validName(name) {
		return nil, domain.ErrAssetNotFound
	}

	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to stat asset: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, domain.ErrAssetNotFound
	}

	return &ObjectMetadata{Name: name, ContentLength: info.Size()}, nil
}

// List returns the names of regular files ending in ext, sorted by name.
// A missing directory is an empty library.
func (s *LocalStore) List(ctx context.Context, ext string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// URL returns the servable path for name.
func (s *LocalStore) URL(ctx context.Context, name string) (string, error) {
	return s.urlPrefix + url.PathEscape(name), nil
}
