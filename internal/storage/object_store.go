package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrKeyExists = errors.New("object with this key already exists")

// ObjectStore is the asset store: binary objects keyed by filename and
// reachable through a public URL. Put must refuse to overwrite an existing
// key. DeleteBatch removes every named key and reports the keys it could
// not remove.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	DeleteBatch(ctx context.Context, keys []string) error
	PublicURL(key string) string
}

// DiskStore stores objects as files under a directory served statically by
// the HTTP server.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates the backing directory if needed
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Put writes the object and returns its public URL. An existing key is an
// error; keys are expected to be unique by construction.
func (s *DiskStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(key))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", ErrKeyExists
		}
		return "", fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.PublicURL(key), nil
}

// DeleteBatch removes the named objects, collecting per-key failures into a
// single error. Missing objects are not failures.
func (s *DiskStore) DeleteBatch(ctx context.Context, keys []string) error {
	var failed []string
	for _, key := range keys {
		path := filepath.Join(s.dir, filepath.Base(key))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			failed = append(failed, key)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to delete objects: %s", strings.Join(failed, ", "))
	}
	return nil
}

// PublicURL returns the URL under which a stored object is served
func (s *DiskStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

// Dir returns the backing directory, for wiring the static file route
func (s *DiskStore) Dir() string {
	return s.dir
}
