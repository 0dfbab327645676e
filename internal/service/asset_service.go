package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"puf-orgu/internal/storage"

	"go.uber.org/zap"
)

const (
	// MaxUploadSize is the upload limit of 5 MiB
	MaxUploadSize = 5 * 1024 * 1024
)

var (
	ErrInvalidFileType = errors.New("invalid file type, only JPG, PNG and WebP are allowed")
	ErrFileTooLarge    = errors.New("file too large, maximum size is 5MB")
)

// allowedImageTypes are the MIME types accepted for product images
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// AssetService validates and stores incoming image files and reclaims
// assets that a deleted product leaves behind.
type AssetService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error)
	DeleteOrphans(ctx context.Context, imageURLs []string)
}

type assetService struct {
	store  storage.ObjectStore
	logger *zap.Logger
	now    func() time.Time
}

// NewAssetService creates a new instance of AssetService
func NewAssetService(store storage.ObjectStore, logger *zap.Logger) AssetService {
	return &assetService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Upload validates the file and writes it to the object store under a
// generated key, returning the public URL. The unix-millisecond prefix
// makes keys unique per upload, so the store never overwrites.
func (s *assetService) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (string, error) {
	if !allowedImageTypes[contentType] {
		return "", ErrInvalidFileType
	}

	if size > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	key := fmt.Sprintf("%d_%s", s.now().UnixMilli(), SanitizeFilename(filename))

	url, err := s.store.Put(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info("Image uploaded",
		zap.String("key", key),
		zap.Int64("size", size),
		zap.String("content_type", contentType),
	)

	return url, nil
}

// DeleteOrphans issues one batch delete for the storage keys derived from
// the given image URLs. Failures are logged and swallowed: asset cleanup is
// best-effort and must never block the product deletion that triggered it.
func (s *assetService) DeleteOrphans(ctx context.Context, imageURLs []string) {
	if len(imageURLs) == 0 {
		return
	}

	keys := make([]string, 0, len(imageURLs))
	for _, u := range imageURLs {
		keys = append(keys, KeyFromURL(u))
	}

	if err := s.store.DeleteBatch(ctx, keys); err != nil {
		s.logger.Warn("Failed to delete orphaned assets",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
}

// SanitizeFilename replaces every character outside [A-Za-z0-9.-] with "_"
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// KeyFromURL extracts the storage key, the trailing path segment of a
// public asset URL.
func KeyFromURL(u string) string {
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}
