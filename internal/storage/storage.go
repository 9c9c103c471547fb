// Package storage keeps generated inspection reports.
//
// Two backends implement Storage: LocalStorage writes below a directory on
// disk for development, R2Storage writes to a Cloudflare R2 bucket through
// the S3 API in production.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/DukeRupert/fireaudit/internal/domain"
	"github.com/google/uuid"
)

// Storage stores and retrieves report files by key.
type Storage interface {
	// Put writes data at key, replacing any existing object.
	Put(ctx context.Context, key string, data io.Reader, contentType string) error

	// Get opens the object at key. The caller must close the reader.
	// Returns ErrNotFound if the key doesn't exist.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the object at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns a link to the object. Backends without public access
	// return a presigned link valid for expires.
	URL(ctx context.Context, key string, expires time.Duration) (string, error)

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// LocalConfig holds configuration for local filesystem storage.
type LocalConfig struct {
	BasePath string // e.g. "./storage"
	BaseURL  string // e.g. "http://localhost:8080/files"
}

// R2Config holds configuration for Cloudflare R2 storage.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string

	// PublicURL is the bucket's custom domain. When empty every link is presigned.
	PublicURL string

	// Endpoint overrides the account endpoint; used for S3-compatible test servers.
	Endpoint string
}

const (
	ProviderLocal = "local"
	ProviderR2    = "r2"
)

// New builds the backend named by provider.
func New(provider string, local LocalConfig, r2 R2Config, logger *slog.Logger) (Storage, error) {
	switch provider {
	case ProviderLocal:
		return NewLocalStorage(local, logger)
	case ProviderR2:
		return NewR2Storage(r2, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", provider)
	}
}

// ReportKey is the storage key of one rendered report file. Keys are stable
// per inspection and format so regenerating a report replaces the old file.
//
//	reports/{clientID}/{inspectionID}.pdf
func ReportKey(clientID, inspectionID uuid.UUID, format domain.ReportFormat) string {
	return fmt.Sprintf("reports/%s/%s.%s", clientID, inspectionID, format.FileExtension())
}

// ContentTypeFor infers a content type from the key's extension.
func ContentTypeFor(key string) string {
	ext := strings.TrimPrefix(path.Ext(key), ".")
	return domain.ReportFormat(strings.ToLower(ext)).ContentType()
}

// validateKey rejects empty keys, absolute keys and keys that climb out of
// the storage root.
func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}
