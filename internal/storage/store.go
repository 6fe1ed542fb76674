// Package storage provides the synchronous key-value stores the dashboard
// persists its repository list in.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stahnma/gh-explorer/internal/config"
)

// Store is a string-keyed key-value store. Set returns only once the value
// is durable for the backend.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// Open creates the store selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case BackendFile, "":
		return LoadLocal(pathOrDefault(cfg.StorePath, "repositories.gob"))
	case BackendBolt:
		return OpenBolt(pathOrDefault(cfg.StorePath, "repositories.bolt"))
	case BackendS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET_NAME must be set for the s3 store")
		}
		return NewS3FromConfig(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// Close closes s if the backend holds resources.
func Close(s Store) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func pathOrDefault(path, name string) string {
	if path != "" {
		return path
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "gh-explorer", name)
}
