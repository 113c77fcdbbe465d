package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/vfg2006/meta-ads-sync/internal/config"
)

const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

// ObjectStorage grava um objeto e devolve a URL pública dele
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// New escolhe o backend conforme IMAGE_CACHE_STORAGE_TYPE
func New(ctx context.Context, cfg config.ImageCache) (ObjectStorage, error) {
	switch strings.ToLower(cfg.StorageType) {
	case "", TypeLocal:
		return NewLocalStorage(cfg.LocalPath, cfg.PublicBaseURL), nil
	case TypeS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("tipo de armazenamento desconhecido: %s", cfg.StorageType)
	}
}

func publicURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(key, "/")
}
