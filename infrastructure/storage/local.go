package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type LocalStorage struct {
	basePath      string
	publicBaseURL string
}

func NewLocalStorage(basePath, publicBaseURL string) *LocalStorage {
	return &LocalStorage{
		basePath:      basePath,
		publicBaseURL: publicBaseURL,
	}
}

func (s *LocalStorage) Put(ctx context.Context, key string, body []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("erro ao criar diretório %s: %w", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("erro ao gravar arquivo %s: %w", path, err)
	}

	return publicURL(s.publicBaseURL, key), nil
}
