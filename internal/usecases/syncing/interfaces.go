package syncing

import (
	"context"

	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

// Syncer executa uma passagem completa de sincronização de um projeto
type Syncer interface {
	Sync(ctx context.Context, req domain.SyncRequest) (*domain.SyncResult, error)
}

// ThumbnailCacher re-hospeda miniaturas de criativos.
// Retorna o mapa URL original -> URL hospedada apenas para as que foram gravadas.
type ThumbnailCacher interface {
	CacheThumbnails(ctx context.Context, projectID string, urls []string) map[string]string
}
