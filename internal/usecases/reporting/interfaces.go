package reporting

import (
	"context"

	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

// ProjectFinder resolve o projeto respeitando o dono
type ProjectFinder interface {
	GetProject(ctx context.Context, ownerID, projectID string) (*domain.Project, error)
}

// Reporter expõe as leituras consumidas pelo dashboard
type Reporter interface {
	// GetMetrics retorna as linhas diárias do intervalo e o total consolidado
	GetMetrics(ctx context.Context, ownerID, projectID string, filters Filters) (*domain.MetricsReport, error)

	// ListAggregates retorna os consolidados de um tipo de entidade
	ListAggregates(ctx context.Context, ownerID, projectID string, entityType domain.EntityType) ([]*domain.EntityAggregate, error)

	ListOptimizationHistory(ctx context.Context, ownerID, projectID string, limit uint64) ([]*domain.OptimizationRecord, error)

	ListSyncLogs(ctx context.Context, ownerID, projectID string, limit uint64) ([]*domain.SyncLog, error)
}

// Filters aceita intervalo explícito ou preset
type Filters struct {
	Since  string
	Until  string
	Preset string
}
