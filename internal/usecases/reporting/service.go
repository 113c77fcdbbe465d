package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/infrastructure/repository"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/pkg/apiErrors"
	"github.com/vfg2006/meta-ads-sync/pkg/utils"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

var (
	ErrInvalidFilters    = errors.New("invalid filters")
	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrDatabaseOperation = errors.New("database operation error")
)

// ReportError carrega o código da API junto do erro base
type ReportError struct {
	Err     error
	Code    string
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

type Service struct {
	projects        ProjectFinder
	dailyMetricRepo repository.DailyMetricRepository
	aggregateRepo   repository.EntityAggregateRepository
	historyRepo     repository.OptimizationHistoryRepository
	syncLogRepo     repository.SyncLogRepository
	now             func() time.Time
}

func NewService(
	projects ProjectFinder,
	dailyMetricRepo repository.DailyMetricRepository,
	aggregateRepo repository.EntityAggregateRepository,
	historyRepo repository.OptimizationHistoryRepository,
	syncLogRepo repository.SyncLogRepository,
) Reporter {
	return &Service{
		projects:        projects,
		dailyMetricRepo: dailyMetricRepo,
		aggregateRepo:   aggregateRepo,
		historyRepo:     historyRepo,
		syncLogRepo:     syncLogRepo,
		now:             time.Now,
	}
}

func (s *Service) GetMetrics(ctx context.Context, ownerID, projectID string, filters Filters) (*domain.MetricsReport, error) {
	dateRange, err := s.resolveFilters(filters)
	if err != nil {
		return nil, &ReportError{Err: ErrInvalidFilters, Code: apiErrors.ErrInvalidRequest, Details: err.Error()}
	}

	if _, err := s.projects.GetProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	daily, err := s.dailyMetricRepo.ListByDateRange(ctx, projectID, dateRange.Since, dateRange.Until)
	if err != nil {
		return nil, s.databaseError(err, "Erro ao buscar métricas diárias")
	}

	totals := domain.Metrics{}
	for _, row := range daily {
		totals.Add(row.Metrics)
	}
	totals.CalculateDerived()

	return &domain.MetricsReport{
		ProjectID: projectID,
		Since:     dateRange.Since.Format(time.DateOnly),
		Until:     dateRange.Until.Format(time.DateOnly),
		Totals:    totals,
		Daily:     daily,
	}, nil
}

func (s *Service) ListAggregates(ctx context.Context, ownerID, projectID string, entityType domain.EntityType) ([]*domain.EntityAggregate, error) {
	switch entityType {
	case domain.EntityTypeCampaign, domain.EntityTypeAdSet, domain.EntityTypeAd:
	default:
		return nil, &ReportError{Err: ErrInvalidEntityType, Code: apiErrors.ErrInvalidRequest, Details: string(entityType)}
	}

	if _, err := s.projects.GetProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	aggregates, err := s.aggregateRepo.ListByProject(ctx, projectID, entityType)
	if err != nil {
		return nil, s.databaseError(err, "Erro ao buscar consolidados")
	}

	return aggregates, nil
}

func (s *Service) ListOptimizationHistory(ctx context.Context, ownerID, projectID string, limit uint64) ([]*domain.OptimizationRecord, error) {
	if _, err := s.projects.GetProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	records, err := s.historyRepo.ListByProject(ctx, projectID, normalizeLimit(limit))
	if err != nil {
		return nil, s.databaseError(err, "Erro ao buscar histórico de otimizações")
	}

	return records, nil
}

func (s *Service) ListSyncLogs(ctx context.Context, ownerID, projectID string, limit uint64) ([]*domain.SyncLog, error) {
	if _, err := s.projects.GetProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	logs, err := s.syncLogRepo.ListByProject(ctx, projectID, normalizeLimit(limit))
	if err != nil {
		return nil, s.databaseError(err, "Erro ao buscar logs de sincronização")
	}

	return logs, nil
}

func (s *Service) resolveFilters(filters Filters) (domain.DateRange, error) {
	if filters.Since != "" || filters.Until != "" {
		return utils.ParseDateRange(filters.Since, filters.Until)
	}

	preset := filters.Preset
	if preset == "" {
		preset = utils.PresetLast30d
	}

	return utils.ResolvePreset(preset, s.now())
}

func (s *Service) databaseError(err error, details string) error {
	logrus.Error(details+":", err)
	return &ReportError{Err: ErrDatabaseOperation, Code: apiErrors.ErrDatabaseOperation, Details: details}
}

func normalizeLimit(limit uint64) uint64 {
	if limit == 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
