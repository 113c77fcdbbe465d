package syncing

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-ads-sync/infrastructure/repository"
	"github.com/vfg2006/meta-ads-sync/internal/config"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/pkg/apiErrors"
	"github.com/vfg2006/meta-ads-sync/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const rateLimitedMessage = "rate limited, using existing data"

type Service struct {
	cfg             config.MetaAdsSync
	integrator      meta.Integrator
	projectRepo     repository.ProjectRepository
	dailyMetricRepo repository.DailyMetricRepository
	aggregateRepo   repository.EntityAggregateRepository
	historyRepo     repository.OptimizationHistoryRepository
	syncLogRepo     repository.SyncLogRepository
	thumbnails      ThumbnailCacher
	now             func() time.Time
	sleep           func(ctx context.Context, d time.Duration) error
	newID           func() string
}

func NewService(
	cfg *config.Config,
	integrator meta.Integrator,
	projectRepo repository.ProjectRepository,
	dailyMetricRepo repository.DailyMetricRepository,
	aggregateRepo repository.EntityAggregateRepository,
	historyRepo repository.OptimizationHistoryRepository,
	syncLogRepo repository.SyncLogRepository,
	thumbnails ThumbnailCacher,
) *Service {
	return &Service{
		cfg:             cfg.MetaAdsSync,
		integrator:      integrator,
		projectRepo:     projectRepo,
		dailyMetricRepo: dailyMetricRepo,
		aggregateRepo:   aggregateRepo,
		historyRepo:     historyRepo,
		syncLogRepo:     syncLogRepo,
		thumbnails:      thumbnails,
		now:             time.Now,
		sleep:           sleepContext,
		newID:           utils.NewUUID,
	}
}

// Sync executa uma passagem: entidades, insights com validação, consolidação,
// detecção de mudanças e gravação. Toda passagem que encontra o projeto grava
// exatamente um log de sincronização.
func (s *Service) Sync(ctx context.Context, req domain.SyncRequest) (*domain.SyncResult, error) {
	startedAt := s.now()

	if req.ProjectID == "" {
		return nil, NewSyncError(ErrProjectIDRequired, apiErrors.ErrMissingRequiredData, "", "project_id é obrigatório")
	}

	dateRange, err := s.resolveDateRange(req, startedAt)
	if err != nil {
		return nil, NewSyncError(ErrInvalidDateRange, apiErrors.ErrInvalidRequest, req.ProjectID, err.Error())
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, NewSyncError(ErrPersistence, apiErrors.ErrDatabaseOperation, req.ProjectID, err.Error())
	}
	if project == nil {
		return nil, NewSyncError(ErrProjectNotFound, apiErrors.ErrNotFound, req.ProjectID, "")
	}

	accountID := req.AdAccountID
	if accountID == "" {
		accountID = project.AdAccountID
	}

	logger := logrus.WithFields(logrus.Fields{
		"project_id": project.ID,
		"account_id": accountID,
		"since":      dateRange.Since.Format(time.DateOnly),
		"until":      dateRange.Until.Format(time.DateOnly),
		"light":      req.LightSync,
	})

	var result *domain.SyncResult
	if project.AccessToken == "" || accountID == "" {
		err = NewSyncError(ErrMetaNotConnected, apiErrors.ErrMetaTokenExpired, project.ID, "conecte o projeto ao Meta novamente")
	} else {
		result, err = s.run(ctx, project.ID, accountID, project.AccessToken, dateRange, req)
	}

	if err != nil && errors.Is(err, domain.ErrMetaRateLimited) {
		logger.WithError(err).Warn("Limite de requisições do Meta atingido, mantendo dados existentes")
		if result == nil {
			result = &domain.SyncResult{}
		}
		result.Success = true
		result.RateLimited = true
		result.Message = rateLimitedMessage
		err = nil
	}

	finishedAt := s.now()
	if result != nil {
		result.ElapsedMs = finishedAt.Sub(startedAt).Milliseconds()
	}

	s.writeLog(ctx, project.ID, startedAt, finishedAt, dateRange, result, err)

	if err != nil {
		logger.WithError(err).Error("Falha na sincronização do projeto")
		return nil, classifyError(err, project.ID)
	}

	logger.WithFields(logrus.Fields{
		"records":      result.Records,
		"changes":      result.Changes,
		"attempts":     result.Attempts,
		"rate_limited": result.RateLimited,
		"elapsed_ms":   result.ElapsedMs,
	}).Info("Sincronização concluída")

	return result, nil
}

func (s *Service) run(ctx context.Context, projectID, accountID, token string, dateRange domain.DateRange, req domain.SyncRequest) (*domain.SyncResult, error) {
	result := &domain.SyncResult{}

	snapshot, err := s.integrator.FetchEntities(ctx, accountID, token, req.LightSync)
	if err != nil {
		return result, err
	}

	result.Campaigns = len(snapshot.Campaigns)
	result.AdSets = len(snapshot.AdSets)
	result.Ads = len(snapshot.Ads)

	insights, attempts, err := s.fetchValidInsights(ctx, accountID, token, dateRange)
	result.Attempts = attempts
	if err != nil {
		return result, err
	}

	if !req.LightSync && !req.SkipImageCache && s.thumbnails != nil {
		s.applyCachedThumbnails(ctx, projectID, snapshot.Ads)
	}

	previous, err := s.loadSnapshot(ctx, projectID)
	if err != nil {
		return result, err
	}

	syncedAt := s.now()
	daily := BuildDailyMetrics(projectID, insights)
	aggregates := BuildAggregates(projectID, snapshot, insights, syncedAt)
	changes := DetectChanges(projectID, previous, aggregates, syncedAt, s.newID)

	written, err := s.dailyMetricRepo.UpsertBatch(ctx, daily, s.cfg.UpsertChunkSize)
	if err != nil {
		return result, errors.Wrap(ErrPersistence, err.Error())
	}

	if err := s.aggregateRepo.UpsertBatch(ctx, aggregates); err != nil {
		return result, errors.Wrap(ErrPersistence, err.Error())
	}

	if err := s.historyRepo.InsertBatch(ctx, changes); err != nil {
		return result, errors.Wrap(ErrPersistence, err.Error())
	}

	result.Success = true
	result.Records = written
	result.Changes = len(changes)

	return result, nil
}

// fetchValidInsights refaz a busca enquanto o resultado vier todo zerado e
// ainda houver tentativas
func (s *Service) fetchValidInsights(ctx context.Context, accountID, token string, dateRange domain.DateRange) (domain.InsightsByAd, int, error) {
	retries := 0
	for {
		insights, err := s.integrator.FetchInsights(ctx, accountID, token, dateRange)
		if err != nil {
			return nil, retries + 1, err
		}

		if !shouldRetry(insights, retries, s.cfg.ValidationMaxRetries) {
			if allZero(insights) {
				logrus.WithField("account_id", accountID).Warn("Insights zerados após todas as tentativas, aceitando resultado")
			}
			return insights, retries + 1, nil
		}

		retries++
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"retry":      retries,
			"max":        s.cfg.ValidationMaxRetries,
		}).Warn("Insights zerados, refazendo a busca")

		if err := s.sleep(ctx, s.cfg.ValidationRetryDelay); err != nil {
			return nil, retries, err
		}
	}
}

func (s *Service) applyCachedThumbnails(ctx context.Context, projectID string, ads []domain.Ad) {
	urls := make([]string, 0, len(ads))
	for _, ad := range ads {
		if ad.ThumbnailURL != "" {
			urls = append(urls, ad.ThumbnailURL)
		}
	}
	if len(urls) == 0 {
		return
	}

	hosted := s.thumbnails.CacheThumbnails(ctx, projectID, urls)
	for i := range ads {
		if url, ok := hosted[ads[i].ThumbnailURL]; ok {
			ads[i].ThumbnailURL = url
		}
	}
}

func (s *Service) loadSnapshot(ctx context.Context, projectID string) (Snapshot, error) {
	all := make([]*domain.EntityAggregate, 0)
	for _, entityType := range []domain.EntityType{domain.EntityTypeCampaign, domain.EntityTypeAdSet, domain.EntityTypeAd} {
		aggregates, err := s.aggregateRepo.ListByProject(ctx, projectID, entityType)
		if err != nil {
			return nil, errors.Wrap(ErrPersistence, err.Error())
		}
		all = append(all, aggregates...)
	}
	return NewSnapshot(all), nil
}

func (s *Service) resolveDateRange(req domain.SyncRequest, now time.Time) (domain.DateRange, error) {
	if req.DateRange != nil {
		return utils.ParseDateRange(req.DateRange.Since, req.DateRange.Until)
	}

	preset := req.DatePreset
	if preset == "" {
		preset = s.cfg.DefaultPreset
	}
	if preset == "" {
		preset = utils.PresetLast30d
	}

	return utils.ResolvePreset(preset, now)
}

type syncLogMessage struct {
	Since       string `json:"since"`
	Until       string `json:"until"`
	Campaigns   int    `json:"campaigns"`
	AdSets      int    `json:"ad_sets"`
	Ads         int    `json:"ads"`
	Records     int    `json:"records"`
	Changes     int    `json:"changes"`
	Attempts    int    `json:"attempts"`
	RateLimited bool   `json:"rate_limited,omitempty"`
	Error       string `json:"error,omitempty"`
}

// writeLog nunca falha a sincronização; erros de gravação apenas são registrados
func (s *Service) writeLog(ctx context.Context, projectID string, startedAt, finishedAt time.Time, dateRange domain.DateRange, result *domain.SyncResult, syncErr error) {
	status := domain.SyncStatusSuccess
	msg := syncLogMessage{
		Since: dateRange.Since.Format(time.DateOnly),
		Until: dateRange.Until.Format(time.DateOnly),
	}

	if result != nil {
		msg.Campaigns = result.Campaigns
		msg.AdSets = result.AdSets
		msg.Ads = result.Ads
		msg.Records = result.Records
		msg.Changes = result.Changes
		msg.Attempts = result.Attempts
		msg.RateLimited = result.RateLimited
		if result.RateLimited {
			status = domain.SyncStatusPartial
		}
	}

	if syncErr != nil {
		status = domain.SyncStatusError
		msg.Error = syncErr.Error()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		payload = []byte("{}")
	}

	entry := &domain.SyncLog{
		ID:         s.newID(),
		ProjectID:  projectID,
		Status:     status,
		Message:    payload,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		DurationMs: finishedAt.Sub(startedAt).Milliseconds(),
	}

	// contexto próprio para gravar o log mesmo se a requisição foi cancelada
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.syncLogRepo.Create(logCtx, entry); err != nil {
		logrus.WithError(err).WithField("project_id", projectID).Error("Erro ao gravar log de sincronização")
	}
}

func classifyError(err error, projectID string) error {
	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr
	}

	switch {
	case errors.Is(err, domain.ErrMetaTokenExpired):
		return NewSyncError(domain.ErrMetaTokenExpired, apiErrors.ErrMetaTokenExpired, projectID, "token do Meta expirado, reconecte a conta")
	case errors.Is(err, ErrPersistence):
		return NewSyncError(ErrPersistence, apiErrors.ErrDatabaseOperation, projectID, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewSyncError(err, apiErrors.ErrInternalServer, projectID, "")
	default:
		return NewSyncError(ErrMetaIntegration, apiErrors.ErrMetaIntegration, projectID, err.Error())
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
