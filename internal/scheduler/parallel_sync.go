package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/infrastructure/repository"
	"github.com/vfg2006/meta-ads-sync/internal/config"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/syncing"
	"github.com/vfg2006/meta-ads-sync/pkg/utils"
	"golang.org/x/sync/errgroup"
)

var ErrSyncAlreadyRunning = errors.New("parallel sync already running")

// DefaultPeriodTTLs define por quanto tempo um período sincronizado é considerado fresco.
// Períodos fechados mudam pouco e ficam mais tempo em cache.
var DefaultPeriodTTLs = map[string]time.Duration{
	utils.PresetToday:     30 * time.Minute,
	utils.PresetYesterday: 2 * time.Hour,
	utils.PresetLast7d:    1 * time.Hour,
	utils.PresetLast14d:   2 * time.Hour,
	utils.PresetLast30d:   3 * time.Hour,
	utils.PresetThisMonth: 2 * time.Hour,
	utils.PresetLastMonth: 24 * time.Hour,
	utils.PresetLast90d:   12 * time.Hour,
}

const defaultPeriodTTL = time.Hour

// ParallelSyncConfig representa a configuração do agendador paralelo
type ParallelSyncConfig struct {
	CronSchedule          string
	Enabled               bool
	MaxConcurrentProjects int
	BatchDelay            time.Duration
	PeriodDelay           time.Duration
	Periods               []string
	PeriodTTLs            map[string]time.Duration
}

// RunSummary resume uma execução do agendador
type RunSummary struct {
	Projects    int           `json:"projects"`
	Batches     []int         `json:"batches"`
	Synced      int           `json:"synced"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
	RateLimited int           `json:"rate_limited"`
	Duration    time.Duration `json:"duration"`

	mu sync.Mutex
}

func (r *RunSummary) add(synced, skipped, failed, rateLimited int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Synced += synced
	r.Skipped += skipped
	r.Failed += failed
	r.RateLimited += rateLimited
}

// ParallelSyncService sincroniza todos os projetos conectados em lotes de tamanho fixo,
// com pausas entre lotes e entre períodos para respeitar os limites do Meta.
type ParallelSyncService struct {
	scheduler           *gocron.Scheduler
	config              ParallelSyncConfig
	projectRepo         repository.ProjectRepository
	periodCacheRepo     repository.PeriodCacheRepository
	syncer              syncing.Syncer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *RunSummary
	now                 func() time.Time
	sleep               func(ctx context.Context, d time.Duration) error
}

func NewParallelSyncService(
	projectRepo repository.ProjectRepository,
	periodCacheRepo repository.PeriodCacheRepository,
	syncer syncing.Syncer,
	appConfig *config.Config,
) *ParallelSyncService {
	cfg := ParallelSyncConfig{
		CronSchedule:          appConfig.ParallelSync.CronSchedule,
		Enabled:               appConfig.ParallelSync.Enabled,
		MaxConcurrentProjects: appConfig.ParallelSync.MaxConcurrentProjects,
		BatchDelay:            appConfig.ParallelSync.BatchDelay,
		PeriodDelay:           appConfig.ParallelSync.PeriodDelay,
		Periods:               appConfig.ParallelSync.Periods,
		PeriodTTLs:            DefaultPeriodTTLs,
	}

	if cfg.MaxConcurrentProjects <= 0 {
		cfg.MaxConcurrentProjects = 10
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":           cfg.CronSchedule,
		"enabled":                 cfg.Enabled,
		"max_concurrent_projects": cfg.MaxConcurrentProjects,
		"batch_delay":             cfg.BatchDelay.String(),
		"period_delay":            cfg.PeriodDelay.String(),
		"periods":                 cfg.Periods,
	}).Info("Configuração do agendador paralelo carregada")

	return &ParallelSyncService{
		scheduler:       gocron.NewScheduler(time.Local),
		config:          cfg,
		projectRepo:     projectRepo,
		periodCacheRepo: periodCacheRepo,
		syncer:          syncer,
		now:             time.Now,
		sleep:           sleepContext,
	}
}

// Start inicia o agendador
func (s *ParallelSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Sincronização paralela desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização paralela")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.Run(ctx); err != nil && !errors.Is(err, ErrSyncAlreadyRunning) {
			logrus.WithError(err).Error("Erro na sincronização paralela agendada")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização paralela: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização paralela")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara uma execução em segundo plano.
// Retorna false se já existe uma execução em andamento.
func (s *ParallelSyncService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Sincronização paralela já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização paralela manual")
	go func() {
		if _, err := s.Run(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, ErrSyncAlreadyRunning) {
			logrus.WithError(err).Error("Erro na sincronização paralela manual")
		}
	}()

	return true
}

// Run processa todos os projetos sincronizáveis em lotes de MaxConcurrentProjects
func (s *ParallelSyncService) Run(ctx context.Context) (*RunSummary, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return nil, ErrSyncAlreadyRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	startTime := s.now()
	summary := &RunSummary{Batches: make([]int, 0)}

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.lastSummary = summary
		s.syncMutex.Unlock()
	}()

	projects, err := s.projectRepo.ListSyncable(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar projetos para sincronização: %w", err)
	}

	summary.Projects = len(projects)
	if len(projects) == 0 {
		logrus.Info("Nenhum projeto conectado para sincronização paralela")
		return summary, nil
	}

	batches := splitBatches(projects, s.config.MaxConcurrentProjects)

	logrus.WithFields(logrus.Fields{
		"projects": len(projects),
		"batches":  len(batches),
		"periods":  s.config.Periods,
	}).Info("Iniciando sincronização paralela")

	for i, batch := range batches {
		if i > 0 {
			if err := s.sleep(ctx, s.config.BatchDelay); err != nil {
				return summary, err
			}
		}

		summary.Batches = append(summary.Batches, len(batch))

		var g errgroup.Group
		for _, project := range batch {
			g.Go(func() error {
				s.syncProject(ctx, project, summary)
				return nil
			})
		}
		_ = g.Wait()

		logrus.WithFields(logrus.Fields{
			"batch": i + 1,
			"size":  len(batch),
		}).Debug("Lote de sincronização concluído")
	}

	summary.Duration = s.now().Sub(startTime)

	logrus.WithFields(logrus.Fields{
		"duration":     summary.Duration.String(),
		"projects":     summary.Projects,
		"synced":       summary.Synced,
		"skipped":      summary.Skipped,
		"failed":       summary.Failed,
		"rate_limited": summary.RateLimited,
	}).Info("Sincronização paralela concluída")

	return summary, nil
}

// syncProject sincroniza os períodos vencidos de um projeto, em sequência
func (s *ParallelSyncService) syncProject(ctx context.Context, project *domain.Project, summary *RunSummary) {
	logger := logrus.WithField("project_id", project.ID)

	cache, err := s.periodCacheRepo.GetByProject(ctx, project.ID)
	if err != nil {
		logger.WithError(err).Warn("Erro ao ler cache de períodos, sincronizando todos")
		cache = map[string]time.Time{}
	}

	calls := 0
	for _, period := range s.config.Periods {
		if syncedAt, ok := cache[period]; ok && s.now().Sub(syncedAt) < s.periodTTL(period) {
			summary.add(0, 1, 0, 0)
			continue
		}

		if calls > 0 {
			if err := s.sleep(ctx, s.config.PeriodDelay); err != nil {
				return
			}
		}
		calls++

		result, err := s.syncer.Sync(ctx, domain.SyncRequest{
			ProjectID:      project.ID,
			DatePreset:     period,
			LightSync:      true,
			SkipImageCache: true,
		})
		if err != nil {
			summary.add(0, 0, 1, 0)
			logger.WithError(err).WithField("period", period).Error("Erro ao sincronizar período")

			// sem token não adianta tentar os outros períodos
			if errors.Is(err, domain.ErrMetaTokenExpired) || errors.Is(err, syncing.ErrMetaNotConnected) {
				return
			}
			continue
		}

		if result.RateLimited {
			summary.add(0, 0, 0, 1)
			continue
		}

		if err := s.periodCacheRepo.Touch(ctx, project.ID, period, s.now()); err != nil {
			logger.WithError(err).WithField("period", period).Warn("Erro ao gravar cache do período")
		}
		summary.add(1, 0, 0, 0)
	}
}

func (s *ParallelSyncService) periodTTL(period string) time.Duration {
	if ttl, ok := s.config.PeriodTTLs[period]; ok {
		return ttl
	}
	return defaultPeriodTTL
}

// GetStatus retorna o status atual do agendador
func (s *ParallelSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":            s.config.Enabled,
		"sync_cron":               s.config.CronSchedule,
		"sync_running":            s.syncRunning,
		"max_concurrent_projects": s.config.MaxConcurrentProjects,
		"batch_delay":             s.config.BatchDelay.String(),
		"period_delay":            s.config.PeriodDelay.String(),
		"periods":                 s.config.Periods,
		"last_sync_started_at":    s.lastSyncStartedAt,
		"last_sync_completed_at":  s.lastSyncCompletedAt,
		"last_summary":            s.lastSummary,
	}
}

func splitBatches(projects []*domain.Project, size int) [][]*domain.Project {
	batches := make([][]*domain.Project, 0, (len(projects)+size-1)/size)
	for start := 0; start < len(projects); start += size {
		end := start + size
		if end > len(projects) {
			end = len(projects)
		}
		batches = append(batches, projects[start:end])
	}
	return batches
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
