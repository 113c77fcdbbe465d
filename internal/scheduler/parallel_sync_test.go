package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-ads-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/meta-ads-sync/internal/config"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/syncing"
	syncmocks "github.com/vfg2006/meta-ads-sync/internal/usecases/syncing/mocks"
	"github.com/vfg2006/meta-ads-sync/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var schedulerNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type sleepRecorder struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sleeps = append(r.sleeps, d)
	return nil
}

func (r *sleepRecorder) count(d time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.sleeps {
		if s == d {
			n++
		}
	}
	return n
}

type schedulerMocks struct {
	projectRepo *mocks.MockProjectRepository
	periodRepo  *mocks.MockPeriodCacheRepository
	syncer      *syncmocks.MockSyncer
	sleeps      *sleepRecorder
}

func newTestParallelSync(t *testing.T, periods []string) (*ParallelSyncService, *schedulerMocks) {
	ctrl := gomock.NewController(t)

	m := &schedulerMocks{
		projectRepo: mocks.NewMockProjectRepository(ctrl),
		periodRepo:  mocks.NewMockPeriodCacheRepository(ctrl),
		syncer:      syncmocks.NewMockSyncer(ctrl),
		sleeps:      &sleepRecorder{},
	}

	svc := NewParallelSyncService(m.projectRepo, m.periodRepo, m.syncer, &config.Config{
		ParallelSync: config.ParallelSync{
			CronSchedule:          "0 */6 * * *",
			Enabled:               true,
			MaxConcurrentProjects: 10,
			BatchDelay:            5 * time.Second,
			PeriodDelay:           2 * time.Second,
			Periods:               periods,
		},
	})
	svc.now = func() time.Time { return schedulerNow }
	svc.sleep = m.sleeps.sleep

	return svc, m
}

func projectsN(n int) []*domain.Project {
	projects := make([]*domain.Project, 0, n)
	for i := 0; i < n; i++ {
		projects = append(projects, &domain.Project{ID: fmt.Sprintf("prj%02d", i), AdAccountID: "1", AccessToken: "tok"})
	}
	return projects
}

func TestSplitBatches(t *testing.T) {
	tests := []struct {
		name     string
		projects int
		size     int
		want     []int
	}{
		{name: "25 projetos em lotes de 10", projects: 25, size: 10, want: []int{10, 10, 5}},
		{name: "divisão exata", projects: 20, size: 10, want: []int{10, 10}},
		{name: "menos que um lote", projects: 3, size: 10, want: []int{3}},
		{name: "nenhum projeto", projects: 0, size: 10, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := splitBatches(projectsN(tt.projects), tt.size)

			sizes := make([]int, 0, len(batches))
			for _, b := range batches {
				sizes = append(sizes, len(b))
			}
			assert.Equal(t, tt.want, sizes)
		})
	}
}

func TestParallelSyncService_Run_Batches(t *testing.T) {
	svc, m := newTestParallelSync(t, []string{"last_7d"})

	m.projectRepo.EXPECT().ListSyncable(gomock.Any()).Return(projectsN(25), nil)
	m.periodRepo.EXPECT().GetByProject(gomock.Any(), gomock.Any()).Return(map[string]time.Time{}, nil).Times(25)
	m.syncer.EXPECT().Sync(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.SyncRequest) (*domain.SyncResult, error) {
			assert.Equal(t, "last_7d", req.DatePreset)
			assert.True(t, req.LightSync)
			assert.True(t, req.SkipImageCache)
			return &domain.SyncResult{Success: true}, nil
		}).Times(25)
	m.periodRepo.EXPECT().Touch(gomock.Any(), gomock.Any(), "last_7d", schedulerNow).Return(nil).Times(25)

	summary, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 25, summary.Projects)
	assert.Equal(t, []int{10, 10, 5}, summary.Batches)
	assert.Equal(t, 25, summary.Synced)
	assert.Zero(t, summary.Failed)
	assert.Equal(t, 2, m.sleeps.count(5*time.Second))
	assert.Zero(t, m.sleeps.count(2*time.Second))

	status := svc.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Same(t, summary, status["last_summary"])
}

func TestParallelSyncService_Run_NoProjects(t *testing.T) {
	svc, m := newTestParallelSync(t, []string{"last_7d"})

	m.projectRepo.EXPECT().ListSyncable(gomock.Any()).Return([]*domain.Project{}, nil)

	summary, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, summary.Projects)
	assert.Empty(t, summary.Batches)
}

func TestParallelSyncService_Run_ListError(t *testing.T) {
	svc, m := newTestParallelSync(t, []string{"last_7d"})

	m.projectRepo.EXPECT().ListSyncable(gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := svc.Run(context.Background())

	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, false, svc.GetStatus()["sync_running"])
}

func TestParallelSyncService_Run_AlreadyRunning(t *testing.T) {
	svc, _ := newTestParallelSync(t, []string{"last_7d"})
	svc.syncRunning = true

	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, ErrSyncAlreadyRunning)

	assert.False(t, svc.TriggerManualSync(context.Background()))
}

func TestParallelSyncService_SyncProject_SkipsFreshPeriods(t *testing.T) {
	svc, m := newTestParallelSync(t, []string{"last_7d", "last_30d", "last_month"})
	project := &domain.Project{ID: "prj123"}
	summary := &RunSummary{}

	m.periodRepo.EXPECT().GetByProject(gomock.Any(), "prj123").Return(map[string]time.Time{
		"last_7d":    schedulerNow.Add(-30 * time.Minute), // ttl 1h
		"last_30d":   schedulerNow.Add(-4 * time.Hour),    // ttl 3h, vencido
		"last_month": schedulerNow.Add(-time.Hour),        // ttl 24h
	}, nil)
	m.syncer.EXPECT().Sync(gomock.Any(), domain.SyncRequest{
		ProjectID:      "prj123",
		DatePreset:     "last_30d",
		LightSync:      true,
		SkipImageCache: true,
	}).Return(&domain.SyncResult{Success: true}, nil)
	m.periodRepo.EXPECT().Touch(gomock.Any(), "prj123", "last_30d", schedulerNow).Return(nil)

	svc.syncProject(context.Background(), project, summary)

	assert.Equal(t, 1, summary.Synced)
	assert.Equal(t, 2, summary.Skipped)
	assert.Zero(t, m.sleeps.count(2*time.Second))
}

func TestParallelSyncService_SyncProject_PeriodDelay(t *testing.T) {
	svc, m := newTestParallelSync(t, []string{"today", "yesterday", "last_7d"})
	summary := &RunSummary{}

	m.periodRepo.EXPECT().GetByProject(gomock.Any(), "prj123").Return(nil, errors.New("timeout"))
	m.syncer.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(&domain.SyncResult{Success: true}, nil).Times(3)
	m.periodRepo.EXPECT().Touch(gomock.Any(), "prj123", gomock.Any(), schedulerNow).Return(nil).Times(3)

	svc.syncProject(context.Background(), &domain.Project{ID: "prj123"}, summary)

	assert.Equal(t, 3, summary.Synced)
	assert.Equal(t, 2, m.sleeps.count(2*time.Second))
}

func TestParallelSyncService_SyncProject_RateLimitedIsNotCached(t *testing.T) {
	svc, m := newTestParallelSync(t, []string{"last_7d", "last_30d"})
	summary := &RunSummary{}

	m.periodRepo.EXPECT().GetByProject(gomock.Any(), "prj123").Return(map[string]time.Time{}, nil)
	gomock.InOrder(
		m.syncer.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(&domain.SyncResult{Success: true, RateLimited: true}, nil),
		m.syncer.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(&domain.SyncResult{Success: true}, nil),
	)
	m.periodRepo.EXPECT().Touch(gomock.Any(), "prj123", "last_30d", schedulerNow).Return(nil)

	svc.syncProject(context.Background(), &domain.Project{ID: "prj123"}, summary)

	assert.Equal(t, 1, summary.RateLimited)
	assert.Equal(t, 1, summary.Synced)
}

func TestParallelSyncService_SyncProject_StopsWithoutToken(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "token expirado", err: syncing.NewSyncError(domain.ErrMetaTokenExpired, apiErrors.ErrMetaTokenExpired, "prj123", "")},
		{name: "sem conexão", err: syncing.NewSyncError(syncing.ErrMetaNotConnected, apiErrors.ErrMetaTokenExpired, "prj123", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestParallelSync(t, []string{"last_7d", "last_30d", "last_90d"})
			summary := &RunSummary{}

			m.periodRepo.EXPECT().GetByProject(gomock.Any(), "prj123").Return(map[string]time.Time{}, nil)
			m.syncer.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(nil, tt.err).Times(1)

			svc.syncProject(context.Background(), &domain.Project{ID: "prj123"}, summary)

			assert.Equal(t, 1, summary.Failed)
			assert.Zero(t, summary.Synced)
		})
	}
}

func TestParallelSyncService_SyncProject_ContinuesAfterOtherErrors(t *testing.T) {
	svc, m := newTestParallelSync(t, []string{"last_7d", "last_30d"})
	summary := &RunSummary{}

	m.periodRepo.EXPECT().GetByProject(gomock.Any(), "prj123").Return(map[string]time.Time{}, nil)
	gomock.InOrder(
		m.syncer.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(nil, syncing.NewSyncError(syncing.ErrMetaIntegration, apiErrors.ErrMetaIntegration, "prj123", "500")),
		m.syncer.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(&domain.SyncResult{Success: true}, nil),
	)
	m.periodRepo.EXPECT().Touch(gomock.Any(), "prj123", "last_30d", schedulerNow).Return(nil)

	svc.syncProject(context.Background(), &domain.Project{ID: "prj123"}, summary)

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Synced)
}

func TestParallelSyncService_Start_Disabled(t *testing.T) {
	svc, _ := newTestParallelSync(t, []string{"last_7d"})
	svc.config.Enabled = false

	assert.NoError(t, svc.Start(context.Background()))
}
