package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/infrastructure/database/postgres"
	"github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-ads-sync/infrastructure/repository"
	"github.com/vfg2006/meta-ads-sync/infrastructure/storage"
	"github.com/vfg2006/meta-ads-sync/internal/api"
	"github.com/vfg2006/meta-ads-sync/internal/config"
	"github.com/vfg2006/meta-ads-sync/internal/scheduler"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/authenticating"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/imagecache"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/projecting"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/reporting"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/syncing"
	"github.com/vfg2006/meta-ads-sync/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	projectRepo := repository.NewProjectRepository(pgConn)
	dailyMetricRepo := repository.NewDailyMetricRepository(pgConn)
	aggregateRepo := repository.NewEntityAggregateRepository(pgConn)
	historyRepo := repository.NewOptimizationHistoryRepository(pgConn)
	syncLogRepo := repository.NewSyncLogRepository(pgConn)
	periodCacheRepo := repository.NewPeriodCacheRepository(pgConn)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(cfg, metaClient)

	imageCache := imagecache.NewService(cfg, objectStorage(ctx, cfg.ImageCache))
	defer imageCache.Close()

	authenticator := authenticating.NewService(cfg)
	projectService := projecting.NewService(projectRepo, metaIntegrator)
	reporter := reporting.NewService(projectService, dailyMetricRepo, aggregateRepo, historyRepo, syncLogRepo)

	syncService := syncing.NewService(
		cfg,
		metaIntegrator,
		projectRepo,
		dailyMetricRepo,
		aggregateRepo,
		historyRepo,
		syncLogRepo,
		imageCache,
	)

	parallelSyncService := scheduler.NewParallelSyncService(projectRepo, periodCacheRepo, syncService, cfg)
	if err := parallelSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização paralela")
	} else {
		logrus.Info("Agendador de sincronização paralela iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		pgConn,
		syncService,
		parallelSyncService,
		projectService,
		reporter,
		authenticator,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// objectStorage devolve nil quando o cache de imagens está desligado ou falhou,
// e a sincronização segue com as URLs originais do Meta
func objectStorage(ctx context.Context, cfg config.ImageCache) storage.ObjectStorage {
	if !cfg.Enabled {
		return nil
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Error("Erro ao configurar o armazenamento de imagens, cache desabilitado")
		return nil
	}

	return store
}
