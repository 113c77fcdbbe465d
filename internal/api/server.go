package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/infrastructure/storage"
	"github.com/vfg2006/meta-ads-sync/internal/api/handler"
	"github.com/vfg2006/meta-ads-sync/internal/api/handler/router"
	"github.com/vfg2006/meta-ads-sync/internal/config"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/authenticating"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/projecting"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/reporting"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/syncing"
	"github.com/vfg2006/meta-ads-sync/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	db handler.Pinger,
	syncer syncing.Syncer,
	parallelSyncService handler.ParallelSyncer,
	projectService projecting.ProjectService,
	reporter reporting.Reporter,
	authenticator authenticating.Authenticator,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		ParallelSyncService: parallelSyncService,
	}

	configs := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.MetaAdsSync(syncer, projectService, cronServices)...),
		router.WithRoutes(handler.Projects(projectService)...),
		router.WithRoutes(handler.Reports(reporter)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	}

	if config.ImageCache.Enabled && (config.ImageCache.StorageType == "" || config.ImageCache.StorageType == storage.TypeLocal) {
		configs = append(configs, router.WithRoutes(handler.Images(config.ImageCache.LocalPath)...))
	}

	rt := router.New(configs...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
