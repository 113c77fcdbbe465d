package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/infrastructure/database/postgres"
	"github.com/vfg2006/meta-ads-sync/infrastructure/migration"
	"github.com/vfg2006/meta-ads-sync/internal/config"
	"github.com/vfg2006/meta-ads-sync/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App)
	logrus.Info("Iniciando script de migração...")
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := migration.Apply(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar o schema")
	}

	logrus.Infof("Migração concluída em %v", time.Since(startTime))
}
