package migration

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/infrastructure/database/postgres"
)

//go:embed schema.sql
var schema string

// Statements divide o schema embutido em comandos individuais
func Statements() []string {
	parts := strings.Split(schema, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// Apply cria as tabelas numa única transação; os comandos são idempotentes
func Apply(ctx context.Context, conn *postgres.Connection) error {
	statements := Statements()

	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return errors.Wrapf(err, "erro ao executar comando %d do schema", i+1)
			}
		}

		logrus.WithField("statements", len(statements)).Info("Schema aplicado com sucesso")
		return nil
	})
}
