package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/meta-ads-sync/infrastructure/database/postgres"
)

type PeriodCacheRepository interface {
	GetByProject(ctx context.Context, projectID string) (map[string]time.Time, error)
	Touch(ctx context.Context, projectID, period string, syncedAt time.Time) error
}

type periodCacheRepository struct {
	conn *postgres.Connection
}

func NewPeriodCacheRepository(conn *postgres.Connection) PeriodCacheRepository {
	return &periodCacheRepository{
		conn: conn,
	}
}

// GetByProject retorna o horário da última sincronização de cada período
func (r *periodCacheRepository) GetByProject(ctx context.Context, projectID string) (map[string]time.Time, error) {
	query, args, err := squirrel.
		Select("spc.period, spc.synced_at").
		From("sync_period_cache spc").
		Where(squirrel.Eq{"spc.project_id": projectID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("buscar cache de períodos", err)
	}
	defer rows.Close()

	cache := make(map[string]time.Time)
	for rows.Next() {
		var period string
		var syncedAt time.Time
		if err := rows.Scan(&period, &syncedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear cache de períodos: %w", err)
		}
		cache[period] = syncedAt
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return cache, nil
}

func (r *periodCacheRepository) Touch(ctx context.Context, projectID, period string, syncedAt time.Time) error {
	query, args, err := squirrel.
		Insert("sync_period_cache").
		Columns("project_id", "period", "synced_at").
		Values(projectID, period, syncedAt).
		Suffix("ON CONFLICT (project_id, period) DO UPDATE SET synced_at = EXCLUDED.synced_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return dbError("gravar cache de período", err)
	}

	return nil
}
