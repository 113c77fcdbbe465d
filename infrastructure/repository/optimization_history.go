package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/meta-ads-sync/infrastructure/database/postgres"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

const optimizationHistoryTable = "optimization_history oh"

type OptimizationHistoryRepository interface {
	InsertBatch(ctx context.Context, records []*domain.OptimizationRecord) error
	ListByProject(ctx context.Context, projectID string, limit uint64) ([]*domain.OptimizationRecord, error)
}

type optimizationHistoryRepository struct {
	conn *postgres.Connection
}

func NewOptimizationHistoryRepository(conn *postgres.Connection) OptimizationHistoryRepository {
	return &optimizationHistoryRepository{
		conn: conn,
	}
}

// InsertBatch apenas insere; o histórico nunca é alterado.
// Os blocos são gravados na mesma transação.
func (r *optimizationHistoryRepository) InsertBatch(ctx context.Context, records []*domain.OptimizationRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, chunk := range chunks(records, defaultUpsertChunkSize) {
			sqlQuery, args, err := buildHistoryInsert(chunk)
			if err != nil {
				return fmt.Errorf("erro ao construir query de inserção: %w", err)
			}

			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return dbError("gravar histórico de otimizações", err)
			}
		}
		return nil
	})
}

func buildHistoryInsert(records []*domain.OptimizationRecord) (string, []any, error) {
	query := squirrel.StatementBuilder.
		Insert("optimization_history").
		Columns(
			"id",
			"project_id",
			"entity_type",
			"entity_id",
			"entity_name",
			"change_type",
			"field_name",
			"old_value",
			"new_value",
			"change_percent",
			"detected_at",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, rec := range records {
		query = query.Values(
			rec.ID,
			rec.ProjectID,
			rec.EntityType,
			rec.EntityID,
			rec.EntityName,
			rec.ChangeType,
			nullString(rec.FieldName),
			rec.OldValue,
			rec.NewValue,
			rec.ChangePercent,
			rec.DetectedAt,
		)
	}

	return query.ToSql()
}

func (r *optimizationHistoryRepository) ListByProject(ctx context.Context, projectID string, limit uint64) ([]*domain.OptimizationRecord, error) {
	query, args, err := squirrel.
		Select("oh.id, oh.project_id, oh.entity_type, oh.entity_id, oh.entity_name, oh.change_type, COALESCE(oh.field_name, ''), oh.old_value, oh.new_value, oh.change_percent, oh.detected_at").
		From(optimizationHistoryTable).
		Where(squirrel.Eq{"oh.project_id": projectID}).
		OrderBy("oh.detected_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar histórico de otimizações", err)
	}
	defer rows.Close()

	records := make([]*domain.OptimizationRecord, 0)
	for rows.Next() {
		rec := &domain.OptimizationRecord{}
		if err := rows.Scan(
			&rec.ID,
			&rec.ProjectID,
			&rec.EntityType,
			&rec.EntityID,
			&rec.EntityName,
			&rec.ChangeType,
			&rec.FieldName,
			&rec.OldValue,
			&rec.NewValue,
			&rec.ChangePercent,
			&rec.DetectedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear histórico: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}
