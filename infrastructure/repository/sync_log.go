package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/meta-ads-sync/infrastructure/database/postgres"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

const syncLogsTable = "sync_logs sl"

type SyncLogRepository interface {
	Create(ctx context.Context, log *domain.SyncLog) error
	ListByProject(ctx context.Context, projectID string, limit uint64) ([]*domain.SyncLog, error)
}

type syncLogRepository struct {
	conn *postgres.Connection
}

func NewSyncLogRepository(conn *postgres.Connection) SyncLogRepository {
	return &syncLogRepository{
		conn: conn,
	}
}

func (r *syncLogRepository) Create(ctx context.Context, log *domain.SyncLog) error {
	message := []byte(log.Message)
	if len(message) == 0 {
		message = []byte("{}")
	}

	query, args, err := squirrel.
		Insert("sync_logs").
		Columns("id", "project_id", "status", "message", "started_at", "finished_at", "duration_ms").
		Values(log.ID, log.ProjectID, log.Status, string(message), log.StartedAt, log.FinishedAt, log.DurationMs).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return dbError("gravar log de sincronização", err)
	}

	return nil
}

func (r *syncLogRepository) ListByProject(ctx context.Context, projectID string, limit uint64) ([]*domain.SyncLog, error) {
	query, args, err := squirrel.
		Select("sl.id, sl.project_id, sl.status, sl.message, sl.started_at, sl.finished_at, sl.duration_ms").
		From(syncLogsTable).
		Where(squirrel.Eq{"sl.project_id": projectID}).
		OrderBy("sl.started_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar logs de sincronização", err)
	}
	defer rows.Close()

	logs := make([]*domain.SyncLog, 0)
	for rows.Next() {
		l := &domain.SyncLog{}
		var message []byte
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.Status, &message, &l.StartedAt, &l.FinishedAt, &l.DurationMs); err != nil {
			return nil, fmt.Errorf("erro ao escanear log de sincronização: %w", err)
		}
		l.Message = message
		logs = append(logs, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return logs, nil
}
