package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

func TestSyncLogRepository_Create(t *testing.T) {
	startedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	finishedAt := startedAt.Add(3 * time.Second)

	t.Run("stores message as JSON", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewSyncLogRepository(conn)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_logs")).
			WithArgs("log1", "prj123", "partial", `{"rate_limited":true}`, startedAt, finishedAt, int64(3000)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(context.Background(), &domain.SyncLog{
			ID:         "log1",
			ProjectID:  "prj123",
			Status:     domain.SyncStatusPartial,
			Message:    []byte(`{"rate_limited":true}`),
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
			DurationMs: 3000,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("defaults empty message to an empty object", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewSyncLogRepository(conn)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_logs")).
			WithArgs("log2", "prj123", "success", "{}", startedAt, finishedAt, int64(0)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(context.Background(), &domain.SyncLog{
			ID:         "log2",
			ProjectID:  "prj123",
			Status:     domain.SyncStatusSuccess,
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSyncLogRepository_ListByProject(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewSyncLogRepository(conn)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_logs sl WHERE sl.project_id = $1 ORDER BY sl.started_at DESC LIMIT 50")).
		WithArgs("prj123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "status", "message", "started_at", "finished_at", "duration_ms"}).
			AddRow("log1", "prj123", "error", []byte(`{"error":"boom"}`), now, now, 12))

	logs, err := repo.ListByProject(context.Background(), "prj123", 50)

	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SyncStatusError, logs[0].Status)
	assert.JSONEq(t, `{"error":"boom"}`, string(logs[0].Message))
	assert.NoError(t, mock.ExpectationsWereMet())
}
