package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

func dailyRows(n int) []*domain.DailyMetric {
	rows := make([]*domain.DailyMetric, 0, n)
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		rows = append(rows, &domain.DailyMetric{
			ProjectID:  "prj123",
			AdID:       "ad1",
			AdSetID:    "set1",
			CampaignID: "cmp1",
			Date:       day.AddDate(0, 0, i),
			Metrics:    domain.Metrics{Spend: 10, Impressions: 1000, Clicks: 20},
		})
	}
	return rows
}

func TestDailyMetricRepository_UpsertBatch(t *testing.T) {
	t.Run("writes rows in chunks inside one transaction", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewDailyMetricRepository(conn)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO daily_metrics")).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (project_id, ad_id, date) DO UPDATE")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		written, err := repo.UpsertBatch(context.Background(), dailyRows(3), 2)

		require.NoError(t, err)
		assert.Equal(t, 3, written)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back every chunk when one fails", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewDailyMetricRepository(conn)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO daily_metrics").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("INSERT INTO daily_metrics").WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		written, err := repo.UpsertBatch(context.Background(), dailyRows(4), 2)

		assert.Zero(t, written)
		assert.ErrorContains(t, err, "deadlock detected")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("does nothing for empty input", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewDailyMetricRepository(conn)

		written, err := repo.UpsertBatch(context.Background(), nil, 500)

		assert.NoError(t, err)
		assert.Zero(t, written)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBuildDailyMetricUpsert(t *testing.T) {
	query, args, err := buildDailyMetricUpsert(dailyRows(2))

	require.NoError(t, err)
	assert.Contains(t, query, "ON CONFLICT (project_id, ad_id, date) DO UPDATE SET")
	assert.Contains(t, query, "updated_at = NOW()")
	// 5 colunas de identificação + 11 métricas por linha
	assert.Len(t, args, 32)
	assert.Equal(t, "2025-03-01", args[4])
}

func TestDailyMetricRepository_ListByDateRange(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewDailyMetricRepository(conn)
	since := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	updated := time.Now()

	columns := append([]string{"project_id", "ad_id", "adset_id", "campaign_id", "date"}, metricColumns...)
	columns = append(columns, "updated_at")

	mock.ExpectQuery(regexp.QuoteMeta("FROM daily_metrics dm WHERE dm.project_id = $1 AND dm.date >= $2 AND dm.date <= $3")).
		WithArgs("prj123", "2025-03-01", "2025-03-07").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("prj123", "ad1", "set1", "cmp1", since, 12.5, 1000, 30, 800, 2.0, 150.0, 3.0, 0.41, 12.5, 6.25, 12.0, updated))

	rows, err := repo.ListByDateRange(context.Background(), "prj123", since, until)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 12.5, rows[0].Spend)
	assert.Equal(t, int64(1000), rows[0].Impressions)
	assert.Equal(t, 12.0, rows[0].ROAS)
	assert.NoError(t, mock.ExpectationsWereMet())
}
