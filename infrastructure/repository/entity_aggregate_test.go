package repository

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

func TestEntityAggregateRepository_UpsertBatch(t *testing.T) {
	syncedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	budget := 150.0

	aggregates := []*domain.EntityAggregate{
		{ProjectID: "prj123", EntityType: domain.EntityTypeAd, EntityID: "ad1", ParentID: "set1", Name: "Ad", Status: "ACTIVE", ThumbnailURL: "https://cdn/thumb.jpg", SyncedAt: syncedAt},
		{ProjectID: "prj123", EntityType: domain.EntityTypeCampaign, EntityID: "cmp1", Name: "Campanha", Status: "ACTIVE", Objective: "OUTCOME_SALES", DailyBudget: &budget, SyncedAt: syncedAt},
		{ProjectID: "prj123", EntityType: domain.EntityTypeAdSet, EntityID: "set1", ParentID: "cmp1", Name: "Conjunto", Status: "PAUSED", SyncedAt: syncedAt},
	}

	t.Run("writes campaign, ad set and ad tables in order", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewEntityAggregateRepository(conn)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO campaign_aggregates")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ad_set_aggregates")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("thumbnail_url = COALESCE(EXCLUDED.thumbnail_url, ad_aggregates.thumbnail_url)")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpsertBatch(context.Background(), aggregates)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("splits large tables into chunks inside one transaction", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewEntityAggregateRepository(conn)

		ads := make([]*domain.EntityAggregate, defaultUpsertChunkSize+1)
		for i := range ads {
			ads[i] = &domain.EntityAggregate{ProjectID: "prj123", EntityType: domain.EntityTypeAd, EntityID: fmt.Sprintf("ad%d", i), Name: "Ad", Status: "ACTIVE", SyncedAt: syncedAt}
		}
		ads = append(ads, aggregates[1])

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO campaign_aggregates")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ad_aggregates")).WillReturnResult(sqlmock.NewResult(0, int64(defaultUpsertChunkSize)))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ad_aggregates")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.UpsertBatch(context.Background(), ads))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("keeps every statement under the postgres parameter limit", func(t *testing.T) {
		items := make([]*domain.EntityAggregate, 3200)
		for i := range items {
			items[i] = &domain.EntityAggregate{ProjectID: "prj123", EntityType: domain.EntityTypeAd, EntityID: fmt.Sprintf("ad%d", i), SyncedAt: syncedAt}
		}

		for _, chunk := range chunks(items, defaultUpsertChunkSize) {
			_, args, err := buildAggregateUpsert("ad_aggregates", chunk)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(args), 65535)
		}
	})

	t.Run("skips empty input", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewEntityAggregateRepository(conn)

		assert.NoError(t, repo.UpsertBatch(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEntityAggregateRepository_ListByProject(t *testing.T) {
	t.Run("maps nullable columns", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewEntityAggregateRepository(conn)
		syncedAt := time.Now()

		columns := append(append([]string{}, aggregateColumns...), metricColumns...)
		columns = append(columns, "synced_at")

		mock.ExpectQuery(regexp.QuoteMeta("FROM campaign_aggregates ea WHERE ea.project_id = $1 ORDER BY ea.spend DESC, ea.entity_id ASC")).
			WithArgs("prj123").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("prj123", "cmp1", nil, "Campanha", "ACTIVE", "OUTCOME_SALES", 100.0, nil, nil,
					50.0, 2000, 40, 1500, 4.0, 400.0, 2.0, 1.25, 25.0, 12.5, 8.0, syncedAt))

		aggregates, err := repo.ListByProject(context.Background(), "prj123", domain.EntityTypeCampaign)

		require.NoError(t, err)
		require.Len(t, aggregates, 1)
		agg := aggregates[0]
		assert.Equal(t, domain.EntityTypeCampaign, agg.EntityType)
		assert.Empty(t, agg.ParentID)
		assert.Equal(t, "OUTCOME_SALES", agg.Objective)
		require.NotNil(t, agg.DailyBudget)
		assert.Equal(t, 100.0, *agg.DailyBudget)
		assert.Nil(t, agg.LifetimeBudget)
		assert.Equal(t, 8.0, agg.ROAS)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown entity type", func(t *testing.T) {
		conn, _ := newMockConnection(t)
		repo := NewEntityAggregateRepository(conn)

		_, err := repo.ListByProject(context.Background(), "prj123", domain.EntityType("creative"))

		assert.Error(t, err)
	})
}
