package syncing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

func testSnapshot() *domain.EntitySnapshot {
	budget := 100.0
	return &domain.EntitySnapshot{
		Campaigns: []domain.Campaign{
			{ID: "cmp1", Name: "Vendas", Status: "ACTIVE", Objective: "OUTCOME_SALES", DailyBudget: &budget},
			{ID: "cmp2", Name: "Sem entrega", Status: "PAUSED"},
		},
		AdSets: []domain.AdSet{
			{ID: "set1", CampaignID: "cmp1", Name: "Conjunto", Status: "ACTIVE", OptimizationGoal: "OFFSITE_CONVERSIONS"},
		},
		Ads: []domain.Ad{
			{ID: "ad1", AdSetID: "set1", CampaignID: "cmp1", Name: "Anúncio 1", Status: "ACTIVE", ThumbnailURL: "https://cdn/1.jpg"},
			{ID: "ad2", AdSetID: "set1", CampaignID: "cmp1", Name: "Anúncio 2", Status: "ACTIVE"},
		},
	}
}

func TestBuildDailyMetrics(t *testing.T) {
	insights := insightsOf(
		domain.DailyInsight{AdID: "ad2", AdSetID: "set1", CampaignID: "cmp1", Date: "2025-03-02", Metrics: domain.Metrics{Spend: 20, Impressions: 2000, Clicks: 40}},
		domain.DailyInsight{AdID: "ad1", AdSetID: "set1", CampaignID: "cmp1", Date: "2025-03-02", Metrics: domain.Metrics{Spend: 10, Impressions: 1000, Clicks: 0}},
		domain.DailyInsight{AdID: "ad1", AdSetID: "set1", CampaignID: "cmp1", Date: "2025-03-01", Metrics: domain.Metrics{Spend: 5, Impressions: 500, Clicks: 5, Conversions: 1, ConversionValue: 50}},
		domain.DailyInsight{AdID: "ad3", Date: "not-a-date"},
	)

	rows := BuildDailyMetrics("prj123", insights)

	require.Len(t, rows, 3)
	assert.Equal(t, "2025-03-01", rows[0].Date.Format(time.DateOnly))
	assert.Equal(t, "ad1", rows[1].AdID)
	assert.Equal(t, "ad2", rows[2].AdID)

	first := rows[0]
	assert.Equal(t, "prj123", first.ProjectID)
	assert.Equal(t, 1.0, first.CTR)
	assert.Equal(t, 10.0, first.CPM)
	assert.Equal(t, 1.0, first.CPC)
	assert.Equal(t, 5.0, first.CPA)
	assert.Equal(t, 10.0, first.ROAS)

	// sem cliques o CPC fica zerado
	assert.Zero(t, rows[1].CPC)
	assert.Zero(t, rows[1].CPA)
}

func TestBuildAggregates(t *testing.T) {
	syncedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	insights := insightsOf(
		domain.DailyInsight{AdID: "ad1", AdSetID: "set1", CampaignID: "cmp1", Date: "2025-03-01", Metrics: domain.Metrics{Spend: 10, Impressions: 1000, Clicks: 10, Reach: 800, Conversions: 2, ConversionValue: 40}},
		domain.DailyInsight{AdID: "ad1", AdSetID: "set1", CampaignID: "cmp1", Date: "2025-03-02", Metrics: domain.Metrics{Spend: 10, Impressions: 1000, Clicks: 30, Reach: 700}},
		// linha sem ids de pai: usa os do snapshot
		domain.DailyInsight{AdID: "ad2", Date: "2025-03-01", Metrics: domain.Metrics{Spend: 30, Impressions: 2000, Clicks: 10}},
	)

	aggregates := BuildAggregates("prj123", testSnapshot(), insights, syncedAt)
	require.Len(t, aggregates, 5)

	byID := make(map[string]*domain.EntityAggregate)
	for _, agg := range aggregates {
		byID[agg.EntityID] = agg
		assert.Equal(t, syncedAt, agg.SyncedAt)
	}

	campaign := byID["cmp1"]
	assert.Equal(t, domain.EntityTypeCampaign, campaign.EntityType)
	assert.Equal(t, 50.0, campaign.Spend)
	assert.Equal(t, int64(4000), campaign.Impressions)
	assert.Equal(t, int64(50), campaign.Clicks)
	assert.Equal(t, int64(1500), campaign.Reach)
	assert.Equal(t, 1.25, campaign.CTR)
	assert.Equal(t, 12.5, campaign.CPM)
	assert.Equal(t, 1.0, campaign.CPC)
	assert.Equal(t, 25.0, campaign.CPA)
	assert.Equal(t, 0.8, campaign.ROAS)
	require.NotNil(t, campaign.DailyBudget)
	assert.Equal(t, 100.0, *campaign.DailyBudget)

	// campanha sem linhas também é consolidada, com métricas zeradas
	idle := byID["cmp2"]
	require.NotNil(t, idle)
	assert.True(t, idle.Metrics.IsZero())
	assert.Zero(t, idle.CTR)

	adSet := byID["set1"]
	assert.Equal(t, "cmp1", adSet.ParentID)
	assert.Equal(t, "OFFSITE_CONVERSIONS", adSet.Objective)
	assert.Equal(t, 50.0, adSet.Spend)

	ad := byID["ad1"]
	assert.Equal(t, domain.EntityTypeAd, ad.EntityType)
	assert.Equal(t, "set1", ad.ParentID)
	assert.Equal(t, "https://cdn/1.jpg", ad.ThumbnailURL)
	assert.Equal(t, 20.0, ad.Spend)
	assert.Equal(t, 2.0, ad.CTR)
}
