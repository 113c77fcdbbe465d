package syncing

import (
	"sort"
	"time"

	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

// BuildDailyMetrics converte as linhas de insights em linhas diárias persistíveis,
// ordenadas por data e anúncio.
func BuildDailyMetrics(projectID string, insights domain.InsightsByAd) []*domain.DailyMetric {
	rows := make([]*domain.DailyMetric, 0)
	for _, row := range insights.Rows() {
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			continue
		}

		metrics := row.Metrics
		metrics.CalculateDerived()

		rows = append(rows, &domain.DailyMetric{
			ProjectID:  projectID,
			AdID:       row.AdID,
			AdSetID:    row.AdSetID,
			CampaignID: row.CampaignID,
			Date:       date,
			Metrics:    metrics,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].AdID < rows[j].AdID
	})

	return rows
}

// BuildAggregates soma as linhas da janela por campanha, conjunto e anúncio.
// Toda entidade do snapshot gera um consolidado, mesmo sem linhas.
func BuildAggregates(projectID string, snapshot *domain.EntitySnapshot, insights domain.InsightsByAd, syncedAt time.Time) []*domain.EntityAggregate {
	byCampaign := make(map[string]*domain.Metrics)
	byAdSet := make(map[string]*domain.Metrics)
	byAd := make(map[string]*domain.Metrics)

	// ids de pai vindos do snapshot, usados quando a linha não traz os seus
	adParents := make(map[string]domain.Ad, len(snapshot.Ads))
	for _, ad := range snapshot.Ads {
		adParents[ad.ID] = ad
	}

	for _, row := range insights.Rows() {
		campaignID, adSetID := row.CampaignID, row.AdSetID
		if parent, ok := adParents[row.AdID]; ok {
			if campaignID == "" {
				campaignID = parent.CampaignID
			}
			if adSetID == "" {
				adSetID = parent.AdSetID
			}
		}

		accumulate(byAd, row.AdID, row.Metrics)
		accumulate(byAdSet, adSetID, row.Metrics)
		accumulate(byCampaign, campaignID, row.Metrics)
	}

	aggregates := make([]*domain.EntityAggregate, 0, len(snapshot.Campaigns)+len(snapshot.AdSets)+len(snapshot.Ads))

	for _, c := range snapshot.Campaigns {
		aggregates = append(aggregates, &domain.EntityAggregate{
			ProjectID:      projectID,
			EntityType:     domain.EntityTypeCampaign,
			EntityID:       c.ID,
			Name:           c.Name,
			Status:         c.Status,
			Objective:      c.Objective,
			DailyBudget:    c.DailyBudget,
			LifetimeBudget: c.LifetimeBudget,
			Metrics:        totals(byCampaign, c.ID),
			SyncedAt:       syncedAt,
		})
	}

	for _, a := range snapshot.AdSets {
		aggregates = append(aggregates, &domain.EntityAggregate{
			ProjectID:      projectID,
			EntityType:     domain.EntityTypeAdSet,
			EntityID:       a.ID,
			ParentID:       a.CampaignID,
			Name:           a.Name,
			Status:         a.Status,
			Objective:      a.OptimizationGoal,
			DailyBudget:    a.DailyBudget,
			LifetimeBudget: a.LifetimeBudget,
			Metrics:        totals(byAdSet, a.ID),
			SyncedAt:       syncedAt,
		})
	}

	for _, a := range snapshot.Ads {
		aggregates = append(aggregates, &domain.EntityAggregate{
			ProjectID:    projectID,
			EntityType:   domain.EntityTypeAd,
			EntityID:     a.ID,
			ParentID:     a.AdSetID,
			Name:         a.Name,
			Status:       a.Status,
			ThumbnailURL: a.ThumbnailURL,
			Metrics:      totals(byAd, a.ID),
			SyncedAt:     syncedAt,
		})
	}

	return aggregates
}

func accumulate(into map[string]*domain.Metrics, id string, m domain.Metrics) {
	if id == "" {
		return
	}

	total, ok := into[id]
	if !ok {
		total = &domain.Metrics{}
		into[id] = total
	}
	total.Add(m)
}

func totals(from map[string]*domain.Metrics, id string) domain.Metrics {
	m := domain.Metrics{}
	if total, ok := from[id]; ok {
		m = *total
	}
	m.CalculateDerived()
	return m
}
