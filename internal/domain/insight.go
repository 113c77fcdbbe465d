package domain

import "time"

// DailyInsight é uma linha diária de desempenho de um anúncio, já normalizada
type DailyInsight struct {
	AdID       string `json:"ad_id"`
	AdSetID    string `json:"adset_id"`
	CampaignID string `json:"campaign_id"`
	Date       string `json:"date"`
	Metrics
}

// InsightsByAd indexa as linhas diárias por anúncio e depois por data (YYYY-MM-DD)
type InsightsByAd map[string]map[string]DailyInsight

// Rows achata o mapa em uma lista
func (i InsightsByAd) Rows() []DailyInsight {
	rows := make([]DailyInsight, 0)
	for _, byDate := range i {
		for _, row := range byDate {
			rows = append(rows, row)
		}
	}
	return rows
}

// Add insere a linha no mapa, somando se já existir linha para o mesmo anúncio e data
func (i InsightsByAd) Add(row DailyInsight) {
	byDate, ok := i[row.AdID]
	if !ok {
		byDate = make(map[string]DailyInsight)
		i[row.AdID] = byDate
	}

	if existing, ok := byDate[row.Date]; ok {
		existing.Metrics.Add(row.Metrics)
		byDate[row.Date] = existing
		return
	}

	byDate[row.Date] = row
}

type DailyMetric struct {
	ProjectID  string    `json:"project_id"`
	AdID       string    `json:"ad_id"`
	AdSetID    string    `json:"adset_id"`
	CampaignID string    `json:"campaign_id"`
	Date       time.Time `json:"date"`
	Metrics
	UpdatedAt time.Time `json:"updated_at"`
}

type MetricsReport struct {
	ProjectID string         `json:"project_id"`
	Since     string         `json:"since"`
	Until     string         `json:"until"`
	Totals    Metrics        `json:"totals"`
	Daily     []*DailyMetric `json:"daily"`
}
