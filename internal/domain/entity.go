package domain

import "time"

type EntityType string

const (
	EntityTypeCampaign EntityType = "campaign"
	EntityTypeAdSet    EntityType = "adset"
	EntityTypeAd       EntityType = "ad"
)

const StatusActive = "ACTIVE"

type Campaign struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Status         string   `json:"status"`
	Objective      string   `json:"objective"`
	DailyBudget    *float64 `json:"daily_budget,omitempty"`
	LifetimeBudget *float64 `json:"lifetime_budget,omitempty"`
}

type AdSet struct {
	ID               string   `json:"id"`
	CampaignID       string   `json:"campaign_id"`
	Name             string   `json:"name"`
	Status           string   `json:"status"`
	OptimizationGoal string   `json:"optimization_goal"`
	DailyBudget      *float64 `json:"daily_budget,omitempty"`
	LifetimeBudget   *float64 `json:"lifetime_budget,omitempty"`
}

type Ad struct {
	ID           string `json:"id"`
	AdSetID      string `json:"adset_id"`
	CampaignID   string `json:"campaign_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	CreativeID   string `json:"creative_id,omitempty"`
	VideoID      string `json:"video_id,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// EntitySnapshot é o resultado de uma busca de entidades de uma conta
type EntitySnapshot struct {
	Campaigns []Campaign
	AdSets    []AdSet
	Ads       []Ad
}

// EntityAggregate é o consolidado de uma campanha, conjunto de anúncios ou anúncio
// dentro da janela sincronizada.
type EntityAggregate struct {
	ProjectID      string     `json:"project_id"`
	EntityType     EntityType `json:"entity_type"`
	EntityID       string     `json:"entity_id"`
	ParentID       string     `json:"parent_id,omitempty"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	Objective      string     `json:"objective,omitempty"`
	DailyBudget    *float64   `json:"daily_budget,omitempty"`
	LifetimeBudget *float64   `json:"lifetime_budget,omitempty"`
	ThumbnailURL   string     `json:"thumbnail_url,omitempty"`
	Metrics
	SyncedAt time.Time `json:"synced_at"`
}
