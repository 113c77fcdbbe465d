package metadomain

type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	Objective       string `json:"objective"`
	DailyBudget     string `json:"daily_budget"`
	LifetimeBudget  string `json:"lifetime_budget"`
}

type AdSet struct {
	ID               string `json:"id"`
	CampaignID       string `json:"campaign_id"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	EffectiveStatus  string `json:"effective_status"`
	OptimizationGoal string `json:"optimization_goal"`
	DailyBudget      string `json:"daily_budget"`
	LifetimeBudget   string `json:"lifetime_budget"`
}

type Creative struct {
	ID           string `json:"id"`
	ThumbnailURL string `json:"thumbnail_url"`
	ImageURL     string `json:"image_url"`
	VideoID      string `json:"video_id"`
}

type Ad struct {
	ID              string    `json:"id"`
	AdSetID         string    `json:"adset_id"`
	CampaignID      string    `json:"campaign_id"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	EffectiveStatus string    `json:"effective_status"`
	Creative        *Creative `json:"creative,omitempty"`
}

type Video struct {
	ID      string `json:"id"`
	Picture string `json:"picture"`
}
