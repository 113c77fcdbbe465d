package domain

import (
	"encoding/json"
	"time"
)

type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusPartial SyncStatus = "partial"
	SyncStatusError   SyncStatus = "error"
)

type SyncLog struct {
	ID         string          `json:"id"`
	ProjectID  string          `json:"project_id"`
	Status     SyncStatus      `json:"status"`
	Message    json.RawMessage `json:"message"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	DurationMs int64           `json:"duration_ms"`
}

type DateRange struct {
	Since time.Time
	Until time.Time
}

type DateRangeRequest struct {
	Since string `json:"since"`
	Until string `json:"until"`
}

type SyncRequest struct {
	ProjectID      string            `json:"project_id"`
	AdAccountID    string            `json:"ad_account_id,omitempty"`
	DateRange      *DateRangeRequest `json:"date_range,omitempty"`
	DatePreset     string            `json:"date_preset,omitempty"`
	LightSync      bool              `json:"light_sync"`
	SkipImageCache bool              `json:"skip_image_cache"`
}

type SyncResult struct {
	Success     bool   `json:"success"`
	Campaigns   int    `json:"campaigns"`
	AdSets      int    `json:"ad_sets"`
	Ads         int    `json:"ads"`
	Records     int    `json:"records"`
	Changes     int    `json:"changes"`
	Attempts    int    `json:"attempts"`
	RateLimited bool   `json:"rate_limited"`
	Message     string `json:"message,omitempty"`
	ElapsedMs   int64  `json:"elapsed_ms"`
}

// PeriodCache marca a última sincronização bem-sucedida de um período para um projeto
type PeriodCache struct {
	ProjectID string    `json:"project_id"`
	Period    string    `json:"period"`
	SyncedAt  time.Time `json:"synced_at"`
}
