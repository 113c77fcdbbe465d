package domain

import "time"

type ChangeType string

const (
	ChangeTypeCreated      ChangeType = "created"
	ChangeTypePaused       ChangeType = "paused"
	ChangeTypeActivated    ChangeType = "activated"
	ChangeTypeBudgetChange ChangeType = "budget_change"
	ChangeTypeUpdated      ChangeType = "updated"
)

// OptimizationRecord é uma entrada imutável do histórico de otimizações
type OptimizationRecord struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"project_id"`
	EntityType    EntityType `json:"entity_type"`
	EntityID      string     `json:"entity_id"`
	EntityName    string     `json:"entity_name"`
	ChangeType    ChangeType `json:"change_type"`
	FieldName     string     `json:"field_name,omitempty"`
	OldValue      *string    `json:"old_value,omitempty"`
	NewValue      *string    `json:"new_value,omitempty"`
	ChangePercent *float64   `json:"change_percent,omitempty"`
	DetectedAt    time.Time  `json:"detected_at"`
}
