package syncing

import (
	"strconv"
	"time"

	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

const (
	fieldStatus         = "status"
	fieldDailyBudget    = "daily_budget"
	fieldLifetimeBudget = "lifetime_budget"
	fieldObjective      = "objective"
)

// trackedFields define quais campos geram histórico para cada tipo de entidade
var trackedFields = map[domain.EntityType][]string{
	domain.EntityTypeCampaign: {fieldStatus, fieldDailyBudget, fieldLifetimeBudget, fieldObjective},
	domain.EntityTypeAdSet:    {fieldStatus, fieldDailyBudget, fieldLifetimeBudget},
	domain.EntityTypeAd:       {fieldStatus},
}

// Snapshot indexa os consolidados anteriores por tipo e id
type Snapshot map[domain.EntityType]map[string]*domain.EntityAggregate

func NewSnapshot(aggregates []*domain.EntityAggregate) Snapshot {
	snapshot := Snapshot{}
	for _, agg := range aggregates {
		byID, ok := snapshot[agg.EntityType]
		if !ok {
			byID = make(map[string]*domain.EntityAggregate)
			snapshot[agg.EntityType] = byID
		}
		byID[agg.EntityID] = agg
	}
	return snapshot
}

// DetectChanges compara os consolidados novos com o snapshot anterior e gera um
// registro por campo alterado. Entidade sem registro anterior gera "created".
func DetectChanges(projectID string, previous Snapshot, current []*domain.EntityAggregate, detectedAt time.Time, newID func() string) []*domain.OptimizationRecord {
	records := make([]*domain.OptimizationRecord, 0)

	for _, agg := range current {
		fields, tracked := trackedFields[agg.EntityType]
		if !tracked {
			continue
		}

		base := domain.OptimizationRecord{
			ProjectID:  projectID,
			EntityType: agg.EntityType,
			EntityID:   agg.EntityID,
			EntityName: agg.Name,
			DetectedAt: detectedAt,
		}

		old, found := previous[agg.EntityType][agg.EntityID]
		if !found {
			rec := base
			rec.ID = newID()
			rec.ChangeType = domain.ChangeTypeCreated
			rec.NewValue = stringPtr(agg.Status)
			records = append(records, &rec)
			continue
		}

		for _, field := range fields {
			rec, changed := compareField(field, old, agg)
			if !changed {
				continue
			}

			full := base
			full.ID = newID()
			full.FieldName = field
			full.ChangeType = rec.ChangeType
			full.OldValue = rec.OldValue
			full.NewValue = rec.NewValue
			full.ChangePercent = rec.ChangePercent
			records = append(records, &full)
		}
	}

	return records
}

func compareField(field string, old, cur *domain.EntityAggregate) (domain.OptimizationRecord, bool) {
	switch field {
	case fieldStatus:
		if old.Status == cur.Status {
			return domain.OptimizationRecord{}, false
		}
		return domain.OptimizationRecord{
			ChangeType: classifyStatus(old.Status, cur.Status),
			OldValue:   stringPtr(old.Status),
			NewValue:   stringPtr(cur.Status),
		}, true

	case fieldObjective:
		if old.Objective == cur.Objective {
			return domain.OptimizationRecord{}, false
		}
		return domain.OptimizationRecord{
			ChangeType: domain.ChangeTypeUpdated,
			OldValue:   stringPtr(old.Objective),
			NewValue:   stringPtr(cur.Objective),
		}, true

	case fieldDailyBudget:
		return compareBudget(old.DailyBudget, cur.DailyBudget)

	case fieldLifetimeBudget:
		return compareBudget(old.LifetimeBudget, cur.LifetimeBudget)
	}

	return domain.OptimizationRecord{}, false
}

// classifyStatus: qualquer status -> ACTIVE é ativação; ACTIVE -> outro é pausa
func classifyStatus(oldStatus, newStatus string) domain.ChangeType {
	switch {
	case newStatus == domain.StatusActive:
		return domain.ChangeTypeActivated
	case oldStatus == domain.StatusActive:
		return domain.ChangeTypePaused
	default:
		return domain.ChangeTypeUpdated
	}
}

func compareBudget(oldBudget, newBudget *float64) (domain.OptimizationRecord, bool) {
	if budgetValue(oldBudget) == budgetValue(newBudget) && (oldBudget == nil) == (newBudget == nil) {
		return domain.OptimizationRecord{}, false
	}

	return domain.OptimizationRecord{
		ChangeType:    domain.ChangeTypeBudgetChange,
		OldValue:      formatBudget(oldBudget),
		NewValue:      formatBudget(newBudget),
		ChangePercent: budgetPercent(oldBudget, newBudget),
	}, true
}

// budgetPercent retorna nil quando não há orçamento anterior para comparar
func budgetPercent(oldBudget, newBudget *float64) *float64 {
	old := budgetValue(oldBudget)
	if old == 0 {
		return nil
	}

	percent := (budgetValue(newBudget) - old) / old * 100
	return &percent
}

func budgetValue(b *float64) float64 {
	if b == nil {
		return 0
	}
	return *b
}

func formatBudget(b *float64) *string {
	if b == nil {
		return nil
	}
	return stringPtr(strconv.FormatFloat(*b, 'f', -1, 64))
}

func stringPtr(s string) *string {
	return &s
}
