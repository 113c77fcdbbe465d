package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/meta-ads-sync/infrastructure/database/postgres"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

// aggregateTables mapeia cada tipo de entidade para sua tabela de consolidados
var aggregateTables = map[domain.EntityType]string{
	domain.EntityTypeCampaign: "campaign_aggregates",
	domain.EntityTypeAdSet:    "ad_set_aggregates",
	domain.EntityTypeAd:       "ad_aggregates",
}

var aggregateColumns = []string{
	"project_id", "entity_id", "parent_id", "name", "status", "objective",
	"daily_budget", "lifetime_budget", "thumbnail_url",
}

type EntityAggregateRepository interface {
	ListByProject(ctx context.Context, projectID string, entityType domain.EntityType) ([]*domain.EntityAggregate, error)
	UpsertBatch(ctx context.Context, aggregates []*domain.EntityAggregate) error
}

type entityAggregateRepository struct {
	conn *postgres.Connection
}

func NewEntityAggregateRepository(conn *postgres.Connection) EntityAggregateRepository {
	return &entityAggregateRepository{
		conn: conn,
	}
}

func (r *entityAggregateRepository) ListByProject(ctx context.Context, projectID string, entityType domain.EntityType) ([]*domain.EntityAggregate, error) {
	table, ok := aggregateTables[entityType]
	if !ok {
		return nil, fmt.Errorf("tipo de entidade desconhecido: %s", entityType)
	}

	columns := append(append([]string{}, aggregateColumns...), metricColumns...)
	columns = append(columns, "synced_at")

	query, args, err := squirrel.
		Select(prefixed("ea", columns)).
		From(table+" ea").
		Where(squirrel.Eq{"ea.project_id": projectID}).
		OrderBy("ea.spend DESC", "ea.entity_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar consolidados", err)
	}
	defer rows.Close()

	aggregates := make([]*domain.EntityAggregate, 0)
	for rows.Next() {
		agg := &domain.EntityAggregate{EntityType: entityType}
		var parentID, objective, thumbnail sql.NullString
		var dailyBudget, lifetimeBudget sql.NullFloat64

		dest := []any{
			&agg.ProjectID, &agg.EntityID, &parentID, &agg.Name, &agg.Status, &objective,
			&dailyBudget, &lifetimeBudget, &thumbnail,
		}
		dest = append(dest, metricDest(&agg.Metrics)...)
		dest = append(dest, &agg.SyncedAt)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("erro ao escanear consolidado: %w", err)
		}

		agg.ParentID = parentID.String
		agg.Objective = objective.String
		agg.ThumbnailURL = thumbnail.String
		if dailyBudget.Valid {
			agg.DailyBudget = &dailyBudget.Float64
		}
		if lifetimeBudget.Valid {
			agg.LifetimeBudget = &lifetimeBudget.Float64
		}

		aggregates = append(aggregates, agg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return aggregates, nil
}

// UpsertBatch grava todos os consolidados recalculados em uma única transação,
// em blocos de defaultUpsertChunkSize linhas por tabela
func (r *entityAggregateRepository) UpsertBatch(ctx context.Context, aggregates []*domain.EntityAggregate) error {
	if len(aggregates) == 0 {
		return nil
	}

	byType := make(map[domain.EntityType][]*domain.EntityAggregate)
	for _, agg := range aggregates {
		byType[agg.EntityType] = append(byType[agg.EntityType], agg)
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, entityType := range []domain.EntityType{domain.EntityTypeCampaign, domain.EntityTypeAdSet, domain.EntityTypeAd} {
			for _, chunk := range chunks(byType[entityType], defaultUpsertChunkSize) {
				query, args, err := buildAggregateUpsert(aggregateTables[entityType], chunk)
				if err != nil {
					return fmt.Errorf("erro ao construir a query: %w", err)
				}

				if _, err := tx.ExecContext(ctx, query, args...); err != nil {
					return dbError("gravar consolidados de "+string(entityType), err)
				}
			}
		}
		return nil
	})
}

func buildAggregateUpsert(table string, items []*domain.EntityAggregate) (string, []any, error) {
	columns := append(append([]string{}, aggregateColumns...), metricColumns...)
	columns = append(columns, "synced_at")

	query := squirrel.StatementBuilder.
		Insert(table).
		Columns(columns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, agg := range items {
		values := []any{
			agg.ProjectID, agg.EntityID, nullString(agg.ParentID), agg.Name, agg.Status, nullString(agg.Objective),
			agg.DailyBudget, agg.LifetimeBudget, nullString(agg.ThumbnailURL),
		}
		values = append(values, metricValues(agg.Metrics)...)
		values = append(values, agg.SyncedAt)
		query = query.Values(values...)
	}

	return query.Suffix(`
		ON CONFLICT (project_id, entity_id) DO UPDATE SET
			parent_id = EXCLUDED.parent_id,
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			objective = EXCLUDED.objective,
			daily_budget = EXCLUDED.daily_budget,
			lifetime_budget = EXCLUDED.lifetime_budget,
			thumbnail_url = COALESCE(EXCLUDED.thumbnail_url, ` + table + `.thumbnail_url),
			spend = EXCLUDED.spend,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			reach = EXCLUDED.reach,
			conversions = EXCLUDED.conversions,
			conversion_value = EXCLUDED.conversion_value,
			ctr = EXCLUDED.ctr,
			cpc = EXCLUDED.cpc,
			cpm = EXCLUDED.cpm,
			cpa = EXCLUDED.cpa,
			roas = EXCLUDED.roas,
			synced_at = EXCLUDED.synced_at
	`).ToSql()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
