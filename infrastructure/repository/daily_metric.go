package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/meta-ads-sync/infrastructure/database/postgres"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

const (
	dailyMetricsTable      = "daily_metrics dm"
	defaultUpsertChunkSize = 500
)

var metricColumns = []string{
	"spend", "impressions", "clicks", "reach", "conversions", "conversion_value",
	"ctr", "cpc", "cpm", "cpa", "roas",
}

type DailyMetricRepository interface {
	UpsertBatch(ctx context.Context, rows []*domain.DailyMetric, chunkSize int) (int, error)
	ListByDateRange(ctx context.Context, projectID string, since, until time.Time) ([]*domain.DailyMetric, error)
}

type dailyMetricRepository struct {
	conn *postgres.Connection
}

func NewDailyMetricRepository(conn *postgres.Connection) DailyMetricRepository {
	return &dailyMetricRepository{
		conn: conn,
	}
}

// UpsertBatch grava as linhas em blocos dentro de uma transação.
// A chave (project_id, ad_id, date) torna a operação idempotente.
func (r *dailyMetricRepository) UpsertBatch(ctx context.Context, rows []*domain.DailyMetric, chunkSize int) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	if chunkSize <= 0 {
		chunkSize = defaultUpsertChunkSize
	}

	written := 0
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, chunk := range chunks(rows, chunkSize) {
			query, args, err := buildDailyMetricUpsert(chunk)
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return dbError("gravar métricas diárias", err)
			}

			written += len(chunk)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return written, nil
}

func buildDailyMetricUpsert(rows []*domain.DailyMetric) (string, []any, error) {
	columns := append([]string{"project_id", "ad_id", "adset_id", "campaign_id", "date"}, metricColumns...)

	query := squirrel.StatementBuilder.
		Insert("daily_metrics").
		Columns(columns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, row := range rows {
		values := []any{row.ProjectID, row.AdID, row.AdSetID, row.CampaignID, row.Date.Format(time.DateOnly)}
		values = append(values, metricValues(row.Metrics)...)
		query = query.Values(values...)
	}

	return query.Suffix(`
		ON CONFLICT (project_id, ad_id, date) DO UPDATE SET
			adset_id = EXCLUDED.adset_id,
			campaign_id = EXCLUDED.campaign_id,
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
			updated_at = NOW()
	`).ToSql()
}

func (r *dailyMetricRepository) ListByDateRange(ctx context.Context, projectID string, since, until time.Time) ([]*domain.DailyMetric, error) {
	query, args, err := squirrel.
		Select("dm.project_id, dm.ad_id, dm.adset_id, dm.campaign_id, dm.date, "+prefixed("dm", metricColumns)+", dm.updated_at").
		From(dailyMetricsTable).
		Where(squirrel.Eq{"dm.project_id": projectID}).
		Where(squirrel.GtOrEq{"dm.date": since.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"dm.date": until.Format(time.DateOnly)}).
		OrderBy("dm.date ASC", "dm.ad_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar métricas diárias", err)
	}
	defer rows.Close()

	metrics := make([]*domain.DailyMetric, 0)
	for rows.Next() {
		m := &domain.DailyMetric{}
		dest := []any{&m.ProjectID, &m.AdID, &m.AdSetID, &m.CampaignID, &m.Date}
		dest = append(dest, metricDest(&m.Metrics)...)
		dest = append(dest, &m.UpdatedAt)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("erro ao escanear métricas diárias: %w", err)
		}
		metrics = append(metrics, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}

// chunks divide items em blocos de no máximo size elementos.
// Mantém cada INSERT abaixo do limite de 65535 parâmetros do Postgres.
func chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = defaultUpsertChunkSize
	}

	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

func metricValues(m domain.Metrics) []any {
	return []any{
		m.Spend, m.Impressions, m.Clicks, m.Reach, m.Conversions, m.ConversionValue,
		m.CTR, m.CPC, m.CPM, m.CPA, m.ROAS,
	}
}

func metricDest(m *domain.Metrics) []any {
	return []any{
		&m.Spend, &m.Impressions, &m.Clicks, &m.Reach, &m.Conversions, &m.ConversionValue,
		&m.CTR, &m.CPC, &m.CPM, &m.CPA, &m.ROAS,
	}
}

func prefixed(alias string, columns []string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + c
	}
	return out
}
