package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta/domain"
)

const insightFields = "ad_id,adset_id,campaign_id,date_start,spend,impressions,clicks,reach,results,action_values"

// GetAdInsights busca linhas diárias no nível de anúncio, seguindo a paginação
func (c *MetaClient) GetAdInsights(ctx context.Context, accountID, token string, since, until time.Time) ([]metadomain.InsightRow, error) {
	timeRange := fmt.Sprintf(`{"since":"%s","until":"%s"}`, since.Format(time.DateOnly), until.Format(time.DateOnly))

	params := url.Values{}
	params.Add("level", "ad")
	params.Add("time_increment", "1")
	params.Add("time_range", timeRange)
	params.Add("fields", insightFields)
	params.Add("use_unified_attribution_setting", "true")
	params.Add("limit", fmt.Sprint(c.pageLimit()))
	params.Add("access_token", token)

	raws, err := getAllPages[jsoniter.RawMessage](ctx, c, c.endpoint(accountPath(accountID)+"/insights", params))
	if err != nil {
		return nil, err
	}

	rows := make([]metadomain.InsightRow, 0, len(raws))
	for _, raw := range raws {
		rows = append(rows, metadomain.ParseInsightRow(raw))
	}

	return rows, nil
}
