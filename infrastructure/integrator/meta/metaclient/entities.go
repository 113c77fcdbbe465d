package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta/domain"
)

const excludeDeletedFilter = `[{"field":"effective_status","operator":"NOT_IN","value":["DELETED","ARCHIVED"]}]`

func (c *MetaClient) entityParams(token, fields string) url.Values {
	params := url.Values{}
	params.Add("fields", fields)
	params.Add("filtering", excludeDeletedFilter)
	params.Add("limit", fmt.Sprint(c.pageLimit()))
	params.Add("access_token", token)
	return params
}

func (c *MetaClient) GetCampaigns(ctx context.Context, accountID, token string) ([]metadomain.Campaign, error) {
	params := c.entityParams(token, "id,name,status,effective_status,objective,daily_budget,lifetime_budget")
	return getAllPages[metadomain.Campaign](ctx, c, c.endpoint(accountPath(accountID)+"/campaigns", params))
}

func (c *MetaClient) GetAdSets(ctx context.Context, accountID, token string) ([]metadomain.AdSet, error) {
	params := c.entityParams(token, "id,campaign_id,name,status,effective_status,optimization_goal,daily_budget,lifetime_budget")
	return getAllPages[metadomain.AdSet](ctx, c, c.endpoint(accountPath(accountID)+"/adsets", params))
}

func (c *MetaClient) GetAds(ctx context.Context, accountID, token string) ([]metadomain.Ad, error) {
	params := c.entityParams(token, "id,adset_id,campaign_id,name,status,effective_status,creative{id,thumbnail_url,video_id}")
	return getAllPages[metadomain.Ad](ctx, c, c.endpoint(accountPath(accountID)+"/ads", params))
}

func (c *MetaClient) GetAdAccounts(ctx context.Context, token string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Add("fields", "id,account_id,name,currency,account_status,business{id,name}")
	params.Add("limit", fmt.Sprint(c.pageLimit()))
	params.Add("access_token", token)
	return getAllPages[metadomain.AdAccount](ctx, c, c.endpoint("me/adaccounts", params))
}
