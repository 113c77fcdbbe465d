package metaclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-ads-sync/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultPageLimit = 500
	batchSize        = 50
)

type Client interface {
	GetCampaigns(ctx context.Context, accountID, token string) ([]metadomain.Campaign, error)
	GetAdSets(ctx context.Context, accountID, token string) ([]metadomain.AdSet, error)
	GetAds(ctx context.Context, accountID, token string) ([]metadomain.Ad, error)
	GetAdInsights(ctx context.Context, accountID, token string, since, until time.Time) ([]metadomain.InsightRow, error)
	GetCreatives(ctx context.Context, token string, creativeIDs []string) (map[string]metadomain.Creative, error)
	GetVideos(ctx context.Context, token string, videoIDs []string) (map[string]metadomain.Video, error)
	GetAdAccounts(ctx context.Context, token string) ([]metadomain.AdAccount, error)
	ExchangeToken(ctx context.Context, shortLivedToken string) (*TokenResponse, error)
}

type MetaClient struct {
	cfg        config.Meta
	httpClient *http.Client
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.Meta.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &MetaClient{
		cfg:        cfg.Meta,
		httpClient: &http.Client{Timeout: timeout},
		sleep:      sleepContext,
	}
}

func (c *MetaClient) pageLimit() int {
	if c.cfg.PageLimit <= 0 {
		return defaultPageLimit
	}
	return c.cfg.PageLimit
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
