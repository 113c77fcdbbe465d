package meta

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-ads-sync/internal/config"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/pkg/utils"
)

type Integrator interface {
	FetchEntities(ctx context.Context, accountID, token string, light bool) (*domain.EntitySnapshot, error)
	FetchInsights(ctx context.Context, accountID, token string, dateRange domain.DateRange) (domain.InsightsByAd, error)
	ListAdAccounts(ctx context.Context, token string) ([]domain.AdAccount, error)
	ExchangeToken(ctx context.Context, shortLivedToken string) (string, *time.Time, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
	now    func() time.Time
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

// FetchEntities busca campanhas, conjuntos e anúncios não excluídos da conta.
// Fora do modo light também resolve as miniaturas dos criativos via batch.
func (s *MetaIntegrator) FetchEntities(ctx context.Context, accountID, token string, light bool) (*domain.EntitySnapshot, error) {
	campaigns, err := s.Client.GetCampaigns(ctx, accountID, token)
	if err != nil {
		return nil, errors.Wrap(err, "insights: failed to get campaigns")
	}

	adSets, err := s.Client.GetAdSets(ctx, accountID, token)
	if err != nil {
		return nil, errors.Wrap(err, "insights: failed to get ad sets")
	}

	ads, err := s.Client.GetAds(ctx, accountID, token)
	if err != nil {
		return nil, errors.Wrap(err, "insights: failed to get ads")
	}

	snapshot := &domain.EntitySnapshot{
		Campaigns: make([]domain.Campaign, 0, len(campaigns)),
		AdSets:    make([]domain.AdSet, 0, len(adSets)),
		Ads:       make([]domain.Ad, 0, len(ads)),
	}

	for _, c := range campaigns {
		snapshot.Campaigns = append(snapshot.Campaigns, FactoryCampaign(c))
	}
	for _, a := range adSets {
		snapshot.AdSets = append(snapshot.AdSets, FactoryAdSet(a))
	}
	for _, a := range ads {
		snapshot.Ads = append(snapshot.Ads, FactoryAd(a))
	}

	if !light {
		if err := s.resolveThumbnails(ctx, token, snapshot.Ads); err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"campaigns":  len(snapshot.Campaigns),
		"ad_sets":    len(snapshot.AdSets),
		"ads":        len(snapshot.Ads),
		"light":      light,
	}).Debug("insights: entities fetched")

	return snapshot, nil
}

// resolveThumbnails troca a miniatura padrão pela imagem do criativo ou capa do vídeo.
// Somente token expirado interrompe; demais falhas mantêm a miniatura original.
func (s *MetaIntegrator) resolveThumbnails(ctx context.Context, token string, ads []domain.Ad) error {
	creativeIDs := make([]string, 0)
	videoIDs := make([]string, 0)
	seenCreatives := make(map[string]bool)
	seenVideos := make(map[string]bool)

	for _, ad := range ads {
		if ad.CreativeID != "" && !seenCreatives[ad.CreativeID] {
			seenCreatives[ad.CreativeID] = true
			creativeIDs = append(creativeIDs, ad.CreativeID)
		}
		if ad.VideoID != "" && !seenVideos[ad.VideoID] {
			seenVideos[ad.VideoID] = true
			videoIDs = append(videoIDs, ad.VideoID)
		}
	}

	creatives, err := s.Client.GetCreatives(ctx, token, creativeIDs)
	if err != nil {
		if errors.Is(err, domain.ErrMetaTokenExpired) {
			return err
		}
		logrus.WithError(err).Warn("insights: failed to resolve creatives, keeping default thumbnails")
	}

	videos, err := s.Client.GetVideos(ctx, token, videoIDs)
	if err != nil {
		if errors.Is(err, domain.ErrMetaTokenExpired) {
			return err
		}
		logrus.WithError(err).Warn("insights: failed to resolve videos, keeping default thumbnails")
	}

	for i := range ads {
		if video, ok := videos[ads[i].VideoID]; ok && video.Picture != "" {
			ads[i].ThumbnailURL = video.Picture
			continue
		}

		if creative, ok := creatives[ads[i].CreativeID]; ok {
			if creative.ImageURL != "" {
				ads[i].ThumbnailURL = creative.ImageURL
			} else if creative.ThumbnailURL != "" {
				ads[i].ThumbnailURL = creative.ThumbnailURL
			}
		}
	}

	return nil
}

// FetchInsights retorna as linhas diárias indexadas por anúncio e data
func (s *MetaIntegrator) FetchInsights(ctx context.Context, accountID, token string, dateRange domain.DateRange) (domain.InsightsByAd, error) {
	rows, err := s.Client.GetAdInsights(ctx, accountID, token, dateRange.Since, dateRange.Until)
	if err != nil {
		return nil, errors.Wrap(err, "insights: failed to get ad insights")
	}

	insights := domain.InsightsByAd{}
	withoutResults := 0
	for _, row := range rows {
		if row.AdID == "" || row.DateStart == "" {
			logrus.WithField("campaign_id", row.CampaignID).Warn("insights: row without ad_id or date, skipping")
			continue
		}

		if !row.HasResults {
			withoutResults++
		}

		insights.Add(FactoryDailyInsight(row))
	}

	logrus.WithFields(logrus.Fields{
		"account_id":      accountID,
		"rows":            len(rows),
		"ads":             len(insights),
		"without_results": withoutResults,
		"since":           dateRange.Since.Format(time.DateOnly),
		"until":           dateRange.Until.Format(time.DateOnly),
	}).Debug("insights: daily rows fetched")

	return insights, nil
}

func (s *MetaIntegrator) ListAdAccounts(ctx context.Context, token string) ([]domain.AdAccount, error) {
	accounts, err := s.Client.GetAdAccounts(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "insights: failed to list ad accounts")
	}

	result := make([]domain.AdAccount, 0, len(accounts))
	for _, a := range accounts {
		account := domain.AdAccount{
			ID:            a.ID,
			AccountID:     a.AccountID,
			Name:          a.Name,
			Currency:      a.Currency,
			AccountStatus: a.AccountStatus,
		}
		if a.Business != nil {
			account.BusinessName = a.Business.Name
		}
		result = append(result, account)
	}

	return result, nil
}

func (s *MetaIntegrator) ExchangeToken(ctx context.Context, shortLivedToken string) (string, *time.Time, error) {
	resp, err := s.Client.ExchangeToken(ctx, shortLivedToken)
	if err != nil {
		return "", nil, err
	}

	return resp.AccessToken, metaclient.CalculateTokenExpiration(s.now(), resp.ExpiresIn), nil
}

func FactoryCampaign(c metadomain.Campaign) domain.Campaign {
	return domain.Campaign{
		ID:             c.ID,
		Name:           c.Name,
		Status:         entityStatus(c.Status, c.EffectiveStatus),
		Objective:      c.Objective,
		DailyBudget:    utils.ParseBudget(c.DailyBudget),
		LifetimeBudget: utils.ParseBudget(c.LifetimeBudget),
	}
}

func FactoryAdSet(a metadomain.AdSet) domain.AdSet {
	return domain.AdSet{
		ID:               a.ID,
		CampaignID:       a.CampaignID,
		Name:             a.Name,
		Status:           entityStatus(a.Status, a.EffectiveStatus),
		OptimizationGoal: a.OptimizationGoal,
		DailyBudget:      utils.ParseBudget(a.DailyBudget),
		LifetimeBudget:   utils.ParseBudget(a.LifetimeBudget),
	}
}

func FactoryAd(a metadomain.Ad) domain.Ad {
	ad := domain.Ad{
		ID:         a.ID,
		AdSetID:    a.AdSetID,
		CampaignID: a.CampaignID,
		Name:       a.Name,
		Status:     entityStatus(a.Status, a.EffectiveStatus),
	}

	if a.Creative != nil {
		ad.CreativeID = a.Creative.ID
		ad.VideoID = a.Creative.VideoID
		ad.ThumbnailURL = a.Creative.ThumbnailURL
	}

	return ad
}

func FactoryDailyInsight(row metadomain.InsightRow) domain.DailyInsight {
	return domain.DailyInsight{
		AdID:       row.AdID,
		AdSetID:    row.AdSetID,
		CampaignID: row.CampaignID,
		Date:       row.DateStart,
		Metrics: domain.Metrics{
			Spend:           utils.ParseFloat(row.Spend),
			Impressions:     utils.ParseInt(row.Impressions),
			Clicks:          utils.ParseInt(row.Clicks),
			Reach:           utils.ParseInt(row.Reach),
			Conversions:     row.Conversions,
			ConversionValue: row.ConversionValue,
		},
	}
}

// entityStatus prefere o status configurado; effective_status só é usado quando status vem vazio
func entityStatus(status, effective string) string {
	if status != "" {
		return status
	}
	return effective
}
