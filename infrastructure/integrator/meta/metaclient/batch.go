package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta/domain"
)

// GetCreatives busca criativos em lotes de 50 via requisição batch.
// Itens com erro são ignorados.
func (c *MetaClient) GetCreatives(ctx context.Context, token string, creativeIDs []string) (map[string]metadomain.Creative, error) {
	creatives := make(map[string]metadomain.Creative)

	err := c.batchGet(ctx, token, creativeIDs, "fields=id,thumbnail_url,image_url,video_id&thumbnail_width=600&thumbnail_height=600",
		func(body []byte) {
			var creative metadomain.Creative
			if err := json.Unmarshal(body, &creative); err != nil || creative.ID == "" {
				return
			}
			creatives[creative.ID] = creative
		})
	if err != nil {
		return nil, err
	}

	return creatives, nil
}

// GetVideos busca as imagens de capa dos vídeos em lotes de 50
func (c *MetaClient) GetVideos(ctx context.Context, token string, videoIDs []string) (map[string]metadomain.Video, error) {
	videos := make(map[string]metadomain.Video)

	err := c.batchGet(ctx, token, videoIDs, "fields=id,picture", func(body []byte) {
		var video metadomain.Video
		if err := json.Unmarshal(body, &video); err != nil || video.ID == "" {
			return
		}
		videos[video.ID] = video
	})
	if err != nil {
		return nil, err
	}

	return videos, nil
}

func (c *MetaClient) batchGet(ctx context.Context, token string, ids []string, query string, handle func(body []byte)) error {
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		requests := make([]metadomain.BatchRequest, 0, end-start)
		for _, id := range ids[start:end] {
			requests = append(requests, metadomain.BatchRequest{
				Method:      http.MethodGet,
				RelativeURL: fmt.Sprintf("%s?%s", id, query),
			})
		}

		batch, err := json.Marshal(requests)
		if err != nil {
			return fmt.Errorf("erro ao serializar batch: %w", err)
		}

		form := url.Values{}
		form.Add("batch", string(batch))
		form.Add("include_headers", "false")
		form.Add("access_token", token)

		body, err := c.do(ctx, http.MethodPost, c.cfg.URL+"/", form)
		if err != nil {
			return err
		}

		var responses []*metadomain.BatchResponse
		if err := json.Unmarshal(body, &responses); err != nil {
			return fmt.Errorf("erro ao decodificar resposta do batch: %w", err)
		}

		for i, resp := range responses {
			if resp == nil || resp.Code != http.StatusOK {
				id := ""
				if start+i < end {
					id = ids[start+i]
				}
				logrus.WithFields(logrus.Fields{
					"id":   id,
					"code": responseCode(resp),
				}).Warn("meta: batch item failed, skipping")
				continue
			}
			handle([]byte(resp.Body))
		}
	}

	return nil
}

func responseCode(resp *metadomain.BatchResponse) int {
	if resp == nil {
		return 0
	}
	return resp.Code
}
