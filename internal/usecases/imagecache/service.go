package imagecache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/infrastructure/storage"
	"github.com/vfg2006/meta-ads-sync/internal/config"
	"github.com/vfg2006/meta-ads-sync/pkg/utils"
)

const (
	defaultConcurrency = 5
	downloadTimeout    = 30 * time.Second
)

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// Service baixa miniaturas do CDN do Meta e as re-hospeda no storage configurado.
// As URLs do CDN expiram, por isso a cópia.
type Service struct {
	enabled    bool
	storage    storage.ObjectStorage
	httpClient *http.Client
	pool       pond.Pool
	memo       *cache.Cache
}

func NewService(cfg *config.Config, store storage.ObjectStorage) *Service {
	concurrency := cfg.ImageCache.MaxConcurrentDownloads
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	ttl := cfg.ImageCache.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		enabled:    cfg.ImageCache.Enabled && store != nil,
		storage:    store,
		httpClient: &http.Client{Timeout: downloadTimeout},
		pool:       pond.NewPool(concurrency),
		memo:       cache.New(ttl, ttl*2),
	}
}

// CacheThumbnails retorna URL original -> URL hospedada. Falhas individuais
// são registradas e a URL original é mantida pelo chamador.
func (s *Service) CacheThumbnails(ctx context.Context, projectID string, urls []string) map[string]string {
	hosted := make(map[string]string)
	if !s.enabled {
		return hosted
	}

	var mu sync.Mutex
	group := s.pool.NewGroup()
	seen := make(map[string]bool)
	failed := 0

	for _, url := range urls {
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true

		if cached, ok := s.memo.Get(memoKey(projectID, url)); ok {
			mu.Lock()
			hosted[url] = cached.(string)
			mu.Unlock()
			continue
		}

		group.Submit(func() {
			publicURL, err := s.store(ctx, projectID, url)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				failed++
				logrus.WithError(err).WithField("project_id", projectID).Debug("Erro ao copiar miniatura, mantendo URL original")
				return
			}
			hosted[url] = publicURL
		})
	}

	if err := group.Wait(); err != nil {
		logrus.WithError(err).Warn("Erro no grupo de downloads de miniaturas")
	}

	logrus.WithFields(logrus.Fields{
		"project_id": projectID,
		"hosted":     len(hosted),
		"failed":     failed,
	}).Debug("Miniaturas processadas")

	return hosted
}

func (s *Service) store(ctx context.Context, projectID, url string) (string, error) {
	body, contentType, err := utils.MakeRequest(ctx, s.httpClient, url)
	if err != nil {
		return "", err
	}

	publicURL, err := s.storage.Put(ctx, objectKey(projectID, url, contentType), body, contentType)
	if err != nil {
		return "", err
	}

	s.memo.SetDefault(memoKey(projectID, url), publicURL)
	return publicURL, nil
}

// Close aguarda os downloads em andamento
func (s *Service) Close() {
	s.pool.StopAndWait()
}

// stripQuery remove a query string; o CDN muda a assinatura a cada busca
func stripQuery(url string) string {
	if i := strings.Index(url, "?"); i >= 0 {
		return url[:i]
	}
	return url
}

func memoKey(projectID, url string) string {
	return projectID + "|" + stripQuery(url)
}

// objectKey usa o hash da URL sem query string
func objectKey(projectID, url, contentType string) string {
	sum := sha1.Sum([]byte(stripQuery(url)))

	mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
	ext, ok := extensions[mediaType]
	if !ok {
		ext = "jpg"
	}

	return "thumbnails/" + projectID + "/" + hex.EncodeToString(sum[:]) + "." + ext
}
