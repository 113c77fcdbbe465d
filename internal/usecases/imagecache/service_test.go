package imagecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-ads-sync/infrastructure/storage/mocks"
	"github.com/vfg2006/meta-ads-sync/internal/config"
	"go.uber.org/mock/gomock"
)

func newCDN(t *testing.T) (*httptest.Server, *int32) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if strings.HasPrefix(r.URL.Path, "/missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func enabledConfig() *config.Config {
	return &config.Config{ImageCache: config.ImageCache{Enabled: true, MaxConcurrentDownloads: 2}}
}

func TestService_CacheThumbnails(t *testing.T) {
	cdn, hits := newCDN(t)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStorage(ctrl)

	svc := NewService(enabledConfig(), store)
	defer svc.Close()

	okURL := cdn.URL + "/t/1.png?oh=abc"
	missingURL := cdn.URL + "/missing/2.png"

	store.EXPECT().Put(gomock.Any(), gomock.Any(), []byte("png-bytes"), "image/png").
		DoAndReturn(func(_ context.Context, key string, _ []byte, _ string) (string, error) {
			assert.True(t, strings.HasPrefix(key, "thumbnails/prj123/"))
			assert.True(t, strings.HasSuffix(key, ".png"))
			return "https://storage/" + key, nil
		}).Times(1)

	hosted := svc.CacheThumbnails(context.Background(), "prj123", []string{okURL, okURL, "", missingURL})

	require.Len(t, hosted, 1)
	assert.Contains(t, hosted[okURL], "https://storage/thumbnails/prj123/")
	assert.NotContains(t, hosted, missingURL)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))

	// segunda chamada usa a memória e não baixa de novo
	again := svc.CacheThumbnails(context.Background(), "prj123", []string{okURL})
	assert.Equal(t, hosted[okURL], again[okURL])
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestService_CacheThumbnails_ReusesAcrossSignatures(t *testing.T) {
	cdn, hits := newCDN(t)
	ctrl := gomock.NewController(t)
	store := mocks.NewMockObjectStorage(ctrl)

	svc := NewService(enabledConfig(), store)
	defer svc.Close()

	store.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, _ []byte, _ string) (string, error) {
			return "https://storage/" + key, nil
		}).Times(1)

	first := cdn.URL + "/t/1.png?oh=abc&oe=111"
	second := cdn.URL + "/t/1.png?oh=def&oe=222"

	hosted := svc.CacheThumbnails(context.Background(), "prj123", []string{first})
	again := svc.CacheThumbnails(context.Background(), "prj123", []string{second})

	require.Contains(t, again, second)
	assert.Equal(t, hosted[first], again[second])
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.Equal(t, memoKey("prj123", first), memoKey("prj123", second))
	assert.NotEqual(t, memoKey("prj1", first), memoKey("prj2", first))
}

func TestService_CacheThumbnails_Disabled(t *testing.T) {
	t.Run("desabilitado na configuração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewService(&config.Config{}, mocks.NewMockObjectStorage(ctrl))
		defer svc.Close()

		assert.Empty(t, svc.CacheThumbnails(context.Background(), "prj123", []string{"https://cdn/1.jpg"}))
	})

	t.Run("sem storage", func(t *testing.T) {
		svc := NewService(enabledConfig(), nil)
		defer svc.Close()

		assert.Empty(t, svc.CacheThumbnails(context.Background(), "prj123", []string{"https://cdn/1.jpg"}))
	})
}

func TestObjectKey(t *testing.T) {
	withQuery := objectKey("prj123", "https://cdn/a.jpg?sig=1", "image/jpeg")
	otherQuery := objectKey("prj123", "https://cdn/a.jpg?sig=2", "image/jpeg")

	assert.Equal(t, withQuery, otherQuery)
	assert.True(t, strings.HasSuffix(withQuery, ".jpg"))

	assert.True(t, strings.HasSuffix(objectKey("prj123", "https://cdn/a", "image/webp; charset=binary"), ".webp"))
	assert.True(t, strings.HasSuffix(objectKey("prj123", "https://cdn/a", "application/octet-stream"), ".jpg"))
	assert.NotEqual(t, objectKey("prj1", "https://cdn/a", ""), objectKey("prj2", "https://cdn/a", ""))
}
