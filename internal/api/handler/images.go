package handler

import (
	"net/http"

	"github.com/vfg2006/meta-ads-sync/internal/api/handler/router"
)

// Images expõe as miniaturas gravadas no disco quando o cache de imagens é local
func Images(dir string) []router.Route {
	return []router.Route{
		{
			Path:    "/images/*filepath",
			Method:  http.MethodGet,
			Handler: http.StripPrefix("/images", http.FileServer(http.Dir(dir))),
		},
	}
}
