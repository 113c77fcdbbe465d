package handler

import (
	"net/http"

	"github.com/vfg2006/meta-ads-sync/internal/api/handler/router"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/projecting"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/reporting"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/syncing"
	"github.com/vfg2006/meta-ads-sync/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func MetaAdsSync(syncer syncing.Syncer, projects projecting.ProjectService, services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/meta-ads/sync",
			Method:      http.MethodPost,
			Handler:     SyncProject(syncer, projects),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/meta-ads/parallel-sync",
			Method:      http.MethodPost,
			Handler:     TriggerParallelSync(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceOnly()},
		},
	}
}

func Projects(service projecting.ProjectService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/projects",
			Method:      http.MethodGet,
			Handler:     ListProjects(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/projects",
			Method:      http.MethodPost,
			Handler:     CreateProject(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/projects/:id/archive",
			Method:      http.MethodPut,
			Handler:     ArchiveProject(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/projects/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteProject(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/projects/:id/meta-connection",
			Method:      http.MethodPost,
			Handler:     ConnectMeta(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/meta/ad-accounts",
			Method:      http.MethodGet,
			Handler:     ListMetaAdAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/projects/:id/metrics",
			Method:      http.MethodGet,
			Handler:     GetProjectMetrics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/projects/:id/campaigns",
			Method:      http.MethodGet,
			Handler:     ListProjectAggregates(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/projects/:id/optimization-history",
			Method:      http.MethodGet,
			Handler:     ListOptimizationHistory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/projects/:id/sync-logs",
			Method:      http.MethodGet,
			Handler:     ListSyncLogs(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceOnly()},
		},
	}
}
