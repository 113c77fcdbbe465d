package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/reporting"
)

func GetProjectMetrics(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := ownerFromRequest(r)
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		query := r.URL.Query()

		report, err := service.GetMetrics(r.Context(), ownerID, id, reporting.Filters{
			Since:  query.Get("since"),
			Until:  query.Get("until"),
			Preset: query.Get("date_preset"),
		})
		if err != nil {
			logrus.Error("Error getting project metrics:", err)
			writeServiceError(w, err, "Erro ao buscar métricas")
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}

// ListProjectAggregates aceita ?level=campaign|adset|ad; o padrão é campaign
func ListProjectAggregates(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := ownerFromRequest(r)
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		level := domain.EntityType(r.URL.Query().Get("level"))
		if level == "" {
			level = domain.EntityTypeCampaign
		}

		aggregates, err := service.ListAggregates(r.Context(), ownerID, id, level)
		if err != nil {
			logrus.Error("Error listing aggregates:", err)
			writeServiceError(w, err, "Erro ao buscar consolidados")
			return
		}

		writeJSON(w, http.StatusOK, aggregates)
	})
}

func ListOptimizationHistory(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := ownerFromRequest(r)
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		records, err := service.ListOptimizationHistory(r.Context(), ownerID, id, queryLimit(r))
		if err != nil {
			logrus.Error("Error listing optimization history:", err)
			writeServiceError(w, err, "Erro ao buscar histórico de otimizações")
			return
		}

		writeJSON(w, http.StatusOK, records)
	})
}

func ListSyncLogs(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := ownerFromRequest(r)
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		logs, err := service.ListSyncLogs(r.Context(), ownerID, id, queryLimit(r))
		if err != nil {
			logrus.Error("Error listing sync logs:", err)
			writeServiceError(w, err, "Erro ao buscar logs de sincronização")
			return
		}

		writeJSON(w, http.StatusOK, logs)
	})
}
