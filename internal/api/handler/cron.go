package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeMetaAds = "meta-ads"
	CronJobTypeAll     = "all"
)

// ParallelSyncer é o agendador paralelo visto pelos handlers
type ParallelSyncer interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ParallelSyncService ParallelSyncer
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeMetaAds, CronJobTypeAll:
			triggerParallelSync(w, r, services, cronType)
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: meta-ads, all", nil)
		}
	}
}

// TriggerParallelSync dispara o agendador paralelo fora do horário do cron
func TriggerParallelSync(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		triggerParallelSync(w, r, services, CronJobTypeMetaAds)
	}
}

func triggerParallelSync(w http.ResponseWriter, r *http.Request, services CronJobServices, cronType string) {
	if services.ParallelSyncService == nil {
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização paralela não disponível", nil)
		return
	}

	logrus.WithField("type", cronType).Info("Execução manual de cron job solicitada")

	if !services.ParallelSyncService.TriggerManualSync(r.Context()) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"message": "Sincronização já em andamento",
			"type":    cronType,
		})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"message": "Cron job iniciada com sucesso",
		"type":    cronType,
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.ParallelSyncService != nil {
			status[CronJobTypeMetaAds] = services.ParallelSyncService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
