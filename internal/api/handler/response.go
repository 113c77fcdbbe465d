package handler

import (
	"errors"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/projecting"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/reporting"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/syncing"
	"github.com/vfg2006/meta-ads-sync/pkg/apiErrors"
	"github.com/vfg2006/meta-ads-sync/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}

// writeServiceError traduz os erros tipados dos casos de uso para a resposta da API
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var syncErr *syncing.SyncError
	if errors.As(err, &syncErr) {
		apiErrors.WriteError(w, syncErr.Code, syncErr.Error(), map[string]any{
			"project_id": syncErr.ProjectID,
			"error_type": syncErr.Err.Error(),
		})
		return
	}

	var projectErr *projecting.ProjectError
	if errors.As(err, &projectErr) {
		apiErrors.WriteError(w, projectErr.Code, projectErr.Error(), nil)
		return
	}

	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, domain.ErrMetaTokenExpired):
		apiErrors.WriteError(w, apiErrors.ErrMetaTokenExpired, "Token do Meta expirado, reconecte a conta", nil)
	case errors.Is(err, domain.ErrMetaRateLimited):
		apiErrors.WriteError(w, apiErrors.ErrMetaRateLimited, "Limite de requisições do Meta atingido", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

// ownerFromRequest devolve o dono usado nas consultas; tokens de serviço enxergam todos os projetos
func ownerFromRequest(r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}

	if claims.IsService() {
		return "", true
	}

	return claims.UserID(), true
}

func queryLimit(r *http.Request) uint64 {
	limit, err := strconv.ParseUint(r.URL.Query().Get("limit"), 10, 64)
	if err != nil {
		return 0
	}
	return limit
}
