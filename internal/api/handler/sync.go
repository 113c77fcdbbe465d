package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/projecting"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/syncing"
	"github.com/vfg2006/meta-ads-sync/pkg/apiErrors"
)

// SyncProject executa uma passagem de sincronização e responde com as contagens.
// Usuários só sincronizam os próprios projetos; tokens de serviço, qualquer um.
func SyncProject(syncer syncing.Syncer, projects projecting.ProjectService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request domain.SyncRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if request.ProjectID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "project_id é obrigatório", nil)
			return
		}

		ownerID, _ := ownerFromRequest(r)
		if ownerID != "" {
			if _, err := projects.GetProject(r.Context(), ownerID, request.ProjectID); err != nil {
				writeServiceError(w, err, "Erro ao buscar projeto")
				return
			}
		}

		result, err := syncer.Sync(r.Context(), request)
		if err != nil {
			logrus.WithField("project_id", request.ProjectID).Error("Error syncing project:", err)
			writeServiceError(w, err, "Erro ao sincronizar projeto")
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}
