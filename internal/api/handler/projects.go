package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/internal/usecases/projecting"
	"github.com/vfg2006/meta-ads-sync/pkg/apiErrors"
)

// metaTokenHeader carrega o token do Meta usado apenas para listar contas de anúncio
const metaTokenHeader = "X-Meta-Access-Token"

func ListProjects(service projecting.ProjectService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		projects, err := service.ListProjects(r.Context(), ownerID)
		if err != nil {
			logrus.Error("Error listing projects:", err)
			writeServiceError(w, err, "Erro ao listar projetos")
			return
		}

		writeJSON(w, http.StatusOK, projects)
	})
}

func CreateProject(service projecting.ProjectService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := ownerFromRequest(r)
		if !ok || ownerID == "" {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Projetos precisam de um usuário dono", nil)
			return
		}

		var request domain.CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		project, err := service.CreateProject(r.Context(), ownerID, &request)
		if err != nil {
			logrus.Error("Error creating project:", err)
			writeServiceError(w, err, "Erro ao criar projeto")
			return
		}

		writeJSON(w, http.StatusCreated, project)
	})
}

func ArchiveProject(service projecting.ProjectService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := ownerFromRequest(r)
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.ArchiveProject(r.Context(), ownerID, id); err != nil {
			logrus.Error("Error archiving project:", err)
			writeServiceError(w, err, "Erro ao arquivar projeto")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"id":     id,
			"status": domain.ProjectStatusArchived,
		})
	})
}

func DeleteProject(service projecting.ProjectService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := ownerFromRequest(r)
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteProject(r.Context(), ownerID, id); err != nil {
			logrus.Error("Error deleting project:", err)
			writeServiceError(w, err, "Erro ao remover projeto")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func ConnectMeta(service projecting.ProjectService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := ownerFromRequest(r)
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var request domain.MetaConnectionRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		project, err := service.ConnectMeta(r.Context(), ownerID, id, &request)
		if err != nil {
			logrus.Error("Error connecting project to Meta:", err)
			writeServiceError(w, err, "Erro ao conectar projeto ao Meta")
			return
		}

		writeJSON(w, http.StatusOK, project)
	})
}

func ListMetaAdAccounts(service projecting.ProjectService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(metaTokenHeader)
		if token == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Header "+metaTokenHeader+" é obrigatório", nil)
			return
		}

		accounts, err := service.ListAdAccounts(r.Context(), token)
		if err != nil {
			logrus.Error("Error listing Meta ad accounts:", err)
			writeServiceError(w, err, "Erro ao listar contas de anúncio")
			return
		}

		writeJSON(w, http.StatusOK, accounts)
	})
}
