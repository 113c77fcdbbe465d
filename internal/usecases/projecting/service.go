package projecting

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-ads-sync/infrastructure/repository"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/pkg/apiErrors"
	"github.com/vfg2006/meta-ads-sync/pkg/utils"
)

const defaultCurrency = "BRL"

type ProjectService interface {
	ListProjects(ctx context.Context, ownerID string) ([]*domain.Project, error)
	GetProject(ctx context.Context, ownerID, projectID string) (*domain.Project, error)
	CreateProject(ctx context.Context, ownerID string, request *domain.CreateProjectRequest) (*domain.Project, error)
	ArchiveProject(ctx context.Context, ownerID, projectID string) error
	DeleteProject(ctx context.Context, ownerID, projectID string) error
	ConnectMeta(ctx context.Context, ownerID, projectID string, request *domain.MetaConnectionRequest) (*domain.Project, error)
	ListAdAccounts(ctx context.Context, accessToken string) ([]domain.AdAccount, error)
}

type Service struct {
	projectRepository repository.ProjectRepository
	metaService       meta.Integrator
}

func NewService(
	projectRepository repository.ProjectRepository,
	metaService meta.Integrator,
) ProjectService {
	return &Service{
		projectRepository: projectRepository,
		metaService:       metaService,
	}
}

func (s *Service) ListProjects(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	projects, err := s.projectRepository.ListByOwner(ctx, ownerID)
	if err != nil {
		logrus.Error("Erro ao listar projetos no repositório:", err)
		return nil, NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar projetos no banco de dados")
	}

	return projects, nil
}

// GetProject retorna o projeto se pertencer ao usuário.
// ownerID vazio é usado pelo service role e ignora o dono.
func (s *Service) GetProject(ctx context.Context, ownerID, projectID string) (*domain.Project, error) {
	if projectID == "" {
		return nil, NewProjectError(ErrProjectIDRequired, apiErrors.ErrMissingRequiredData, "ID do projeto não fornecido")
	}

	project, err := s.projectRepository.GetByID(ctx, projectID)
	if err != nil {
		logrus.Error("Erro ao buscar projeto no repositório:", err)
		return nil, NewProjectErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, projectID, "Erro ao buscar projeto no banco de dados")
	}

	if project == nil || (ownerID != "" && project.OwnerID != ownerID) {
		return nil, NewProjectErrorWithID(ErrProjectNotFound, apiErrors.ErrNotFound, projectID, "Projeto não encontrado")
	}

	return project, nil
}

func (s *Service) CreateProject(ctx context.Context, ownerID string, request *domain.CreateProjectRequest) (*domain.Project, error) {
	if strings.TrimSpace(request.Name) == "" {
		return nil, NewProjectError(ErrProjectNameRequired, apiErrors.ErrMissingRequiredData, "Nome do projeto é obrigatório")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewProjectError(ErrGenerateID, apiErrors.ErrInternalServer, "Falha ao gerar identificador único para o projeto")
	}

	currency := strings.ToUpper(strings.TrimSpace(request.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	project := &domain.Project{
		ID:            id,
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(request.Name),
		AdAccountID:   strings.TrimPrefix(request.AdAccountID, "act_"),
		BusinessModel: request.BusinessModel,
		Currency:      currency,
		Status:        domain.ProjectStatusActive,
	}

	if err := s.projectRepository.Create(ctx, project); err != nil {
		logrus.Error("Erro ao criar projeto no repositório:", err)
		return nil, NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar projeto no banco de dados")
	}

	logrus.WithFields(logrus.Fields{"project_id": project.ID, "owner_id": ownerID}).Info("Projeto criado")

	return project, nil
}

func (s *Service) ArchiveProject(ctx context.Context, ownerID, projectID string) error {
	if _, err := s.GetProject(ctx, ownerID, projectID); err != nil {
		return err
	}

	if err := s.projectRepository.UpdateStatus(ctx, projectID, domain.ProjectStatusArchived); err != nil {
		return s.repositoryError(err, projectID, "Falha ao arquivar projeto")
	}

	return nil
}

// DeleteProject remove o projeto e, em cascata, todas as métricas, consolidados e logs
func (s *Service) DeleteProject(ctx context.Context, ownerID, projectID string) error {
	if _, err := s.GetProject(ctx, ownerID, projectID); err != nil {
		return err
	}

	if err := s.projectRepository.Delete(ctx, projectID); err != nil {
		return s.repositoryError(err, projectID, "Falha ao remover projeto")
	}

	logrus.WithField("project_id", projectID).Info("Projeto removido")

	return nil
}

// ConnectMeta troca o token curto pelo de longa duração e grava no projeto
func (s *Service) ConnectMeta(ctx context.Context, ownerID, projectID string, request *domain.MetaConnectionRequest) (*domain.Project, error) {
	if request.AccessToken == "" {
		return nil, NewProjectErrorWithID(ErrAccessTokenRequired, apiErrors.ErrMissingRequiredData, projectID, "Token de acesso não fornecido")
	}

	project, err := s.GetProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.metaService.ExchangeToken(ctx, request.AccessToken)
	if err != nil {
		logrus.WithError(err).WithField("project_id", projectID).Error("Erro ao trocar token no Meta")
		return nil, s.metaError(err, projectID)
	}

	adAccountID := strings.TrimPrefix(request.AdAccountID, "act_")
	if adAccountID == "" {
		adAccountID = project.AdAccountID
	}

	if err := s.projectRepository.UpdateMetaConnection(ctx, projectID, adAccountID, token, expiresAt); err != nil {
		return nil, s.repositoryError(err, projectID, "Falha ao salvar conexão com o Meta")
	}

	project.AdAccountID = adAccountID
	project.AccessToken = token
	project.TokenExpiresAt = expiresAt

	return project, nil
}

func (s *Service) ListAdAccounts(ctx context.Context, accessToken string) ([]domain.AdAccount, error) {
	if accessToken == "" {
		return nil, NewProjectError(ErrAccessTokenRequired, apiErrors.ErrMissingRequiredData, "Token de acesso não fornecido")
	}

	accounts, err := s.metaService.ListAdAccounts(ctx, accessToken)
	if err != nil {
		logrus.Error("Erro ao buscar contas de anúncio no Meta:", err)
		return nil, s.metaError(err, "")
	}

	return accounts, nil
}

func (s *Service) metaError(err error, projectID string) error {
	if errors.Is(err, domain.ErrMetaTokenExpired) {
		return NewProjectErrorWithID(ErrMetaTokenExpired, apiErrors.ErrMetaTokenExpired, projectID, "Token do Meta inválido ou expirado")
	}
	if errors.Is(err, domain.ErrMetaRateLimited) {
		return NewProjectErrorWithID(ErrMetaIntegration, apiErrors.ErrMetaRateLimited, projectID, "Limite de requisições do Meta atingido")
	}
	return NewProjectErrorWithID(ErrMetaIntegration, apiErrors.ErrExternalService, projectID, "Falha ao consultar a API do Meta")
}

func (s *Service) repositoryError(err error, projectID, details string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NewProjectErrorWithID(ErrProjectNotFound, apiErrors.ErrNotFound, projectID, "Projeto não encontrado")
	}

	logrus.Error("Erro no repositório de projetos:", err)
	return NewProjectErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, projectID, details)
}
