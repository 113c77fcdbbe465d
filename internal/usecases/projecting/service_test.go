package projecting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metamocks "github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/meta-ads-sync/infrastructure/repository"
	"github.com/vfg2006/meta-ads-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (ProjectService, *mocks.MockProjectRepository, *metamocks.MockIntegrator) {
	ctrl := gomock.NewController(t)
	projectRepo := mocks.NewMockProjectRepository(ctrl)
	metaService := metamocks.NewMockIntegrator(ctrl)

	return NewService(projectRepo, metaService), projectRepo, metaService
}

func assertProjectError(t *testing.T, err error, base error, code string) {
	t.Helper()

	var projectErr *ProjectError
	require.ErrorAs(t, err, &projectErr)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, code, projectErr.Code)
}

func TestService_GetProject(t *testing.T) {
	project := &domain.Project{ID: "prj123", OwnerID: "user1"}

	tests := []struct {
		name     string
		ownerID  string
		found    *domain.Project
		repoErr  error
		wantErr  error
		wantCode string
	}{
		{name: "dono do projeto", ownerID: "user1", found: project},
		{name: "service role ignora o dono", ownerID: "", found: project},
		{name: "outro usuário", ownerID: "user2", found: project, wantErr: ErrProjectNotFound, wantCode: apiErrors.ErrNotFound},
		{name: "inexistente", ownerID: "user1", wantErr: ErrProjectNotFound, wantCode: apiErrors.ErrNotFound},
		{name: "erro de banco", ownerID: "user1", repoErr: errors.New("timeout"), wantErr: ErrDatabaseOperation, wantCode: apiErrors.ErrDatabaseOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, projectRepo, _ := newTestService(t)
			projectRepo.EXPECT().GetByID(gomock.Any(), "prj123").Return(tt.found, tt.repoErr)

			got, err := svc.GetProject(context.Background(), tt.ownerID, "prj123")

			if tt.wantErr != nil {
				assertProjectError(t, err, tt.wantErr, tt.wantCode)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, project, got)
		})
	}
}

func TestService_GetProject_RequiresID(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetProject(context.Background(), "user1", "")

	assertProjectError(t, err, ErrProjectIDRequired, apiErrors.ErrMissingRequiredData)
}

func TestService_CreateProject(t *testing.T) {
	svc, projectRepo, _ := newTestService(t)

	projectRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Project) error {
			assert.NotEmpty(t, p.ID)
			assert.Equal(t, "user1", p.OwnerID)
			assert.Equal(t, "Loja", p.Name)
			assert.Equal(t, "123456", p.AdAccountID)
			assert.Equal(t, "BRL", p.Currency)
			assert.Equal(t, domain.ProjectStatusActive, p.Status)
			return nil
		})

	project, err := svc.CreateProject(context.Background(), "user1", &domain.CreateProjectRequest{
		Name:        "  Loja ",
		AdAccountID: "act_123456",
	})

	require.NoError(t, err)
	assert.Equal(t, "Loja", project.Name)
}

func TestService_CreateProject_Currency(t *testing.T) {
	svc, projectRepo, _ := newTestService(t)
	projectRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	project, err := svc.CreateProject(context.Background(), "user1", &domain.CreateProjectRequest{Name: "Loja", Currency: "usd"})

	require.NoError(t, err)
	assert.Equal(t, "USD", project.Currency)
}

func TestService_CreateProject_Errors(t *testing.T) {
	t.Run("nome obrigatório", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CreateProject(context.Background(), "user1", &domain.CreateProjectRequest{Name: "   "})

		assertProjectError(t, err, ErrProjectNameRequired, apiErrors.ErrMissingRequiredData)
	})

	t.Run("erro de banco", func(t *testing.T) {
		svc, projectRepo, _ := newTestService(t)
		projectRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("duplicate key"))

		_, err := svc.CreateProject(context.Background(), "user1", &domain.CreateProjectRequest{Name: "Loja"})

		assertProjectError(t, err, ErrDatabaseOperation, apiErrors.ErrDatabaseOperation)
	})
}

func TestService_ArchiveProject(t *testing.T) {
	svc, projectRepo, _ := newTestService(t)

	projectRepo.EXPECT().GetByID(gomock.Any(), "prj123").Return(&domain.Project{ID: "prj123", OwnerID: "user1"}, nil)
	projectRepo.EXPECT().UpdateStatus(gomock.Any(), "prj123", domain.ProjectStatusArchived).Return(nil)

	assert.NoError(t, svc.ArchiveProject(context.Background(), "user1", "prj123"))
}

func TestService_DeleteProject(t *testing.T) {
	t.Run("remove o projeto", func(t *testing.T) {
		svc, projectRepo, _ := newTestService(t)
		projectRepo.EXPECT().GetByID(gomock.Any(), "prj123").Return(&domain.Project{ID: "prj123", OwnerID: "user1"}, nil)
		projectRepo.EXPECT().Delete(gomock.Any(), "prj123").Return(nil)

		assert.NoError(t, svc.DeleteProject(context.Background(), "user1", "prj123"))
	})

	t.Run("removido em paralelo", func(t *testing.T) {
		svc, projectRepo, _ := newTestService(t)
		projectRepo.EXPECT().GetByID(gomock.Any(), "prj123").Return(&domain.Project{ID: "prj123", OwnerID: "user1"}, nil)
		projectRepo.EXPECT().Delete(gomock.Any(), "prj123").Return(repository.ErrNotFound)

		err := svc.DeleteProject(context.Background(), "user1", "prj123")

		assertProjectError(t, err, ErrProjectNotFound, apiErrors.ErrNotFound)
	})

	t.Run("projeto de outro usuário", func(t *testing.T) {
		svc, projectRepo, _ := newTestService(t)
		projectRepo.EXPECT().GetByID(gomock.Any(), "prj123").Return(&domain.Project{ID: "prj123", OwnerID: "user2"}, nil)

		err := svc.DeleteProject(context.Background(), "user1", "prj123")

		assertProjectError(t, err, ErrProjectNotFound, apiErrors.ErrNotFound)
	})
}

func TestService_ConnectMeta(t *testing.T) {
	svc, projectRepo, metaService := newTestService(t)
	expiresAt := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	projectRepo.EXPECT().GetByID(gomock.Any(), "prj123").Return(&domain.Project{ID: "prj123", OwnerID: "user1", AdAccountID: "111"}, nil)
	metaService.EXPECT().ExchangeToken(gomock.Any(), "short").Return("long", &expiresAt, nil)
	projectRepo.EXPECT().UpdateMetaConnection(gomock.Any(), "prj123", "222", "long", &expiresAt).Return(nil)

	project, err := svc.ConnectMeta(context.Background(), "user1", "prj123", &domain.MetaConnectionRequest{
		AccessToken: "short",
		AdAccountID: "act_222",
	})

	require.NoError(t, err)
	assert.Equal(t, "222", project.AdAccountID)
	assert.Equal(t, "long", project.AccessToken)
	assert.Equal(t, &expiresAt, project.TokenExpiresAt)
}

func TestService_ConnectMeta_KeepsAdAccount(t *testing.T) {
	svc, projectRepo, metaService := newTestService(t)

	projectRepo.EXPECT().GetByID(gomock.Any(), "prj123").Return(&domain.Project{ID: "prj123", OwnerID: "user1", AdAccountID: "111"}, nil)
	metaService.EXPECT().ExchangeToken(gomock.Any(), "short").Return("long", nil, nil)
	projectRepo.EXPECT().UpdateMetaConnection(gomock.Any(), "prj123", "111", "long", nil).Return(nil)

	project, err := svc.ConnectMeta(context.Background(), "user1", "prj123", &domain.MetaConnectionRequest{AccessToken: "short"})

	require.NoError(t, err)
	assert.Equal(t, "111", project.AdAccountID)
}

func TestService_ConnectMeta_Errors(t *testing.T) {
	t.Run("token obrigatório", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.ConnectMeta(context.Background(), "user1", "prj123", &domain.MetaConnectionRequest{})

		assertProjectError(t, err, ErrAccessTokenRequired, apiErrors.ErrMissingRequiredData)
	})

	t.Run("token recusado pelo Meta", func(t *testing.T) {
		svc, projectRepo, metaService := newTestService(t)
		projectRepo.EXPECT().GetByID(gomock.Any(), "prj123").Return(&domain.Project{ID: "prj123", OwnerID: "user1"}, nil)
		metaService.EXPECT().ExchangeToken(gomock.Any(), "short").Return("", nil, domain.ErrMetaTokenExpired)

		_, err := svc.ConnectMeta(context.Background(), "user1", "prj123", &domain.MetaConnectionRequest{AccessToken: "short"})

		assertProjectError(t, err, ErrMetaTokenExpired, apiErrors.ErrMetaTokenExpired)
	})
}

func TestService_ListAdAccounts(t *testing.T) {
	tests := []struct {
		name     string
		metaErr  error
		wantErr  error
		wantCode string
	}{
		{name: "sucesso"},
		{name: "rate limit", metaErr: domain.ErrMetaRateLimited, wantErr: ErrMetaIntegration, wantCode: apiErrors.ErrMetaRateLimited},
		{name: "falha genérica", metaErr: errors.New("500"), wantErr: ErrMetaIntegration, wantCode: apiErrors.ErrExternalService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, metaService := newTestService(t)
			accounts := []domain.AdAccount{{ID: "act_1", AccountID: "1", Name: "Conta"}}
			if tt.metaErr != nil {
				accounts = nil
			}
			metaService.EXPECT().ListAdAccounts(gomock.Any(), "tok").Return(accounts, tt.metaErr)

			got, err := svc.ListAdAccounts(context.Background(), "tok")

			if tt.wantErr != nil {
				assertProjectError(t, err, tt.wantErr, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestService_ListAdAccounts_RequiresToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ListAdAccounts(context.Background(), "")

	assertProjectError(t, err, ErrAccessTokenRequired, apiErrors.ErrMissingRequiredData)
}

func TestService_ListProjects(t *testing.T) {
	svc, projectRepo, _ := newTestService(t)
	projectRepo.EXPECT().ListByOwner(gomock.Any(), "user1").Return([]*domain.Project{{ID: "a"}, {ID: "b"}}, nil)

	projects, err := svc.ListProjects(context.Background(), "user1")

	require.NoError(t, err)
	assert.Len(t, projects, 2)
}
