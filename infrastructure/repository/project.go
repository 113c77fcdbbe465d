package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/meta-ads-sync/infrastructure/database/postgres"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

const projectsTable = "projects p"

const projectColumns = "p.id, p.owner_id, p.name, p.ad_account_id, p.business_model, p.currency, p.access_token, p.token_expires_at, p.status, p.created_at, p.updated_at"

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error)
	ListSyncable(ctx context.Context) ([]*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) error
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) error
	UpdateMetaConnection(ctx context.Context, id, adAccountID, accessToken string, expiresAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	conn *postgres.Connection
}

func NewProjectRepository(conn *postgres.Connection) ProjectRepository {
	return &projectRepository{
		conn: conn,
	}
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query, args, err := squirrel.
		Select(projectColumns).
		From(projectsTable).
		Where(squirrel.Eq{"p.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	project, err := scanProject(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, dbError("buscar projeto", err)
	}

	return project, nil
}

func (r *projectRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	return r.list(ctx, squirrel.Eq{"p.owner_id": ownerID})
}

// ListSyncable lista projetos ativos com conexão ao Meta configurada
func (r *projectRepository) ListSyncable(ctx context.Context) ([]*domain.Project, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"p.status": domain.ProjectStatusActive},
		squirrel.NotEq{"p.access_token": ""},
		squirrel.NotEq{"p.ad_account_id": ""},
	})
}

func (r *projectRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Project, error) {
	query, args, err := squirrel.
		Select(projectColumns).
		From(projectsTable).
		Where(where).
		OrderBy("p.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("listar projetos", err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear projeto: %w", err)
		}
		projects = append(projects, project)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	query, args, err := squirrel.
		Insert("projects").
		Columns("id", "owner_id", "name", "ad_account_id", "business_model", "currency", "access_token", "status").
		Values(
			project.ID,
			project.OwnerID,
			project.Name,
			project.AdAccountID,
			project.BusinessModel,
			project.Currency,
			project.AccessToken,
			project.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&project.CreatedAt, &project.UpdatedAt); err != nil {
		return dbError("criar projeto", err)
	}

	return nil
}

func (r *projectRepository) UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	return r.update(ctx, id, map[string]any{"status": status})
}

func (r *projectRepository) UpdateMetaConnection(ctx context.Context, id, adAccountID, accessToken string, expiresAt *time.Time) error {
	return r.update(ctx, id, map[string]any{
		"ad_account_id":    adAccountID,
		"access_token":     accessToken,
		"token_expires_at": expiresAt,
	})
}

func (r *projectRepository) update(ctx context.Context, id string, fields map[string]any) error {
	query, args, err := squirrel.
		Update("projects").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return dbError("atualizar projeto", err)
	}

	return expectAffected(result)
}

// Delete remove o projeto; as tabelas dependentes são removidas em cascata
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete("projects").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return dbError("remover projeto", err)
	}

	return expectAffected(result)
}

func expectAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*domain.Project, error) {
	project := &domain.Project{}
	var expiresAt sql.NullTime

	err := row.Scan(
		&project.ID,
		&project.OwnerID,
		&project.Name,
		&project.AdAccountID,
		&project.BusinessModel,
		&project.Currency,
		&project.AccessToken,
		&expiresAt,
		&project.Status,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expiresAt.Valid {
		project.TokenExpiresAt = &expiresAt.Time
	}

	return project, nil
}
