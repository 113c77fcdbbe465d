package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-ads-sync/infrastructure/database/postgres"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

var projectRowColumns = []string{
	"id", "owner_id", "name", "ad_account_id", "business_model", "currency",
	"access_token", "token_expires_at", "status", "created_at", "updated_at",
}

func newMockConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &postgres.Connection{DB: db}, mock
}

func TestProjectRepository_GetByID(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	expires := now.Add(60 * 24 * time.Hour)

	t.Run("returns project with token expiration", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewProjectRepository(conn)

		mock.ExpectQuery(regexp.QuoteMeta("FROM projects p WHERE p.id = $1")).
			WithArgs("prj123").
			WillReturnRows(sqlmock.NewRows(projectRowColumns).
				AddRow("prj123", "user-1", "Loja Centro", "1234567890", "ecommerce", "BRL", "EAAB", expires, "ACTIVE", now, now))

		project, err := repo.GetByID(context.Background(), "prj123")

		require.NoError(t, err)
		require.NotNil(t, project)
		assert.Equal(t, "Loja Centro", project.Name)
		assert.Equal(t, domain.ProjectStatusActive, project.Status)
		require.NotNil(t, project.TokenExpiresAt)
		assert.True(t, expires.Equal(*project.TokenExpiresAt))
		assert.True(t, project.HasMetaConnection())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when project does not exist", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewProjectRepository(conn)

		mock.ExpectQuery(regexp.QuoteMeta("FROM projects p WHERE p.id = $1")).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		project, err := repo.GetByID(context.Background(), "missing")

		assert.NoError(t, err)
		assert.Nil(t, project)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps database errors", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewProjectRepository(conn)

		mock.ExpectQuery("FROM projects p").WillReturnError(errors.New("connection reset"))

		project, err := repo.GetByID(context.Background(), "prj123")

		assert.Nil(t, project)
		assert.ErrorContains(t, err, "buscar projeto")
		assert.ErrorContains(t, err, "connection reset")
	})
}

func TestProjectRepository_ListSyncable(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewProjectRepository(conn)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (p.status = $1 AND p.access_token <> $2 AND p.ad_account_id <> $3) ORDER BY p.created_at ASC")).
		WithArgs("ACTIVE", "", "").
		WillReturnRows(sqlmock.NewRows(projectRowColumns).
			AddRow("prj1", "user-1", "A", "111", "", "BRL", "tok1", nil, "ACTIVE", now, now).
			AddRow("prj2", "user-2", "B", "222", "", "USD", "tok2", nil, "ACTIVE", now, now))

	projects, err := repo.ListSyncable(context.Background())

	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "prj1", projects[0].ID)
	assert.Nil(t, projects[0].TokenExpiresAt)
	assert.Equal(t, "USD", projects[1].Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Create(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewProjectRepository(conn)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	project := &domain.Project{
		ID:          "prj123",
		OwnerID:     "user-1",
		Name:        "Loja Centro",
		AdAccountID: "1234567890",
		Currency:    "BRL",
		Status:      domain.ProjectStatusActive,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO projects")).
		WithArgs("prj123", "user-1", "Loja Centro", "1234567890", "", "BRL", "", "ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	err := repo.Create(context.Background(), project)

	require.NoError(t, err)
	assert.Equal(t, now, project.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_UpdateMetaConnection(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewProjectRepository(conn)
	expires := time.Now().Add(time.Hour)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects SET access_token = $1, ad_account_id = $2, token_expires_at = $3, updated_at = NOW() WHERE id = $4")).
		WithArgs("long-lived", "999", sqlmock.AnyArg(), "prj123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateMetaConnection(context.Background(), "prj123", "999", "long-lived", &expires)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Delete(t *testing.T) {
	t.Run("deletes existing project", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewProjectRepository(conn)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects WHERE id = $1")).
			WithArgs("prj123").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "prj123"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewProjectRepository(conn)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects")).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
