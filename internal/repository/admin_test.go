package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
)

func newMockAdminRepo(t *testing.T) (AdminRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAdminRepository(sqlx.NewDb(db, "sqlmock"), zap.NewNop()), mock
}

func adminRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "is_active", "last_login", "created_at"})
}

func TestAdminGetByUsername(t *testing.T) {
	repo, mock := newMockAdminRepo(t)

	created := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM admins WHERE username = \$1`).
		WithArgs("owner").
		WillReturnRows(adminRows().AddRow(1, "owner", "owner@example.com", "hash", "admin", true, nil, created))

	admin, err := repo.GetByUsername("owner")
	require.NoError(t, err)
	assert.Equal(t, int64(1), admin.ID)
	assert.Equal(t, "owner", admin.Username)
	assert.Equal(t, "admin", admin.Role)
	assert.True(t, admin.IsActive)
	assert.Nil(t, admin.LastLogin)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminGetByIDNotFound(t *testing.T) {
	repo, mock := newMockAdminRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM admins WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(99)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCreate(t *testing.T) {
	repo, mock := newMockAdminRepo(t)

	created := time.Now()
	mock.ExpectQuery(`INSERT INTO admins`).
		WithArgs("owner", "owner@example.com", "hash", "admin", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, created))

	admin := &models.Admin{
		Username:     "owner",
		Email:        "owner@example.com",
		PasswordHash: "hash",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(admin))
	assert.Equal(t, int64(5), admin.ID)
	assert.Equal(t, created, admin.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCreateDuplicate(t *testing.T) {
	repo, mock := newMockAdminRepo(t)

	mock.ExpectQuery(`INSERT INTO admins`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(&models.Admin{Username: "owner", Email: "owner@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdateProfile(t *testing.T) {
	repo, mock := newMockAdminRepo(t)

	mock.ExpectExec(`UPDATE admins SET username = \$1, email = \$2 WHERE id = \$3`).
		WithArgs("new_name", "new@example.com", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateProfile(1, "new_name", "new@example.com"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdatePasswordMissingRow(t *testing.T) {
	repo, mock := newMockAdminRepo(t)

	mock.ExpectExec(`UPDATE admins SET password_hash = \$1 WHERE id = \$2`).
		WithArgs("newhash", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(42, "newhash")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCount(t *testing.T) {
	repo, mock := newMockAdminRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM admins`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
