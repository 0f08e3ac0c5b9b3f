package repository

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
)

const adminColumns = `id, username, email, password_hash, role, is_active, last_login, created_at`

type AdminRepository interface {
	Create(admin *models.Admin) error
	GetByID(id int64) (*models.Admin, error)
	GetByUsername(username string) (*models.Admin, error)
	GetByEmail(email string) (*models.Admin, error)
	Count() (int, error)
	UpdateProfile(id int64, username, email string) error
	UpdatePassword(id int64, passwordHash string) error
	UpdateLastLogin(id int64) error
}

type adminRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAdminRepository(db *sqlx.DB, logger *zap.Logger) AdminRepository {
	return &adminRepository{db: db, logger: logger}
}

func (r *adminRepository) Create(admin *models.Admin) error {
	query := `INSERT INTO admins (username, email, password_hash, role, is_active)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.db.QueryRowx(query, admin.Username, admin.Email, admin.PasswordHash, admin.Role, admin.IsActive).
		Scan(&admin.ID, &admin.CreatedAt)
	return translateErr(err)
}

func (r *adminRepository) GetByID(id int64) (*models.Admin, error) {
	var admin models.Admin
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`
	if err := r.db.Get(&admin, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &admin, nil
}

func (r *adminRepository) GetByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	query := `SELECT ` + adminColumns + ` FROM admins WHERE username = $1`
	if err := r.db.Get(&admin, query, username); err != nil {
		return nil, translateErr(err)
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`
	if err := r.db.Get(&admin, query, email); err != nil {
		return nil, translateErr(err)
	}
	return &admin, nil
}

func (r *adminRepository) Count() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM admins`); err != nil {
		return 0, translateErr(err)
	}
	return count, nil
}

func (r *adminRepository) UpdateProfile(id int64, username, email string) error {
	res, err := r.db.Exec(`UPDATE admins SET username = $1, email = $2 WHERE id = $3`, username, email, id)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}

func (r *adminRepository) UpdatePassword(id int64, passwordHash string) error {
	res, err := r.db.Exec(`UPDATE admins SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}

func (r *adminRepository) UpdateLastLogin(id int64) error {
	res, err := r.db.Exec(`UPDATE admins SET last_login = NOW() WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}
