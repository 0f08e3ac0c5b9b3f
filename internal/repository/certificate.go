package repository

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/query"
)

const certificateColumns = `id, title, issuer, description, issue_date, expiry_date, credential_id,
	credential_url, skills, category, level, featured, priority, is_valid, image, file,
	created_at, updated_at`

type CertificateRepository interface {
	List(f *query.Filter) ([]models.Certificate, int, error)
	GetValidByID(id int64) (*models.Certificate, error)
	Create(cert *models.Certificate) error
	Update(cert *models.Certificate) error
	Delete(id int64) error
}

type certificateRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCertificateRepository(db *sqlx.DB, logger *zap.Logger) CertificateRepository {
	return &certificateRepository{db: db, logger: logger}
}

func (r *certificateRepository) List(f *query.Filter) ([]models.Certificate, int, error) {
	countClause, countArgs := f.CountClause()
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM certificates`+countClause, countArgs...); err != nil {
		return nil, 0, translateErr(err)
	}

	selectClause, selectArgs := f.SelectClause()
	certs := []models.Certificate{}
	if err := r.db.Select(&certs, `SELECT `+certificateColumns+` FROM certificates`+selectClause, selectArgs...); err != nil {
		return nil, 0, translateErr(err)
	}

	return certs, total, nil
}

func (r *certificateRepository) GetValidByID(id int64) (*models.Certificate, error) {
	var cert models.Certificate
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE id = $1 AND is_valid = TRUE`
	if err := r.db.Get(&cert, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &cert, nil
}

func (r *certificateRepository) Create(cert *models.Certificate) error {
	query := `INSERT INTO certificates (title, issuer, description, issue_date, expiry_date,
	            credential_id, credential_url, skills, category, level, featured, priority,
	            is_valid, image, file)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowx(query,
		cert.Title, cert.Issuer, cert.Description, cert.IssueDate, cert.ExpiryDate,
		cert.CredentialID, cert.CredentialURL, cert.Skills, cert.Category, cert.Level,
		cert.Featured, cert.Priority, cert.IsValid, cert.Image, cert.File,
	).Scan(&cert.ID, &cert.CreatedAt, &cert.UpdatedAt)
	return translateErr(err)
}

func (r *certificateRepository) Update(cert *models.Certificate) error {
	query := `UPDATE certificates SET title = $1, issuer = $2, description = $3, issue_date = $4,
	            expiry_date = $5, credential_id = $6, credential_url = $7, skills = $8,
	            category = $9, level = $10, featured = $11, priority = $12, is_valid = $13,
	            image = $14, file = $15, updated_at = NOW()
	          WHERE id = $16
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowx(query,
		cert.Title, cert.Issuer, cert.Description, cert.IssueDate, cert.ExpiryDate,
		cert.CredentialID, cert.CredentialURL, cert.Skills, cert.Category, cert.Level,
		cert.Featured, cert.Priority, cert.IsValid, cert.Image, cert.File, cert.ID,
	).Scan(&cert.CreatedAt, &cert.UpdatedAt)
	return translateErr(err)
}

func (r *certificateRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM certificates WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}
