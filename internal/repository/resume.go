package repository

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
)

const resumeColumns = `id, filename, original_name, url, title, designation, uploaded_by, created_at`

type ResumeRepository interface {
	Create(resume *models.Resume) error
	List() ([]models.Resume, error)
	GetByID(id int64) (*models.Resume, error)
	Delete(id int64) error
}

type resumeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewResumeRepository(db *sqlx.DB, logger *zap.Logger) ResumeRepository {
	return &resumeRepository{db: db, logger: logger}
}

func (r *resumeRepository) Create(resume *models.Resume) error {
	query := `INSERT INTO resumes (filename, original_name, url, title, designation, uploaded_by)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRowx(query, resume.Filename, resume.OriginalName, resume.URL,
		resume.Title, resume.Designation, resume.UploadedBy).
		Scan(&resume.ID, &resume.CreatedAt)
	return translateErr(err)
}

func (r *resumeRepository) List() ([]models.Resume, error) {
	resumes := []models.Resume{}
	query := `SELECT ` + resumeColumns + ` FROM resumes ORDER BY created_at DESC, id ASC`
	if err := r.db.Select(&resumes, query); err != nil {
		return nil, translateErr(err)
	}
	return resumes, nil
}

func (r *resumeRepository) GetByID(id int64) (*models.Resume, error) {
	var resume models.Resume
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	if err := r.db.Get(&resume, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &resume, nil
}

func (r *resumeRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}
