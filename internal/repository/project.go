package repository

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/query"
)

const projectColumns = `id, title, description, short_description, technologies, category, status,
	featured, priority, links, images, start_date, end_date, client, team_size, is_public,
	created_at, updated_at`

type ProjectRepository interface {
	List(f *query.Filter) ([]models.Project, int, error)
	GetByID(id int64) (*models.Project, error)
	GetPublicByID(id int64) (*models.Project, error)
	Featured(limit int) ([]models.Project, error)
	Create(project *models.Project) error
	Update(project *models.Project) error
	Delete(id int64) error
}

type projectRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProjectRepository(db *sqlx.DB, logger *zap.Logger) ProjectRepository {
	return &projectRepository{db: db, logger: logger}
}

func (r *projectRepository) List(f *query.Filter) ([]models.Project, int, error) {
	countClause, countArgs := f.CountClause()
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM projects`+countClause, countArgs...); err != nil {
		return nil, 0, translateErr(err)
	}

	selectClause, selectArgs := f.SelectClause()
	projects := []models.Project{}
	if err := r.db.Select(&projects, `SELECT `+projectColumns+` FROM projects`+selectClause, selectArgs...); err != nil {
		return nil, 0, translateErr(err)
	}

	return projects, total, nil
}

func (r *projectRepository) GetByID(id int64) (*models.Project, error) {
	var project models.Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	if err := r.db.Get(&project, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &project, nil
}

func (r *projectRepository) GetPublicByID(id int64) (*models.Project, error) {
	var project models.Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND is_public = TRUE`
	if err := r.db.Get(&project, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &project, nil
}

func (r *projectRepository) Featured(limit int) ([]models.Project, error) {
	projects := []models.Project{}
	query := `SELECT ` + projectColumns + ` FROM projects
	          WHERE featured = TRUE AND is_public = TRUE
	          ORDER BY priority DESC, created_at DESC, id ASC LIMIT $1`
	if err := r.db.Select(&projects, query, limit); err != nil {
		return nil, translateErr(err)
	}
	return projects, nil
}

func (r *projectRepository) Create(project *models.Project) error {
	query := `INSERT INTO projects (title, description, short_description, technologies, category,
	            status, featured, priority, links, images, start_date, end_date, client, team_size, is_public)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowx(query,
		project.Title, project.Description, project.ShortDescription, project.Technologies,
		project.Category, project.Status, project.Featured, project.Priority, project.Links,
		project.Images, project.StartDate, project.EndDate, project.Client, project.TeamSize,
		project.IsPublic,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	return translateErr(err)
}

func (r *projectRepository) Update(project *models.Project) error {
	query := `UPDATE projects SET title = $1, description = $2, short_description = $3,
	            technologies = $4, category = $5, status = $6, featured = $7, priority = $8,
	            links = $9, images = $10, start_date = $11, end_date = $12, client = $13,
	            team_size = $14, is_public = $15, updated_at = NOW()
	          WHERE id = $16
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowx(query,
		project.Title, project.Description, project.ShortDescription, project.Technologies,
		project.Category, project.Status, project.Featured, project.Priority, project.Links,
		project.Images, project.StartDate, project.EndDate, project.Client, project.TeamSize,
		project.IsPublic, project.ID,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	return translateErr(err)
}

func (r *projectRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}
