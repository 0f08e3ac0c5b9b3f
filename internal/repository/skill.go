package repository

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/query"
)

const skillColumns = `id, name, category, proficiency, years_of_experience, icon, color,
	description, priority, featured, is_active, created_at, updated_at`

type SkillRepository interface {
	List(f *query.Filter) ([]models.Skill, int, error)
	GetActiveByID(id int64) (*models.Skill, error)
	Create(skill *models.Skill) error
	Update(skill *models.Skill) error
	Delete(id int64) error
}

type skillRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSkillRepository(db *sqlx.DB, logger *zap.Logger) SkillRepository {
	return &skillRepository{db: db, logger: logger}
}

func (r *skillRepository) List(f *query.Filter) ([]models.Skill, int, error) {
	countClause, countArgs := f.CountClause()
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM skills`+countClause, countArgs...); err != nil {
		return nil, 0, translateErr(err)
	}

	selectClause, selectArgs := f.SelectClause()
	skills := []models.Skill{}
	if err := r.db.Select(&skills, `SELECT `+skillColumns+` FROM skills`+selectClause, selectArgs...); err != nil {
		return nil, 0, translateErr(err)
	}

	return skills, total, nil
}

func (r *skillRepository) GetActiveByID(id int64) (*models.Skill, error) {
	var skill models.Skill
	query := `SELECT ` + skillColumns + ` FROM skills WHERE id = $1 AND is_active = TRUE`
	if err := r.db.Get(&skill, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &skill, nil
}

func (r *skillRepository) Create(skill *models.Skill) error {
	query := `INSERT INTO skills (name, category, proficiency, years_of_experience, icon, color,
	            description, priority, featured, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowx(query,
		skill.Name, skill.Category, skill.Proficiency, skill.YearsOfExperience, skill.Icon,
		skill.Color, skill.Description, skill.Priority, skill.Featured, skill.IsActive,
	).Scan(&skill.ID, &skill.CreatedAt, &skill.UpdatedAt)
	return translateErr(err)
}

func (r *skillRepository) Update(skill *models.Skill) error {
	query := `UPDATE skills SET name = $1, category = $2, proficiency = $3, years_of_experience = $4,
	            icon = $5, color = $6, description = $7, priority = $8, featured = $9,
	            is_active = $10, updated_at = NOW()
	          WHERE id = $11
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowx(query,
		skill.Name, skill.Category, skill.Proficiency, skill.YearsOfExperience, skill.Icon,
		skill.Color, skill.Description, skill.Priority, skill.Featured, skill.IsActive, skill.ID,
	).Scan(&skill.CreatedAt, &skill.UpdatedAt)
	return translateErr(err)
}

func (r *skillRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}
