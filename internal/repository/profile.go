package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
)

const profileColumns = `id, name, title, bio, contact_description, email, phone, location,
	website, github, linkedin, twitter, instagram, profile_image, resume, is_public,
	created_at, updated_at`

// ProfileRepository manages the singleton profile row.
type ProfileRepository interface {
	Get() (*models.Profile, error)
	Upsert(profile *models.Profile) error
}

type profileRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProfileRepository(db *sqlx.DB, logger *zap.Logger) ProfileRepository {
	return &profileRepository{db: db, logger: logger}
}

func (r *profileRepository) Get() (*models.Profile, error) {
	var profile models.Profile
	query := `SELECT ` + profileColumns + ` FROM profile ORDER BY id ASC LIMIT 1`
	if err := r.db.Get(&profile, query); err != nil {
		return nil, translateErr(err)
	}
	return &profile, nil
}

// Upsert writes the singleton row: an update when one exists, an insert
// otherwise. Reads back the full row into profile.
func (r *profileRepository) Upsert(profile *models.Profile) error {
	existing, err := r.Get()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	if existing != nil {
		query := `UPDATE profile SET name = $1, title = $2, bio = $3, contact_description = $4,
		            email = $5, phone = $6, location = $7, website = $8, github = $9,
		            linkedin = $10, twitter = $11, instagram = $12, profile_image = $13,
		            resume = $14, is_public = $15, updated_at = NOW()
		          WHERE id = $16
		          RETURNING id, created_at, updated_at`
		err = r.db.QueryRowx(query,
			profile.Name, profile.Title, profile.Bio, profile.ContactDescription, profile.Email,
			profile.Phone, profile.Location, profile.Website, profile.GitHub, profile.LinkedIn,
			profile.Twitter, profile.Instagram, profile.ProfileImage, profile.Resume,
			profile.IsPublic, existing.ID,
		).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
		return translateErr(err)
	}

	query := `INSERT INTO profile (name, title, bio, contact_description, email, phone, location,
	            website, github, linkedin, twitter, instagram, profile_image, resume, is_public)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id, created_at, updated_at`
	err = r.db.QueryRowx(query,
		profile.Name, profile.Title, profile.Bio, profile.ContactDescription, profile.Email,
		profile.Phone, profile.Location, profile.Website, profile.GitHub, profile.LinkedIn,
		profile.Twitter, profile.Instagram, profile.ProfileImage, profile.Resume, profile.IsPublic,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	return translateErr(err)
}
