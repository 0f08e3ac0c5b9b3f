package repository

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/query"
)

const contactColumns = `id, name, email, subject, message, read, created_at`

type ContactRepository interface {
	Create(msg *models.ContactMessage) error
	List(f *query.Filter) ([]models.ContactMessage, int, error)
	MarkRead(id int64) (*models.ContactMessage, error)
	Delete(id int64) error
}

type contactRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewContactRepository(db *sqlx.DB, logger *zap.Logger) ContactRepository {
	return &contactRepository{db: db, logger: logger}
}

func (r *contactRepository) Create(msg *models.ContactMessage) error {
	query := `INSERT INTO contact_messages (name, email, subject, message)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.db.QueryRowx(query, msg.Name, msg.Email, msg.Subject, msg.Message).
		Scan(&msg.ID, &msg.CreatedAt)
	return translateErr(err)
}

func (r *contactRepository) List(f *query.Filter) ([]models.ContactMessage, int, error) {
	countClause, countArgs := f.CountClause()
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM contact_messages`+countClause, countArgs...); err != nil {
		return nil, 0, translateErr(err)
	}

	selectClause, selectArgs := f.SelectClause()
	messages := []models.ContactMessage{}
	if err := r.db.Select(&messages, `SELECT `+contactColumns+` FROM contact_messages`+selectClause, selectArgs...); err != nil {
		return nil, 0, translateErr(err)
	}

	return messages, total, nil
}

func (r *contactRepository) MarkRead(id int64) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	query := `UPDATE contact_messages SET read = TRUE WHERE id = $1 RETURNING ` + contactColumns
	if err := r.db.Get(&msg, query, id); err != nil {
		return nil, translateErr(err)
	}
	return &msg, nil
}

func (r *contactRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}
