package repos

import (
	"database/sql"
	"errors"

	"schoolbooks/internal/domain"

	"github.com/jmoiron/sqlx"
)

var ErrMessageNotFound = errors.New("contact message not found")

type ContactRepo struct{ DB *sqlx.DB }

func NewContactRepo(db *sqlx.DB) *ContactRepo { return &ContactRepo{DB: db} }

const contactCols = `id,name,email,phone,subject,message,book_id,status,created_at`

// Create stores m; ID and Status must already be set. CreatedAt is filled from the row.
func (r *ContactRepo) Create(m *domain.ContactMessage) error {
	_, err := r.DB.NamedExec(`
		INSERT INTO contact_messages(id,name,email,phone,subject,message,book_id,status)
		VALUES(:id,:name,:email,:phone,:subject,:message,:book_id,:status)`, m)
	if err != nil {
		return err
	}
	return r.DB.Get(&m.CreatedAt, `SELECT created_at FROM contact_messages WHERE id=?`, m.ID)
}

// List returns newest first; an empty status lists everything.
func (r *ContactRepo) List(status string) ([]domain.ContactMessage, error) {
	var out []domain.ContactMessage
	q := `SELECT ` + contactCols + ` FROM contact_messages`
	args := []any{}
	if status != "" {
		q += ` WHERE status=?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC, id`
	err := r.DB.Select(&out, q, args...)
	return out, err
}

func (r *ContactRepo) Get(id string) (*domain.ContactMessage, error) {
	var m domain.ContactMessage
	err := r.DB.Get(&m, `SELECT `+contactCols+` FROM contact_messages WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ContactRepo) MarkHandled(id string) error {
	res, err := r.DB.Exec(`UPDATE contact_messages SET status=? WHERE id=?`, domain.MessageHandled, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *ContactRepo) CountNew() (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM contact_messages WHERE status=?`, domain.MessageNew)
	return n, err
}
