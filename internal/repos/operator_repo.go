package repos

import (
	"time"

	"schoolbooks/internal/domain"

	"github.com/jmoiron/sqlx"
)

const operatorCols = `o.id,o.email,o.name,o.password_hash,o.role`

// stamp is the sortable UTC form sessions.expires_at is stored in.
const stamp = "2006-01-02T15:04:05Z"

type OperatorRepo struct{ DB *sqlx.DB }

func NewOperatorRepo(db *sqlx.DB) *OperatorRepo { return &OperatorRepo{DB: db} }

func (r *OperatorRepo) ByEmail(email string) (*domain.Operator, error) {
	var o domain.Operator
	err := r.DB.Get(&o, `SELECT `+operatorCols+` FROM operators o WHERE LOWER(o.email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OperatorRepo) List() ([]domain.Operator, error) {
	var ops []domain.Operator
	err := r.DB.Select(&ops, `SELECT `+operatorCols+` FROM operators o ORDER BY o.email`)
	return ops, err
}

// StartSession records sid as signed in to operatorID until now+ttl. The
// previous session, if any, is deleted in the same transaction so a sid
// handed out before login never becomes an authenticated one.
func (r *OperatorRepo) StartSession(prev, sid, operatorID string, ttl time.Duration) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if prev != "" {
		if _, err := tx.Exec(`DELETE FROM sessions WHERE id=?`, prev); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM sessions WHERE expires_at<=?`, now.Format(stamp)); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO sessions(id,operator_id,expires_at) VALUES(?,?,?)`,
		sid, operatorID, now.Add(ttl).Format(stamp)); err != nil {
		return err
	}
	return tx.Commit()
}

// SessionOperator resolves a live session; expired and unknown sids are sql.ErrNoRows.
func (r *OperatorRepo) SessionOperator(sid string) (*domain.Operator, error) {
	var o domain.Operator
	err := r.DB.Get(&o, `
      SELECT `+operatorCols+`
      FROM sessions s
      JOIN operators o ON o.id=s.operator_id
      WHERE s.id=? AND s.expires_at>?`, sid, time.Now().UTC().Format(stamp))
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OperatorRepo) EndSession(sid string) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE id=?`, sid)
	return err
}
