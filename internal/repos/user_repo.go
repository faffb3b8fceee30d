package repos

import (
	"errors"

	"swapnstay/internal/domain"

	"github.com/jmoiron/sqlx"
)

var ErrEmailTaken = errors.New("email already registered")

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new credential row. Emails are unique case-insensitively.
func (r *UserRepo) Create(u domain.User) error {
	if _, err := r.ByEmail(u.Email); err == nil {
		return ErrEmailTaken
	}
	_, err := r.DB.Exec(r.DB.Rebind(`
		INSERT INTO users(id,email,name,phone,password_hash,role)
		VALUES(?,?,?,?,?,?)
	`), u.ID, u.Email, u.Name, u.Phone, u.Hash, u.Role)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, r.DB.Rebind(`SELECT id,email,name,phone,password_hash,role FROM users WHERE LOWER(email)=LOWER(?)`), email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, r.DB.Rebind(`SELECT id,email,name,phone,password_hash,role FROM users WHERE id=?`), id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Count() (int, error) {
	var n int
	err := r.DB.Get(&n, `SELECT COUNT(*) FROM users`)
	return n, err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(r.DB.Rebind(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`), sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, r.DB.Rebind(`
      SELECT u.id,u.email,u.name,u.phone,u.password_hash,u.role
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`), sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(r.DB.Rebind(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`), sid)
	return err
}

// Delete removes a credential row and unbinds its sessions.
func (r *UserRepo) Delete(id string) error {
	if _, err := r.DB.Exec(r.DB.Rebind(`UPDATE sessions SET user_id=NULL WHERE user_id=?`), id); err != nil {
		return err
	}
	_, err := r.DB.Exec(r.DB.Rebind(`DELETE FROM users WHERE id=?`), id)
	return err
}
