package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Phone string `db:"phone"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"`
}

// SessionUser is the identity handed out by the session provider.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) Session() *SessionUser {
	if u == nil {
		return nil
	}
	return &SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// DisplayName is the name, falling back to the email.
func (s *SessionUser) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

func (s *SessionUser) IsAdmin() bool { return s != nil && s.Role == RoleAdmin }
