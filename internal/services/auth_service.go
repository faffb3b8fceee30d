package services

import (
	"context"
	"fmt"
	"sync"

	"swapnstay/internal/domain"
	applog "swapnstay/internal/log"
	"swapnstay/internal/repos"
	"swapnstay/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const hashCost = 12

// AuthEvent announces that the user bound to a session changed. User is nil
// after sign-out.
type AuthEvent struct {
	SessionID string
	User      *domain.SessionUser
}

type AuthListener func(ctx context.Context, ev AuthEvent)

type SignUpRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Confirm  string
}

// AuthService is the session provider: credentials and sessions live in
// UserRepo, public profiles in the "users" document collection.
type AuthService struct {
	Users    *repos.UserRepo
	Profiles DocumentStore

	mu        sync.RWMutex
	listeners []AuthListener
}

func NewAuthService(users *repos.UserRepo, profiles DocumentStore) *AuthService {
	return &AuthService{Users: users, Profiles: profiles}
}

// OnAuthStateChanged registers fn for every sign-in, sign-up and sign-out.
func (s *AuthService) OnAuthStateChanged(fn AuthListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *AuthService) emit(ctx context.Context, sid string, u *domain.SessionUser) {
	s.mu.RLock()
	ls := append([]AuthListener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, fn := range ls {
		fn(ctx, AuthEvent{SessionID: sid, User: u})
	}
}

// SignUp registers a user, stores the profile and signs the session in.
func (s *AuthService) SignUp(ctx context.Context, sid string, req SignUpRequest) (*domain.SessionUser, error) {
	if req.Password != req.Confirm {
		return nil, ErrPasswordMismatch
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return nil, ErrInvalidName
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return nil, ErrInvalidEmail
	}
	phone, ok := validate.Phone(req.Phone)
	if !ok {
		return nil, ErrInvalidPhone
	}
	if !validate.Password(req.Password) {
		return nil, ErrWeakPassword
	}

	h, err := bcrypt.GenerateFromPassword([]byte(req.Password), hashCost)
	if err != nil {
		return nil, err
	}
	u := domain.User{ID: uuid.NewString(), Email: email, Name: name, Phone: phone, Hash: string(h), Role: domain.RoleUser}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	profile := domain.Profile{Name: name, Email: email, Phone: phone}
	if err := s.Profiles.Set(ctx, repos.Users, u.ID, profile); err != nil {
		// no profile, no account: the email stays free for a retry
		if derr := s.Users.Delete(u.ID); derr != nil {
			applog.Error(nil, "auth.signup.rollback.fail", derr, map[string]any{"user_id": u.ID})
		}
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	su := u.Session()
	s.emit(ctx, sid, su)
	return su, nil
}

func (s *AuthService) SignIn(ctx context.Context, sid, email, password string) (*domain.SessionUser, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	su := u.Session()
	s.emit(ctx, sid, su)
	return su, nil
}

func (s *AuthService) SignOut(ctx context.Context, sid string) error {
	if err := s.Users.UnbindSession(sid); err != nil {
		return err
	}
	s.emit(ctx, sid, nil)
	return nil
}

// CurrentUser resolves the user bound to sid.
func (s *AuthService) CurrentUser(sid string) (*domain.SessionUser, error) {
	u, err := s.Users.SessionUser(sid)
	if err != nil {
		return nil, err
	}
	return u.Session(), nil
}
