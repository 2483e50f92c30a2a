package services

import (
	"errors"
	"time"

	"schoolbooks/internal/domain"
	"schoolbooks/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

const DefaultSessionTTL = 12 * time.Hour

// dummyHash keeps an unknown email as slow as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("schoolbooks-no-such-operator"), bcrypt.MinCost)

// AuthService signs operators in to the back-office. Sessions live in sqlite
// and are keyed by the sid cookie.
type AuthService struct {
	Operators *repos.OperatorRepo
	TTL       time.Duration
}

// Login verifies the credentials and starts a new session under a freshly
// issued sid, retiring prev. The caller must hand the returned sid to the browser.
func (s *AuthService) Login(prev, email, password string) (string, *domain.Operator, error) {
	o, err := s.Operators.ByEmail(email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(o.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	sid := uuid.NewString()
	if err := s.Operators.StartSession(prev, sid, o.ID, s.ttl()); err != nil {
		return "", nil, err
	}
	return sid, o, nil
}

func (s *AuthService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

// SessionExpiry is when a session started now stops being valid.
func (s *AuthService) SessionExpiry() time.Time { return time.Now().Add(s.ttl()) }

func (s *AuthService) Logout(sid string) error {
	return s.Operators.EndSession(sid)
}

func (s *AuthService) CurrentOperator(sid string) (*domain.Operator, error) {
	return s.Operators.SessionOperator(sid)
}

// ListOperators is shown read-only on the settings page.
func (s *AuthService) ListOperators() ([]domain.Operator, error) {
	return s.Operators.List()
}
