package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/journalkeeper/api/internal/domain/entity"
	"github.com/journalkeeper/api/internal/domain/repository"
	"github.com/journalkeeper/api/pkg/helpers"
)

var (
	ErrNoSuchIdentity = errors.New("no user with that email")
	ErrWrongSecret    = errors.New("password mismatch")
)

// AuthService verifies Basic-auth credentials against stored accounts.
type AuthService struct {
	Repo   repository.UserRepository
	Logger *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, Logger: logger}
}

// Verify checks an email/password pair. The email is matched exactly as
// presented (stored emails are already trimmed at write time); the password
// is compared untrimmed against the stored bcrypt hash.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSuchIdentity
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrWrongSecret
	}
	return u, nil
}
