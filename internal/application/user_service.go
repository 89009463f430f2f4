package application

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/journalkeeper/api/internal/domain/entity"
	"github.com/journalkeeper/api/internal/domain/repository"
	"github.com/journalkeeper/api/pkg/apperrors"
	"github.com/journalkeeper/api/pkg/helpers"
)

// UserService implements the User resource manager: validation, trimming,
// uniqueness and the public lifecycle of accounts.
type UserService struct {
	Repo   repository.UserRepository
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Logger: logger}
}

// UserPayload is the decoded JSON body for create/update. Pointers
// distinguish an absent field from a supplied one so PUT can merge subsets.
type UserPayload struct {
	Username *string `json:"username"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// requireTrimmed enforces field presence and returns the trimmed value.
// A missing field and a blank one fail the same way.
func requireTrimmed(p *string, field string) (string, error) {
	if p == nil {
		return "", apperrors.MissingField(field)
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return "", apperrors.MissingField(field)
	}
	return v, nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// Create registers a new account. Fields are checked for presence in
// declaration order so the first absent one names the failure.
func (s *UserService) Create(ctx context.Context, p UserPayload) (*entity.User, error) {
	username, err := requireTrimmed(p.Username, "username")
	if err != nil {
		return nil, err
	}
	name, err := requireTrimmed(p.Name, "name")
	if err != nil {
		return nil, err
	}
	email, err := requireTrimmed(p.Email, "email")
	if err != nil {
		return nil, err
	}
	password, err := requireTrimmed(p.Password, "password")
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.DuplicateUsername()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.DuplicateEmail()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{Username: username, Name: name, Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		// The unique constraints are the serialization point for concurrent
		// registrations; re-map a lost race to the same duplicate failure.
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, apperrors.DuplicateUsername()
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperrors.DuplicateEmail()
		}
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user created")
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.UserNotFound(strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return u, nil
}

// Update merges any supplied subset of fields into the stored account.
// Supplied values are trimmed; blank-after-trim values are ignored.
// Username and email are checked for uniqueness against all other users.
func (s *UserService) Update(ctx context.Context, id int64, p UserPayload) (*entity.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if username := trimmed(p.Username); username != "" && username != u.Username {
		if other, err := s.Repo.GetByUsername(ctx, username); err == nil && other.ID != id {
			return nil, apperrors.DuplicateUsernameValue(username)
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		u.Username = username
	}
	if name := trimmed(p.Name); name != "" {
		u.Name = name
	}
	if email := trimmed(p.Email); email != "" && email != u.Email {
		if other, err := s.Repo.GetByEmail(ctx, email); err == nil && other.ID != id {
			return nil, apperrors.DuplicateEmailValue(email)
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		u.Email = email
	}
	if password := trimmed(p.Password); password != "" {
		hash, err := helpers.HashPassword(password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, apperrors.DuplicateUsernameValue(u.Username)
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperrors.DuplicateEmailValue(u.Email)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.UserNotFound(strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.UserNotFound(strconv.FormatInt(id, 10))
		}
		return err
	}
	s.Logger.WithField("user_id", id).Info("user deleted")
	return nil
}
