package application

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/journalkeeper/api/internal/domain/entity"
	"github.com/journalkeeper/api/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func strptr(s string) *string { return &s }

// memUserRepo is an in-memory UserRepository. createErr forces the
// constraint-violation path that a lost uniqueness race would take.
type memUserRepo struct {
	users     []*entity.User
	nextID    int64
	createErr error
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *memUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	for i, stored := range r.users {
		if stored.ID == u.ID {
			cp := *u
			r.users[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	for i, stored := range r.users {
		if stored.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var _ repository.UserRepository = (*memUserRepo)(nil)

type memEntryRepo struct {
	entries []*entity.Entry
	nextID  int64
}

func (r *memEntryRepo) Create(_ context.Context, e *entity.Entry) error {
	r.nextID++
	e.ID = r.nextID
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *memEntryRepo) GetByIDAndOwner(_ context.Context, id, userID int64) (*entity.Entry, error) {
	for _, e := range r.entries {
		if e.ID == id && e.UserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memEntryRepo) ListByOwner(_ context.Context, userID int64) ([]*entity.Entry, error) {
	out := make([]*entity.Entry, 0)
	for _, e := range r.entries {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memEntryRepo) Update(_ context.Context, e *entity.Entry) error {
	for i, stored := range r.entries {
		if stored.ID == e.ID && stored.UserID == e.UserID {
			cp := *e
			r.entries[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memEntryRepo) DeleteByIDAndOwner(_ context.Context, id, userID int64) error {
	for i, stored := range r.entries {
		if stored.ID == id && stored.UserID == userID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var _ repository.EntryRepository = (*memEntryRepo)(nil)
