package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journalkeeper/api/internal/domain/repository"
	"github.com/journalkeeper/api/pkg/apperrors"
	"github.com/journalkeeper/api/pkg/helpers"
)

func newUserService(repo *memUserRepo) *UserService {
	return NewUserService(repo, testLogger())
}

func fullPayload() UserPayload {
	return UserPayload{
		Username: strptr("jd"),
		Name:     strptr("John Doe"),
		Email:    strptr("john.doe@x.com"),
		Password: strptr("123"),
	}
}

func TestCreateUserAssignsSequentialIDs(t *testing.T) {
	repo := &memUserRepo{}
	svc := newUserService(repo)

	u, err := svc.Create(context.Background(), fullPayload())
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "jd", u.Username)

	second := fullPayload()
	second.Username = strptr("ms")
	second.Email = strptr("mary.smith@x.com")
	u2, err := svc.Create(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), u2.ID)
}

func TestCreateUserTrimsAllFields(t *testing.T) {
	repo := &memUserRepo{}
	svc := newUserService(repo)

	u, err := svc.Create(context.Background(), UserPayload{
		Username: strptr("  jd "),
		Name:     strptr(" John Doe "),
		Email:    strptr(" john.doe@x.com "),
		Password: strptr(" 123 "),
	})
	require.NoError(t, err)
	assert.Equal(t, "jd", u.Username)
	assert.Equal(t, "John Doe", u.Name)
	assert.Equal(t, "john.doe@x.com", u.Email)
	// The JSON-body password is trimmed before hashing; only the trimmed
	// form authenticates.
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "123"))
	assert.False(t, helpers.CompareHashAndPassword(u.Password, " 123 "))
}

func TestCreateUserMissingFieldsInDeclarationOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*UserPayload)
		message string
	}{
		{"username absent", func(p *UserPayload) { p.Username = nil }, "Your request body didn't specify a value for 'username'"},
		{"username blank", func(p *UserPayload) { p.Username = strptr("   ") }, "Your request body didn't specify a value for 'username'"},
		{"name absent", func(p *UserPayload) { p.Name = nil }, "Your request body didn't specify a value for 'name'"},
		{"email absent", func(p *UserPayload) { p.Email = nil }, "Your request body didn't specify a value for 'email'"},
		{"password absent", func(p *UserPayload) { p.Password = nil }, "Your request body didn't specify a value for 'password'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fullPayload()
			tt.mutate(&p)
			_, err := newUserService(&memUserRepo{}).Create(context.Background(), p)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestCreateUserMissingFieldNamesFirstAbsent(t *testing.T) {
	// Everything missing: the failure names username, the first in order.
	_, err := newUserService(&memUserRepo{}).Create(context.Background(), UserPayload{})
	require.Error(t, err)
	assert.Equal(t, "Your request body didn't specify a value for 'username'", err.Error())
}

func TestCreateUserDuplicates(t *testing.T) {
	repo := &memUserRepo{}
	svc := newUserService(repo)
	_, err := svc.Create(context.Background(), fullPayload())
	require.NoError(t, err)

	// Same trimmed username, different everything else.
	p := fullPayload()
	p.Username = strptr(" jd ")
	p.Email = strptr("other@x.com")
	_, err = svc.Create(context.Background(), p)
	require.Error(t, err)
	assert.Equal(t, "There already exists a User resource with the username that you provided", err.Error())

	// Same email, different username.
	p = fullPayload()
	p.Username = strptr("ms")
	_, err = svc.Create(context.Background(), p)
	require.Error(t, err)
	assert.Equal(t, "There already exists a User resource with the email that you provided", err.Error())
}

func TestCreateUserMapsConstraintRaceToDuplicate(t *testing.T) {
	// A concurrent registration that wins the race surfaces through the
	// unique constraint; the caller still sees the duplicate failure.
	repo := &memUserRepo{createErr: repository.ErrDuplicateEmail}
	_, err := newUserService(repo).Create(context.Background(), fullPayload())
	require.Error(t, err)
	assert.Equal(t, "There already exists a User resource with the email that you provided", err.Error())
}

func TestGetUserNotFound(t *testing.T) {
	_, err := newUserService(&memUserRepo{}).Get(context.Background(), 17)
	require.Error(t, err)
	var apiErr *apperrors.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "There doesn't exist a User resource with an ID of 17", apiErr.Message)
}

func TestUpdateUserMergesSubsetAndTrims(t *testing.T) {
	repo := &memUserRepo{}
	svc := newUserService(repo)
	u, err := svc.Create(context.Background(), fullPayload())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), u.ID, UserPayload{Username: strptr(" ms ")})
	require.NoError(t, err)
	assert.Equal(t, "ms", updated.Username)
	assert.Equal(t, "John Doe", updated.Name)
	assert.Equal(t, "john.doe@x.com", updated.Email)
}

func TestUpdateUserDuplicateNamesValue(t *testing.T) {
	repo := &memUserRepo{}
	svc := newUserService(repo)
	_, err := svc.Create(context.Background(), fullPayload())
	require.NoError(t, err)

	p := fullPayload()
	p.Username = strptr("ms")
	p.Email = strptr("mary.smith@x.com")
	second, err := svc.Create(context.Background(), p)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), second.ID, UserPayload{Username: strptr("jd")})
	require.Error(t, err)
	assert.Equal(t, "There already exists a User resource with a username of 'jd'", err.Error())

	_, err = svc.Update(context.Background(), second.ID, UserPayload{Email: strptr("john.doe@x.com")})
	require.Error(t, err)
	assert.Equal(t, "There already exists a User resource with an email of 'john.doe@x.com'", err.Error())
}

func TestUpdateUserKeepingOwnValuesIsNotADuplicate(t *testing.T) {
	repo := &memUserRepo{}
	svc := newUserService(repo)
	u, err := svc.Create(context.Background(), fullPayload())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), u.ID, UserPayload{
		Username: strptr("jd"),
		Email:    strptr("john.doe@x.com"),
		Name:     strptr("Johnny"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", updated.Name)
}

func TestDeleteUser(t *testing.T) {
	repo := &memUserRepo{}
	svc := newUserService(repo)
	u, err := svc.Create(context.Background(), fullPayload())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), u.ID))
	_, err = svc.Get(context.Background(), u.ID)
	assert.Error(t, err)
}

func TestListUsersInsertionOrder(t *testing.T) {
	repo := &memUserRepo{}
	svc := newUserService(repo)
	_, err := svc.Create(context.Background(), fullPayload())
	require.NoError(t, err)
	p := fullPayload()
	p.Username = strptr("ms")
	p.Email = strptr("mary.smith@x.com")
	_, err = svc.Create(context.Background(), p)
	require.NoError(t, err)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "jd", users[0].Username)
	assert.Equal(t, "ms", users[1].Username)
}
