package user

import (
	"context"
	"errors"
	"testing"

	"intellidash/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users []domain.User
	err   error
}

func (f *fakeUserRepo) FindAll(context.Context) ([]domain.User, error) {
	return f.users, f.err
}

func TestGetAllUsers(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{users: []domain.User{{UserID: 1, Email: "a@example.com"}}})

	users, err := svc.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@example.com", users[0].Email)
}

func TestGetAllUsersError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewUserService(&fakeUserRepo{err: boom})

	_, err := svc.GetAllUsers(context.Background())
	assert.ErrorIs(t, err, boom)
}
