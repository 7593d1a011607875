package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mucyuneje/asamfxproduction/internal/domain"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := &fakeUsers{}
	svc := NewAuthService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.User{Email: "a@b.io", Password: "secret123", Name: "A", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, user.Role, "self-registration never grants admin")
	assert.NotEqual(t, "secret123", user.Password)

	_, err = svc.Register(ctx, domain.User{Email: "a@b.io", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	logged, err := svc.Login(ctx, "a@b.io", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = svc.Login(ctx, "a@b.io", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "nobody@b.io", "secret123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := &fakeUsers{}
	svc := NewAuthService(repo)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Admin", "admin@school.io", "admin1234")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, created.Role)

	again, err := svc.EnsureAdmin(ctx, "Admin", "admin@school.io", "other")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Len(t, repo.byEmail, 1)

	_, err = svc.Login(ctx, "admin@school.io", "admin1234")
	require.NoError(t, err, "the original password stays")
}

func TestAuthService_EnsureAdminKeepsExistingRole(t *testing.T) {
	repo := &fakeUsers{}
	svc := NewAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.User{Email: "taken@school.io", Password: "secret123"})
	require.NoError(t, err)

	user, err := svc.EnsureAdmin(ctx, "Admin", "taken@school.io", "admin1234")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, user.Role)
}

func TestUserService_GetUser(t *testing.T) {
	repo := &fakeUsers{}
	created, err := repo.Create(context.Background(), domain.User{Email: "a@b.io"})
	require.NoError(t, err)
	svc := NewUserService(repo)

	user, err := svc.GetUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.io", user.Email)

	_, err = svc.GetUser(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
