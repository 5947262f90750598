package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharespace/internal/domain/entity"
)

func newAuthEnv(t *testing.T) (*AuthUseCase, *fakeUserRepo, *fakeAuthClient, *fakeMailer) {
	t.Helper()

	userRepo := newFakeUserRepo()
	authClient := newFakeAuthClient()
	mailer := &fakeMailer{}
	uc := NewAuthUseCase(userRepo, authClient, mailer)
	return uc, userRepo, authClient, mailer
}

func TestRegisterAndLogin(t *testing.T) {
	uc, userRepo, _, _ := newAuthEnv(t)
	ctx := context.Background()

	result, err := uc.Register(ctx, RegisterInput{
		Email:    "asha@campus.edu",
		Password: "secret-pass",
		Name:     "Asha",
		College:  "Engineering",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "user", result.User.Role)

	stored, err := userRepo.GetByEmail(ctx, "asha@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, "Asha", stored.Name)

	login, err := uc.Login(ctx, "asha@campus.edu", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, login.User.ID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc, _, _, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, RegisterInput{
		Email:    "asha@campus.edu",
		Password: "secret-pass",
		Name:     "Asha",
	})
	require.NoError(t, err)

	_, err = uc.Register(ctx, RegisterInput{
		Email:    "asha@campus.edu",
		Password: "other-pass",
		Name:     "Impostor",
	})
	assert.Error(t, err)
}

func TestRegisterSucceedsWhenMailerFails(t *testing.T) {
	uc, _, _, mailer := newAuthEnv(t)
	mailer.failure = assert.AnError

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "ravi@campus.edu",
		Password: "secret-pass",
		Name:     "Ravi",
	})
	assert.NoError(t, err)
}

func TestLoginInvalidCredentials(t *testing.T) {
	uc, _, authClient, _ := newAuthEnv(t)
	authClient.signInError = assert.AnError

	_, err := uc.Login(context.Background(), "nobody@campus.edu", "wrong")
	assert.Error(t, err)
}

func TestLoginResolvesAdminRole(t *testing.T) {
	uc, userRepo, authClient, _ := newAuthEnv(t)
	ctx := context.Background()

	userRepo.add(&entity.User{ID: "admin-1", Email: "admin@campus.edu", Name: "Admin"})
	userRepo.roles["admin-1"] = "admin"
	authClient.register("admin@campus.edu", "admin-1")

	result, err := uc.Login(ctx, "admin@campus.edu", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "admin", result.User.Role)
	assert.True(t, result.User.IsAdmin())
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	uc, _, authClient, _ := newAuthEnv(t)

	assert.NoError(t, uc.Logout(context.Background(), "uid-1"))
	assert.Equal(t, 1, authClient.revoked["uid-1"])

	// Even for an unknown uid the local flow must be allowed to complete.
	assert.NoError(t, uc.Logout(context.Background(), "ghost"))
}

func TestRestoreSession(t *testing.T) {
	uc, _, _, _ := newAuthEnv(t)
	ctx := context.Background()

	result, err := uc.Register(ctx, RegisterInput{
		Email:    "asha@campus.edu",
		Password: "secret-pass",
		Name:     "Asha",
	})
	require.NoError(t, err)

	user, err := uc.RestoreSession(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, user.ID)

	_, err = uc.RestoreSession(ctx, "bogus-token")
	assert.Error(t, err)
}
