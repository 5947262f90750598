package usecase

import (
	"context"
	"time"

	"sharespace/internal/domain/entity"
	"sharespace/internal/domain/repository"
	"sharespace/pkg/errors"
	"sharespace/pkg/logger"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	auth     AuthClient
	mailer   Mailer
}

func NewAuthUseCase(userRepo repository.UserRepository, auth AuthClient, mailer Mailer) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		auth:     auth,
		mailer:   mailer,
	}
}

type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Phone      string
	College    string
	Department string
	RollNumber string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	uid, err := uc.auth.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:         uid,
		Email:      input.Email,
		Name:       input.Name,
		Phone:      input.Phone,
		College:    input.College,
		Department: input.Department,
		RollNumber: input.RollNumber,
		Role:       "user",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, err := uc.auth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	// Welcome email is best-effort; a failed send must never fail registration.
	go func() {
		if err := uc.mailer.SendRegistrationEmail(context.Background(), user.Email, user.Name); err != nil {
			logger.Warn("Failed to send registration email to %s: %v", user.Email, err)
		}
	}()

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.auth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.loadProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := uc.mailer.SendLoginEmail(context.Background(), user.Email, user.Name); err != nil {
			logger.Warn("Failed to send login email to %s: %v", user.Email, err)
		}
	}()

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

// Logout revokes the user's sessions remotely. The caller always clears its
// local identity state, so a failed revoke is logged but not surfaced.
func (uc *AuthUseCase) Logout(ctx context.Context, uid string) error {
	if err := uc.auth.RevokeSessions(ctx, uid); err != nil {
		logger.Warn("Failed to revoke sessions for %s: %v", uid, err)
	}
	return nil
}

// RestoreSession rebuilds the profile from a persisted ID token without
// requiring credentials again.
func (uc *AuthUseCase) RestoreSession(ctx context.Context, idToken string) (*entity.User, error) {
	uid, err := uc.auth.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Session expired or invalid", err)
	}

	return uc.loadProfile(ctx, uid)
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return uc.loadProfile(ctx, id)
}

// loadProfile fetches the user record and derives the role flag from the
// role-assignment collection.
func (uc *AuthUseCase) loadProfile(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	role, err := uc.userRepo.GetRole(ctx, uid)
	if err != nil {
		logger.Warn("Failed to resolve role for %s, defaulting to user: %v", uid, err)
		role = "user"
	}
	user.Role = role

	return user, nil
}
