package repository

import (
	"context"

	"sharespace/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error

	// GetRole resolves the user's role from the role-assignment collection,
	// defaulting to "user" when no assignment exists.
	GetRole(ctx context.Context, userID string) (string, error)
}
