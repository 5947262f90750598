package repository

import (
	"context"

	"sharespace/internal/domain/entity"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// List returns the full product set, active and blocked alike. Filtering
	// for the viewer happens in the catalog layer.
	List(ctx context.Context) ([]*entity.Product, error)
	ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error

	// Watch subscribes to the product collection's change feed and invokes
	// onChange on every notification until the returned stop function is
	// called or ctx is cancelled.
	Watch(ctx context.Context, onChange func()) func()
}
