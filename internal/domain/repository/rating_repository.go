package repository

import (
	"context"

	"sharespace/internal/domain/entity"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	GetBySellerAndBuyer(ctx context.Context, sellerID, buyerID string) (*entity.Rating, error)
	ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Rating, error)
	Update(ctx context.Context, rating *entity.Rating) error
	Delete(ctx context.Context, id string) error
}
