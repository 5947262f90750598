package usecase

import (
	"context"

	"sharespace/internal/domain/entity"
	"sharespace/internal/domain/repository"
	"sharespace/pkg/errors"
)

type RatingUseCase struct {
	ratingRepo repository.RatingRepository
	userRepo   repository.UserRepository
}

func NewRatingUseCase(ratingRepo repository.RatingRepository, userRepo repository.UserRepository) *RatingUseCase {
	return &RatingUseCase{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
	}
}

// RateSeller records a buyer's rating for a seller. A second rating from the
// same buyer overwrites the first; the seller's aggregate rating and review
// count are recomputed from the full rating set afterwards.
func (uc *RatingUseCase) RateSeller(ctx context.Context, buyerID, sellerID string, value int, comment string) (*entity.Rating, error) {
	if buyerID == sellerID {
		return nil, errors.BadRequest("Cannot rate yourself", nil)
	}
	if value < 1 || value > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, errors.NotFound("Seller", err)
	}

	rating, err := uc.ratingRepo.GetBySellerAndBuyer(ctx, sellerID, buyerID)
	if err == nil {
		rating.Rating = value
		rating.Comment = comment
		if err := uc.ratingRepo.Update(ctx, rating); err != nil {
			return nil, err
		}
	} else if errors.Is(err, "NOT_FOUND") {
		rating = &entity.Rating{
			SellerID: sellerID,
			BuyerID:  buyerID,
			Rating:   value,
			Comment:  comment,
		}
		if err := uc.ratingRepo.Create(ctx, rating); err != nil {
			return nil, err
		}
	} else {
		return nil, err
	}

	if err := uc.recomputeSellerAggregate(ctx, seller); err != nil {
		return nil, err
	}

	return rating, nil
}

func (uc *RatingUseCase) ListForSeller(ctx context.Context, sellerID string) ([]*entity.Rating, error) {
	return uc.ratingRepo.ListBySellerID(ctx, sellerID)
}

func (uc *RatingUseCase) recomputeSellerAggregate(ctx context.Context, seller *entity.User) error {
	ratings, err := uc.ratingRepo.ListBySellerID(ctx, seller.ID)
	if err != nil {
		return err
	}

	var total int
	for _, r := range ratings {
		total += r.Rating
	}

	seller.SellerReviewCount = len(ratings)
	if len(ratings) > 0 {
		seller.SellerRating = float64(total) / float64(len(ratings))
	} else {
		seller.SellerRating = 0
	}

	return uc.userRepo.Update(ctx, seller)
}
