package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"sharespace/internal/domain/entity"
	"sharespace/internal/domain/repository"
	"sharespace/pkg/errors"
)

type firestoreRatingRepository struct {
	client *firestore.Client
}

func NewFirestoreRatingRepository(client *firestore.Client) repository.RatingRepository {
	return &firestoreRatingRepository{
		client: client,
	}
}

func (r *firestoreRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}

	now := time.Now()
	rating.CreatedAt = now
	rating.UpdatedAt = now

	_, err := r.client.Collection("seller_ratings").Doc(rating.ID).Set(ctx, rating)
	if err != nil {
		return errors.Internal("Failed to create rating", err)
	}

	return nil
}

func (r *firestoreRatingRepository) GetBySellerAndBuyer(ctx context.Context, sellerID, buyerID string) (*entity.Rating, error) {
	iter := r.client.Collection("seller_ratings").
		Where("sellerId", "==", sellerID).
		Where("buyerId", "==", buyerID).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Rating", nil)
		}
		return nil, errors.Internal("Failed to query rating", err)
	}

	var rating entity.Rating
	if err := doc.DataTo(&rating); err != nil {
		return nil, errors.Internal("Failed to parse rating data", err)
	}

	return &rating, nil
}

func (r *firestoreRatingRepository) ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Rating, error) {
	iter := r.client.Collection("seller_ratings").
		Where("sellerId", "==", sellerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	var ratings []*entity.Rating
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate ratings", err)
		}

		var rating entity.Rating
		if err := doc.DataTo(&rating); err != nil {
			return nil, errors.Internal("Failed to parse rating data", err)
		}
		ratings = append(ratings, &rating)
	}

	return ratings, nil
}

func (r *firestoreRatingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	rating.UpdatedAt = time.Now()

	_, err := r.client.Collection("seller_ratings").Doc(rating.ID).Set(ctx, rating)
	if err != nil {
		return errors.Internal("Failed to update rating", err)
	}

	return nil
}

func (r *firestoreRatingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("seller_ratings").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete rating", err)
	}

	return nil
}
