package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sharespace/internal/domain/entity"
	"sharespace/internal/domain/repository"
	"sharespace/pkg/errors"
)

type firestoreFeedbackRepository struct {
	client *firestore.Client
}

func NewFirestoreFeedbackRepository(client *firestore.Client) repository.FeedbackRepository {
	return &firestoreFeedbackRepository{
		client: client,
	}
}

func (r *firestoreFeedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}

	now := time.Now()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now

	_, err := r.client.Collection("feedback").Doc(feedback.ID).Set(ctx, feedback)
	if err != nil {
		return errors.Internal("Failed to create feedback", err)
	}

	return nil
}

func (r *firestoreFeedbackRepository) GetByID(ctx context.Context, id string) (*entity.Feedback, error) {
	doc, err := r.client.Collection("feedback").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Feedback", err)
		}
		return nil, errors.Internal("Failed to get feedback", err)
	}

	var feedback entity.Feedback
	if err := doc.DataTo(&feedback); err != nil {
		return nil, errors.Internal("Failed to parse feedback data", err)
	}

	return &feedback, nil
}

func (r *firestoreFeedbackRepository) List(ctx context.Context) ([]*entity.Feedback, error) {
	iter := r.client.Collection("feedback").OrderBy("createdAt", firestore.Desc).Documents(ctx)

	var feedbacks []*entity.Feedback
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate feedback", err)
		}

		var feedback entity.Feedback
		if err := doc.DataTo(&feedback); err != nil {
			return nil, errors.Internal("Failed to parse feedback data", err)
		}
		feedbacks = append(feedbacks, &feedback)
	}

	return feedbacks, nil
}

func (r *firestoreFeedbackRepository) Update(ctx context.Context, feedback *entity.Feedback) error {
	feedback.UpdatedAt = time.Now()

	_, err := r.client.Collection("feedback").Doc(feedback.ID).Set(ctx, feedback)
	if err != nil {
		return errors.Internal("Failed to update feedback", err)
	}

	return nil
}

func (r *firestoreFeedbackRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("feedback").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete feedback", err)
	}

	return nil
}
