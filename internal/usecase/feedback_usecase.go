package usecase

import (
	"context"
	"sync"

	"sharespace/internal/domain/entity"
	"sharespace/internal/domain/repository"
	"sharespace/pkg/errors"
	"sharespace/pkg/logger"
)

type FeedbackView struct {
	*entity.Feedback
	AuthorName  string `json:"author_name,omitempty"`
	AuthorEmail string `json:"author_email,omitempty"`
}

// FeedbackUseCase mirrors the feedback collection, newest first, with author
// display fields joined at refresh time.
type FeedbackUseCase struct {
	feedbackRepo repository.FeedbackRepository
	userRepo     repository.UserRepository

	mu       sync.RWMutex
	snapshot []*FeedbackView
}

func NewFeedbackUseCase(feedbackRepo repository.FeedbackRepository, userRepo repository.UserRepository) *FeedbackUseCase {
	return &FeedbackUseCase{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
	}
}

func (uc *FeedbackUseCase) Refresh(ctx context.Context) error {
	feedbacks, err := uc.feedbackRepo.List(ctx)
	if err != nil {
		return err
	}

	authors := make(map[string]*entity.User)
	views := make([]*FeedbackView, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		author, ok := authors[feedback.UserID]
		if !ok {
			author, err = uc.userRepo.GetByID(ctx, feedback.UserID)
			if err != nil {
				logger.Warn("Author %s missing for feedback %s: %v", feedback.UserID, feedback.ID, err)
				author = &entity.User{ID: feedback.UserID}
			}
			authors[feedback.UserID] = author
		}

		views = append(views, &FeedbackView{
			Feedback:    feedback,
			AuthorName:  author.Name,
			AuthorEmail: author.Email,
		})
	}

	uc.mu.Lock()
	uc.snapshot = views
	uc.mu.Unlock()

	return nil
}

// List returns the cached feedback set. Routes calling this require an
// authenticated identity; there is no anonymous feedback browsing.
func (uc *FeedbackUseCase) List(ctx context.Context) ([]*FeedbackView, error) {
	uc.mu.RLock()
	cached := uc.snapshot
	uc.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}

	if err := uc.Refresh(ctx); err != nil {
		return nil, err
	}

	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.snapshot, nil
}

func (uc *FeedbackUseCase) Submit(ctx context.Context, authorID, subject, message, category string) (*entity.Feedback, error) {
	if message == "" {
		return nil, errors.BadRequest("Feedback message is required", nil)
	}
	if !entity.ValidFeedbackCategory(category) {
		return nil, errors.BadRequest("Invalid feedback category", nil)
	}

	feedback := &entity.Feedback{
		UserID:   authorID,
		Subject:  subject,
		Message:  message,
		Category: category,
		Status:   entity.FeedbackStatusPending,
	}

	if err := uc.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	if err := uc.Refresh(ctx); err != nil {
		logger.Warn("Feedback refresh after submit failed: %v", err)
	}

	return feedback, nil
}

// SetStatus moves feedback between pending, reviewed and resolved in any
// direction. Administrator-only; the route is gated by the admin middleware.
func (uc *FeedbackUseCase) SetStatus(ctx context.Context, id, status string) (*entity.Feedback, error) {
	if !entity.ValidFeedbackStatus(status) {
		return nil, errors.BadRequest("Invalid feedback status", nil)
	}

	feedback, err := uc.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	feedback.Status = status

	if err := uc.feedbackRepo.Update(ctx, feedback); err != nil {
		return nil, err
	}

	if err := uc.Refresh(ctx); err != nil {
		logger.Warn("Feedback refresh after status change failed: %v", err)
	}

	return feedback, nil
}

func (uc *FeedbackUseCase) Remove(ctx context.Context, id string) error {
	if _, err := uc.feedbackRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.feedbackRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := uc.Refresh(ctx); err != nil {
		logger.Warn("Feedback refresh after delete failed: %v", err)
	}

	return nil
}
