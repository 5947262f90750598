package usecase

import (
	"context"

	"sharespace/internal/domain/entity"
	"sharespace/internal/domain/repository"
	"sharespace/pkg/errors"
	"sharespace/pkg/logger"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	convRepo     repository.ConversationRepository
	feedbackRepo repository.FeedbackRepository
	auth         AuthClient
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	convRepo repository.ConversationRepository,
	feedbackRepo repository.FeedbackRepository,
	auth AuthClient,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		productRepo:  productRepo,
		convRepo:     convRepo,
		feedbackRepo: feedbackRepo,
		auth:         auth,
	}
}

type UpdateProfileInput struct {
	Name       string
	Phone      string
	College    string
	Department string
	RollNumber string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	role, err := uc.userRepo.GetRole(ctx, uid)
	if err == nil {
		user.Role = role
	}

	return user, nil
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.College != "" {
		user.College = input.College
	}
	if input.Department != "" {
		user.Department = input.Department
	}
	if input.RollNumber != "" {
		user.RollNumber = input.RollNumber
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount removes the identity and the profile row, cascading to the
// user's products, authored messages and authored feedback.
func (uc *UserUseCase) DeleteAccount(ctx context.Context, uid string) error {
	products, err := uc.productRepo.ListBySellerID(ctx, uid)
	if err != nil {
		return err
	}
	for _, product := range products {
		if err := uc.productRepo.Delete(ctx, product.ID); err != nil {
			logger.Warn("Failed to delete product %s during account removal: %v", product.ID, err)
		}
	}

	conversations, err := uc.convRepo.ListByUserID(ctx, uid)
	if err != nil {
		return err
	}
	for _, conversation := range conversations {
		if err := uc.scrubConversation(ctx, conversation, uid); err != nil {
			logger.Warn("Failed to scrub conversation %s during account removal: %v", conversation.ID, err)
		}
	}

	feedbacks, err := uc.feedbackRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, feedback := range feedbacks {
		if feedback.UserID != uid {
			continue
		}
		if err := uc.feedbackRepo.Delete(ctx, feedback.ID); err != nil {
			logger.Warn("Failed to delete feedback %s during account removal: %v", feedback.ID, err)
		}
	}

	if err := uc.auth.DeleteUser(ctx, uid); err != nil {
		return errors.Internal("Failed to delete identity", err)
	}

	return uc.userRepo.Delete(ctx, uid)
}

// scrubConversation deletes the user's authored messages and recomputes the
// conversation's denormalized last-message fields from the remaining tail.
func (uc *UserUseCase) scrubConversation(ctx context.Context, conversation *entity.Conversation, uid string) error {
	messages, err := uc.convRepo.GetMessagesByConversation(ctx, conversation.ID)
	if err != nil {
		return err
	}

	var remaining []*entity.Message
	for _, message := range messages {
		if message.SenderID != uid {
			remaining = append(remaining, message)
			continue
		}
		if err := uc.convRepo.DeleteMessage(ctx, conversation.ID, message.ID); err != nil {
			return err
		}
	}

	if len(remaining) == 0 {
		conversation.LastMessage = ""
		conversation.LastMessageAt = nil
	} else {
		tail := remaining[len(remaining)-1]
		conversation.LastMessage = tail.Preview()
		lastAt := tail.CreatedAt
		conversation.LastMessageAt = &lastAt
	}

	return uc.convRepo.Update(ctx, conversation)
}
