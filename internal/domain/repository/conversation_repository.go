package repository

import (
	"context"

	"sharespace/internal/domain/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	// GetByParticipants looks up the unique conversation for a
	// (buyer, seller, product) triple.
	GetByParticipants(ctx context.Context, buyerID, sellerID, productID string) (*entity.Conversation, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Conversation, error)
	Update(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id string) error

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessageByID(ctx context.Context, conversationID, messageID string) (*entity.Message, error)
	// GetMessagesByConversation returns all messages ordered by creation time ascending.
	GetMessagesByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error)
	UpdateMessage(ctx context.Context, message *entity.Message) error
	DeleteMessage(ctx context.Context, conversationID, messageID string) error

	// WatchMessages subscribes to the conversation's message change feed.
	WatchMessages(ctx context.Context, conversationID string, onChange func()) func()
}
