package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"sharespace/internal/domain/entity"
	"sharespace/internal/domain/repository"
	ws "sharespace/internal/infrastructure/websocket"
	"sharespace/pkg/errors"
	"sharespace/pkg/logger"
)

type ConversationView struct {
	*entity.Conversation
	CounterpartyName string `json:"counterparty_name,omitempty"`
}

type MessageView struct {
	*entity.Message
	SenderName string `json:"sender_name,omitempty"`
}

// ChatUseCase mirrors the current users' conversations and, per loaded
// conversation, its message list. Writes go through to the conversation
// repository and are followed by a re-fetch of the affected collection.
type ChatUseCase struct {
	convRepo  repository.ConversationRepository
	userRepo  repository.UserRepository
	uploader  Uploader
	wsManager *ws.Manager

	maxImageBytes int64

	mu            sync.RWMutex
	conversations map[string][]*ConversationView // keyed by user ID
	messages      map[string][]*MessageView      // keyed by conversation ID
	watchStops    map[string]func()              // keyed by conversation ID
}

func NewChatUseCase(
	convRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	uploader Uploader,
	wsManager *ws.Manager,
	maxImageBytes int64,
) *ChatUseCase {
	return &ChatUseCase{
		convRepo:      convRepo,
		userRepo:      userRepo,
		uploader:      uploader,
		wsManager:     wsManager,
		maxImageBytes: maxImageBytes,
		conversations: make(map[string][]*ConversationView),
		messages:      make(map[string][]*MessageView),
		watchStops:    make(map[string]func()),
	}
}

// ListForUser fetches the user's conversations, ordered by last-message time
// descending with message-less conversations last, and replaces the cached
// list for that user.
func (uc *ChatUseCase) ListForUser(ctx context.Context, userID string) ([]*ConversationView, error) {
	conversations, err := uc.convRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	views := make([]*ConversationView, 0, len(conversations))
	for _, conversation := range conversations {
		counterpartyID := conversation.SellerID
		if counterpartyID == userID {
			counterpartyID = conversation.BuyerID
		}

		name, ok := names[counterpartyID]
		if !ok {
			counterparty, err := uc.userRepo.GetByID(ctx, counterpartyID)
			if err != nil {
				logger.Warn("Counterparty %s missing for conversation %s: %v", counterpartyID, conversation.ID, err)
			} else {
				name = counterparty.Name
			}
			names[counterpartyID] = name
		}

		views = append(views, &ConversationView{
			Conversation:     conversation,
			CounterpartyName: name,
		})
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].LastMessageAt, views[j].LastMessageAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	uc.mu.Lock()
	uc.conversations[userID] = views
	uc.mu.Unlock()

	return views, nil
}

// EnsureConversation returns the conversation for (user, counterparty,
// product), creating it on first contact. Repeat calls resolve to the same
// conversation. The lookup-then-create window is not atomic against a
// concurrent duplicate creation; the store's uniqueness is best-effort here.
func (uc *ChatUseCase) EnsureConversation(ctx context.Context, userID, counterpartyID, productID string) (*entity.Conversation, error) {
	if userID == counterpartyID {
		return nil, errors.BadRequest("Cannot start a conversation with yourself", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, counterpartyID); err != nil {
		return nil, errors.NotFound("User", err)
	}

	conversation, err := uc.convRepo.GetByParticipants(ctx, userID, counterpartyID, productID)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	// Same pair with roles reversed still counts as the same conversation.
	conversation, err = uc.convRepo.GetByParticipants(ctx, counterpartyID, userID, productID)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	conversation = &entity.Conversation{
		BuyerID:      userID,
		SellerID:     counterpartyID,
		ProductID:    productID,
		Participants: []string{userID, counterpartyID},
	}

	if err := uc.convRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	if _, err := uc.ListForUser(ctx, userID); err != nil {
		logger.Warn("Conversation list refresh after create failed: %v", err)
	}

	return conversation, nil
}

// LoadMessages fetches all messages for a conversation ordered ascending by
// creation time, joins sender names, and replaces only that conversation's
// cached entries.
func (uc *ChatUseCase) LoadMessages(ctx context.Context, userID, conversationID string) ([]*MessageView, error) {
	conversation, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("Not a participant in this conversation", nil)
	}

	return uc.reloadMessages(ctx, conversationID)
}

func (uc *ChatUseCase) reloadMessages(ctx context.Context, conversationID string) ([]*MessageView, error) {
	messages, err := uc.convRepo.GetMessagesByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	views := make([]*MessageView, 0, len(messages))
	for _, message := range messages {
		name, ok := names[message.SenderID]
		if !ok {
			sender, err := uc.userRepo.GetByID(ctx, message.SenderID)
			if err == nil {
				name = sender.Name
			}
			names[message.SenderID] = name
		}

		views = append(views, &MessageView{
			Message:    message,
			SenderName: name,
		})
	}

	uc.mu.Lock()
	uc.messages[conversationID] = views
	uc.mu.Unlock()

	return views, nil
}

// CachedMessages reads the last-loaded message list without touching the store.
func (uc *ChatUseCase) CachedMessages(conversationID string) []*MessageView {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.messages[conversationID]
}

type SendMessageInput struct {
	ConversationID string
	Text           string
	ImageData      []byte
	ImageType      string
}

// Send inserts a message, uploading the image first when present, then
// updates the conversation's denormalized last-message fields and refreshes
// the sender's conversation list.
func (uc *ChatUseCase) Send(ctx context.Context, userID string, input SendMessageInput) (*MessageView, error) {
	if input.Text == "" && len(input.ImageData) == 0 {
		return nil, errors.BadRequest("Message must contain text or an image", nil)
	}

	conversation, err := uc.convRepo.GetByID(ctx, input.ConversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("Not a participant in this conversation", nil)
	}

	sender, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("Sender", err)
	}

	var imageURL string
	if len(input.ImageData) > 0 {
		if int64(len(input.ImageData)) > uc.maxImageBytes {
			return nil, errors.BadRequest("Image exceeds the maximum allowed size", nil)
		}

		imageURL, err = uc.uploader.Upload(ctx, input.ImageData, input.ImageType, "chat-images")
		if err != nil {
			return nil, errors.Internal("Failed to upload image", err)
		}
	}

	message := &entity.Message{
		ConversationID: input.ConversationID,
		SenderID:       userID,
		Text:           input.Text,
		ImageURL:       imageURL,
		CreatedAt:      time.Now(),
	}

	if err := uc.convRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	conversation.LastMessage = message.Preview()
	lastAt := message.CreatedAt
	conversation.LastMessageAt = &lastAt

	if err := uc.convRepo.Update(ctx, conversation); err != nil {
		return nil, err
	}

	if _, err := uc.ListForUser(ctx, userID); err != nil {
		logger.Warn("Conversation list refresh after send failed: %v", err)
	}
	if _, err := uc.reloadMessages(ctx, input.ConversationID); err != nil {
		logger.Warn("Message reload after send failed: %v", err)
	}

	view := &MessageView{
		Message:    message,
		SenderName: sender.Name,
	}

	uc.notifyRoom(input.ConversationID, userID, ws.MessageTypeNewMessage, view)

	return view, nil
}

// Edit updates a message's text and stamps the edited timestamp. Only the
// sender may edit. When the edited message is the conversation's most recent,
// the denormalized preview is updated as well.
func (uc *ChatUseCase) Edit(ctx context.Context, userID, conversationID, messageID, newText string) (*MessageView, error) {
	if newText == "" {
		return nil, errors.BadRequest("Message text must not be empty", nil)
	}

	message, err := uc.convRepo.GetMessageByID(ctx, conversationID, messageID)
	if err != nil {
		return nil, err
	}

	if message.SenderID != userID {
		return nil, errors.Forbidden("Only the sender may edit a message", nil)
	}

	now := time.Now()
	message.Text = newText
	message.EditedAt = &now

	if err := uc.convRepo.UpdateMessage(ctx, message); err != nil {
		return nil, err
	}

	views, err := uc.reloadMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if len(views) > 0 && views[len(views)-1].ID == messageID {
		conversation, err := uc.convRepo.GetByID(ctx, conversationID)
		if err == nil {
			conversation.LastMessage = message.Preview()
			if err := uc.convRepo.Update(ctx, conversation); err != nil {
				logger.Warn("Conversation preview update after edit failed: %v", err)
			}
		}
	}

	uc.notifyRoom(conversationID, userID, ws.MessageTypeMessagesSync, nil)

	return &MessageView{Message: message}, nil
}

// Delete removes a message, reloads the conversation's messages, and
// recomputes the denormalized last-message fields from the new tail of the
// list, clearing them when no messages remain.
func (uc *ChatUseCase) Delete(ctx context.Context, userID, conversationID, messageID string) error {
	message, err := uc.convRepo.GetMessageByID(ctx, conversationID, messageID)
	if err != nil {
		return err
	}

	if message.SenderID != userID {
		return errors.Forbidden("Only the sender may delete a message", nil)
	}

	if err := uc.convRepo.DeleteMessage(ctx, conversationID, messageID); err != nil {
		return err
	}

	views, err := uc.reloadMessages(ctx, conversationID)
	if err != nil {
		return err
	}

	conversation, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if len(views) == 0 {
		conversation.LastMessage = ""
		conversation.LastMessageAt = nil
	} else {
		tail := views[len(views)-1]
		conversation.LastMessage = tail.Preview()
		lastAt := tail.CreatedAt
		conversation.LastMessageAt = &lastAt
	}

	if err := uc.convRepo.Update(ctx, conversation); err != nil {
		return err
	}

	if _, err := uc.ListForUser(ctx, userID); err != nil {
		logger.Warn("Conversation list refresh after delete failed: %v", err)
	}

	uc.notifyRoom(conversationID, userID, ws.MessageTypeMessagesSync, nil)

	return nil
}

// MarkRead sets the read timestamp if it is not already set. Calling it again
// is a no-op, so the first timestamp is never overwritten.
func (uc *ChatUseCase) MarkRead(ctx context.Context, userID, conversationID, messageID string) error {
	conversation, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("Not a participant in this conversation", nil)
	}

	message, err := uc.convRepo.GetMessageByID(ctx, conversationID, messageID)
	if err != nil {
		return err
	}

	if message.ReadAt != nil {
		return nil
	}

	now := time.Now()
	message.ReadAt = &now

	return uc.convRepo.UpdateMessage(ctx, message)
}

// SetTyping publishes an ephemeral typing signal to the conversation's
// presence room. Nothing is persisted and loss of the signal is tolerable.
func (uc *ChatUseCase) SetTyping(userID, conversationID string, isTyping bool) {
	uc.wsManager.BroadcastTyping(conversationID, userID, isTyping)
}

// Watch subscribes to the conversation's message change feed and reloads that
// conversation's cached messages on every notification. The subscription is
// released by StopWatching or when ctx is cancelled.
func (uc *ChatUseCase) Watch(ctx context.Context, conversationID string) {
	// Reserve the key before releasing the lock so two interleaved
	// activations cannot both create a listener.
	uc.mu.Lock()
	if _, ok := uc.watchStops[conversationID]; ok {
		uc.mu.Unlock()
		return
	}
	uc.watchStops[conversationID] = func() {}
	uc.mu.Unlock()

	stop := uc.convRepo.WatchMessages(ctx, conversationID, func() {
		if _, err := uc.reloadMessages(context.Background(), conversationID); err != nil {
			logger.Error("Message reload after change notification failed: %v", err)
			return
		}
		uc.notifyRoom(conversationID, "", ws.MessageTypeMessagesSync, nil)
	})

	uc.mu.Lock()
	if _, ok := uc.watchStops[conversationID]; ok {
		uc.watchStops[conversationID] = stop
		uc.mu.Unlock()
		return
	}
	uc.mu.Unlock()

	// StopWatching ran while the listener was being created.
	stop()
}

// StopWatching releases the conversation's change-feed subscription. Must be
// called on every exit path of the owning view to avoid leaking listeners.
func (uc *ChatUseCase) StopWatching(conversationID string) {
	uc.mu.Lock()
	stop, ok := uc.watchStops[conversationID]
	if ok {
		delete(uc.watchStops, conversationID)
	}
	uc.mu.Unlock()

	if ok {
		stop()
	}
}

func (uc *ChatUseCase) notifyRoom(conversationID, excludeUserID, messageType string, data interface{}) {
	notification := ws.WSMessage{
		Type:           messageType,
		ConversationID: conversationID,
		Data:           data,
		Timestamp:      time.Now().Format(time.RFC3339),
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return
	}

	uc.wsManager.SendToRoom(conversationID, payload, excludeUserID)
}
