package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sharespace/internal/domain/entity"
	"sharespace/pkg/errors"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
	roles map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[string]*entity.User),
		roles: make(map[string]string),
	}
}

func (r *fakeUserRepo) add(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetRole(ctx context.Context, userID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role, ok := r.roles[userID]; ok {
		return role, nil
	}
	return "user", nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products []*entity.Product
	nextID   int
	onChange func()
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	product.ID = fmt.Sprintf("product-%d", r.nextID)
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	copied := *product
	r.products = append(r.products, &copied)
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.ID == id {
			copied := *product
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Product", nil)
}

func (r *fakeProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		copied := *product
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeProductRepo) ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, product := range r.products {
		if product.SellerID == sellerID {
			copied := *product
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.products {
		if existing.ID == product.ID {
			copied := *product
			r.products[i] = &copied
			return nil
		}
	}
	return errors.NotFound("Product", nil)
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, product := range r.products {
		if product.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Product", nil)
}

func (r *fakeProductRepo) Watch(ctx context.Context, onChange func()) func() {
	r.mu.Lock()
	r.onChange = onChange
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		r.onChange = nil
		r.mu.Unlock()
	}
}

func (r *fakeProductRepo) fireChange() {
	r.mu.Lock()
	onChange := r.onChange
	r.mu.Unlock()
	if onChange != nil {
		onChange()
	}
}

type fakeConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
	nextID        int
	watchCount    int
	stopCount     int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (r *fakeConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	conversation.ID = fmt.Sprintf("conversation-%d", r.nextID)
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt
	copied := *conversation
	r.conversations[conversation.ID] = &copied
	return nil
}

func (r *fakeConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	copied := *conversation
	return &copied, nil
}

func (r *fakeConversationRepo) GetByParticipants(ctx context.Context, buyerID, sellerID, productID string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, conversation := range r.conversations {
		if conversation.BuyerID == buyerID && conversation.SellerID == sellerID && conversation.ProductID == productID {
			copied := *conversation
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *fakeConversationRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Conversation
	for _, conversation := range r.conversations {
		for _, p := range conversation.Participants {
			if p == userID {
				copied := *conversation
				out = append(out, &copied)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) Update(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conversations[conversation.ID]; !ok {
		return errors.NotFound("Conversation", nil)
	}
	copied := *conversation
	r.conversations[conversation.ID] = &copied
	return nil
}

func (r *fakeConversationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conversations, id)
	delete(r.messages, id)
	return nil
}

func (r *fakeConversationRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	message.ID = fmt.Sprintf("message-%d", r.nextID)
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	copied := *message
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], &copied)
	return nil
}

func (r *fakeConversationRepo) GetMessageByID(ctx context.Context, conversationID, messageID string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, message := range r.messages[conversationID] {
		if message.ID == messageID {
			copied := *message
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (r *fakeConversationRepo) GetMessagesByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Message, 0, len(r.messages[conversationID]))
	for _, message := range r.messages[conversationID] {
		copied := *message
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeConversationRepo) UpdateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.messages[message.ConversationID] {
		if existing.ID == message.ID {
			copied := *message
			r.messages[message.ConversationID][i] = &copied
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

func (r *fakeConversationRepo) DeleteMessage(ctx context.Context, conversationID, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	messages := r.messages[conversationID]
	for i, message := range messages {
		if message.ID == messageID {
			r.messages[conversationID] = append(messages[:i], messages[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

func (r *fakeConversationRepo) WatchMessages(ctx context.Context, conversationID string, onChange func()) func() {
	r.mu.Lock()
	r.watchCount++
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		r.stopCount++
		r.mu.Unlock()
	}
}

func (r *fakeConversationRepo) watchCounts() (started, stopped int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.watchCount, r.stopCount
}

type fakeFeedbackRepo struct {
	mu        sync.Mutex
	feedbacks []*entity.Feedback
	nextID    int
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{}
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, feedback *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	feedback.ID = fmt.Sprintf("feedback-%d", r.nextID)
	feedback.CreatedAt = time.Now()
	feedback.UpdatedAt = feedback.CreatedAt
	copied := *feedback
	r.feedbacks = append([]*entity.Feedback{&copied}, r.feedbacks...)
	return nil
}

func (r *fakeFeedbackRepo) GetByID(ctx context.Context, id string) (*entity.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, feedback := range r.feedbacks {
		if feedback.ID == id {
			copied := *feedback
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Feedback", nil)
}

func (r *fakeFeedbackRepo) List(ctx context.Context) ([]*entity.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Feedback, 0, len(r.feedbacks))
	for _, feedback := range r.feedbacks {
		copied := *feedback
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeFeedbackRepo) Update(ctx context.Context, feedback *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.feedbacks {
		if existing.ID == feedback.ID {
			copied := *feedback
			r.feedbacks[i] = &copied
			return nil
		}
	}
	return errors.NotFound("Feedback", nil)
}

func (r *fakeFeedbackRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, feedback := range r.feedbacks {
		if feedback.ID == id {
			r.feedbacks = append(r.feedbacks[:i], r.feedbacks[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Feedback", nil)
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings []*entity.Rating
	nextID  int
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{}
}

func (r *fakeRatingRepo) Create(ctx context.Context, rating *entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rating.ID = fmt.Sprintf("rating-%d", r.nextID)
	rating.CreatedAt = time.Now()
	rating.UpdatedAt = rating.CreatedAt
	copied := *rating
	r.ratings = append(r.ratings, &copied)
	return nil
}

func (r *fakeRatingRepo) GetBySellerAndBuyer(ctx context.Context, sellerID, buyerID string) (*entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rating := range r.ratings {
		if rating.SellerID == sellerID && rating.BuyerID == buyerID {
			copied := *rating
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Rating", nil)
}

func (r *fakeRatingRepo) ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Rating
	for _, rating := range r.ratings {
		if rating.SellerID == sellerID {
			copied := *rating
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRatingRepo) Update(ctx context.Context, rating *entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.ratings {
		if existing.ID == rating.ID {
			copied := *rating
			r.ratings[i] = &copied
			return nil
		}
	}
	return errors.NotFound("Rating", nil)
}

func (r *fakeRatingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rating := range r.ratings {
		if rating.ID == id {
			r.ratings = append(r.ratings[:i], r.ratings[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Rating", nil)
}

type fakeAuthClient struct {
	mu          sync.Mutex
	nextUID     int
	tokens      map[string]string // token -> uid
	revoked     map[string]int
	deleted     map[string]bool
	signInError error
}

func newFakeAuthClient() *fakeAuthClient {
	return &fakeAuthClient{
		tokens:  make(map[string]string),
		revoked: make(map[string]int),
		deleted: make(map[string]bool),
	}
}

func (a *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextUID++
	uid := fmt.Sprintf("uid-%d", a.nextUID)
	a.tokens["token-for-"+email] = uid
	return uid, nil
}

func (a *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.signInError != nil {
		return "", a.signInError
	}
	token := "token-for-" + email
	if _, ok := a.tokens[token]; !ok {
		return "", fmt.Errorf("unknown account %s", email)
	}
	return token, nil
}

func (a *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	uid, ok := a.tokens[token]
	if !ok {
		return "", fmt.Errorf("invalid token")
	}
	return uid, nil
}

func (a *fakeAuthClient) RevokeSessions(ctx context.Context, uid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.revoked[uid]++
	return nil
}

func (a *fakeAuthClient) DeleteUser(ctx context.Context, uid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted[uid] = true
	return nil
}

// register seeds an existing account so sign-in succeeds without Register.
func (a *fakeAuthClient) register(email, uid string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tokens["token-for-"+email] = uid
}

type fakeUploader struct {
	mu      sync.Mutex
	uploads int
	failure error
}

func (u *fakeUploader) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failure != nil {
		return "", u.failure
	}
	u.uploads++
	return fmt.Sprintf("https://storage.example.com/%s/upload-%d", folder, u.uploads), nil
}

type fakeMailer struct {
	mu            sync.Mutex
	registrations []string
	logins        []string
	failure       error
}

func (m *fakeMailer) SendRegistrationEmail(ctx context.Context, email, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return m.failure
	}
	m.registrations = append(m.registrations, email)
	return nil
}

func (m *fakeMailer) SendLoginEmail(ctx context.Context, email, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return m.failure
	}
	m.logins = append(m.logins, email)
	return nil
}
