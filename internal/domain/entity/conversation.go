package entity

import "time"

type Conversation struct {
	ID            string     `json:"id" firestore:"id"`
	BuyerID       string     `json:"buyer_id" firestore:"buyerId"`
	SellerID      string     `json:"seller_id" firestore:"sellerId"`
	ProductID     string     `json:"product_id,omitempty" firestore:"productId,omitempty"`
	Participants  []string   `json:"participants" firestore:"participants"`
	LastMessage   string     `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty" firestore:"lastMessageAt,omitempty"`
	CreatedAt     time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time  `json:"updated_at" firestore:"updatedAt"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
