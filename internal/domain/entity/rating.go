package entity

import "time"

// Rating is a seller rating left by a buyer. At most one rating exists per
// (seller, buyer) pair; a repeat submission overwrites the previous one.
type Rating struct {
	ID        string    `json:"id" firestore:"id"`
	SellerID  string    `json:"seller_id" firestore:"sellerId"`
	BuyerID   string    `json:"buyer_id" firestore:"buyerId"`
	Rating    int       `json:"rating" firestore:"rating"` // 1-5
	Comment   string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
