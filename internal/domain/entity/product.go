package entity

import (
	"time"
)

const (
	ProductStatusActive  = "active"
	ProductStatusBlocked = "blocked"
)

var ProductConditions = []string{"New", "Like New", "Good", "Fair"}

type Product struct {
	ID          string  `json:"id" firestore:"id"`
	Title       string  `json:"title" firestore:"title"`
	Description string  `json:"description" firestore:"description"`
	Price       float64 `json:"price" firestore:"price"`
	Category    string  `json:"category" firestore:"category"`
	Condition   string  `json:"condition" firestore:"condition"` // "New", "Like New", "Good", "Fair"
	ImageURL    string  `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	SellerID    string  `json:"seller_id" firestore:"sellerId"`
	Status      string  `json:"status" firestore:"status"` // "active" or "blocked"
	Sold        bool    `json:"sold" firestore:"sold"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func ValidCondition(condition string) bool {
	for _, c := range ProductConditions {
		if c == condition {
			return true
		}
	}
	return false
}
