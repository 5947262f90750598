package entity

import (
	"time"
)

type User struct {
	ID         string `json:"id" firestore:"id"`
	Email      string `json:"email" firestore:"email"`
	Name       string `json:"name" firestore:"name"`
	Phone      string `json:"phone,omitempty" firestore:"phone,omitempty"`
	College    string `json:"college,omitempty" firestore:"college,omitempty"`
	Department string `json:"department,omitempty" firestore:"department,omitempty"`
	RollNumber string `json:"roll_number,omitempty" firestore:"rollNumber,omitempty"`
	Role       string `json:"role" firestore:"role"` // "user" or "admin"

	SellerRating      float64 `json:"seller_rating" firestore:"sellerRating"`
	SellerReviewCount int     `json:"seller_review_count" firestore:"sellerReviewCount"`
	Verified          bool    `json:"verified" firestore:"verified"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
