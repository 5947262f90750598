package entity

import "time"

const (
	FeedbackStatusPending  = "pending"
	FeedbackStatusReviewed = "reviewed"
	FeedbackStatusResolved = "resolved"
)

var FeedbackCategories = []string{"Product", "Faculty", "Platform", "Other"}

type Feedback struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Subject   string    `json:"subject" firestore:"subject"`
	Message   string    `json:"message" firestore:"message"`
	Category  string    `json:"category" firestore:"category"` // "Product", "Faculty", "Platform", "Other"
	Status    string    `json:"status" firestore:"status"`     // "pending", "reviewed", "resolved"
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func ValidFeedbackCategory(category string) bool {
	for _, c := range FeedbackCategories {
		if c == category {
			return true
		}
	}
	return false
}

func ValidFeedbackStatus(status string) bool {
	switch status {
	case FeedbackStatusPending, FeedbackStatusReviewed, FeedbackStatusResolved:
		return true
	}
	return false
}
