package entity

import "time"

// ImagePlaceholder is the preview text used for a message that carries only an image.
const ImagePlaceholder = "📷 Image"

type Message struct {
	ID             string     `json:"id" firestore:"id"`
	ConversationID string     `json:"conversation_id" firestore:"conversationId"`
	SenderID       string     `json:"sender_id" firestore:"senderId"`
	Text           string     `json:"text,omitempty" firestore:"text,omitempty"`
	ImageURL       string     `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	CreatedAt      time.Time  `json:"created_at" firestore:"createdAt"`
	EditedAt       *time.Time `json:"edited_at,omitempty" firestore:"editedAt,omitempty"`
	ReadAt         *time.Time `json:"read_at,omitempty" firestore:"readAt,omitempty"`
}

// Preview returns the text that should appear as a conversation's denormalized
// last-message field for this message.
func (m *Message) Preview() string {
	if m.Text == "" && m.ImageURL != "" {
		return ImagePlaceholder
	}
	return m.Text
}
