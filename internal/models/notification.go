package models

import "time"

// Notification types.
const (
	NotificationTypeComment = "comment"
)

// Notification is the read-state record produced by comment fan-out. The
// unique index on CommentID makes the fan-out idempotent: at most one
// notification can ever exist per originating comment.
type Notification struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	RecipientID string    `json:"recipientId" gorm:"index;not null"`
	Type        string    `json:"type" gorm:"size:30"`
	Message     string    `json:"message"`
	PostID      *string   `json:"postId"`
	CommentID   *string   `json:"commentId" gorm:"uniqueIndex"`
	IsRead      bool      `json:"isRead" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`

	Post    *Post    `json:"post,omitempty"`
	Comment *Comment `json:"comment,omitempty"`
}
