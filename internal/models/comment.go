package models

import "time"

// Comment belongs to exactly one post and one author. Creating a comment is
// the sole trigger for notification fan-out.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"not null"`
	AuthorID  string    `json:"authorId" gorm:"index;not null"`
	PostID    string    `json:"postId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`

	Author *User `json:"-"`
}

// CommentResponse is a comment annotated with its author summary.
type CommentResponse struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	AuthorID  string      `json:"authorId"`
	PostID    string      `json:"postId"`
	CreatedAt time.Time   `json:"createdAt"`
	Author    UserSummary `json:"author"`
}

// Response builds the annotated shape. The comment's Author must be preloaded.
func (c *Comment) Response() CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
	}
	if c.Author != nil {
		resp.Author = c.Author.Summary()
	}
	return resp
}

// CreateCommentRequest defines the request body for commenting on a post.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
