package models

import "time"

// Post is a text post with an optional image. Content is immutable after
// creation; only the like counter changes.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"not null"`
	ImageURL  *string   `json:"imageUrl"`
	LikeCount int       `json:"likeCount" gorm:"not null;default:0"`
	AuthorID  string    `json:"authorId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`

	Author   *User     `json:"-"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// PostResponse is a post annotated with its author summary and comment count.
// Comments are populated only by the post-with-comments lookup.
type PostResponse struct {
	ID           string            `json:"id"`
	Content      string            `json:"content"`
	ImageURL     *string           `json:"imageUrl"`
	LikeCount    int               `json:"likeCount"`
	AuthorID     string            `json:"authorId"`
	CreatedAt    time.Time         `json:"createdAt"`
	Author       UserSummary       `json:"author"`
	CommentCount int64             `json:"commentCount"`
	Comments     []CommentResponse `json:"comments,omitempty"`
}

// Response builds the annotated shape. The post's Author must be preloaded.
func (p *Post) Response(commentCount int64) PostResponse {
	resp := PostResponse{
		ID:           p.ID,
		Content:      p.Content,
		ImageURL:     p.ImageURL,
		LikeCount:    p.LikeCount,
		AuthorID:     p.AuthorID,
		CreatedAt:    p.CreatedAt,
		CommentCount: commentCount,
	}
	if p.Author != nil {
		resp.Author = p.Author.Summary()
	}
	return resp
}

// CreatePostRequest defines the request body for creating a new post.
type CreatePostRequest struct {
	Content  string  `json:"content" validate:"required,max=5000"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,url"`
}
