package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ripplehq/ripple-backend/internal/metrics"
	"github.com/ripplehq/ripple-backend/internal/middleware"
	"github.com/ripplehq/ripple-backend/internal/models"
	"github.com/ripplehq/ripple-backend/internal/repositories"
	"github.com/rs/zerolog"
)

// CommentHandler handles HTTP requests related to comments.
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	userRepository    repositories.UserRepository
	log               zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
		log:               log,
	}
}

// RegisterCommentRoutes registers comment-related routes. Reading is public;
// commenting requires a caller identity.
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, requireIdentity echo.MiddlewareFunc) {
	g.GET("/posts/:id/comments", h.GetPostWithComments)
	g.POST("/posts/:id/comments", h.CreateComment, requireIdentity)
}

// GetPostWithComments returns the post with its comments in chronological
// reading order.
func (h *CommentHandler) GetPostWithComments(c echo.Context) error {
	post, err := h.postRepository.GetWithComments(c.Param("id"))
	if err != nil {
		return mapError(h.log, "posts.get_with_comments", err)
	}
	return c.JSON(http.StatusOK, post)
}

// CreateComment inserts a comment on the post and fans out a notification to
// the post's author when someone else wrote the post.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID := middleware.UserID(c)
	postID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment content is required")
	}

	post, err := h.postRepository.GetByID(postID)
	if err != nil {
		return mapError(h.log, "posts.get", err)
	}

	// Lazily provision the commenter row so the FK always resolves.
	if _, err := h.userRepository.GetOrCreate(userID); err != nil {
		return mapError(h.log, "users.get_or_create", err)
	}

	comment := &models.Comment{
		Content:  content,
		AuthorID: userID,
		PostID:   postID,
	}
	created, err := h.commentRepository.CreateWithFanOut(comment)
	if err != nil {
		return mapError(h.log, "comments.create", err)
	}

	metrics.CommentsCreated.Inc()
	if post.AuthorID != userID {
		metrics.NotificationsFannedOut.Inc()
	}
	return c.JSON(http.StatusCreated, created)
}
