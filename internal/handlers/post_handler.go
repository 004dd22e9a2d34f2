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

// PostHandler handles HTTP requests related to posts.
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	log            zerolog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		log:            log,
	}
}

// RegisterPostRoutes registers post-related routes. Reads and likes are
// public; creation requires a caller identity.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, requireIdentity echo.MiddlewareFunc) {
	g.GET("/posts", h.GetPosts)
	g.POST("/posts", h.CreatePost, requireIdentity)
	g.POST("/posts/:id/like", h.LikePost)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// CreatePost creates a new post owned by the authenticated caller.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := middleware.UserID(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Content is required")
	}

	// Lazily provision the author row so the FK always resolves.
	if _, err := h.userRepository.GetOrCreate(userID); err != nil {
		return mapError(h.log, "users.get_or_create", err)
	}

	post := &models.Post{
		Content:  content,
		ImageURL: req.ImageURL,
		AuthorID: userID,
	}
	created, err := h.postRepository.Create(post)
	if err != nil {
		return mapError(h.log, "posts.create", err)
	}

	metrics.PostsCreated.Inc()
	return c.JSON(http.StatusCreated, created)
}

// GetPosts returns all posts, newest first.
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAll()
	if err != nil {
		return mapError(h.log, "posts.list", err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetUserPosts returns posts authored by the given user, newest first.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.postRepository.GetByAuthor(c.Param("id"))
	if err != nil {
		return mapError(h.log, "posts.list_by_author", err)
	}
	return c.JSON(http.StatusOK, posts)
}

// LikePost atomically increments the post's like counter and returns the
// updated post.
func (h *PostHandler) LikePost(c echo.Context) error {
	post, err := h.postRepository.IncrementLikeCount(c.Param("id"))
	if err != nil {
		return mapError(h.log, "posts.like", err)
	}

	metrics.LikesApplied.Inc()
	return c.JSON(http.StatusOK, post)
}
