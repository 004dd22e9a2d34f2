package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ripplehq/ripple-backend/internal/middleware"
	"github.com/ripplehq/ripple-backend/internal/models"
	"github.com/ripplehq/ripple-backend/internal/repositories"
	"github.com/rs/zerolog"
)

// searchResultLimit caps the search-as-you-type result set.
const searchResultLimit = 10

// UserHandler handles HTTP requests related to users and profiles.
type UserHandler struct {
	userRepository repositories.UserRepository
	log            zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repositories.UserRepository, log zerolog.Logger) *UserHandler {
	return &UserHandler{userRepository: userRepo, log: log}
}

// RegisterUserRoutes registers profile, lookup and search routes.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, requireIdentity echo.MiddlewareFunc) {
	g.GET("/profile", h.GetProfile, requireIdentity)
	g.PUT("/profile", h.UpdateProfile, requireIdentity)
	g.GET("/search", h.SearchUsers)
	g.GET("/users/:username", h.GetUserByUsername)
}

// GetProfile returns the caller's profile, provisioning it on first access.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetOrCreate(middleware.UserID(c))
	if err != nil {
		return mapError(h.log, "users.get_or_create", err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update to the caller's profile. Absent
// fields stay unchanged; empty strings overwrite.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.UpdateProfile(middleware.UserID(c), &req)
	if err != nil {
		return mapError(h.log, "users.update_profile", err)
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers matches users by name or username, case-insensitively.
// Queries shorter than 2 characters fail closed with an empty list.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if len(query) < 2 {
		return c.JSON(http.StatusOK, []models.UserSummary{})
	}

	users, err := h.userRepository.Search(query, searchResultLimit)
	if err != nil {
		return mapError(h.log, "users.search", err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUserByUsername resolves a profile link by username, falling back to the
// user id.
func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	user, err := h.userRepository.GetByUsernameOrID(c.Param("username"))
	if err != nil {
		return mapError(h.log, "users.get_by_username", err)
	}
	return c.JSON(http.StatusOK, user)
}
