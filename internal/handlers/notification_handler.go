package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ripplehq/ripple-backend/internal/middleware"
	"github.com/ripplehq/ripple-backend/internal/repositories"
	"github.com/rs/zerolog"
)

// NotificationHandler handles notification-related HTTP requests.
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	log                    zerolog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifRepo repositories.NotificationRepository, log zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		log:                    log,
	}
}

// RegisterNotificationRoutes registers notification routes. All require a
// caller identity.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, requireIdentity echo.MiddlewareFunc) {
	g.GET("/notifications", h.GetNotifications, requireIdentity)
	g.GET("/notifications/count", h.GetUnreadCount, requireIdentity)
	g.PUT("/notifications", h.MarkAllRead, requireIdentity)
}

// GetNotifications returns the caller's most recent notifications, newest
// first.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.notificationRepository.GetByRecipient(middleware.UserID(c))
	if err != nil {
		return mapError(h.log, "notifications.list", err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount returns the caller's unread notification count for the
// polling badge.
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notificationRepository.GetUnreadCount(middleware.UserID(c))
	if err != nil {
		return mapError(h.log, "notifications.unread_count", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAllRead marks every unread notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.notificationRepository.MarkAllRead(middleware.UserID(c)); err != nil {
		return mapError(h.log, "notifications.mark_all_read", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
