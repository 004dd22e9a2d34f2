package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ripplehq/ripple-backend/internal/metrics"
	"github.com/ripplehq/ripple-backend/internal/models"
	"github.com/ripplehq/ripple-backend/internal/repositories"
	"github.com/rs/zerolog"
	svix "github.com/svix/svix-webhooks/go"
)

// Identity lifecycle event types delivered by the provider.
const (
	eventUserCreated = "user.created"
	eventUserUpdated = "user.updated"
	eventUserDeleted = "user.deleted"
)

// identityEvent is the provider's webhook envelope.
type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
		Username  *string `json:"username"`
		ImageURL  *string `json:"image_url"`
	} `json:"data"`
}

// WebhookHandler syncs identity lifecycle events into the user table.
type WebhookHandler struct {
	userRepository repositories.UserRepository
	verifier       *svix.Webhook
	log            zerolog.Logger
}

// NewWebhookHandler creates a WebhookHandler verifying payloads with the
// shared webhook secret.
func NewWebhookHandler(userRepo repositories.UserRepository, webhookSecret string, log zerolog.Logger) (*WebhookHandler, error) {
	verifier, err := svix.NewWebhook(webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid identity webhook secret: %w", err)
	}
	return &WebhookHandler{
		userRepository: userRepo,
		verifier:       verifier,
		log:            log,
	}, nil
}

// RegisterWebhookRoutes registers the identity webhook endpoint. It is not
// behind the bearer middleware; the signature is the authentication.
func (h *WebhookHandler) RegisterWebhookRoutes(g *echo.Group) {
	g.POST("/webhooks/identity", h.HandleIdentityEvent)
}

// HandleIdentityEvent verifies the signed payload and upserts or deletes the
// referenced user. Verification failures reject the request before any store
// mutation.
func (h *WebhookHandler) HandleIdentityEvent(c echo.Context) error {
	headers := c.Request().Header
	if headers.Get("svix-id") == "" || headers.Get("svix-timestamp") == "" || headers.Get("svix-signature") == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing webhook signature headers")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to read request body")
	}

	if err := h.verifier.Verify(body, headers); err != nil {
		h.log.Warn().Err(err).Msg("identity webhook signature verification failed")
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid webhook signature")
	}

	var event identityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid webhook payload")
	}

	switch event.Type {
	case eventUserCreated, eventUserUpdated:
		if err := h.userRepository.UpsertFromIdentity(userFromEvent(&event)); err != nil {
			metrics.WebhookEvents.WithLabelValues(event.Type, "error").Inc()
			return mapError(h.log, "users.upsert_from_identity", err)
		}
	case eventUserDeleted:
		if err := h.userRepository.Delete(event.Data.ID); err != nil {
			metrics.WebhookEvents.WithLabelValues(event.Type, "error").Inc()
			return mapError(h.log, "users.delete", err)
		}
	default:
		// Unknown lifecycle events are acknowledged and ignored.
	}

	metrics.WebhookEvents.WithLabelValues(event.Type, "ok").Inc()
	h.log.Info().Str("type", event.Type).Str("user_id", event.Data.ID).Msg("identity event processed")
	return c.NoContent(http.StatusOK)
}

// userFromEvent maps the provider payload onto a user row, falling back to a
// placeholder email when the payload carries no address.
func userFromEvent(event *identityEvent) *models.User {
	user := &models.User{
		ID:        event.Data.ID,
		Email:     fmt.Sprintf("%s@temp.com", event.Data.ID),
		Username:  event.Data.Username,
		AvatarURL: event.Data.ImageURL,
	}
	if len(event.Data.EmailAddresses) > 0 && event.Data.EmailAddresses[0].EmailAddress != "" {
		user.Email = event.Data.EmailAddresses[0].EmailAddress
	}
	if name := strings.TrimSpace(strings.Join(nonEmpty(event.Data.FirstName, event.Data.LastName), " ")); name != "" {
		user.Name = &name
	}
	return user
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
