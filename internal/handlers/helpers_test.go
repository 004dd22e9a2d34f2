package handlers_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/ripplehq/ripple-backend/internal/models"
	"github.com/ripplehq/ripple-backend/internal/router"
	"github.com/ripplehq/ripple-backend/pkg/config"
	"github.com/ripplehq/ripple-backend/validators"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret"

// testWebhookKey is the raw HMAC key behind the svix-formatted secret below.
var testWebhookKey = []byte("0123456789abcdef0123456789abcdef")

func testWebhookSecret() string {
	return "whsec_" + base64.StdEncoding.EncodeToString(testWebhookKey)
}

// newTestServer wires the full route table over an in-memory database.
func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                   "test",
		JWTSecret:             testJWTSecret,
		IdentityWebhookSecret: testWebhookSecret(),
	}

	e := echo.New()
	e.Validator = validators.NewValidator()
	require.NoError(t, router.SetupRoutes(e, db, cfg, zerolog.Nop()))
	return e, db
}

// bearerToken signs an identity-provider token for the given user id.
func bearerToken(t *testing.T, userID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

// doRequest performs a request against the test server and returns the
// recorder.
func doRequest(e *echo.Echo, method, path, token string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// signWebhook produces the svix signature headers for the payload: HMAC-SHA256
// over "id.timestamp.body", base64, prefixed with the scheme version.
func signWebhook(msgID string, ts time.Time, body []byte) http.Header {
	signedContent := fmt.Sprintf("%s.%d.%s", msgID, ts.Unix(), body)
	mac := hmac.New(sha256.New, testWebhookKey)
	mac.Write([]byte(signedContent))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	headers := http.Header{}
	headers.Set("svix-id", msgID)
	headers.Set("svix-timestamp", fmt.Sprintf("%d", ts.Unix()))
	headers.Set("svix-signature", "v1,"+signature)
	return headers
}

func seedTestUser(t *testing.T, db *gorm.DB, id string, name, username *string) {
	t.Helper()

	require.NoError(t, db.Create(&models.User{
		ID:       id,
		Email:    id + "@example.com",
		Name:     name,
		Username: username,
	}).Error)
}

func strPtr(s string) *string {
	return &s
}
