package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// ContextUserIDKey is where RequireIdentity stores the resolved caller id.
const ContextUserIDKey = "userID"

// RequireIdentity verifies the bearer token issued by the identity provider
// and stores the provider-assigned user id (the token subject) in the
// request context. Requests without a resolvable identity get a 401.
func RequireIdentity(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token has no subject")
			}

			c.Set(ContextUserIDKey, claims.Subject)
			return next(c)
		}
	}
}

// UserID returns the caller id stored by RequireIdentity, or "" when the
// route was reached without it.
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserIDKey).(string)
	return id
}
