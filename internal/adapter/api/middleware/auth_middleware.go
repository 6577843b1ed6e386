package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"sparin/internal/session"
)

type AuthMiddleware struct {
	authClient *auth.Client
	jwtSecret  string
	devTokens  bool
}

func NewAuthMiddleware(authClient *auth.Client, jwtSecret string, devTokens bool) *AuthMiddleware {
	return &AuthMiddleware{
		authClient: authClient,
		jwtSecret:  jwtSecret,
		devTokens:  devTokens,
	}
}

// Authenticate verifies the bearer token and plants the uid both in the
// echo context and in the request context, where the session resolver
// reads it back.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		uid, err := m.resolveUID(c, parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", uid)
		ctx := session.WithUserID(c.Request().Context(), uid)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func (m *AuthMiddleware) resolveUID(c echo.Context, token string) (string, error) {
	if m.devTokens && m.jwtSecret != "" {
		if uid, err := m.verifyDevToken(token); err == nil {
			return uid, nil
		}
	}

	result, err := m.authClient.VerifyIDToken(c.Request().Context(), token)
	if err != nil {
		return "", err
	}
	return result.UID, nil
}

// verifyDevToken accepts locally minted HS256 tokens so the API can be
// exercised without a Firebase project. Never enabled in production.
func (m *AuthMiddleware) verifyDevToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.jwtSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid dev token")
	}

	return claims.Subject, nil
}

// GetUIDFromToken verifies a raw token outside the middleware chain. The
// WebSocket endpoint uses this for its query-parameter handshake.
func (m *AuthMiddleware) GetUIDFromToken(c echo.Context, token string) (string, error) {
	return m.resolveUID(c, token)
}
