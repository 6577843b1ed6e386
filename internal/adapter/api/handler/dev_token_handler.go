package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"sparin/internal/infrastructure/firebase"
	"sparin/pkg/response"
)

// DevTokenHandler mints tokens for local development. When a Firebase
// API key is configured it issues a real long-lived ID token; otherwise
// it falls back to a locally signed HS256 token the auth middleware
// accepts in dev mode.
type DevTokenHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	jwtSecret    string
	jwtExpiry    int64
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, jwtSecret string, jwtExpiry int64) *DevTokenHandler {
	return &DevTokenHandler{
		firebaseAuth: firebaseAuth,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
	}
}

func SetupDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, jwtSecret string, jwtExpiry int64) {
	devTokenHandler = NewDevTokenHandler(firebaseAuth, jwtSecret, jwtExpiry)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req struct {
		UserID string `json:"userId" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if token, err := h.firebaseAuth.GenerateLongLivedToken(c.Request().Context(), req.UserID); err == nil {
		return response.Success(c, map[string]string{
			"token":  token,
			"source": "firebase",
		})
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   req.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(h.jwtExpiry) * time.Second)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"token":  token,
		"source": "local",
	})
}
