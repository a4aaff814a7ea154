package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"newsroom/config"
)

// SessionCookieName is the cookie holding the admin session token.
const SessionCookieName = "admin_session"

const (
	tokenIssuer  = "newsroom"
	tokenSubject = "admin"
)

var (
	errMissingToken = errors.New("missing session token")
	errInvalidToken = errors.New("invalid session token")
)

// AdminAuthMiddleware issues and validates the admin session token carried
// in a cookie.
type AdminAuthMiddleware struct {
	secret []byte
	ttl    time.Duration
}

func NewAdminAuthMiddleware(cfg config.AdminConfig) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.SessionTTL,
	}
}

// IssueToken creates a signed session token and returns it with its expiry.
func (m *AdminAuthMiddleware) IssueToken() (string, time.Time, error) {
	expiresAt := time.Now().Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return token, expiresAt, nil
}

// RequireAdmin rejects requests without a valid admin session cookie.
func (m *AdminAuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := m.validate(c); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "admin authentication required")
			}
			return next(c)
		}
	}
}

func (m *AdminAuthMiddleware) validate(c echo.Context) error {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return errMissingToken
	}

	parsed, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return errInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Issuer != tokenIssuer || claims.Subject != tokenSubject {
		return errInvalidToken
	}
	return nil
}
