// Package auth holds the two request gates: RequireAuth validates the bearer
// token and threads the identity into the echo context, RequireAdmin checks
// the identity's stored role. Routes compose only the gates they need.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/restohub/bistro_backend/internal/models"
	"github.com/restohub/bistro_backend/internal/tokens"
)

const identityKey = "identity_email"

type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type Guard struct {
	Secret []byte
	Users  UserFinder
}

func NewGuard(secret []byte, users UserFinder) *Guard {
	return &Guard{Secret: secret, Users: users}
}

func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		}

		scheme, raw, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		}

		claims, err := tokens.Parse(raw, g.Secret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		}

		c.Set(identityKey, claims.Email)
		return next(c)
	}
}

// RequireAdmin must run after RequireAuth.
func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := IdentityEmail(c)
		if email == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		}

		user, err := g.Users.FindUserByEmail(c.Request().Context(), email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if !user.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
		}
		return next(c)
	}
}

// IdentityEmail returns the authenticated email set by RequireAuth, or ""
// when the request never passed the gate.
func IdentityEmail(c echo.Context) string {
	s, _ := c.Get(identityKey).(string)
	return s
}
