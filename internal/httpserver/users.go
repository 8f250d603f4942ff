package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restohub/bistro_backend/internal/logging"
	authmw "github.com/restohub/bistro_backend/internal/middleware/auth"
	"github.com/restohub/bistro_backend/internal/models"
	"github.com/restohub/bistro_backend/internal/service"
)

type UserHTTP struct {
	Svc *service.UserService
}

// AdminStatus lets a caller ask only about their own admin flag.
func (h *UserHTTP) AdminStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.admin_status")

	email := c.Param("id") // the admin routes share one wildcard slot; here it carries an email
	if email != authmw.IdentityEmail(c) {
		l.Warn("admin_status_denied", "status", 403)
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden access"})
	}

	admin, err := h.Svc.IsAdmin(ctx, email)
	if err != nil {
		l.Error("admin_status_error", "status", 500, "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": admin})
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	users, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_users_error", "status", 500, "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.create")

	var user models.User
	if err := c.Bind(&user); err != nil {
		l.Warn("create_user_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	user.Role = "" // roles are granted only through the admin promotion route

	created, err := h.Svc.Register(ctx, &user)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.JSON(http.StatusOK, echo.Map{"message": "email already exists", "insertedId": nil})
		}
		l.Error("create_user_error", "error", err)
		return fail(c, err)
	}

	l.Info("user created", "email", created.Email)
	return c.JSON(http.StatusOK, echo.Map{"insertedId": created.ID})
}

func (h *UserHTTP) Promote(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.promote")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	modified, err := h.Svc.Promote(ctx, id)
	if err != nil {
		l.Error("promote_user_error", "status", 500, "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": modified})
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.delete")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	deleted, err := h.Svc.Delete(ctx, id)
	if err != nil {
		l.Error("delete_user_error", "status", 500, "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": deleted})
}
