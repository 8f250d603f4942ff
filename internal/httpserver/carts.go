package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restohub/bistro_backend/internal/logging"
	"github.com/restohub/bistro_backend/internal/models"
	"github.com/restohub/bistro_backend/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "carts.list")

	items, err := h.Svc.List(ctx, c.QueryParam("email"))
	if err != nil {
		l.Error("list_cart_error", "status", 500, "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "carts.add")

	var item models.CartItem
	if err := c.Bind(&item); err != nil {
		l.Warn("add_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	if err := h.Svc.Add(ctx, &item); err != nil {
		return fail(c, err)
	}

	l.Info("cart item added", "email", item.Email)
	return c.JSON(http.StatusOK, echo.Map{"insertedId": item.ID})
}

func (h *CartHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "carts.delete")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	deleted, err := h.Svc.Delete(ctx, id)
	if err != nil {
		l.Error("delete_cart_error", "status", 500, "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": deleted})
}
