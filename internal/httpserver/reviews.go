package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restohub/bistro_backend/internal/logging"
	"github.com/restohub/bistro_backend/internal/models"
	"github.com/restohub/bistro_backend/internal/service"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.list")

	reviews, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_reviews_error", "status", 500, "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reviews.create")

	var review models.Review
	if err := c.Bind(&review); err != nil {
		l.Warn("create_review_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	if err := h.Svc.Create(ctx, &review); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"insertedId": review.ID})
}
