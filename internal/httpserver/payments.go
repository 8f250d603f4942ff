package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restohub/bistro_backend/internal/logging"
	authmw "github.com/restohub/bistro_backend/internal/middleware/auth"
	"github.com/restohub/bistro_backend/internal/models"
	"github.com/restohub/bistro_backend/internal/service"
)

type PaymentHTTP struct {
	Svc *service.PaymentService
}

// CreateIntent is the pre-charge handshake with the gateway. A body that
// does not parse as a positive number is rejected before the gateway is
// consulted.
func (h *PaymentHTTP) CreateIntent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payments.intent")

	var req struct {
		Price float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_intent_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid amount"})
	}

	secret, err := h.Svc.CreateIntent(ctx, req.Price)
	if err != nil {
		l.Warn("create_intent_error", "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}

// History returns the caller's own payment records; asking for another email
// is forbidden regardless of role.
func (h *PaymentHTTP) History(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payments.history")

	email := c.Param("email")
	if email != authmw.IdentityEmail(c) {
		l.Warn("payment_history_denied", "status", 403)
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden access"})
	}

	payments, err := h.Svc.History(ctx, email)
	if err != nil {
		l.Error("payment_history_error", "status", 500, "error", err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}

// Confirm persists the payment record and clears the paid cart items. The
// record must belong to the authenticated caller.
func (h *PaymentHTTP) Confirm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payments.confirm")

	var payment models.Payment
	if err := c.Bind(&payment); err != nil {
		l.Warn("confirm_payment_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	if payment.Email != authmw.IdentityEmail(c) {
		l.Warn("confirm_payment_denied", "status", 403)
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden access"})
	}

	res, err := h.Svc.ConfirmPayment(ctx, &payment)
	if err != nil {
		l.Error("confirm_payment_error", "error", err)
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"insertedPayment": echo.Map{"insertedId": res.Payment.ID},
		"removedCartIds":  res.RemovedCartIDs,
	})
}
