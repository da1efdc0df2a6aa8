package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techzone-py/techzone/internal/service"
	"github.com/techzone-py/techzone/pkg/logging"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	userID, err := subjectID(c)
	if err != nil {
		return mapError(err)
	}

	var req service.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.Checkout(ctx, userID, req)
	if err != nil {
		l.Warn("checkout_failed", "user_id", userID, "error", err)
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, result)
}
