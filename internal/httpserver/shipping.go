package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techzone-py/techzone/internal/shipping"
	"github.com/techzone-py/techzone/pkg/logging"
)

type ShippingHTTP struct {
	Rates *shipping.Resolver
}

// Calculate quotes every service for a destination, cheapest first. Unknown
// destinations fall through to the catch-all zone rather than erroring.
func (h *ShippingHTTP) Calculate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shipping.calculate")

	var req struct {
		Action     string  `json:"action"`
		City       string  `json:"city"`
		Department string  `json:"department"`
		Weight     float64 `json:"weight"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Action != "" && req.Action != "calculate" {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown action")
	}

	zoneID, quotes, err := h.Rates.QuoteAll(req.City, req.Department, req.Weight)
	if err != nil {
		if errors.Is(err, shipping.ErrInvalidWeight) {
			return echo.NewHTTPError(http.StatusBadRequest, "weight must be greater than zero")
		}
		l.Error("quote_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"zoneId": zoneID,
		"rates":  quotes,
	})
}
