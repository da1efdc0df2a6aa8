package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/techzone-py/techzone/internal/middleware/authmw"
	"github.com/techzone-py/techzone/internal/service"
)

// mapError translates service sentinels into the HTTP taxonomy. Anything
// unrecognized becomes a generic 500; raw error text never reaches the
// client on that path.
func mapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	case errors.Is(err, service.ErrInvalidCode):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid or expired code")
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, service.ErrInvalidRefreshToken),
		errors.Is(err, service.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPaymentSession):
		return echo.NewHTTPError(http.StatusInternalServerError, "payment session could not be created, try again")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func subjectID(c echo.Context) (uint, error) {
	v, ok := c.Get(authmw.CtxSubjectID).(string)
	if !ok || v == "" {
		return 0, service.ErrUnauthorized
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, service.ErrUnauthorized
	}
	return uint(id), nil
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be numeric")
	}
	return uint(id), nil
}
