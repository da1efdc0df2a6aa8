package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techzone-py/techzone/internal/clients/imagehost"
	"github.com/techzone-py/techzone/internal/service"
	"github.com/techzone-py/techzone/pkg/logging"
)

type AdminHTTP struct {
	Svc    *service.AdminService
	Images *imagehost.Client
}

func (h *AdminHTTP) ListAdmins(c echo.Context) error {
	admins, err := h.Svc.ListAdmins(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, admins)
}

func (h *AdminHTTP) CreateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create")

	var in service.AdminUserInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	admin, err := h.Svc.CreateAdmin(ctx, in)
	if err != nil {
		l.Warn("create_admin_failed", "username", in.Username, "error", err)
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, admin)
}

func (h *AdminHTTP) UpdateAdmin(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in service.AdminUserInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	admin, err := h.Svc.UpdateAdmin(c.Request().Context(), id, in)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, admin)
}

func (h *AdminHTTP) DeleteAdmin(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteAdmin(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Upload proxies a multipart image to the external hosting service so the
// admin panel never needs the hosting credentials.
func (h *AdminHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.upload")

	if h.Images == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "image uploads are not configured")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file unreadable")
	}
	defer src.Close()

	result, err := h.Images.Upload(ctx, file.Filename, src)
	if err != nil {
		l.Error("upload_failed", "filename", file.Filename, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "image upload failed")
	}
	return c.JSON(http.StatusCreated, result)
}
